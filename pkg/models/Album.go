package models

import (
	"fmt"
	"time"
)

var (
	ErrAlbumNotFound = fmt.Errorf("album not found")
)

const DefaultAlbumSortOrder = 11

type Album struct {
	BaseModel

	UUID          string `db:"uuid"`
	Title         string
	SortOrder     int
	Public        bool
	PublishedDate time.Time
	UserID        *uint `db:"user_id"`
	Photographs   []Photograph
}
