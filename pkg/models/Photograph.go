package models

import (
	"fmt"
	"time"
)

var (
	ErrPhotographNotFound = fmt.Errorf("photograph not found")
)

const (
	DerivativeSquare = "square"
	DerivativeSmall  = "small"
	DerivativeMedium = "medium"
	DerivativeLarge  = "large"
)

type Photograph struct {
	BaseModel

	UUID        string `db:"uuid"`
	Title       string
	Description string
	Image       string
	Orientation Orientation
	Width       int
	Height      int

	ThumbnailSquare string `db:"thumbnail_square"`
	SqWidth         *int   `db:"sq_width"`
	SqHeight        *int   `db:"sq_height"`
	ThumbnailSmall  string `db:"thumbnail_small"`
	SmWidth         *int   `db:"sm_width"`
	SmHeight        *int   `db:"sm_height"`
	ThumbnailMedium string `db:"thumbnail_medium"`
	MWidth          *int   `db:"m_width"`
	MHeight         *int   `db:"m_height"`
	ThumbnailLarge  string `db:"thumbnail_large"`
	LWidth          *int   `db:"l_width"`
	LHeight         *int   `db:"l_height"`

	Public        bool
	PublishedDate time.Time
	UserID        uint `db:"user_id"`
	Albums        []Album
}

/*
DerivativeSlot is one generated image of a photograph. Width and Height
are nil until the derivative has been generated.
*/
type DerivativeSlot struct {
	Key    string
	Width  *int
	Height *int
}

func (s DerivativeSlot) Generated() bool {
	return s.Key != "" && s.Width != nil && s.Height != nil
}

/*
Slot returns the stored derivative for the given name. Unknown names return
an empty slot.
*/
func (p *Photograph) Slot(name string) DerivativeSlot {
	switch name {
	case DerivativeSquare:
		return DerivativeSlot{Key: p.ThumbnailSquare, Width: p.SqWidth, Height: p.SqHeight}
	case DerivativeSmall:
		return DerivativeSlot{Key: p.ThumbnailSmall, Width: p.SmWidth, Height: p.SmHeight}
	case DerivativeMedium:
		return DerivativeSlot{Key: p.ThumbnailMedium, Width: p.MWidth, Height: p.MHeight}
	case DerivativeLarge:
		return DerivativeSlot{Key: p.ThumbnailLarge, Width: p.LWidth, Height: p.LHeight}
	}

	return DerivativeSlot{}
}

/*
SetSlot records a generated derivative. It reports false when the name is not
one of the photograph's slots.
*/
func (p *Photograph) SetSlot(name, key string, width, height int) bool {
	w, h := width, height

	switch name {
	case DerivativeSquare:
		p.ThumbnailSquare, p.SqWidth, p.SqHeight = key, &w, &h
	case DerivativeSmall:
		p.ThumbnailSmall, p.SmWidth, p.SmHeight = key, &w, &h
	case DerivativeMedium:
		p.ThumbnailMedium, p.MWidth, p.MHeight = key, &w, &h
	case DerivativeLarge:
		p.ThumbnailLarge, p.LWidth, p.LHeight = key, &w, &h
	default:
		return false
	}

	return true
}

/*
DerivativeKeys lists the storage keys of every generated derivative.
*/
func (p *Photograph) DerivativeKeys() []string {
	result := []string{}

	for _, name := range []string{DerivativeSquare, DerivativeSmall, DerivativeMedium, DerivativeLarge} {
		if key := p.Slot(name).Key; key != "" {
			result = append(result, key)
		}
	}

	return result
}

func (p *Photograph) HasAllDerivatives() bool {
	for _, name := range []string{DerivativeSquare, DerivativeSmall, DerivativeMedium, DerivativeLarge} {
		if !p.Slot(name).Generated() {
			return false
		}
	}

	return true
}
