package services

import (
	"context"
	"fmt"
	"time"

	"github.com/danehillard/dhp/pkg/models"
	"github.com/google/uuid"
	"github.com/rfberaldo/sqlz"
)

type AlbumServicer interface {
	AddPhotograph(albumID, photoID uint) error
	Create(album *models.Album) error
	GetAlbum(albumUUID string) (*models.Album, error)
	GetAlbumList(publicOnly bool) ([]*models.Album, error)
}

type AlbumServiceConfig struct {
	DB *sqlz.DB
}

type AlbumService struct {
	db *sqlz.DB
}

func NewAlbumService(config AlbumServiceConfig) AlbumService {
	return AlbumService{
		db: config.DB,
	}
}

/*
Create inserts a new album. A UUID is assigned when the album doesn't have
one, and a zero sort order becomes the default of 11.
*/
func (s AlbumService) Create(album *models.Album) error {
	var (
		err error
		id  int64
	)

	now := time.Now().UTC()

	if album.UUID == "" {
		album.UUID = uuid.NewString()
	}

	if album.SortOrder == 0 {
		album.SortOrder = models.DefaultAlbumSortOrder
	}

	if album.PublishedDate.IsZero() {
		album.PublishedDate = now
	}

	sql := `
INSERT INTO albums (
   created_at
   , updated_at
   , uuid
   , title
   , sort_order
   , public
   , published_date
   , user_id
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

	params := []any{
		now,
		now,
		album.UUID,
		album.Title,
		album.SortOrder,
		album.Public,
		album.PublishedDate.UTC(),
		album.UserID,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	result, err := s.db.Exec(ctx, sql, params...)

	if err != nil {
		return fmt.Errorf("error inserting album '%s': %w", album.Title, err)
	}

	if id, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("error reading id of album '%s': %w", album.Title, err)
	}

	album.ID = uint(id)
	album.CreatedAt = now
	album.UpdatedAt = now
	return nil
}

func (s AlbumService) AddPhotograph(albumID, photoID uint) error {
	sql := `
INSERT OR IGNORE INTO album_photographs (
   album_id
   , photograph_id
) VALUES (?, ?)
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err := s.db.Exec(ctx, sql, albumID, photoID); err != nil {
		return fmt.Errorf("error adding photograph %d to album %d: %w", photoID, albumID, err)
	}

	return nil
}

func (s AlbumService) GetAlbum(albumUUID string) (*models.Album, error) {
	var (
		err error
	)

	result := &models.Album{}

	sql := `
SELECT
   a.id
   , a.created_at
   , a.updated_at
   , a.uuid
   , a.title
   , COALESCE(a.sort_order, 11) AS sort_order
   , a.public
   , a.published_date
   , a.user_id
FROM albums AS a
WHERE 1=1
   AND a.deleted_at IS NULL
   AND a.uuid=?
   `

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, result, sql, albumUUID); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, fmt.Errorf("album %s: %w", albumUUID, models.ErrAlbumNotFound)
		}

		return nil, fmt.Errorf("error querying for album %s: %w", albumUUID, err)
	}

	return result, nil
}

/*
GetAlbumList returns albums in display order, by sort order and then title.
*/
func (s AlbumService) GetAlbumList(publicOnly bool) ([]*models.Album, error) {
	var (
		err error
	)

	result := []*models.Album{}

	sql := `
SELECT
   a.id
   , a.created_at
   , a.updated_at
   , a.uuid
   , a.title
   , COALESCE(a.sort_order, 11) AS sort_order
   , a.public
   , a.published_date
   , a.user_id
FROM albums AS a
WHERE 1=1
   AND a.deleted_at IS NULL
   AND (a.public=1 OR ?=0)
ORDER BY COALESCE(a.sort_order, 11) ASC, a.title ASC
   `

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &result, sql, publicOnly); err != nil && !sqlz.IsNotFound(err) {
		return result, fmt.Errorf("error querying for albums: %w", err)
	}

	return result, nil
}
