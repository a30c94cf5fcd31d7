package services

import (
	"context"
	"fmt"
	"time"

	"github.com/danehillard/dhp/pkg/models"
	"github.com/rfberaldo/sqlz"
)

const photographColumns = `
   p.id
   , p.created_at
   , p.updated_at
   , p.uuid
   , p.title
   , COALESCE(p.description, '') AS description
   , p.image
   , p.orientation
   , p.width
   , p.height
   , COALESCE(p.thumbnail_square, '') AS thumbnail_square
   , p.sq_width
   , p.sq_height
   , COALESCE(p.thumbnail_small, '') AS thumbnail_small
   , p.sm_width
   , p.sm_height
   , COALESCE(p.thumbnail_medium, '') AS thumbnail_medium
   , p.m_width
   , p.m_height
   , COALESCE(p.thumbnail_large, '') AS thumbnail_large
   , p.l_width
   , p.l_height
   , p.public
   , p.published_date
   , p.user_id
`

type PhotographServicer interface {
	Create(photo *models.Photograph, albumIDs []uint) error
	Delete(photoUUID string) error
	GetByAlbum(albumID uint, publicOnly bool) ([]models.Photograph, error)
	GetByUUID(photoUUID string) (*models.Photograph, error)
	GetMissingDerivatives() ([]models.Photograph, error)
	GetPublished(limit int) ([]models.Photograph, error)
	UpdateImages(photo *models.Photograph) error
}

type PhotographServiceConfig struct {
	DB *sqlz.DB
}

type PhotographService struct {
	db *sqlz.DB
}

func NewPhotographService(config PhotographServiceConfig) PhotographService {
	return PhotographService{
		db: config.DB,
	}
}

/*
Create inserts the photograph and links it to each album in one
transaction. ID, CreatedAt and UpdatedAt are set on photo only when
everything is committed.
*/
func (s PhotographService) Create(photo *models.Photograph, albumIDs []uint) error {
	var (
		err error
		id  int64
	)

	now := time.Now().UTC()

	if photo.PublishedDate.IsZero() {
		photo.PublishedDate = now
	}

	sql := `
INSERT INTO photographs (
   created_at
   , updated_at
   , uuid
   , title
   , description
   , image
   , orientation
   , width
   , height
   , thumbnail_square
   , sq_width
   , sq_height
   , thumbnail_small
   , sm_width
   , sm_height
   , thumbnail_medium
   , m_width
   , m_height
   , thumbnail_large
   , l_width
   , l_height
   , public
   , published_date
   , user_id
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

	params := []any{
		now,
		now,
		photo.UUID,
		photo.Title,
		nullableString(photo.Description),
		photo.Image,
		string(photo.Orientation),
		photo.Width,
		photo.Height,
		nullableString(photo.ThumbnailSquare),
		photo.SqWidth,
		photo.SqHeight,
		nullableString(photo.ThumbnailSmall),
		photo.SmWidth,
		photo.SmHeight,
		nullableString(photo.ThumbnailMedium),
		photo.MWidth,
		photo.MHeight,
		nullableString(photo.ThumbnailLarge),
		photo.LWidth,
		photo.LHeight,
		photo.Public,
		photo.PublishedDate.UTC(),
		photo.UserID,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	tx, err := s.db.Begin(ctx)

	if err != nil {
		return fmt.Errorf("error starting transaction for photograph %s: %w", photo.UUID, err)
	}

	defer tx.Rollback()

	result, err := tx.Exec(ctx, sql, params...)

	if err != nil {
		return fmt.Errorf("error inserting photograph %s: %w", photo.UUID, err)
	}

	if id, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("error reading id of photograph %s: %w", photo.UUID, err)
	}

	linkSql := `
INSERT OR IGNORE INTO album_photographs (
   album_id
   , photograph_id
) VALUES (?, ?)
`

	for _, albumID := range albumIDs {
		if _, err = tx.Exec(ctx, linkSql, albumID, id); err != nil {
			return fmt.Errorf("error adding photograph %s to album %d: %w", photo.UUID, albumID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing photograph %s: %w", photo.UUID, err)
	}

	photo.ID = uint(id)
	photo.CreatedAt = now
	photo.UpdatedAt = now
	return nil
}

/*
UpdateImages saves the original and derivative columns of an existing
photograph. The UUID is never changed.
*/
func (s PhotographService) UpdateImages(photo *models.Photograph) error {
	now := time.Now().UTC()

	sql := `
UPDATE photographs SET
   updated_at=?
   , image=?
   , orientation=?
   , width=?
   , height=?
   , thumbnail_square=?
   , sq_width=?
   , sq_height=?
   , thumbnail_small=?
   , sm_width=?
   , sm_height=?
   , thumbnail_medium=?
   , m_width=?
   , m_height=?
   , thumbnail_large=?
   , l_width=?
   , l_height=?
WHERE 1=1
   AND id=?
   AND deleted_at IS NULL
`

	params := []any{
		now,
		photo.Image,
		string(photo.Orientation),
		photo.Width,
		photo.Height,
		nullableString(photo.ThumbnailSquare),
		photo.SqWidth,
		photo.SqHeight,
		nullableString(photo.ThumbnailSmall),
		photo.SmWidth,
		photo.SmHeight,
		nullableString(photo.ThumbnailMedium),
		photo.MWidth,
		photo.MHeight,
		nullableString(photo.ThumbnailLarge),
		photo.LWidth,
		photo.LHeight,
		photo.ID,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	result, err := s.db.Exec(ctx, sql, params...)

	if err != nil {
		return fmt.Errorf("error updating images for photograph %s: %w", photo.UUID, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("error updating images for photograph %s: %w", photo.UUID, models.ErrPhotographNotFound)
	}

	photo.UpdatedAt = now
	return nil
}

func (s PhotographService) Delete(photoUUID string) error {
	now := time.Now().UTC()

	sql := `
UPDATE photographs SET
   deleted_at=?
   , updated_at=?
WHERE 1=1
   AND uuid=?
   AND deleted_at IS NULL
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	result, err := s.db.Exec(ctx, sql, now, now, photoUUID)

	if err != nil {
		return fmt.Errorf("error deleting photograph %s: %w", photoUUID, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("error deleting photograph %s: %w", photoUUID, models.ErrPhotographNotFound)
	}

	sql = `
DELETE FROM album_photographs
WHERE photograph_id IN (SELECT id FROM photographs WHERE uuid=?)
`

	ctx, cancel = context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, photoUUID); err != nil {
		return fmt.Errorf("error removing album links for photograph %s: %w", photoUUID, err)
	}

	return nil
}

func (s PhotographService) GetByUUID(photoUUID string) (*models.Photograph, error) {
	var (
		err error
	)

	result := &models.Photograph{}

	sql := `
SELECT` + photographColumns + `
FROM photographs AS p
WHERE 1=1
   AND p.deleted_at IS NULL
   AND p.uuid=?
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, result, sql, photoUUID); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, fmt.Errorf("photograph %s: %w", photoUUID, models.ErrPhotographNotFound)
		}

		return nil, fmt.Errorf("error querying for photograph %s: %w", photoUUID, err)
	}

	return result, nil
}

/*
GetPublished returns public photographs, newest first. A limit of zero or
less returns all of them.
*/
func (s PhotographService) GetPublished(limit int) ([]models.Photograph, error) {
	sql := `
SELECT` + photographColumns + `
FROM photographs AS p
WHERE 1=1
   AND p.deleted_at IS NULL
   AND p.public=1
ORDER BY p.published_date DESC
LIMIT ?
`

	if limit <= 0 {
		limit = -1
	}

	return s.query(sql, "published photographs", limit)
}

func (s PhotographService) GetByAlbum(albumID uint, publicOnly bool) ([]models.Photograph, error) {
	sql := `
SELECT` + photographColumns + `
FROM photographs AS p
   INNER JOIN album_photographs AS ap ON ap.photograph_id=p.id
WHERE 1=1
   AND p.deleted_at IS NULL
   AND ap.album_id=?
   AND (p.public=1 OR ?=0)
ORDER BY p.published_date DESC
`

	return s.query(sql, fmt.Sprintf("photographs in album %d", albumID), albumID, publicOnly)
}

/*
GetMissingDerivatives returns photographs with at least one derivative
that has not been generated yet.
*/
func (s PhotographService) GetMissingDerivatives() ([]models.Photograph, error) {
	sql := `
SELECT` + photographColumns + `
FROM photographs AS p
WHERE 1=1
   AND p.deleted_at IS NULL
   AND (
      p.sq_width IS NULL
      OR p.sm_width IS NULL
      OR p.m_width IS NULL
      OR p.l_width IS NULL
   )
ORDER BY p.id
`

	return s.query(sql, "photographs missing derivatives")
}

func (s PhotographService) query(sql, what string, params ...any) ([]models.Photograph, error) {
	result := []models.Photograph{}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.db.Query(ctx, &result, sql, params...); err != nil && !sqlz.IsNotFound(err) {
		return result, fmt.Errorf("error querying for %s: %w", what, err)
	}

	return result, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}

	return value
}
