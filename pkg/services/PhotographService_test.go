package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danehillard/dhp/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPhotograph(title string, published time.Time) *models.Photograph {
	id := uuid.NewString()

	return &models.Photograph{
		UUID:          id,
		Title:         title,
		Image:         "photographs/" + id + "/original-test.jpg",
		Orientation:   models.OrientationLandscape,
		Width:         1200,
		Height:        800,
		Public:        true,
		PublishedDate: published,
		UserID:        1,
	}
}

func TestPhotographServiceCreateAndGet(t *testing.T) {
	service := NewPhotographService(PhotographServiceConfig{DB: newTestDB(t)})

	photo := newTestPhotograph("Lake at dawn", time.Now().Add(-time.Hour))
	photo.Description = "Early morning on the lake"
	photo.SetSlot(models.DerivativeSquare, "photographs/x/square.jpg", 150, 150)

	require.NoError(t, service.Create(photo, nil))
	assert.NotZero(t, photo.ID)

	found, err := service.GetByUUID(photo.UUID)
	require.NoError(t, err)

	assert.Equal(t, photo.ID, found.ID)
	assert.Equal(t, "Lake at dawn", found.Title)
	assert.Equal(t, "Early morning on the lake", found.Description)
	assert.Equal(t, models.OrientationLandscape, found.Orientation)
	assert.Equal(t, 1200, found.Width)
	assert.Equal(t, 800, found.Height)
	assert.True(t, found.Slot(models.DerivativeSquare).Generated())
	assert.False(t, found.Slot(models.DerivativeSmall).Generated())
	assert.Equal(t, "", found.ThumbnailSmall)
	assert.False(t, found.HasAllDerivatives())
}

func TestPhotographServiceGetByUUIDNotFound(t *testing.T) {
	service := NewPhotographService(PhotographServiceConfig{DB: newTestDB(t)})

	_, err := service.GetByUUID(uuid.NewString())
	assert.True(t, errors.Is(err, models.ErrPhotographNotFound))
}

func TestPhotographServiceGetPublishedNewestFirst(t *testing.T) {
	service := NewPhotographService(PhotographServiceConfig{DB: newTestDB(t)})
	now := time.Now()

	older := newTestPhotograph("Older", now.Add(-48*time.Hour))
	newer := newTestPhotograph("Newer", now.Add(-time.Hour))
	hidden := newTestPhotograph("Hidden", now.Add(-2*time.Hour))
	hidden.Public = false

	for _, p := range []*models.Photograph{older, newer, hidden} {
		require.NoError(t, service.Create(p, nil))
	}

	published, err := service.GetPublished(0)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "Newer", published[0].Title)
	assert.Equal(t, "Older", published[1].Title)

	limited, err := service.GetPublished(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "Newer", limited[0].Title)
}

func TestPhotographServiceUpdateImagesKeepsUUID(t *testing.T) {
	service := NewPhotographService(PhotographServiceConfig{DB: newTestDB(t)})

	photo := newTestPhotograph("Bridge", time.Now())
	require.NoError(t, service.Create(photo, nil))

	originalUUID := photo.UUID
	photo.Width, photo.Height, photo.Orientation = 800, 1200, models.OrientationPortrait

	for _, name := range []string{models.DerivativeSquare, models.DerivativeSmall, models.DerivativeMedium, models.DerivativeLarge} {
		photo.SetSlot(name, "photographs/"+originalUUID+"/"+name+".jpg", 100, 150)
	}

	require.NoError(t, service.UpdateImages(photo))

	found, err := service.GetByUUID(originalUUID)
	require.NoError(t, err)
	assert.Equal(t, originalUUID, found.UUID)
	assert.Equal(t, models.OrientationPortrait, found.Orientation)
	assert.True(t, found.HasAllDerivatives())

	missing, err := service.GetMissingDerivatives()
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestPhotographServiceDelete(t *testing.T) {
	db := newTestDB(t)
	service := NewPhotographService(PhotographServiceConfig{DB: db})
	albums := NewAlbumService(AlbumServiceConfig{DB: db})

	album := &models.Album{Title: "Street", Public: true}
	require.NoError(t, albums.Create(album))

	photo := newTestPhotograph("Crosswalk", time.Now())
	require.NoError(t, service.Create(photo, []uint{album.ID}))

	require.NoError(t, service.Delete(photo.UUID))

	_, err := service.GetByUUID(photo.UUID)
	assert.True(t, errors.Is(err, models.ErrPhotographNotFound))

	inAlbum, err := service.GetByAlbum(album.ID, false)
	require.NoError(t, err)
	assert.Empty(t, inAlbum)

	err = service.Delete(photo.UUID)
	assert.True(t, errors.Is(err, models.ErrPhotographNotFound))
}

func TestPhotographServiceGetByAlbumFiltersPrivate(t *testing.T) {
	db := newTestDB(t)
	service := NewPhotographService(PhotographServiceConfig{DB: db})
	albums := NewAlbumService(AlbumServiceConfig{DB: db})

	album := &models.Album{Title: "Family", Public: true}
	require.NoError(t, albums.Create(album))

	visible := newTestPhotograph("Visible", time.Now())
	private := newTestPhotograph("Private", time.Now())
	private.Public = false

	require.NoError(t, service.Create(visible, []uint{album.ID}))
	require.NoError(t, service.Create(private, []uint{album.ID}))

	public, err := service.GetByAlbum(album.ID, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Visible", public[0].Title)

	all, err := service.GetByAlbum(album.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPhotographServiceCreateRollsBackWhenLinkFails(t *testing.T) {
	db := newTestDB(t)
	service := NewPhotographService(PhotographServiceConfig{DB: db})
	albums := NewAlbumService(AlbumServiceConfig{DB: db})

	album := &models.Album{Title: "Coast", Public: true}
	require.NoError(t, albums.Create(album))

	_, err := db.Exec(context.Background(), `
CREATE TRIGGER refuse_album_links BEFORE INSERT ON album_photographs
BEGIN
   SELECT RAISE(ABORT, 'album link refused');
END;
`)
	require.NoError(t, err)

	photo := newTestPhotograph("Cliffs", time.Now())

	err = service.Create(photo, []uint{album.ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "album link refused")
	assert.Zero(t, photo.ID)

	_, err = service.GetByUUID(photo.UUID)
	assert.True(t, errors.Is(err, models.ErrPhotographNotFound))

	published, err := service.GetPublished(0)
	require.NoError(t, err)
	assert.Empty(t, published)
}
