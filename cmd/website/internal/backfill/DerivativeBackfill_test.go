package backfill

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/danehillard/dhp/pkg/models"
	"github.com/danehillard/dhp/pkg/services"
	"github.com/stretchr/testify/assert"
)

type stubPhotographService struct {
	services.PhotographServicer
	photos []models.Photograph
	err    error
}

func (s stubPhotographService) GetMissingDerivatives() ([]models.Photograph, error) {
	return s.photos, s.err
}

type stubUploadService struct {
	services.UploadServicer
	mu    sync.Mutex
	seen  []string
	fails map[string]bool
}

func (s *stubUploadService) Regenerate(photo *models.Photograph) error {
	s.mu.Lock()
	s.seen = append(s.seen, photo.UUID)
	s.mu.Unlock()

	if s.fails[photo.UUID] {
		return errors.New("original missing")
	}

	for _, name := range []string{models.DerivativeSquare, models.DerivativeSmall, models.DerivativeMedium, models.DerivativeLarge} {
		photo.SetSlot(name, photo.UUID+"/"+name+".jpg", 10, 10)
	}

	return nil
}

func TestRunRegeneratesEveryPhotograph(t *testing.T) {
	uploads := &stubUploadService{fails: map[string]bool{"b": true}}

	backfill := NewDerivativeBackfill(DerivativeBackfillConfig{
		MaxWorkers: 2,
		PhotographService: stubPhotographService{photos: []models.Photograph{
			{UUID: "a"}, {UUID: "b"}, {UUID: "c"},
		}},
		UploadService: uploads,
	})

	summary := backfill.Run()

	assert.Equal(t, Summary{Found: 3, Generated: 2, Failed: 1}, summary)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, uploads.seen)
}

func TestRunStopsWhenQueryFails(t *testing.T) {
	uploads := &stubUploadService{}

	backfill := NewDerivativeBackfill(DerivativeBackfillConfig{
		PhotographService: stubPhotographService{err: errors.New("database is locked")},
		ShutdownCtx:       context.Background(),
		UploadService:     uploads,
	})

	assert.Equal(t, Summary{}, backfill.Run())
	assert.Empty(t, uploads.seen)
}
