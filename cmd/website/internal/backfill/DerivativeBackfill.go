package backfill

import (
	"context"
	"log/slog"

	"github.com/alitto/pond/v2"
	"github.com/danehillard/dhp/pkg/models"
	"github.com/danehillard/dhp/pkg/services"
)

type DerivativeBackfiller interface {
	Run() Summary
}

type Summary struct {
	Found     int
	Generated int
	Failed    int
}

type DerivativeBackfillConfig struct {
	MaxWorkers        int
	PhotographService services.PhotographServicer
	ShutdownCtx       context.Context
	UploadService     services.UploadServicer
}

/*
DerivativeBackfill regenerates derivatives for photographs that don't have
a full set, such as records imported without files or uploads whose
generation failed part way.
*/
type DerivativeBackfill struct {
	maxWorkers        int
	photographService services.PhotographServicer
	shutdownCtx       context.Context
	uploadService     services.UploadServicer
}

func NewDerivativeBackfill(config DerivativeBackfillConfig) DerivativeBackfill {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = 1
	}

	if config.ShutdownCtx == nil {
		config.ShutdownCtx = context.Background()
	}

	return DerivativeBackfill{
		maxWorkers:        config.MaxWorkers,
		photographService: config.PhotographService,
		shutdownCtx:       config.ShutdownCtx,
		uploadService:     config.UploadService,
	}
}

/*
Run processes every photograph missing derivatives. Each photograph is
handled by one worker from start to finish.
*/
func (b DerivativeBackfill) Run() Summary {
	var (
		err    error
		photos []models.Photograph
	)

	slog.Info("starting derivative backfill...")

	if photos, err = b.photographService.GetMissingDerivatives(); err != nil {
		slog.Error("error retrieving photographs missing derivatives", "error", err)
		return Summary{}
	}

	pool := pond.NewPool(b.maxWorkers, pond.WithContext(b.shutdownCtx))
	results := make([]error, len(photos))

	for index := range photos {
		photo := &photos[index]

		pool.Submit(func() {
			slog.Info("creating derivatives for photograph...", "uuid", photo.UUID, "image", photo.Image)

			if results[index] = b.uploadService.Regenerate(photo); results[index] != nil {
				slog.Error("error creating derivatives for photograph", "uuid", photo.UUID, "error", results[index])
			}
		})
	}

	_ = pool.Stop().Wait()

	summary := Summary{Found: len(photos)}

	for index, result := range results {
		if result != nil {
			summary.Failed++
			continue
		}

		if photos[index].HasAllDerivatives() {
			summary.Generated++
		}
	}

	slog.Info("derivative backfill finished", "found", summary.Found, "generated", summary.Generated, "failed", summary.Failed)
	return summary
}
