package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"math"

	"github.com/danehillard/dhp/pkg/models"
	"github.com/danehillard/dhp/pkg/storage"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

var (
	ErrUnsupportedImage = errors.New("unsupported or corrupt image")
)

/*
DerivativeSpec describes one generated image. Crop derivatives are filled
to exactly MaxWidth x MaxHeight. All others are scaled to fit inside the
box, keeping the original's aspect ratio.
*/
type DerivativeSpec struct {
	Name      string
	MaxWidth  int
	MaxHeight int
	Crop      bool
}

var DefaultDerivatives = []DerivativeSpec{
	{Name: models.DerivativeSquare, MaxWidth: 150, MaxHeight: 150, Crop: true},
	{Name: models.DerivativeSmall, MaxWidth: 320, MaxHeight: 320},
	{Name: models.DerivativeMedium, MaxWidth: 800, MaxHeight: 800},
	{Name: models.DerivativeLarge, MaxWidth: 1600, MaxHeight: 1600},
}

type Derivative struct {
	Name   string
	Key    string
	Width  int
	Height int
}

type DerivativeResult struct {
	Generation  string
	Width       int
	Height      int
	Orientation models.Orientation
	Derivatives map[string]Derivative
}

/*
Apply copies the original dimensions and every derivative onto the
photograph record.
*/
func (r DerivativeResult) Apply(photo *models.Photograph) {
	photo.Width = r.Width
	photo.Height = r.Height
	photo.Orientation = r.Orientation

	for name, d := range r.Derivatives {
		photo.SetSlot(name, d.Key, d.Width, d.Height)
	}
}

func (r DerivativeResult) Keys() []string {
	result := make([]string, 0, len(r.Derivatives))

	for _, d := range r.Derivatives {
		result = append(result, d.Key)
	}

	return result
}

type DerivativeServicer interface {
	Generate(photoUUID string, original io.Reader) (DerivativeResult, error)
}

type DerivativeServiceConfig struct {
	Folder      string
	Quality     int
	Specs       []DerivativeSpec
	ObjectStore storage.ObjectStorer
}

type DerivativeService struct {
	folder      string
	quality     int
	specs       []DerivativeSpec
	objectStore storage.ObjectStorer
}

func NewDerivativeService(config DerivativeServiceConfig) (DerivativeService, error) {
	if config.Folder == "" {
		config.Folder = storage.DefaultPhotographFolder
	}

	if config.Quality <= 0 || config.Quality > 100 {
		config.Quality = 85
	}

	if config.Specs == nil {
		config.Specs = DefaultDerivatives
	}

	if len(config.Specs) == 0 {
		return DerivativeService{}, fmt.Errorf("at least one derivative is required")
	}

	seen := map[string]struct{}{}

	for _, spec := range config.Specs {
		if spec.Name == "" {
			return DerivativeService{}, fmt.Errorf("derivative name is required")
		}

		if _, ok := seen[spec.Name]; ok {
			return DerivativeService{}, fmt.Errorf("duplicate derivative '%s'", spec.Name)
		}

		if spec.MaxWidth <= 0 || spec.MaxHeight <= 0 {
			return DerivativeService{}, fmt.Errorf("derivative '%s' must have a positive width and height", spec.Name)
		}

		seen[spec.Name] = struct{}{}
	}

	return DerivativeService{
		folder:      config.Folder,
		quality:     config.Quality,
		specs:       config.Specs,
		objectStore: config.ObjectStore,
	}, nil
}

/*
Generate decodes the original and writes every configured derivative to
storage under a new generation. All derivatives are encoded before the
first write. If a write fails, the derivatives written so far are removed.
Files of earlier generations are never touched, so the set a record points
at stays whole until the caller removes it.
*/
func (s DerivativeService) Generate(photoUUID string, original io.Reader) (DerivativeResult, error) {
	var (
		err     error
		img     image.Image
		encoded = make([]*bytes.Buffer, len(s.specs))
		written = []string{}
	)

	if img, err = imaging.Decode(original, imaging.AutoOrientation(true)); err != nil {
		return DerivativeResult{}, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}

	bounds := img.Bounds()

	result := DerivativeResult{
		Generation:  storage.NewGeneration(),
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Orientation: models.OrientationOf(bounds.Dx(), bounds.Dy()),
		Derivatives: make(map[string]Derivative, len(s.specs)),
	}

	for index, spec := range s.specs {
		derived := s.derive(img, spec)
		encoded[index] = &bytes.Buffer{}

		if err = jpeg.Encode(encoded[index], derived, &jpeg.Options{Quality: s.quality}); err != nil {
			return DerivativeResult{}, fmt.Errorf("error encoding %s derivative: %w", spec.Name, err)
		}

		result.Derivatives[spec.Name] = Derivative{
			Name:   spec.Name,
			Key:    storage.DerivativeKey(s.folder, photoUUID, result.Generation, spec.Name),
			Width:  derived.Bounds().Dx(),
			Height: derived.Bounds().Dy(),
		}
	}

	for index, spec := range s.specs {
		key := result.Derivatives[spec.Name].Key

		if err = s.objectStore.Put(key, encoded[index]); err != nil {
			if rollbackErr := s.objectStore.Delete(written...); rollbackErr != nil {
				slog.Error("error removing partial derivatives", "uuid", photoUUID, "keys", written, "error", rollbackErr)
			}

			return DerivativeResult{}, fmt.Errorf("error storing %s derivative: %w", spec.Name, err)
		}

		written = append(written, key)
	}

	slog.Info("generated derivatives", "uuid", photoUUID, "generation", result.Generation, "width", result.Width, "height", result.Height, "count", len(written))
	return result, nil
}

func (s DerivativeService) derive(img image.Image, spec DerivativeSpec) image.Image {
	if spec.Crop {
		return imaging.Fill(img, spec.MaxWidth, spec.MaxHeight, imaging.Center, imaging.Lanczos)
	}

	bounds := img.Bounds()
	newWidth, newHeight := FitWithin(bounds.Dx(), bounds.Dy(), spec.MaxWidth, spec.MaxHeight)

	if newWidth == bounds.Dx() && newHeight == bounds.Dy() {
		return img
	}

	return resize.Resize(uint(newWidth), uint(newHeight), img, resize.Lanczos3)
}

/*
FitWithin scales width and height down to fit inside maxWidth x maxHeight,
keeping the aspect ratio. Images that already fit are left alone.
*/
func FitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	scale := math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))

	newWidth := int(math.Round(float64(width) * scale))
	newHeight := int(math.Round(float64(height) * scale))

	newWidth = max(1, min(newWidth, maxWidth))
	newHeight = max(1, min(newHeight, maxHeight))

	return newWidth, newHeight
}
