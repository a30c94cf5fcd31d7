package viewmodels

import (
	"log/slog"

	"github.com/danehillard/dhp/pkg/models"
)

type Photo struct {
	UUID        string
	Title       string
	Description string
	Orientation string
	Images      map[string]PhotoImage
}

type PhotoImage struct {
	URL    string
	Width  int
	Height int
}

/*
NewPhoto converts a photograph into its view model. Derivatives that have
not been generated yet are left out of Images.
*/
func NewPhoto(photo models.Photograph, urlFor func(key string) (string, error)) Photo {
	result := Photo{
		UUID:        photo.UUID,
		Title:       photo.Title,
		Description: photo.Description,
		Orientation: photo.Orientation.String(),
		Images:      map[string]PhotoImage{},
	}

	for _, name := range []string{models.DerivativeSquare, models.DerivativeSmall, models.DerivativeMedium, models.DerivativeLarge} {
		slot := photo.Slot(name)

		if !slot.Generated() {
			continue
		}

		u, err := urlFor(slot.Key)

		if err != nil {
			slog.Error("error getting derivative URL", "uuid", photo.UUID, "derivative", name, "error", err)
			continue
		}

		result.Images[name] = PhotoImage{
			URL:    u,
			Width:  *slot.Width,
			Height: *slot.Height,
		}
	}

	return result
}

func NewPhotos(photos []models.Photograph, urlFor func(key string) (string, error)) []Photo {
	result := make([]Photo, 0, len(photos))

	for _, photo := range photos {
		result = append(result, NewPhoto(photo, urlFor))
	}

	return result
}
