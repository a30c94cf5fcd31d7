package gallery

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/danehillard/dhp/cmd/website/internal/viewmodels"
	"github.com/danehillard/dhp/pkg/models"
	"github.com/danehillard/dhp/pkg/services"
	"github.com/danehillard/dhp/pkg/storage"
)

type GalleryHandlers interface {
	AlbumListPage(w http.ResponseWriter, r *http.Request)
	ViewAlbumPage(w http.ResponseWriter, r *http.Request)
}

type GalleryControllerConfig struct {
	AlbumService      services.AlbumServicer
	ObjectStore       storage.ObjectStorer
	PhotographService services.PhotographServicer
	Renderer          rendering.TemplateRenderer
}

type GalleryController struct {
	albumService      services.AlbumServicer
	objectStore       storage.ObjectStorer
	photographService services.PhotographServicer
	render            viewmodels.RenderFunc
}

func NewGalleryController(config GalleryControllerConfig) GalleryController {
	return GalleryController{
		albumService:      config.AlbumService,
		objectStore:       config.ObjectStore,
		photographService: config.PhotographService,
		render:            viewmodels.RenderWith(config.Renderer),
	}
}

/*
GET /photography
*/
func (c GalleryController) AlbumListPage(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		albums []*models.Album
	)

	pageName := "pages/gallery/album-list"

	viewData := viewmodels.AlbumList{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
		},
		Albums: []viewmodels.Album{},
	}

	if albums, err = c.albumService.GetAlbumList(true); err != nil {
		slog.Error("error getting album list", "error", err)
		viewData.IsError = true
		viewData.Message = "An unexpected error occurred. Please try again later."

		c.render(pageName, viewData, w)
		return
	}

	for _, album := range albums {
		viewData.Albums = append(viewData.Albums, c.convertAlbumToViewModel(album))
	}

	c.render(pageName, viewData, w)
}

/*
GET /photography/{uuid}
*/
func (c GalleryController) ViewAlbumPage(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		album  *models.Album
		photos []models.Photograph
	)

	pageName := "pages/gallery/view-album"

	viewData := viewmodels.ViewAlbum{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Type: "module", Src: "/static/js/pages/gallery.js"},
			},
		},
		AlbumUUID: httphelpers.GetFromRequest[string](r, "uuid"),
		Photos:    []viewmodels.Photo{},
	}

	if album, err = c.albumService.GetAlbum(viewData.AlbumUUID); err != nil || !album.Public {
		if err == nil || errors.Is(err, models.ErrAlbumNotFound) {
			w.WriteHeader(http.StatusNotFound)
			viewData.IsWarning = true
			viewData.Message = "That album could not be found."
		} else {
			slog.Error("an error occurred querying album in ViewAlbumPage", "error", err, "albumUUID", viewData.AlbumUUID)
			viewData.IsError = true
			viewData.Message = "An unexpected error occurred. Please try again later."
		}

		c.render(pageName, viewData, w)
		return
	}

	viewData.Album = viewmodels.Album{
		UUID:          album.UUID,
		Title:         album.Title,
		PublishedDate: album.PublishedDate.Format("Jan _2, 2006"),
	}

	if photos, err = c.photographService.GetByAlbum(album.ID, true); err != nil {
		slog.Error("error getting photographs for album", "error", err, "albumUUID", album.UUID)
		viewData.IsError = true
		viewData.Message = "There was a problem getting the photos in this album."
	}

	viewData.Photos = viewmodels.NewPhotos(photos, c.objectStore.URL)
	c.render(pageName, viewData, w)
}

func (c GalleryController) convertAlbumToViewModel(album *models.Album) viewmodels.Album {
	result := viewmodels.Album{
		UUID:          album.UUID,
		Title:         album.Title,
		PublishedDate: album.PublishedDate.Format("Jan _2, 2006"),
	}

	photos, err := c.photographService.GetByAlbum(album.ID, true)

	if err != nil {
		slog.Error("error getting album cover", "error", err, "albumUUID", album.UUID)
		return result
	}

	if len(photos) > 0 {
		cover := viewmodels.NewPhoto(photos[0], c.objectStore.URL)
		result.Cover = &cover
	}

	return result
}
