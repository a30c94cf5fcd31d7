package home

import (
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/danehillard/dhp/cmd/website/internal/viewmodels"
	"github.com/danehillard/dhp/pkg/services"
	"github.com/danehillard/dhp/pkg/storage"
)

type HomeHandlers interface {
	AboutPage(w http.ResponseWriter, r *http.Request)
	HomePage(w http.ResponseWriter, r *http.Request)
}

type HomeControllerConfig struct {
	ObjectStore       storage.ObjectStorer
	PhotoCount        int
	PhotographService services.PhotographServicer
	Renderer          rendering.TemplateRenderer
}

type HomeController struct {
	objectStore       storage.ObjectStorer
	photoCount        int
	photographService services.PhotographServicer
	render            viewmodels.RenderFunc
}

func NewHomeController(config HomeControllerConfig) HomeController {
	return HomeController{
		objectStore:       config.ObjectStore,
		photoCount:        config.PhotoCount,
		photographService: config.PhotographService,
		render:            viewmodels.RenderWith(config.Renderer),
	}
}

/*
GET /
*/
func (c HomeController) HomePage(w http.ResponseWriter, r *http.Request) {
	pageName := "pages/home"

	viewData := viewmodels.HomePage{
		BaseViewModel: viewmodels.BaseViewModel{
			Message:            "",
			IsHtmx:             httphelpers.IsHtmx(r),
			JavascriptIncludes: []rendering.JavascriptInclude{},
		},
		Photos: []viewmodels.Photo{},
	}

	photos, err := c.photographService.GetPublished(c.photoCount)

	if err != nil {
		slog.Error("error getting published photographs", "error", err)
		viewData.IsError = true
		viewData.Message = "There was a problem getting photos for this page."

		c.render(pageName, viewData, w)
		return
	}

	viewData.Photos = viewmodels.NewPhotos(photos, c.objectStore.URL)
	c.render(pageName, viewData, w)
}

/*
GET /about
*/
func (c HomeController) AboutPage(w http.ResponseWriter, r *http.Request) {
	viewData := viewmodels.AboutPage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
		},
	}

	c.render("pages/about", viewData, w)
}
