package pricing

import (
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/danehillard/dhp/cmd/website/internal/viewmodels"
	"github.com/danehillard/dhp/pkg/services"
)

type ServicesHandlers interface {
	ServicesPage(w http.ResponseWriter, r *http.Request)
}

type ServicesControllerConfig struct {
	OfferingService services.OfferingServicer
	Renderer        rendering.TemplateRenderer
}

type ServicesController struct {
	offeringService services.OfferingServicer
	render          viewmodels.RenderFunc
}

func NewServicesController(config ServicesControllerConfig) ServicesController {
	return ServicesController{
		offeringService: config.OfferingService,
		render:          viewmodels.RenderWith(config.Renderer),
	}
}

/*
GET /services
*/
func (c ServicesController) ServicesPage(w http.ResponseWriter, r *http.Request) {
	pageName := "pages/services"

	viewData := viewmodels.ServicesPage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
		},
		Services: []viewmodels.Service{},
	}

	offerings, err := c.offeringService.GetAll()

	if err != nil {
		slog.Error("error getting services", "error", err)
		viewData.IsError = true
		viewData.Message = "There was a problem getting the list of services."

		c.render(pageName, viewData, w)
		return
	}

	for _, offering := range offerings {
		viewData.Services = append(viewData.Services, viewmodels.Service{
			Title:       offering.Title,
			Description: offering.Description,
			Price:       offering.DisplayPrice(),
		})
	}

	c.render(pageName, viewData, w)
}
