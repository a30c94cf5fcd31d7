package contact

import (
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/danehillard/dhp/cmd/website/internal/viewmodels"
	"github.com/danehillard/dhp/pkg/services"
)

type ContactHandlers interface {
	ContactAction(w http.ResponseWriter, r *http.Request)
	ContactPage(w http.ResponseWriter, r *http.Request)
}

type ContactControllerConfig struct {
	ContactService services.ContactServicer
	Renderer       rendering.TemplateRenderer
}

type ContactController struct {
	contactService services.ContactServicer
	render         viewmodels.RenderFunc
}

func NewContactController(config ContactControllerConfig) ContactController {
	return ContactController{
		contactService: config.ContactService,
		render:         viewmodels.RenderWith(config.Renderer),
	}
}

/*
GET /contact
*/
func (c ContactController) ContactPage(w http.ResponseWriter, r *http.Request) {
	viewData := viewmodels.ContactPage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
		},
		FieldErrors: map[string]string{},
	}

	c.render("pages/contact", viewData, w)
}

/*
POST /contact
*/
func (c ContactController) ContactAction(w http.ResponseWriter, r *http.Request) {
	pageName := "pages/contact"

	viewData := viewmodels.ContactPage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
		},
		Name:    httphelpers.GetFromRequest[string](r, "name"),
		Email:   httphelpers.GetFromRequest[string](r, "email"),
		Subject: httphelpers.GetFromRequest[string](r, "subject"),
		Body:    httphelpers.GetFromRequest[string](r, "message"),
	}

	message := services.ContactMessage{
		Name:    viewData.Name,
		Email:   viewData.Email,
		Subject: viewData.Subject,
		Message: viewData.Body,
	}

	if viewData.FieldErrors = c.contactService.Validate(message); len(viewData.FieldErrors) > 0 {
		viewData.IsWarning = true
		viewData.Message = "Please correct the highlighted fields."

		c.render(pageName, viewData, w)
		return
	}

	if err := c.contactService.Send(message); err != nil {
		slog.Error("error sending contact message", "error", err)
		viewData.IsError = true
		viewData.Message = "Your message could not be sent. Please try again later."

		c.render(pageName, viewData, w)
		return
	}

	viewData = viewmodels.ContactPage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx:  viewData.IsHtmx,
			Message: "Thanks! Your message has been sent.",
		},
		FieldErrors: map[string]string{},
		Sent:        true,
	}

	c.render(pageName, viewData, w)
}
