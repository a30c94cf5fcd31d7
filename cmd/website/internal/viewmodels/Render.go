package viewmodels

import (
	"net/http"

	"github.com/adampresley/adamgokit/rendering"
)

/*
RenderFunc renders a named page with its view model.
*/
type RenderFunc func(name string, data any, w http.ResponseWriter)

func RenderWith(renderer rendering.TemplateRenderer) RenderFunc {
	return func(name string, data any, w http.ResponseWriter) {
		renderer.Render(name, data, w)
	}
}
