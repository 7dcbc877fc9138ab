package app

import (
	"net/http"

	"github.com/kegliz/synthesis/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "health",
			Method:      http.MethodGet,
			Pattern:     "/health",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "api.dispatch",
			Method:      http.MethodPost,
			Pattern:     "/api/dispatch",
			HandlerFunc: a.Dispatch,
		},
		{
			Name:        "api.dispatch.multi",
			Method:      http.MethodPost,
			Pattern:     "/api/dispatch/multi",
			HandlerFunc: a.DispatchMulti,
		},
		{
			Name:        "api.programs.save",
			Method:      http.MethodPost,
			Pattern:     "/api/programs",
			HandlerFunc: a.SaveProgram,
		},
		{
			Name:        "api.programs.run",
			Method:      http.MethodPost,
			Pattern:     "/api/programs/:id/run",
			HandlerFunc: a.RunProgram,
		},
	}
}
