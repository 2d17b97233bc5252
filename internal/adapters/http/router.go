// Package http is the inbound HTTP side of the board: the chi route table
// and the server that hosts it.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/projectboard/internal/adapters/http/handlers"
)

// APIPrefix is the mount point of the versioned board API.
const APIPrefix = "/api/v1"

// NewRouter builds the route table. Middlewares wrap every route, outermost
// first. Unrouted paths and methods answer with problem bodies like any
// other error.
func NewRouter(
	projects *handlers.ProjectHandler,
	board *handlers.BoardHandler,
	health *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteProblem(w, req, http.StatusNotFound, "no route for "+req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteProblem(w, req, http.StatusMethodNotAllowed, req.Method+" is not supported on "+req.URL.Path)
	})

	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route(APIPrefix, func(r chi.Router) {
		// Projects are never deleted, only moved between columns.
		r.Get("/projects", projects.ListProjects)
		r.Post("/projects", projects.CreateProject)
		r.Get("/projects/{id}", projects.GetProject)
		r.Put("/projects/{id}/status", projects.MoveProject)

		r.Get("/board", board.Board)
		r.Post("/board/{status}/drop", board.Drop)
	})

	return r
}
