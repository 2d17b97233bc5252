// Package handlers serves the board API: projects, the column view with its
// drag-and-drop target, and the health probes.
package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/projectboard/internal/domain/project"
	"github.com/jsamuelsen11/projectboard/internal/ports"
)

// ProjectHandler adds, reads and moves projects.
type ProjectHandler struct {
	svc ports.ProjectService
}

// NewProjectHandler returns a handler backed by svc.
func NewProjectHandler(svc ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// ListProjects serves GET /api/v1/projects[?status=active|finished].
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		filter, err := queryFilter(r)
		if err != nil {
			return nil, err
		}
		projects, err := h.svc.ListProjects(r.Context(), filter)
		if err != nil {
			return nil, err
		}
		return dto.ToProjectListResponse(projects), nil
	})
}

// CreateProject serves POST /api/v1/projects. New projects start active.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusCreated, func() (any, error) {
		var req dto.CreateProjectRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}

		created, err := h.svc.CreateProject(r.Context(), &project.Project{
			Title:       req.Title,
			Description: req.Description,
			People:      req.People,
		})
		if err != nil {
			return nil, err
		}

		w.Header().Set("Location", r.URL.Path+"/"+created.ID)
		return dto.ToProjectResponse(created), nil
	})
}

// GetProject serves GET /api/v1/projects/{id}.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		id, err := pathID(r, "id")
		if err != nil {
			return nil, err
		}
		p, err := h.svc.GetProject(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return dto.ToProjectResponse(p), nil
	})
}

// MoveProject serves PUT /api/v1/projects/{id}/status. Moving a project to
// the column it is already in succeeds with changed=false.
func (h *ProjectHandler) MoveProject(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		id, err := pathID(r, "id")
		if err != nil {
			return nil, err
		}
		var req dto.MoveProjectRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		result, err := h.svc.MoveProject(r.Context(), id, project.Status(req.Status))
		if err != nil {
			return nil, err
		}
		return dto.ToMoveProjectResponse(result), nil
	})
}
