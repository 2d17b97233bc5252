// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"github.com/jsamuelsen11/projectboard/internal/domain/project"
	"github.com/jsamuelsen11/projectboard/internal/ports"
)

// ProjectResponse represents a single project in HTTP responses.
type ProjectResponse struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	People      int    `json:"people" yaml:"people"`
	Status      string `json:"status" yaml:"status"`
}

// ProjectListResponse represents a list of projects in HTTP responses.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects" yaml:"projects"`
	Count    int               `json:"count" yaml:"count"`
}

// MoveProjectResponse reports the project after a status change request.
// Changed is false when the project was already in the requested column.
type MoveProjectResponse struct {
	Project ProjectResponse `json:"project" yaml:"project"`
	Changed bool            `json:"changed" yaml:"changed"`
}

// BoardResponse is the two-column board layout.
type BoardResponse struct {
	Active   []ProjectResponse `json:"active" yaml:"active"`
	Finished []ProjectResponse `json:"finished" yaml:"finished"`
	Count    int               `json:"count" yaml:"count"`
	Revision uint64            `json:"revision" yaml:"revision"`
}

// ToProjectResponse converts a domain Project entity to an HTTP response DTO.
func ToProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		People:      p.People,
		Status:      p.Status.String(),
	}
}

// ToProjectListResponse converts a slice of domain Project entities to an
// HTTP list response DTO.
func ToProjectListResponse(projects []project.Project) ProjectListResponse {
	items := toProjectResponses(projects)
	return ProjectListResponse{
		Projects: items,
		Count:    len(items),
	}
}

// ToMoveProjectResponse converts a ports.MoveResult to an HTTP response DTO.
func ToMoveProjectResponse(result *ports.MoveResult) MoveProjectResponse {
	return MoveProjectResponse{
		Project: ToProjectResponse(&result.Project),
		Changed: result.Changed,
	}
}

// ToBoardResponse converts a ports.BoardView to an HTTP response DTO.
func ToBoardResponse(view *ports.BoardView) BoardResponse {
	return BoardResponse{
		Active:   toProjectResponses(view.Active),
		Finished: toProjectResponses(view.Finished),
		Count:    view.Len(),
		Revision: view.Revision,
	}
}

// ToDomain converts a response DTO back to a domain Project.
func (p ProjectResponse) ToDomain() project.Project {
	return project.Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		People:      p.People,
		Status:      project.Status(p.Status),
	}
}

func toProjectResponses(projects []project.Project) []ProjectResponse {
	items := make([]ProjectResponse, len(projects))
	for i := range projects {
		items[i] = ToProjectResponse(&projects[i])
	}
	return items
}
