package boardapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/projectboard/internal/domain"
	"github.com/jsamuelsen11/projectboard/internal/domain/project"
	"github.com/jsamuelsen11/projectboard/internal/platform/httpclient"
	"github.com/jsamuelsen11/projectboard/internal/ports"
)

// ServiceName is the peer service name of the board API in traces and metrics.
const ServiceName = "projectboard-api"

// Compile-time interface check.
var _ ports.ProjectService = (*Client)(nil)

// Client implements [ports.ProjectService] against a remote board service.
//
// Errors returned by the server are mapped back to the domain sentinels by
// [TranslateHTTPError], so a caller can test them with errors.Is exactly as
// it would against the in-process service.
type Client struct {
	req *Requester
}

// New creates a Client that sends requests through the given
// [httpclient.Client]. The client's BaseURL should point at the service root
// (e.g. "http://localhost:8080").
func New(client *httpclient.Client, logger *slog.Logger) *Client {
	return &Client{req: NewRequester(client, logger)}
}

// ListProjects fetches GET /api/v1/projects, optionally filtered by status.
func (c *Client) ListProjects(ctx context.Context, filter project.Filter) ([]project.Project, error) {
	path := "/api/v1/projects"
	if filter.Status != "" {
		path += "?" + url.Values{"status": {filter.Status.String()}}.Encode()
	}

	var body dto.ProjectListResponse
	if err := c.req.Do(ctx, http.MethodGet, path, http.StatusOK, nil, &body); err != nil {
		return nil, err
	}
	return toDomain(body.Projects), nil
}

// GetProject fetches a single project from GET /api/v1/projects/{id}.
// Returns [domain.ErrNotFound] if the server returns 404.
func (c *Client) GetProject(ctx context.Context, id string) (*project.Project, error) {
	var body dto.ProjectResponse
	if err := c.req.Do(ctx, http.MethodGet, projectPath(id), http.StatusOK, nil, &body); err != nil {
		return nil, err
	}
	p := body.ToDomain()
	return &p, nil
}

// CreateProject sends POST /api/v1/projects and returns the stored project
// with its generated ID. Returns a *domain.ValidationError if the server
// rejects the input.
func (c *Client) CreateProject(ctx context.Context, p *project.Project) (*project.Project, error) {
	if p == nil {
		return nil, domain.NewValidationError("project", domain.MsgRequired)
	}
	reqBody := dto.CreateProjectRequest{
		Title:       p.Title,
		Description: p.Description,
		People:      p.People,
	}

	var body dto.ProjectResponse
	if err := c.req.Do(ctx, http.MethodPost, "/api/v1/projects", http.StatusCreated, reqBody, &body); err != nil {
		return nil, err
	}
	created := body.ToDomain()
	return &created, nil
}

// MoveProject sends PUT /api/v1/projects/{id}/status.
func (c *Client) MoveProject(ctx context.Context, id string, status project.Status) (*ports.MoveResult, error) {
	reqBody := dto.MoveProjectRequest{Status: status.String()}

	var body dto.MoveProjectResponse
	if err := c.req.Do(ctx, http.MethodPut, projectPath(id)+"/status", http.StatusOK, reqBody, &body); err != nil {
		return nil, err
	}
	return toMoveResult(body), nil
}

// Drop transfers the project onto the status column through
// POST /api/v1/board/{status}/drop, the same call a drag-and-drop makes.
func (c *Client) Drop(ctx context.Context, status project.Status, id string) (*ports.MoveResult, error) {
	path := "/api/v1/board/" + url.PathEscape(status.String()) + "/drop"

	var body dto.MoveProjectResponse
	if err := c.req.DoText(ctx, http.MethodPost, path, http.StatusOK, id, &body); err != nil {
		return nil, err
	}
	return toMoveResult(body), nil
}

// Board fetches the column view from GET /api/v1/board.
func (c *Client) Board(ctx context.Context) (*ports.BoardView, error) {
	var body dto.BoardResponse
	if err := c.req.Do(ctx, http.MethodGet, "/api/v1/board", http.StatusOK, nil, &body); err != nil {
		return nil, err
	}
	return &ports.BoardView{
		Board: project.Board{
			Active:   toDomain(body.Active),
			Finished: toDomain(body.Finished),
		},
		Revision: body.Revision,
	}, nil
}

func projectPath(id string) string {
	return "/api/v1/projects/" + url.PathEscape(id)
}

func toDomain(items []dto.ProjectResponse) []project.Project {
	out := make([]project.Project, len(items))
	for i := range items {
		out[i] = items[i].ToDomain()
	}
	return out
}

func toMoveResult(body dto.MoveProjectResponse) *ports.MoveResult {
	return &ports.MoveResult{
		Project: body.Project.ToDomain(),
		Changed: body.Changed,
	}
}
