package handlers_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/projectboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/projectboard/internal/domain"
	"github.com/jsamuelsen11/projectboard/internal/domain/project"
	"github.com/jsamuelsen11/projectboard/internal/ports"
	"github.com/jsamuelsen11/projectboard/mocks"
)

func newProjectHandler(t *testing.T) (*handlers.ProjectHandler, *mocks.MockProjectService) {
	t.Helper()
	svc := mocks.NewMockProjectService(t)
	return handlers.NewProjectHandler(svc), svc
}

func TestListProjects(t *testing.T) {
	t.Parallel()

	finished := validProject()
	finished.ID, finished.Status = "p-2", project.StatusFinished

	tests := []struct {
		name       string
		query      string
		filter     *project.Filter // nil when the service is not called
		projects   []project.Project
		wantStatus int
		wantCount  int
	}{
		{name: "all", filter: &project.Filter{}, projects: []project.Project{validProject(), finished}, wantStatus: http.StatusOK, wantCount: 2},
		{name: "finished only", query: "?status=finished", filter: &project.Filter{Status: project.StatusFinished}, projects: []project.Project{finished}, wantStatus: http.StatusOK, wantCount: 1},
		{name: "empty board", query: "?status=active", filter: &project.Filter{Status: project.StatusActive}, projects: []project.Project{}, wantStatus: http.StatusOK},
		{name: "unknown status", query: "?status=archived", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newProjectHandler(t)
			if tt.filter != nil {
				svc.EXPECT().ListProjects(mock.Anything, *tt.filter).Return(tt.projects, nil)
			}

			rec := httptest.NewRecorder()
			h.ListProjects(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects"+tt.query, nil))

			if tt.wantStatus != http.StatusOK {
				problem := assertProblem(t, rec, tt.wantStatus)
				assert.Contains(t, problem["detail"], "status")
				return
			}
			requireStatus(t, rec, http.StatusOK)
			resp := decodeJSON[dto.ProjectListResponse](t, rec)
			assert.Equal(t, tt.wantCount, resp.Count)
			assert.Len(t, resp.Projects, tt.wantCount)
		})
	}
}

func TestCreateProject_Success(t *testing.T) {
	t.Parallel()
	h, svc := newProjectHandler(t)

	created := validProject()
	svc.EXPECT().CreateProject(mock.Anything, &project.Project{
		Title: "Website", Description: "Redesign landing page", People: 3,
	}).Return(&created, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects",
		jsonBody(t, dto.CreateProjectRequest{Title: "Website", Description: "Redesign landing page", People: 3}))
	req.Header.Set("Content-Type", "application/json")
	h.CreateProject(rec, req)

	requireStatus(t, rec, http.StatusCreated)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "/api/v1/projects/"+testProjectID, rec.Header().Get("Location"))

	resp := decodeJSON[dto.ProjectResponse](t, rec)
	assert.Equal(t, testProjectID, resp.ID)
	assert.Equal(t, "active", resp.Status)
}

func TestCreateProject_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       io.Reader
		wantFields []any
		wantDetail string
	}{
		{
			name:       "malformed json",
			body:       rawBody("{bad"),
			wantDetail: "body: invalid JSON",
		},
		{
			name:       "oversized body",
			body:       rawBody(`{"title":"` + strings.Repeat("x", 2<<20) + `"}`),
			wantDetail: "body: too large",
		},
		{
			name: "every field invalid",
			body: rawBody(`{"title":"","description":"hi","people":0}`),
			wantFields: []any{
				map[string]any{"location": "body.description", "message": "must be at least 5 characters"},
				map[string]any{"location": "body.people", "message": "must be 1-10, got 0"},
				map[string]any{"location": "body.title", "message": "is required"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _ := newProjectHandler(t)

			rec := httptest.NewRecorder()
			h.CreateProject(rec, httptest.NewRequest(http.MethodPost, "/api/v1/projects", tt.body))

			problem := assertProblem(t, rec, http.StatusBadRequest)
			if tt.wantDetail != "" {
				assert.Contains(t, problem["detail"], tt.wantDetail)
			}
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, problem["errors"])
			}
		})
	}
}

func TestGetProject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		id         string
		setup      func(svc *mocks.MockProjectService)
		wantStatus int
	}{
		{
			name: "found",
			id:   testProjectID,
			setup: func(svc *mocks.MockProjectService) {
				p := validProject()
				svc.EXPECT().GetProject(mock.Anything, testProjectID).Return(&p, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			id:   "missing",
			setup: func(svc *mocks.MockProjectService) {
				svc.EXPECT().GetProject(mock.Anything, "missing").
					Return(nil, fmt.Errorf("project missing: %w", domain.ErrNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "blank id",
			id:         "  ",
			setup:      func(*mocks.MockProjectService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newProjectHandler(t)
			tt.setup(svc)

			rec := httptest.NewRecorder()
			req := withChiParams(httptest.NewRequest(http.MethodGet, "/api/v1/projects/x", nil), map[string]string{"id": tt.id})
			h.GetProject(rec, req)

			if tt.wantStatus != http.StatusOK {
				assertProblem(t, rec, tt.wantStatus)
				return
			}
			requireStatus(t, rec, http.StatusOK)
			want := validProject()
			assert.Equal(t, dto.ToProjectResponse(&want), decodeJSON[dto.ProjectResponse](t, rec))
		})
	}
}

func TestMoveProject(t *testing.T) {
	t.Parallel()

	finished := validProject()
	finished.Status = project.StatusFinished

	tests := []struct {
		name        string
		id          string
		body        string
		setup       func(svc *mocks.MockProjectService)
		wantStatus  int
		wantChanged bool
		wantColumn  string
	}{
		{
			name: "moves to finished",
			id:   testProjectID,
			body: `{"status":"finished"}`,
			setup: func(svc *mocks.MockProjectService) {
				svc.EXPECT().MoveProject(mock.Anything, testProjectID, project.StatusFinished).
					Return(&ports.MoveResult{Project: finished, Changed: true}, nil)
			},
			wantStatus:  http.StatusOK,
			wantChanged: true,
			wantColumn:  "finished",
		},
		{
			name: "already in column",
			id:   testProjectID,
			body: `{"status":"active"}`,
			setup: func(svc *mocks.MockProjectService) {
				svc.EXPECT().MoveProject(mock.Anything, testProjectID, project.StatusActive).
					Return(&ports.MoveResult{Project: validProject()}, nil)
			},
			wantStatus: http.StatusOK,
			wantColumn: "active",
		},
		{
			name:       "unknown status",
			id:         testProjectID,
			body:       `{"status":"archived"}`,
			setup:      func(*mocks.MockProjectService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown project",
			id:   "missing",
			body: `{"status":"finished"}`,
			setup: func(svc *mocks.MockProjectService) {
				svc.EXPECT().MoveProject(mock.Anything, "missing", project.StatusFinished).
					Return(nil, domain.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newProjectHandler(t)
			tt.setup(svc)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/v1/projects/"+tt.id+"/status", rawBody(tt.body))
			h.MoveProject(rec, withChiParams(req, map[string]string{"id": tt.id}))

			if tt.wantStatus != http.StatusOK {
				assertProblem(t, rec, tt.wantStatus)
				return
			}
			requireStatus(t, rec, http.StatusOK)
			resp := decodeJSON[dto.MoveProjectResponse](t, rec)
			assert.Equal(t, tt.wantChanged, resp.Changed)
			assert.Equal(t, tt.wantColumn, resp.Project.Status)
		})
	}
}
