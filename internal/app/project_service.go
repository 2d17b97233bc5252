// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and the in-memory project store.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/projectboard/internal/app/board"
	"github.com/jsamuelsen11/projectboard/internal/app/store"
	"github.com/jsamuelsen11/projectboard/internal/domain"
	"github.com/jsamuelsen11/projectboard/internal/domain/project"
	"github.com/jsamuelsen11/projectboard/internal/platform/telemetry"
	"github.com/jsamuelsen11/projectboard/internal/ports"
)

// Compile-time check that ProjectService implements ports.ProjectService.
var _ ports.ProjectService = (*ProjectService)(nil)

// ProjectService implements ports.ProjectService on top of the project store
// and the board projection. It handles validation, structured logging and
// metrics; the store owns ordering and notification.
type ProjectService struct {
	store      *store.Store
	projection *board.Projection
	metrics    *telemetry.Metrics
	logger     *slog.Logger
}

// NewProjectService creates a ProjectService. The projection must already be
// registered as a listener on st. A nil logger discards output and nil
// metrics disables instrumentation.
func NewProjectService(st *store.Store, projection *board.Projection, metrics *telemetry.Metrics, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ProjectService{
		store:      st,
		projection: projection,
		metrics:    metrics,
		logger:     logger,
	}
}

// ListProjects returns the projects in insertion order, narrowed by filter.
func (s *ProjectService) ListProjects(ctx context.Context, filter project.Filter) ([]project.Project, error) {
	s.logger.InfoContext(ctx, "listing projects", slog.String("status", filter.Status.String()))

	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("must be one of %v", project.Statuses))
	}

	return filter.Apply(s.store.Projects()), nil
}

// GetProject returns a single project by ID.
func (s *ProjectService) GetProject(ctx context.Context, id string) (*project.Project, error) {
	s.logger.InfoContext(ctx, "fetching project", slog.String("id", id))

	p, ok := s.store.Project(id)
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

// CreateProject validates p and adds it to the active column. Only Title,
// Description and People are read from p; ID and Status are assigned.
func (s *ProjectService) CreateProject(ctx context.Context, p *project.Project) (*project.Project, error) {
	if p == nil {
		return nil, domain.NewValidationError("project", domain.MsgRequired)
	}

	s.logger.InfoContext(ctx, "creating project", slog.String("title", p.Title))

	if err := p.Validate(); err != nil {
		s.logger.WarnContext(ctx, "project rejected",
			slog.String("operation", "CreateProject"),
			slog.Any("error", err),
		)
		return nil, err
	}

	created := s.store.AddProject(ctx, p.Title, p.Description, p.People)

	if s.metrics != nil {
		s.metrics.ProjectsCreated.Add(ctx, 1)
	}

	s.logger.InfoContext(ctx, "project created", slog.String("id", created.ID))
	return &created, nil
}

// MoveProject transitions the project to status.
func (s *ProjectService) MoveProject(ctx context.Context, id string, status project.Status) (*ports.MoveResult, error) {
	s.logger.InfoContext(ctx, "moving project",
		slog.String("id", id),
		slog.String("status", status.String()),
	)

	if !status.IsValid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("must be one of %v", project.Statuses))
	}

	p, outcome := s.store.MoveProject(ctx, id, status)
	switch outcome {
	case store.MoveNotFound:
		s.logger.WarnContext(ctx, "move target not found",
			slog.String("operation", "MoveProject"),
			slog.String("id", id),
		)
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	case store.MoveUnchanged:
		return &ports.MoveResult{Project: p, Changed: false}, nil
	default:
		if s.metrics != nil {
			s.metrics.ProjectsMoved.Add(ctx, 1,
				metric.WithAttributes(telemetry.AttrProjectStatus.String(status.String())))
		}
		return &ports.MoveResult{Project: p, Changed: true}, nil
	}
}

// Board returns the current columns as last rendered by the projection.
func (s *ProjectService) Board(ctx context.Context) (*ports.BoardView, error) {
	s.logger.InfoContext(ctx, "fetching board")

	b, rev := s.projection.Current()
	return &ports.BoardView{Board: b, Revision: rev}, nil
}
