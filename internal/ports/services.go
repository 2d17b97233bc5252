package ports

import (
	"context"

	"github.com/jsamuelsen11/projectboard/internal/domain/project"
)

// ProjectService defines the service port for board operations.
// Implemented by the application layer; called by inbound adapters (handlers).
type ProjectService interface {
	// ListProjects returns a snapshot of all projects in insertion order,
	// optionally narrowed by the filter.
	// Returns domain.ErrValidation if the filter status is unknown.
	ListProjects(ctx context.Context, filter project.Filter) ([]project.Project, error)

	// GetProject returns a single project by ID.
	// Returns domain.ErrNotFound if the project does not exist.
	GetProject(ctx context.Context, id string) (*project.Project, error)

	// CreateProject validates and adds a new project to the active column,
	// returning it with its generated ID.
	// Returns domain.ErrValidation if the project fails validation.
	CreateProject(ctx context.Context, project *project.Project) (*project.Project, error)

	// MoveProject transitions a project to the given status column.
	// Moving a project to the column it is already in succeeds with
	// MoveResult.Changed set to false.
	// Returns domain.ErrNotFound if the project does not exist.
	// Returns domain.ErrValidation if the status is unknown.
	MoveProject(ctx context.Context, id string, status project.Status) (*MoveResult, error)

	// Board returns the projects split into their columns.
	Board(ctx context.Context) (*BoardView, error)
}

// MoveResult reports the project after a move and whether its status changed.
type MoveResult struct {
	Project project.Project
	Changed bool
}

// BoardView is the column layout together with the number of store changes
// it reflects.
type BoardView struct {
	project.Board
	Revision uint64
}
