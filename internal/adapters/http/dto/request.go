package dto

import (
	"fmt"

	"github.com/jsamuelsen11/projectboard/internal/domain"
	"github.com/jsamuelsen11/projectboard/internal/domain/project"
)

// CreateProjectRequest represents the JSON body for adding a project to the board.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	People      int    `json:"people"`
}

// Validate applies the board's input rules.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateProjectRequest) Validate() error {
	return project.ValidateInput(r.Title, r.Description, r.People)
}

// MoveProjectRequest represents the JSON body for changing a project's column.
type MoveProjectRequest struct {
	Status string `json:"status"`
}

// Validate checks that the target status is present and known.
func (r *MoveProjectRequest) Validate() error {
	if !domain.Validate(domain.Validatable{Value: r.Status, Required: true}) {
		return domain.NewValidationError("status", domain.MsgRequired)
	}
	if !project.Status(r.Status).IsValid() {
		return domain.NewValidationError("status", fmt.Sprintf("invalid: %q", r.Status))
	}
	return nil
}

// DropRequest is the JSON form of a drag-and-drop transfer payload: the ID
// of the project being dropped onto a column.
type DropRequest struct {
	ID string `json:"id"`
}

// Validate checks that the payload carries a project ID.
func (r *DropRequest) Validate() error {
	if !domain.Validate(domain.Validatable{Value: r.ID, Required: true}) {
		return domain.NewValidationError("id", domain.MsgRequired)
	}
	return nil
}
