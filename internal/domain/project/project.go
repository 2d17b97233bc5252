package project

import (
	"fmt"

	"github.com/jsamuelsen11/projectboard/internal/domain"
)

// Input constraints applied before a project is added to the board.
const (
	DescriptionMinLength = 5
	MinPeople            = 1
	MaxPeople            = 10
)

// Project is one tracked work item on the board.
type Project struct {
	ID          string
	Title       string
	Description string
	People      int
	Status      Status
}

// Validate checks the project's user-supplied fields against the input rules.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (p *Project) Validate() error {
	return ValidateInput(p.Title, p.Description, p.People)
}

// ValidateInput applies the board's input rules to raw field values: a
// non-blank title, a description of at least DescriptionMinLength characters,
// and a people count between MinPeople and MaxPeople.
func ValidateInput(title, description string, people int) error {
	fields := make(map[string]string)

	if !domain.Validate(domain.Validatable{Value: title, Required: true}) {
		fields["title"] = domain.MsgRequired
	}
	if !domain.Validate(domain.Validatable{
		Value:     description,
		Required:  true,
		MinLength: domain.Bound(DescriptionMinLength),
	}) {
		fields["description"] = fmt.Sprintf("must be at least %d characters", DescriptionMinLength)
	}
	if !domain.Validate(domain.Validatable{
		Value:    people,
		Required: true,
		Min:      domain.Bound(float64(MinPeople)),
		Max:      domain.Bound(float64(MaxPeople)),
	}) {
		fields["people"] = fmt.Sprintf("must be %d-%d, got %d", MinPeople, MaxPeople, people)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Clone returns a copy of projects backed by a new array. A nil input yields
// an empty, non-nil slice so listeners never see nil.
func Clone(projects []Project) []Project {
	out := make([]Project, len(projects))
	copy(out, projects)
	return out
}
