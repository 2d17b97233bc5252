// Package store holds the board's in-memory project collection. The Store is
// constructed once by the composition root and passed to whoever needs it.
//
// Projects are only ever appended or have their status changed; nothing is
// deleted. Every change is followed by a snapshot published to the store's
// listeners before the mutating call returns.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/projectboard/internal/domain/project"
	"github.com/jsamuelsen11/projectboard/internal/ports"
)

// MoveOutcome reports what MoveProject did.
type MoveOutcome int

const (
	// MoveApplied means the status changed and listeners were notified.
	MoveApplied MoveOutcome = iota
	// MoveUnchanged means the project already had the requested status.
	MoveUnchanged
	// MoveNotFound means no project has the given ID.
	MoveNotFound
)

// String implements fmt.Stringer.
func (o MoveOutcome) String() string {
	switch o {
	case MoveApplied:
		return "applied"
	case MoveUnchanged:
		return "unchanged"
	case MoveNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator used for new project IDs.
// If fn keeps returning blank or already issued IDs, the store falls back to
// UUIDs after a few draws.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// Store is the ordered collection of projects plus the publisher that fans
// out change snapshots. It is safe for concurrent use: a mutation and the
// notification that follows it happen under one lock, so listeners see
// snapshots in mutation order and never interleaved.
type Store struct {
	mu        sync.Mutex
	projects  []project.Project
	ids       map[string]struct{}
	publisher ports.Publisher
	newID     func() string
}

// New creates an empty Store that notifies through publisher.
func New(publisher ports.Publisher, opts ...Option) *Store {
	s := &Store{
		ids:       make(map[string]struct{}),
		publisher: publisher,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddListener registers fn to receive a snapshot after every change.
func (s *Store) AddListener(fn ports.Listener) {
	s.publisher.Subscribe(fn)
}

// AddProject appends a new active project and notifies listeners. Inputs are
// expected to have passed project.ValidateInput already.
func (s *Store) AddProject(ctx context.Context, title, description string, people int) project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := project.Project{
		ID:          s.uniqueID(),
		Title:       title,
		Description: description,
		People:      people,
		Status:      project.StatusActive,
	}
	s.projects = append(s.projects, p)
	s.ids[p.ID] = struct{}{}

	s.notify(ctx)
	return p
}

// MoveProject sets the status of the project with the given ID. Listeners
// are notified only when the status actually changes. The returned project
// reflects the state after the call and is zero for MoveNotFound.
func (s *Store) MoveProject(ctx context.Context, id string, status project.Status) (project.Project, MoveOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return project.Project{}, MoveNotFound
	}
	if s.projects[i].Status == status {
		return s.projects[i], MoveUnchanged
	}

	s.projects[i].Status = status
	moved := s.projects[i]

	s.notify(ctx)
	return moved, MoveApplied
}

// Projects returns a copy of the collection in insertion order.
func (s *Store) Projects() []project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return project.Clone(s.projects)
}

// Project returns a copy of the project with the given ID.
func (s *Store) Project(id string) (project.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return project.Project{}, false
	}
	return s.projects[i], true
}

// Len returns the number of projects.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.projects)
}

// notify must be called with s.mu held.
func (s *Store) notify(ctx context.Context) {
	s.publisher.Publish(ctx, project.Clone(s.projects))
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

// maxIDDraws bounds how often a custom generator is asked for a fresh ID.
const maxIDDraws = 8

// uniqueID returns an ID that has never been issued. Must be called with s.mu held.
func (s *Store) uniqueID() string {
	for range maxIDDraws {
		if id := s.newID(); s.available(id) {
			return id
		}
	}
	for {
		if id := uuid.NewString(); s.available(id) {
			return id
		}
	}
}

func (s *Store) available(id string) bool {
	_, taken := s.ids[id]
	return id != "" && !taken
}
