// Package board keeps the column view of the board up to date by listening
// to store snapshots.
package board

import (
	"context"
	"sync"

	"github.com/jsamuelsen11/projectboard/internal/domain/project"
)

// Projection holds the latest board columns. Its Listen method is registered
// as a store listener; each snapshot replaces the columns wholesale and bumps
// the revision.
type Projection struct {
	mu       sync.RWMutex
	board    project.Board
	revision uint64
}

// NewProjection returns a Projection with two empty columns at revision 0.
func NewProjection() *Projection {
	return &Projection{board: project.Partition(nil)}
}

// Listen re-renders both columns from snapshot.
func (p *Projection) Listen(_ context.Context, snapshot []project.Project) {
	b := project.Partition(snapshot)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.board = b
	p.revision++
}

// Current returns a copy of the columns and the revision they belong to.
func (p *Projection) Current() (project.Board, uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return project.Board{
		Active:   project.Clone(p.board.Active),
		Finished: project.Clone(p.board.Finished),
	}, p.revision
}

// Revision returns the number of snapshots applied so far.
func (p *Projection) Revision() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.revision
}
