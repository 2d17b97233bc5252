// Package notify holds the wire format shared by the outbound snapshot
// listeners. Subpackages deliver it over HTTP webhooks and NATS.
package notify

import (
	"time"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/projectboard/internal/domain/project"
)

// EventBoardChanged is the event name carried by every snapshot payload.
const EventBoardChanged = "board.changed"

// SnapshotPayload is the JSON document sent to external subscribers after
// each store change. Revision counts the snapshots a single sink has seen,
// starting at 1.
type SnapshotPayload struct {
	Event    string                `json:"event"`
	Revision uint64                `json:"revision"`
	SentAt   time.Time             `json:"sent_at"`
	Count    int                   `json:"count"`
	Projects []dto.ProjectResponse `json:"projects"`
}

// NewSnapshot builds the payload for one store snapshot.
func NewSnapshot(revision uint64, snapshot []project.Project, sentAt time.Time) SnapshotPayload {
	list := dto.ToProjectListResponse(snapshot)
	return SnapshotPayload{
		Event:    EventBoardChanged,
		Revision: revision,
		SentAt:   sentAt.UTC(),
		Count:    list.Count,
		Projects: list.Projects,
	}
}
