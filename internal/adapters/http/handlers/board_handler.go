package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/projectboard/internal/ports"
)

// BoardHandler serves the two-column view and accepts drops onto a column.
type BoardHandler struct {
	svc ports.ProjectService
}

// NewBoardHandler returns a handler backed by svc.
func NewBoardHandler(svc ports.ProjectService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// Board serves GET /api/v1/board.
func (h *BoardHandler) Board(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		view, err := h.svc.Board(r.Context())
		if err != nil {
			return nil, err
		}
		return dto.ToBoardResponse(view), nil
	})
}

// Drop serves POST /api/v1/board/{status}/drop. The path names the target
// column and the body carries the dropped project's ID.
func (h *BoardHandler) Drop(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		status, err := pathStatus(r, "status")
		if err != nil {
			return nil, err
		}
		id, err := decodeTransfer(w, r)
		if err != nil {
			return nil, err
		}
		result, err := h.svc.MoveProject(r.Context(), id, status)
		if err != nil {
			return nil, err
		}
		return dto.ToMoveProjectResponse(result), nil
	})
}
