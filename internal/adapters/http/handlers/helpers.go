package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/projectboard/internal/domain"
	"github.com/jsamuelsen11/projectboard/internal/domain/project"
	"github.com/jsamuelsen11/projectboard/internal/platform/logging"
)

const (
	maxJSONBodyBytes = 1 << 20
	maxTransferBytes = 1 << 10
)

// respond runs fn and writes its result as JSON with status, or its error
// as a problem response.
func respond(w http.ResponseWriter, r *http.Request, status int, fn func() (any, error)) {
	body, err := fn()
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, r, status, body)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "encoding response",
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}
}

// pathID reads a non-blank path parameter.
func pathID(r *http.Request, param string) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	if raw == "" {
		return "", domain.NewValidationError(param, domain.MsgRequired)
	}
	return raw, nil
}

// pathStatus reads a path parameter naming a column.
func pathStatus(r *http.Request, param string) (project.Status, error) {
	s, err := project.ParseStatus(chi.URLParam(r, param))
	if err != nil {
		return "", domain.NewValidationError(param, err.Error())
	}
	return s, nil
}

// queryFilter reads the optional ?status= filter.
func queryFilter(r *http.Request) (project.Filter, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return project.Filter{}, nil
	}
	s, err := project.ParseStatus(raw)
	if err != nil {
		return project.Filter{}, domain.NewValidationError("status", err.Error())
	}
	return project.Filter{Status: s}, nil
}

type validatable interface {
	Validate() error
}

// decodeJSON reads a JSON body of at most maxJSONBodyBytes into dst and
// validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst validatable) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.NewValidationError("body", "too large")
		}
		return domain.NewValidationError("body", "invalid JSON")
	}
	return dst.Validate()
}

// decodeTransfer returns the project ID carried by a drag-and-drop payload.
// A text/plain body is the ID itself; anything else is a JSON
// dto.DropRequest.
func decodeTransfer(w http.ResponseWriter, r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "text/plain" {
		var req dto.DropRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return "", err
		}
		return strings.TrimSpace(req.ID), nil
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTransferBytes))
	if err != nil {
		return "", domain.NewValidationError("body", "unreadable transfer payload")
	}
	req := dto.DropRequest{ID: strings.TrimSpace(string(raw))}
	if err := req.Validate(); err != nil {
		return "", err
	}
	return req.ID, nil
}
