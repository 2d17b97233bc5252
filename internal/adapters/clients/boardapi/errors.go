// Package boardapi is the outbound client for the board service's HTTP API.
// It translates the API's JSON documents and RFC 9457 problem responses back
// into domain types and domain errors, so callers work against
// ports.ProjectService whether the board is local or remote.
package boardapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/projectboard/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// TranslateHTTPError maps an HTTP error response to a domain error.
// It parses the body as RFC 9457 when the content type is
// application/problem+json, using the detail field for context.
// For 400/422 responses with field-level errors, it returns a
// *domain.ValidationError.
func TranslateHTTPError(resp *http.Response) error {
	pd := parseProblem(resp)

	detail := pd.Detail
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", detail, domain.ErrNotFound)

	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		if fields := pd.FieldErrors(); len(fields) > 0 {
			return &domain.ValidationError{Fields: fields}
		}
		return fmt.Errorf("%s: %w", detail, domain.ErrValidation)

	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%s: %w", detail, domain.ErrConflict)

	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)

	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// parseProblem reads an RFC 9457 body from the response. It returns the
// zero value if the body is absent, not a problem document, or malformed.
func parseProblem(resp *http.Response) dto.ErrorResponse {
	if resp.Body == nil {
		return dto.ErrorResponse{}
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, dto.ProblemContentType) {
		return dto.ErrorResponse{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return dto.ErrorResponse{}
	}

	var pd dto.ErrorResponse
	if err := json.Unmarshal(body, &pd); err != nil {
		return dto.ErrorResponse{}
	}
	return pd
}
