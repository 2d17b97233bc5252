package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jsamuelsen11/projectboard/internal/domain"
)

// FormatError returns a user-friendly error message prefixed with "error: ".
// Validation failures list one field per line, sorted by field name.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) == 0 {
		return "error: " + err.Error()
	}

	fields := make([]string, 0, len(verr.Fields))
	for field := range verr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("error: invalid input")
	for _, field := range fields {
		fmt.Fprintf(&b, "\n  %s: %s", field, verr.Fields[field])
	}
	return b.String()
}

// ExitCode maps an error to the process exit status: 0 on success, 2 for
// rejected input, 3 for a missing project, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrValidation):
		return 2
	case errors.Is(err, domain.ErrNotFound):
		return 3
	default:
		return 1
	}
}
