package project

import "fmt"

// Status is the board column a project currently sits in.
type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Statuses lists every status in column order.
var Statuses = []Status{StatusActive, StatusFinished}

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusFinished:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a raw column name to a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid status %q: must be one of %v", raw, Statuses)
	}
	return s, nil
}
