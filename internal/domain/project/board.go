package project

// Board is a snapshot split into its two columns. Each column keeps the
// relative order the projects had in the snapshot.
type Board struct {
	Active   []Project
	Finished []Project
}

// Partition splits a snapshot into board columns.
func Partition(snapshot []Project) Board {
	return Board{
		Active:   Filter{Status: StatusActive}.Apply(snapshot),
		Finished: Filter{Status: StatusFinished}.Apply(snapshot),
	}
}

// Column returns the projects in the column for s.
func (b Board) Column(s Status) []Project {
	switch s {
	case StatusActive:
		return b.Active
	case StatusFinished:
		return b.Finished
	default:
		return nil
	}
}

// Len returns the number of projects across both columns.
func (b Board) Len() int {
	return len(b.Active) + len(b.Finished)
}
