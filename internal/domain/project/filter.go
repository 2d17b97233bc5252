package project

// Filter holds optional filter criteria for listing projects.
// Zero-value fields mean "no filter" for that dimension.
type Filter struct {
	Status Status
}

// Matches reports whether p passes the filter.
func (f Filter) Matches(p *Project) bool {
	return f.Status == "" || p.Status == f.Status
}

// Apply returns the projects that pass the filter, preserving order.
func (f Filter) Apply(projects []Project) []Project {
	out := make([]Project, 0, len(projects))
	for i := range projects {
		if f.Matches(&projects[i]) {
			out = append(out, projects[i])
		}
	}
	return out
}
