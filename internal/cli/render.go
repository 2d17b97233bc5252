package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/projectboard/internal/domain/project"
	"github.com/jsamuelsen11/projectboard/internal/ports"
)

// Format selects how results are written.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an --output flag value.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", raw)
	}
}

// Renderer writes board data in one format. JSON and YAML output use the
// same documents the HTTP API returns.
type Renderer struct {
	w      io.Writer
	format Format
	colors Palette
}

// NewRenderer creates a Renderer. Colors apply to text output only.
func NewRenderer(w io.Writer, format Format, color bool) *Renderer {
	return &Renderer{w: w, format: format, colors: Palette{Enabled: color && format == FormatText}}
}

// Project writes a single project.
func (r *Renderer) Project(p *project.Project) error {
	if r.format != FormatText {
		return r.encode(dto.ToProjectResponse(p))
	}

	t := NewTable()
	t.AddRow("ID:", p.ID)
	t.AddRow("Title:", p.Title)
	t.AddRow("Description:", p.Description)
	t.AddRow("People:", strconv.Itoa(p.People))
	t.AddRow("Status:", r.status(p.Status))
	t.Render(r.w)
	return nil
}

// Projects writes a project list.
func (r *Renderer) Projects(projects []project.Project) error {
	if r.format != FormatText {
		return r.encode(dto.ToProjectListResponse(projects))
	}
	if len(projects) == 0 {
		fmt.Fprintln(r.w, r.colors.Gray("no projects"))
		return nil
	}

	t := r.projectTable(true)
	for i := range projects {
		p := &projects[i]
		t.AddRow(p.ID, p.Title, strconv.Itoa(p.People), r.status(p.Status))
	}
	t.Render(r.w)
	return nil
}

// Move writes the outcome of a status change.
func (r *Renderer) Move(result *ports.MoveResult) error {
	if r.format != FormatText {
		return r.encode(dto.ToMoveProjectResponse(result))
	}

	p := result.Project
	if result.Changed {
		fmt.Fprintf(r.w, "moved %s to %s\n", p.ID, r.status(p.Status))
	} else {
		fmt.Fprintf(r.w, "%s is already %s\n", p.ID, r.status(p.Status))
	}
	return nil
}

// Board writes both columns, active first, each under an upper-case
// "<STATUS> PROJECTS" heading.
func (r *Renderer) Board(view *ports.BoardView) error {
	if r.format != FormatText {
		return r.encode(dto.ToBoardResponse(view))
	}

	for i, s := range project.Statuses {
		if i > 0 {
			fmt.Fprintln(r.w)
		}
		column := view.Column(s)
		heading := fmt.Sprintf("%s PROJECTS (%d)", strings.ToUpper(s.String()), len(column))
		fmt.Fprintln(r.w, r.colors.Bold(heading))

		if len(column) == 0 {
			fmt.Fprintln(r.w, r.colors.Gray("  (empty)"))
			continue
		}
		t := r.projectTable(false)
		for j := range column {
			p := &column[j]
			t.AddRow("  "+p.ID, p.Title, strconv.Itoa(p.People))
		}
		t.Render(r.w)
	}
	return nil
}

func (r *Renderer) projectTable(withStatus bool) *Table {
	t := NewTable()
	t.SetMaxWidth(1, DefaultMaxTitleWidth)
	if withStatus {
		t.AddRow("ID", "TITLE", "PEOPLE", "STATUS")
	}
	return t
}

func (r *Renderer) status(s project.Status) string {
	switch s {
	case project.StatusActive:
		return r.colors.Green(s.String())
	case project.StatusFinished:
		return r.colors.Gray(s.String())
	default:
		return r.colors.Yellow(s.String())
	}
}

func (r *Renderer) encode(v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", r.format)
	}
}
