package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/projectboard/internal/domain"
	"github.com/jsamuelsen11/projectboard/internal/domain/project"
)

func newAddCmd(opts *options) *cobra.Command {
	var (
		title       string
		description string
		people      int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project to the active column",
		Long: `Add a project to the active column.

The input is checked before anything is sent: the title must not be blank,
the description needs at least 5 characters and people must be 1 to 10.`,
		Example: `  boardctl add --title "Website" --description "Redesign landing page" --people 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := project.ValidateInput(title, description, people); err != nil {
				return err
			}
			out, err := opts.renderer()
			if err != nil {
				return err
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			created, err := opts.client().CreateProject(ctx, &project.Project{
				Title:       title,
				Description: description,
				People:      people,
			})
			if err != nil {
				return fmt.Errorf("adding project: %w", err)
			}
			return out.Project(created)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "project title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")
	cmd.Flags().IntVarP(&people, "people", "p", 0, "number of people (1-10)")
	return cmd
}

func newMoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <active|finished>",
		Short: "Move a project to another column",
		Long: `Move a project to another column.

Moving a project to the column it is already in is not an error.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseStatusArg(args[1])
			if err != nil {
				return err
			}
			out, err := opts.renderer()
			if err != nil {
				return err
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			result, err := opts.client().MoveProject(ctx, args[0], status)
			if err != nil {
				return fmt.Errorf("moving project %s: %w", args[0], err)
			}
			return out.Move(result)
		},
	}
}

func newDropCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <active|finished> <id>",
		Short: "Drop a project onto a column",
		Long: `Drop a project onto a column, the way a drag-and-drop on the board does.
The project ID is sent as the plain-text transfer payload.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseStatusArg(args[0])
			if err != nil {
				return err
			}
			out, err := opts.renderer()
			if err != nil {
				return err
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			result, err := opts.client().Drop(ctx, status, args[1])
			if err != nil {
				return fmt.Errorf("dropping project %s: %w", args[1], err)
			}
			return out.Move(result)
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter project.Filter
			if status != "" {
				s, err := parseStatusArg(status)
				if err != nil {
					return err
				}
				filter.Status = s
			}
			out, err := opts.renderer()
			if err != nil {
				return err
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			projects, err := opts.client().ListProjects(ctx, filter)
			if err != nil {
				return fmt.Errorf("listing projects: %w", err)
			}
			return out.Projects(projects)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only show projects in this column (active or finished)")
	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := opts.renderer()
			if err != nil {
				return err
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			p, err := opts.client().GetProject(ctx, args[0])
			if err != nil {
				return err
			}
			return out.Project(p)
		},
	}
}

func newBoardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the active and finished columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := opts.renderer()
			if err != nil {
				return err
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			view, err := opts.client().Board(ctx)
			if err != nil {
				return fmt.Errorf("loading board: %w", err)
			}
			return out.Board(view)
		},
	}
}

// parseStatusArg converts a column argument into a Status, reporting an
// unknown one as a validation error on "status".
func parseStatusArg(raw string) (project.Status, error) {
	s, err := project.ParseStatus(raw)
	if err != nil {
		return "", domain.NewValidationError("status", err.Error())
	}
	return s, nil
}
