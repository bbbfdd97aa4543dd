package cli

import (
	"context"
	"os"
	"strings"

	"auralis-cli/internal/format"
	"auralis-cli/internal/model"
	"auralis-cli/internal/mutate"
	"auralis-cli/internal/organizer"

	"github.com/spf13/cobra"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Short:   "Note commands",
		Aliases: []string{"note"},
	}
	cmd.AddCommand(newNotesAddCmd(app))
	cmd.AddCommand(newNotesListCmd(app))
	cmd.AddCommand(newNotesGetCmd(app))
	cmd.AddCommand(newNotesUpdateCmd(app))
	cmd.AddCommand(newNotesDeleteCmd(app))
	return cmd
}

// noteContent prefers --content-file over --content.
func noteContent(content, file string) (string, error) {
	if strings.TrimSpace(file) == "" {
		return content, nil
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return "", mutate.ValidationError{Field: "content-file", Reason: err.Error()}
	}
	return string(b), nil
}

func newNotesAddCmd(app *App) *cobra.Command {
	var title, content, contentFile, areaID, projectID string
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Create a note (markdown content)",
		Aliases: []string{"create"},
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := noteContent(content, contentFile)
			if err != nil {
				return writeErr(cmd, err)
			}
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				n, err := svc.NoteAdd(ctx, title, body, optionalFlag(cmd, "area", areaID), optionalFlag(cmd, "project", projectID))
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": n})
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Note title")
	cmd.Flags().StringVar(&content, "content", "", "Note content (markdown)")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "Read note content from a file")
	cmd.Flags().StringVar(&areaID, "area", "", "Area id")
	cmd.Flags().StringVar(&projectID, "project", "", "Project id (the note takes the project's area)")
	_ = cmd.MarkFlagRequired("title")
	cmd.MarkFlagsOneRequired("content", "content-file")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
	return cmd
}

func newNotesListCmd(app *App) *cobra.Command {
	var areaID, projectID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes (oldest-first); --project takes precedence over --area",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				ns, err := svc.NoteList(ctx, optionalFlag(cmd, "area", areaID), optionalFlag(cmd, "project", projectID))
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": ns})
			})
		},
	}
	cmd.Flags().StringVar(&areaID, "area", "", "Filter by area id")
	cmd.Flags().StringVar(&projectID, "project", "", "Filter by project id")
	return cmd
}

func newNotesGetCmd(app *App) *cobra.Command {
	var render bool
	var width int
	cmd := &cobra.Command{
		Use:     "get <note-id>",
		Short:   "Show a note",
		Aliases: []string{"show"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				n, err := svc.NoteGet(ctx, args[0])
				if err != nil {
					return err
				}
				if !render {
					return writeOut(cmd, app, map[string]any{"data": n})
				}
				out, err := format.RenderMarkdown("# "+n.Title+"\n\n"+n.Content, width)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write([]byte(out))
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "Render the note as markdown for the terminal")
	cmd.Flags().IntVar(&width, "width", 80, "Word-wrap width for --render")
	return cmd
}

func newNotesUpdateCmd(app *App) *cobra.Command {
	var title, content, contentFile, areaID, projectID string
	cmd := &cobra.Command{
		Use:   "update <note-id>",
		Short: "Update a note",
		Long: strings.TrimSpace(`
Update a note. Flags that are not given keep their current value; pass "none"
to --area or --project to detach the note.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				cur, err := svc.NoteGet(ctx, args[0])
				if err != nil {
					return err
				}
				t, c := cur.Title, cur.Content
				if cmd.Flags().Changed("title") {
					t = title
				}
				if cmd.Flags().Changed("content") || cmd.Flags().Changed("content-file") {
					if c, err = noteContent(content, contentFile); err != nil {
						return err
					}
				}
				area := refFlag(cmd, "area", areaID, cur.AreaID)
				project := refFlag(cmd, "project", projectID, cur.ProjectID)
				// A new area without a new project detaches the note from its old project.
				if cmd.Flags().Changed("area") && !cmd.Flags().Changed("project") {
					project = nil
				}
				n, err := svc.NoteUpdate(ctx, cur.ID, t, c, area, project)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": n})
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content (markdown)")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "Read new content from a file")
	cmd.Flags().StringVar(&areaID, "area", "", "Area id or none")
	cmd.Flags().StringVar(&projectID, "project", "", "Project id or none")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
	return cmd
}

func refFlag(cmd *cobra.Command, name, value string, current *string) *string {
	if !cmd.Flags().Changed(name) {
		return current
	}
	if strings.EqualFold(strings.TrimSpace(value), "none") {
		return nil
	}
	return model.StrPtr(strings.TrimSpace(value))
}

func newNotesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <note-id>",
		Short:   "Delete a note",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				if err := svc.NoteDelete(ctx, args[0]); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "deleted": true}})
			})
		},
	}
}
