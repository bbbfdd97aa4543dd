package cli

import (
	"context"

	"auralis-cli/internal/organizer"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Short:   "Project commands",
		Aliases: []string{"project"},
	}
	cmd.AddCommand(newProjectsAddCmd(app))
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsGetCmd(app))
	cmd.AddCommand(newProjectsSetStatusCmd(app))
	cmd.AddCommand(newProjectsMoveCmd(app))
	return cmd
}

func newProjectsAddCmd(app *App) *cobra.Command {
	var name, areaID string
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Create a project (paused)",
		Aliases: []string{"create"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				p, err := svc.ProjectAdd(ctx, name, optionalFlag(cmd, "area", areaID))
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": p})
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&areaID, "area", "", "Area id (default: configured default area)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects (oldest-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				ps, err := svc.ProjectList(ctx, status)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": ps})
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (paused|active|completed)")
	return cmd
}

func newProjectsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "get <project-id>",
		Short:   "Show a project",
		Aliases: []string{"show"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				p, err := svc.ProjectGet(ctx, args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": p})
			})
		},
	}
}

func newProjectsSetStatusCmd(app *App) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:     "set-status <project-id>",
		Short:   "Set project status (active needs an open task; completed is final)",
		Aliases: []string{"status"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				p, err := svc.ProjectSetStatus(ctx, args[0], status)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": p})
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "New status (paused|active|completed)")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newProjectsMoveCmd(app *App) *cobra.Command {
	var areaID string
	cmd := &cobra.Command{
		Use:   "move <project-id>",
		Short: "Move a project, with its tasks and notes, to another area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				p, err := svc.ProjectMove(ctx, args[0], areaID)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": p})
			})
		},
	}
	cmd.Flags().StringVar(&areaID, "area", "", "Target area id")
	_ = cmd.MarkFlagRequired("area")
	return cmd
}
