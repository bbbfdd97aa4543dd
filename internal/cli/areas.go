package cli

import (
	"context"
	"strconv"

	"auralis-cli/internal/mutate"
	"auralis-cli/internal/organizer"

	"github.com/spf13/cobra"
)

func newAreasCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "areas",
		Short:   "Area commands",
		Aliases: []string{"area"},
	}
	cmd.AddCommand(newAreasAddCmd(app))
	cmd.AddCommand(newAreasListCmd(app))
	cmd.AddCommand(newAreasGetCmd(app))
	cmd.AddCommand(newAreasSetActiveCmd(app))
	return cmd
}

func newAreasAddCmd(app *App) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Create an area",
		Aliases: []string{"create"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				a, err := svc.AreaAdd(ctx, name)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": a})
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Area name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newAreasListCmd(app *App) *cobra.Command {
	var onlyActive bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List areas (by name)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				as, err := svc.AreaList(ctx, onlyActive)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": as})
			})
		},
	}
	cmd.Flags().BoolVar(&onlyActive, "active", false, "Only active areas")
	return cmd
}

func newAreasGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "get <area-id>",
		Short:   "Show an area",
		Aliases: []string{"show"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				a, err := svc.AreaGet(ctx, args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": a})
			})
		},
	}
}

func newAreasSetActiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-active <area-id> <true|false>",
		Short: "Activate or deactivate an area",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := strconv.ParseBool(args[1])
			if err != nil {
				return writeErr(cmd, mutate.ValidationError{Field: "active", Reason: "expected true or false"})
			}
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				a, err := svc.AreaSetActive(ctx, args[0], active)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": a})
			})
		},
	}
}
