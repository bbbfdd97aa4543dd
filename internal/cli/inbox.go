package cli

import (
	"context"

	"auralis-cli/internal/organizer"

	"github.com/spf13/cobra"
)

func newInboxCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Capture and triage raw input",
	}
	cmd.AddCommand(newInboxAddCmd(app))
	cmd.AddCommand(newInboxListCmd(app))
	cmd.AddCommand(newInboxGetCmd(app))
	cmd.AddCommand(newInboxSetStateCmd(app))
	cmd.AddCommand(newInboxConvertCmd(app))
	return cmd
}

func newInboxAddCmd(app *App) *cobra.Command {
	var content, source string
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Capture an inbox item",
		Aliases: []string{"capture"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				it, err := svc.InboxAdd(ctx, content, source)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": it})
			})
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "Captured text")
	cmd.Flags().StringVar(&source, "source", "text", "Capture source (text|voice)")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newInboxListCmd(app *App) *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inbox items (oldest-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				items, err := svc.InboxList(ctx, state)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": items})
			})
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "Filter by state (unprocessed|processed|archived)")
	return cmd
}

func newInboxGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "get <inbox-id>",
		Short:   "Show an inbox item",
		Aliases: []string{"show"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				it, err := svc.InboxGet(ctx, args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": it})
			})
		},
	}
}

func newInboxSetStateCmd(app *App) *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:   "set-state <inbox-id>",
		Short: "Move an inbox item to processed or archived",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				it, err := svc.InboxSetState(ctx, args[0], state)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": it})
			})
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "New state (unprocessed|processed|archived)")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}

func newInboxConvertCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <inbox-id>",
		Short: "Convert an inbox item into a task in the default area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				tk, err := svc.InboxConvertToTask(ctx, args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": tk})
			})
		},
	}
}
