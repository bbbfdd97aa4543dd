package cli

import (
	"context"

	"auralis-cli/internal/organizer"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var (
		limit    int
		entityID string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the mutation history",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List events (oldest-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				evs, err := svc.EventsList(ctx, entityID, limit)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": evs})
			})
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 200, "Max events to return, most recent kept (0 = all)")
	listCmd.Flags().StringVar(&entityID, "entity", "", "Only events for this entity id")

	cmd.AddCommand(listCmd)
	return cmd
}
