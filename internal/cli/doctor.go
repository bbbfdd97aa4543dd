package cli

import (
	"context"

	"auralis-cli/internal/organizer"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check stored data against the organizer's invariants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				report, err := svc.Doctor(ctx)
				if err != nil {
					return err
				}
				if err := writeOut(cmd, app, map[string]any{
					"data": report,
					"meta": map[string]any{
						"issues":    len(report.Issues),
						"hasErrors": report.HasErrors(),
					},
				}); err != nil {
					return err
				}
				if fail && report.HasErrors() {
					return doctorIssuesError{}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}
