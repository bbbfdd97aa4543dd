package cli

import (
	"context"
	"strings"
	"time"

	"auralis-cli/internal/model"
	"auralis-cli/internal/mutate"
	"auralis-cli/internal/organizer"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Short:   "Task commands",
		Aliases: []string{"task"},
	}
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksGetCmd(app))
	cmd.AddCommand(newTasksSetStatusCmd(app))
	cmd.AddCommand(newTasksSetPriorityCmd(app))
	cmd.AddCommand(newTasksSetDatesCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var title, areaID, projectID string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task (todo)",
		Long: strings.TrimSpace(`
Create a task. With --project the task takes the project's area and --area is
ignored. Without either it goes to the default area.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				tk, err := svc.TaskAdd(ctx, title, optionalFlag(cmd, "area", areaID), optionalFlag(cmd, "project", projectID))
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": tk})
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&areaID, "area", "", "Area id (default: configured default area)")
	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var status, projectID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (oldest-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				var (
					tasks []model.Task
					err   error
				)
				if cmd.Flags().Changed("project") {
					tasks, err = svc.TaskListByProject(ctx, projectID)
				} else {
					tasks, err = svc.TaskList(ctx, status)
				}
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": tasks})
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (todo|doing|done|deferred)")
	cmd.Flags().StringVar(&projectID, "project", "", "List the tasks of one project")
	cmd.MarkFlagsMutuallyExclusive("status", "project")
	return cmd
}

func newTasksGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "get <task-id>",
		Short:   "Show a task",
		Aliases: []string{"show"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				tk, err := svc.TaskGet(ctx, args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": tk})
			})
		},
	}
}

func newTasksSetStatusCmd(app *App) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:     "set-status <task-id>",
		Short:   "Set task status (done stamps completedAt)",
		Aliases: []string{"status"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				tk, err := svc.TaskSetStatus(ctx, args[0], status)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": tk})
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "New status (todo|doing|done|deferred)")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newTasksSetPriorityCmd(app *App) *cobra.Command {
	var priority string
	cmd := &cobra.Command{
		Use:   "set-priority <task-id>",
		Short: "Set task priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				tk, err := svc.TaskSetPriority(ctx, args[0], priority)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": tk})
			})
		},
	}
	cmd.Flags().StringVar(&priority, "priority", "", "New priority (low|normal|high)")
	_ = cmd.MarkFlagRequired("priority")
	return cmd
}

func newTasksSetDatesCmd(app *App) *cobra.Command {
	var due, scheduled string
	cmd := &cobra.Command{
		Use:   "set-dates <task-id>",
		Short: "Set due and scheduled dates",
		Long: strings.TrimSpace(`
Set the due and scheduled dates of a task. A flag that is not given keeps the
current value; "none" clears it.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				cur, err := svc.TaskGet(ctx, args[0])
				if err != nil {
					return err
				}
				dueAt, err := dateFlag(cmd, "due", due, cur.DueAt)
				if err != nil {
					return err
				}
				schedAt, err := dateFlag(cmd, "scheduled", scheduled, cur.ScheduledAt)
				if err != nil {
					return err
				}
				tk, err := svc.TaskSetDates(ctx, cur.ID, dueAt, schedAt)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": tk})
			})
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, YYYY-MM-DD HH:MM, RFC3339 or none)")
	cmd.Flags().StringVar(&scheduled, "scheduled", "", "Scheduled date (YYYY-MM-DD, YYYY-MM-DD HH:MM, RFC3339 or none)")
	cmd.MarkFlagsOneRequired("due", "scheduled")
	return cmd
}

func dateFlag(cmd *cobra.Command, name, value string, current *time.Time) (*time.Time, error) {
	if !cmd.Flags().Changed(name) {
		return current, nil
	}
	ts, err := parseDateTime(value)
	if err != nil {
		return nil, mutate.ValidationError{Field: name, Reason: err.Error()}
	}
	return ts, nil
}

func newTasksMoveCmd(app *App) *cobra.Command {
	var areaID, projectID string
	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task to another project or area",
		Long: strings.TrimSpace(`
Re-file a task with the same rules as "tasks add": a project decides the area;
with neither flag the task returns to the default area.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, app, func(ctx context.Context, svc *organizer.Service) error {
				tk, err := svc.TaskMove(ctx, args[0], optionalFlag(cmd, "area", areaID), optionalFlag(cmd, "project", projectID))
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": tk})
			})
		},
	}
	cmd.Flags().StringVar(&areaID, "area", "", "Target area id")
	cmd.Flags().StringVar(&projectID, "project", "", "Target project id")
	return cmd
}
