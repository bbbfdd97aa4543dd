package organizer

import (
	"context"
	"time"

	"auralis-cli/internal/model"
	"auralis-cli/internal/mutate"
	"auralis-cli/internal/store"
)

// TaskAdd creates a todo task. A project wins over areaID; with neither the
// task lands in the default area.
func (s *Service) TaskAdd(ctx context.Context, title string, areaID, projectID *string) (*model.Task, error) {
	title, err := requireText("title", title)
	if err != nil {
		return nil, err
	}
	var tk *model.Task
	err = s.mutation(ctx, "task_add", model.KindTask, func(tx *store.Tx) (string, error) {
		var err error
		if tk, err = mutate.CreateTask(ctx, tx, title, areaID, projectID, s.defaultAreaID); err != nil {
			return "", err
		}
		return tk.ID, record(ctx, tx, "task.create", model.KindTask, tk.ID, tk)
	})
	if err != nil {
		return nil, err
	}
	return tk, nil
}

func (s *Service) TaskList(ctx context.Context, status string) ([]model.Task, error) {
	st, err := parseOptional(model.ParseTaskStatus, status)
	if err != nil {
		return nil, err
	}
	var out []model.Task
	err = s.view(ctx, "task_list", func(tx *store.Tx) error {
		var err error
		out, err = tx.ListTasks(ctx, store.TaskFilter{Status: st})
		return err
	})
	return out, err
}

// TaskListByProject fails with NotFound when the project does not exist.
func (s *Service) TaskListByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	projectID, err := requireID(model.KindProject, projectID)
	if err != nil {
		return nil, err
	}
	var out []model.Task
	err = s.view(ctx, "task_list_by_project", func(tx *store.Tx) error {
		if _, err := tx.GetProject(ctx, projectID); err != nil {
			return getErr(model.KindProject, projectID, err)
		}
		var err error
		out, err = tx.ListTasks(ctx, store.TaskFilter{ProjectID: &projectID})
		return err
	})
	return out, err
}

func (s *Service) TaskGet(ctx context.Context, id string) (*model.Task, error) {
	id, err := requireID(model.KindTask, id)
	if err != nil {
		return nil, err
	}
	var tk model.Task
	err = s.view(ctx, "task_get", func(tx *store.Tx) error {
		var err error
		if tk, err = tx.GetTask(ctx, id); err != nil {
			return getErr(model.KindTask, id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tk, nil
}

func (s *Service) TaskSetStatus(ctx context.Context, id, status string) (*model.Task, error) {
	id, err := requireID(model.KindTask, id)
	if err != nil {
		return nil, err
	}
	to, err := parse(model.ParseTaskStatus, status)
	if err != nil {
		return nil, err
	}
	return s.taskChange(ctx, "task_set_status", "task.set_status", id, func(tx *store.Tx) (mutate.SetTaskResult, error) {
		return mutate.SetTaskStatus(ctx, tx, id, to)
	})
}

func (s *Service) TaskSetPriority(ctx context.Context, id, priority string) (*model.Task, error) {
	id, err := requireID(model.KindTask, id)
	if err != nil {
		return nil, err
	}
	p, err := parse(model.ParsePriority, priority)
	if err != nil {
		return nil, err
	}
	return s.taskChange(ctx, "task_set_priority", "task.set_priority", id, func(tx *store.Tx) (mutate.SetTaskResult, error) {
		return mutate.SetTaskPriority(ctx, tx, id, p)
	})
}

// TaskSetDates replaces both dates; nil clears one.
func (s *Service) TaskSetDates(ctx context.Context, id string, due, scheduled *time.Time) (*model.Task, error) {
	id, err := requireID(model.KindTask, id)
	if err != nil {
		return nil, err
	}
	return s.taskChange(ctx, "task_set_dates", "task.set_dates", id, func(tx *store.Tx) (mutate.SetTaskResult, error) {
		return mutate.SetTaskDates(ctx, tx, id, due, scheduled)
	})
}

// TaskMove re-files a task with the same inheritance rules as TaskAdd.
func (s *Service) TaskMove(ctx context.Context, id string, areaID, projectID *string) (*model.Task, error) {
	id, err := requireID(model.KindTask, id)
	if err != nil {
		return nil, err
	}
	return s.taskChange(ctx, "task_move", "task.move", id, func(tx *store.Tx) (mutate.SetTaskResult, error) {
		return mutate.MoveTask(ctx, tx, id, areaID, projectID, s.defaultAreaID)
	})
}

func (s *Service) taskChange(ctx context.Context, op, eventType, id string, fn func(tx *store.Tx) (mutate.SetTaskResult, error)) (*model.Task, error) {
	var res mutate.SetTaskResult
	err := s.mutation(ctx, op, model.KindTask, func(tx *store.Tx) (string, error) {
		var err error
		if res, err = fn(tx); err != nil {
			return "", err
		}
		if !res.Changed {
			return id, nil
		}
		return id, record(ctx, tx, eventType, model.KindTask, id, res.EventPayload)
	})
	if err != nil {
		return nil, err
	}
	return res.Task, nil
}
