package mutate

import (
	"context"
	"errors"
	"strings"
	"time"

	"auralis-cli/internal/model"
	"auralis-cli/internal/store"
)

type SetInboxStateResult struct {
	Item         *model.InboxItem
	Changed      bool
	EventPayload map[string]any
}

// SetInboxState moves an inbox item along unprocessed -> processed -> archived.
// Callers are responsible for appending the inbox.set_state event when Changed.
func SetInboxState(ctx context.Context, tx *store.Tx, id string, state model.InboxState) (SetInboxStateResult, error) {
	id = strings.TrimSpace(id)
	it, err := tx.GetInboxItem(ctx, id)
	if err != nil {
		return SetInboxStateResult{}, lookupErr(model.KindInbox, id, "get inbox item", err)
	}
	if err := CheckInboxTransition(id, it.State, state); err != nil {
		return SetInboxStateResult{}, err
	}
	if it.State == state {
		return SetInboxStateResult{Item: &it, Changed: false}, nil
	}

	prev := it.State
	it.State = state
	if err := tx.UpdateInboxItem(ctx, &it); err != nil {
		return SetInboxStateResult{}, lookupErr(model.KindInbox, id, "update inbox item", err)
	}
	return SetInboxStateResult{
		Item:    &it,
		Changed: true,
		EventPayload: map[string]any{
			"from": string(prev),
			"to":   string(it.State),
		},
	}, nil
}

type SetTaskResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// SetTaskStatus applies any status change. Entering done stamps CompletedAt with the
// transaction time; leaving done clears it.
func SetTaskStatus(ctx context.Context, tx *store.Tx, id string, status model.TaskStatus) (SetTaskResult, error) {
	id = strings.TrimSpace(id)
	tk, err := tx.GetTask(ctx, id)
	if err != nil {
		return SetTaskResult{}, lookupErr(model.KindTask, id, "get task", err)
	}
	if tk.Status == status {
		return SetTaskResult{Task: &tk, Changed: false}, nil
	}

	prev := tk.Status
	tk.Status = status
	if status == model.TaskDone {
		now := tx.Now()
		tk.CompletedAt = &now
	} else {
		tk.CompletedAt = nil
	}
	if err := tx.UpdateTask(ctx, &tk); err != nil {
		return SetTaskResult{}, lookupErr(model.KindTask, id, "update task", err)
	}
	payload := map[string]any{
		"from": string(prev),
		"to":   string(tk.Status),
	}
	if tk.CompletedAt != nil {
		payload["completedAt"] = tk.CompletedAt.Format(time.RFC3339Nano)
	}
	return SetTaskResult{Task: &tk, Changed: true, EventPayload: payload}, nil
}

func SetTaskPriority(ctx context.Context, tx *store.Tx, id string, priority model.Priority) (SetTaskResult, error) {
	id = strings.TrimSpace(id)
	tk, err := tx.GetTask(ctx, id)
	if err != nil {
		return SetTaskResult{}, lookupErr(model.KindTask, id, "get task", err)
	}
	if tk.Priority == priority {
		return SetTaskResult{Task: &tk, Changed: false}, nil
	}
	prev := tk.Priority
	tk.Priority = priority
	if err := tx.UpdateTask(ctx, &tk); err != nil {
		return SetTaskResult{}, lookupErr(model.KindTask, id, "update task", err)
	}
	return SetTaskResult{
		Task:         &tk,
		Changed:      true,
		EventPayload: map[string]any{"from": string(prev), "to": string(tk.Priority)},
	}, nil
}

// SetTaskDates replaces both the due and scheduled timestamps (nil clears).
func SetTaskDates(ctx context.Context, tx *store.Tx, id string, due, scheduled *time.Time) (SetTaskResult, error) {
	id = strings.TrimSpace(id)
	tk, err := tx.GetTask(ctx, id)
	if err != nil {
		return SetTaskResult{}, lookupErr(model.KindTask, id, "get task", err)
	}
	if timePtrEqual(tk.DueAt, due) && timePtrEqual(tk.ScheduledAt, scheduled) {
		return SetTaskResult{Task: &tk, Changed: false}, nil
	}
	tk.DueAt = due
	tk.ScheduledAt = scheduled
	if err := tx.UpdateTask(ctx, &tk); err != nil {
		return SetTaskResult{}, lookupErr(model.KindTask, id, "update task", err)
	}
	return SetTaskResult{
		Task:    &tk,
		Changed: true,
		EventPayload: map[string]any{
			"dueAt":       tk.DueAt,
			"scheduledAt": tk.ScheduledAt,
		},
	}, nil
}

type SetProjectResult struct {
	Project      *model.Project
	Changed      bool
	EventPayload map[string]any
}

// SetProjectStatus enforces the project state machine. Becoming active requires at
// least one open task owned by the project; completed is terminal.
func SetProjectStatus(ctx context.Context, tx *store.Tx, id string, status model.ProjectStatus) (SetProjectResult, error) {
	id = strings.TrimSpace(id)
	p, err := tx.GetProject(ctx, id)
	if err != nil {
		return SetProjectResult{}, lookupErr(model.KindProject, id, "get project", err)
	}

	open := 0
	if status == model.ProjectActive && p.Status != model.ProjectActive {
		if open, err = tx.CountOpenTasks(ctx, id); err != nil {
			return SetProjectResult{}, StoreFailure{Op: "count open tasks", Err: err}
		}
	}
	if err := CheckProjectTransition(id, p.Status, status, open); err != nil {
		return SetProjectResult{}, err
	}
	if p.Status == status {
		return SetProjectResult{Project: &p, Changed: false}, nil
	}

	prev := p.Status
	p.Status = status
	if err := tx.UpdateProject(ctx, &p); err != nil {
		return SetProjectResult{}, lookupErr(model.KindProject, id, "update project", err)
	}
	return SetProjectResult{
		Project: &p,
		Changed: true,
		EventPayload: map[string]any{
			"from": string(prev),
			"to":   string(p.Status),
		},
	}, nil
}

type SetAreaActiveResult struct {
	Area         *model.Area
	Changed      bool
	EventPayload map[string]any
}

// SetAreaActive toggles the active flag. Deactivation does not touch projects, tasks or notes.
func SetAreaActive(ctx context.Context, tx *store.Tx, id string, active bool) (SetAreaActiveResult, error) {
	id = strings.TrimSpace(id)
	a, err := tx.GetArea(ctx, id)
	if err != nil {
		return SetAreaActiveResult{}, lookupErr(model.KindArea, id, "get area", err)
	}
	if a.Active == active {
		return SetAreaActiveResult{Area: &a, Changed: false}, nil
	}
	a.Active = active
	if err := tx.UpdateArea(ctx, &a); err != nil {
		return SetAreaActiveResult{}, lookupErr(model.KindArea, id, "update area", err)
	}
	return SetAreaActiveResult{
		Area:         &a,
		Changed:      true,
		EventPayload: map[string]any{"active": a.Active},
	}, nil
}

// lookupErr maps store.ErrNotFound to NotFoundError and everything else to StoreFailure.
func lookupErr(kind model.Kind, id, op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return NotFoundError{Kind: kind, ID: id}
	}
	return StoreFailure{Op: op, Err: err}
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
