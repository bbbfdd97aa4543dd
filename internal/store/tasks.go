package store

import (
	"context"
	"database/sql"
	"strings"

	"auralis-cli/internal/model"
)

const taskCols = `id, area_id, project_id, title, status, priority, due_at, scheduled_at, completed_at, created_at, updated_at`

type TaskFilter struct {
	Status    *model.TaskStatus
	ProjectID *string
}

func scanTask(r rowScanner) (model.Task, error) {
	var (
		tk                        model.Task
		projectID                 sql.NullString
		status, priority          string
		due, scheduled, completed sql.NullString
		created, updated          string
	)
	if err := r.Scan(&tk.ID, &tk.AreaID, &projectID, &tk.Title, &status, &priority, &due, &scheduled, &completed, &created, &updated); err != nil {
		return model.Task{}, err
	}
	tk.ProjectID = strNull(projectID)
	tk.Status = model.TaskStatus(status)
	tk.Priority = model.Priority(priority)

	var err error
	if tk.DueAt, err = parseTSNull(due); err != nil {
		return model.Task{}, err
	}
	if tk.ScheduledAt, err = parseTSNull(scheduled); err != nil {
		return model.Task{}, err
	}
	if tk.CompletedAt, err = parseTSNull(completed); err != nil {
		return model.Task{}, err
	}
	if tk.CreatedAt, err = parseTS(created); err != nil {
		return model.Task{}, err
	}
	if tk.UpdatedAt, err = parseTS(updated); err != nil {
		return model.Task{}, err
	}
	return tk, nil
}

func (t *Tx) InsertTask(ctx context.Context, tk *model.Task) error {
	t.stamp(&tk.ID, model.KindTask, &tk.CreatedAt, &tk.UpdatedAt)
	_, err := t.exec(ctx, `INSERT INTO tasks(`+taskCols+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tk.ID, tk.AreaID, nullableStr(tk.ProjectID), tk.Title,
		string(tk.Status), string(tk.Priority),
		formatTSPtr(tk.DueAt), formatTSPtr(tk.ScheduledAt), formatTSPtr(tk.CompletedAt),
		formatTS(tk.CreatedAt), formatTS(tk.UpdatedAt),
	)
	return err
}

func (t *Tx) GetTask(ctx context.Context, id string) (model.Task, error) {
	return queryOne(ctx, t, scanTask, `SELECT `+taskCols+` FROM tasks WHERE id = ?`, strings.TrimSpace(id))
}

// ListTasks returns tasks in creation order. Zero-value filter fields match everything.
func (t *Tx) ListTasks(ctx context.Context, f TaskFilter) ([]model.Task, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*f.Status))
	}
	if f.ProjectID != nil {
		where = append(where, "project_id = ?")
		args = append(args, *f.ProjectID)
	}
	q := `SELECT ` + taskCols + ` FROM tasks`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at ASC, rowid ASC`
	return queryRows(ctx, t, scanTask, q, args...)
}

// CountOpenTasks counts tasks of projectID whose status is todo or doing.
func (t *Tx) CountOpenTasks(ctx context.Context, projectID string) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM tasks WHERE project_id = ? AND status IN ('todo', 'doing')`,
		strings.TrimSpace(projectID),
	).Scan(&n)
	return n, err
}

// UpdateTask writes every mutable column of tk in one statement.
func (t *Tx) UpdateTask(ctx context.Context, tk *model.Task) error {
	tk.UpdatedAt = t.now
	return t.execOne(ctx, `UPDATE tasks SET
			area_id = ?, project_id = ?, title = ?, status = ?, priority = ?,
			due_at = ?, scheduled_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`,
		tk.AreaID, nullableStr(tk.ProjectID), tk.Title, string(tk.Status), string(tk.Priority),
		formatTSPtr(tk.DueAt), formatTSPtr(tk.ScheduledAt), formatTSPtr(tk.CompletedAt), formatTS(tk.UpdatedAt),
		tk.ID,
	)
}

// MoveProjectTasks re-points the area of every task under projectID. It returns the number of tasks moved.
func (t *Tx) MoveProjectTasks(ctx context.Context, projectID, areaID string) (int64, error) {
	return t.exec(ctx, `UPDATE tasks SET area_id = ?, updated_at = ? WHERE project_id = ? AND area_id <> ?`,
		areaID, formatTS(t.now), projectID, areaID)
}
