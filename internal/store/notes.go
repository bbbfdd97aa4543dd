package store

import (
	"context"
	"database/sql"
	"strings"

	"auralis-cli/internal/model"
)

const noteCols = `id, title, content, area_id, project_id, created_at, updated_at`

// NoteFilter selects notes by project (takes precedence) or by area. Both nil lists all notes.
type NoteFilter struct {
	AreaID    *string
	ProjectID *string
}

func scanNote(r rowScanner) (model.Note, error) {
	var (
		n                 model.Note
		areaID, projectID sql.NullString
		created, updated  string
	)
	if err := r.Scan(&n.ID, &n.Title, &n.Content, &areaID, &projectID, &created, &updated); err != nil {
		return model.Note{}, err
	}
	n.AreaID = strNull(areaID)
	n.ProjectID = strNull(projectID)
	var err error
	if n.CreatedAt, err = parseTS(created); err != nil {
		return model.Note{}, err
	}
	if n.UpdatedAt, err = parseTS(updated); err != nil {
		return model.Note{}, err
	}
	return n, nil
}

func (t *Tx) InsertNote(ctx context.Context, n *model.Note) error {
	t.stamp(&n.ID, model.KindNote, &n.CreatedAt, &n.UpdatedAt)
	_, err := t.exec(ctx, `INSERT INTO notes(`+noteCols+`) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Content, nullableStr(n.AreaID), nullableStr(n.ProjectID), formatTS(n.CreatedAt), formatTS(n.UpdatedAt))
	return err
}

func (t *Tx) GetNote(ctx context.Context, id string) (model.Note, error) {
	return queryOne(ctx, t, scanNote, `SELECT `+noteCols+` FROM notes WHERE id = ?`, strings.TrimSpace(id))
}

func (t *Tx) ListNotes(ctx context.Context, f NoteFilter) ([]model.Note, error) {
	const order = ` ORDER BY created_at ASC, rowid ASC`
	switch {
	case f.ProjectID != nil:
		return queryRows(ctx, t, scanNote, `SELECT `+noteCols+` FROM notes WHERE project_id = ?`+order, *f.ProjectID)
	case f.AreaID != nil:
		return queryRows(ctx, t, scanNote, `SELECT `+noteCols+` FROM notes WHERE area_id = ?`+order, *f.AreaID)
	default:
		return queryRows(ctx, t, scanNote, `SELECT `+noteCols+` FROM notes`+order)
	}
}

func (t *Tx) UpdateNote(ctx context.Context, n *model.Note) error {
	n.UpdatedAt = t.now
	return t.execOne(ctx, `UPDATE notes SET title = ?, content = ?, area_id = ?, project_id = ?, updated_at = ? WHERE id = ?`,
		n.Title, n.Content, nullableStr(n.AreaID), nullableStr(n.ProjectID), formatTS(n.UpdatedAt), n.ID)
}

func (t *Tx) DeleteNote(ctx context.Context, id string) error {
	return t.execOne(ctx, `DELETE FROM notes WHERE id = ?`, strings.TrimSpace(id))
}

// MoveProjectNotes re-points the area of every note under projectID.
func (t *Tx) MoveProjectNotes(ctx context.Context, projectID, areaID string) (int64, error) {
	return t.exec(ctx, `UPDATE notes SET area_id = ?, updated_at = ? WHERE project_id = ? AND (area_id IS NULL OR area_id <> ?)`,
		areaID, formatTS(t.now), projectID, areaID)
}
