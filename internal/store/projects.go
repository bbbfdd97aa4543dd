package store

import (
	"context"
	"strings"

	"auralis-cli/internal/model"
)

const projectCols = `id, area_id, name, status, created_at, updated_at`

func scanProject(r rowScanner) (model.Project, error) {
	var (
		p                model.Project
		status           string
		created, updated string
	)
	if err := r.Scan(&p.ID, &p.AreaID, &p.Name, &status, &created, &updated); err != nil {
		return model.Project{}, err
	}
	p.Status = model.ProjectStatus(status)
	var err error
	if p.CreatedAt, err = parseTS(created); err != nil {
		return model.Project{}, err
	}
	if p.UpdatedAt, err = parseTS(updated); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func (t *Tx) InsertProject(ctx context.Context, p *model.Project) error {
	t.stamp(&p.ID, model.KindProject, &p.CreatedAt, &p.UpdatedAt)
	_, err := t.exec(ctx, `INSERT INTO projects(`+projectCols+`) VALUES(?, ?, ?, ?, ?, ?)`,
		p.ID, p.AreaID, p.Name, string(p.Status), formatTS(p.CreatedAt), formatTS(p.UpdatedAt))
	return err
}

func (t *Tx) GetProject(ctx context.Context, id string) (model.Project, error) {
	return queryOne(ctx, t, scanProject, `SELECT `+projectCols+` FROM projects WHERE id = ?`, strings.TrimSpace(id))
}

// ListProjects returns projects in creation order, optionally restricted to one status.
func (t *Tx) ListProjects(ctx context.Context, status *model.ProjectStatus) ([]model.Project, error) {
	if status != nil {
		return queryRows(ctx, t, scanProject, `SELECT `+projectCols+` FROM projects WHERE status = ? ORDER BY created_at ASC, rowid ASC`, string(*status))
	}
	return queryRows(ctx, t, scanProject, `SELECT `+projectCols+` FROM projects ORDER BY created_at ASC, rowid ASC`)
}

func (t *Tx) UpdateProject(ctx context.Context, p *model.Project) error {
	p.UpdatedAt = t.now
	return t.execOne(ctx, `UPDATE projects SET area_id = ?, name = ?, status = ?, updated_at = ? WHERE id = ?`,
		p.AreaID, p.Name, string(p.Status), formatTS(p.UpdatedAt), p.ID)
}
