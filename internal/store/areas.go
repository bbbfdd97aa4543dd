package store

import (
	"context"
	"strings"

	"auralis-cli/internal/model"
)

const areaCols = `id, name, active, created_at, updated_at`

func scanArea(r rowScanner) (model.Area, error) {
	var (
		a                model.Area
		active           int
		created, updated string
	)
	if err := r.Scan(&a.ID, &a.Name, &active, &created, &updated); err != nil {
		return model.Area{}, err
	}
	a.Active = active != 0
	var err error
	if a.CreatedAt, err = parseTS(created); err != nil {
		return model.Area{}, err
	}
	if a.UpdatedAt, err = parseTS(updated); err != nil {
		return model.Area{}, err
	}
	return a, nil
}

// InsertArea stores a new area. Empty ID/timestamps are filled in from the transaction.
func (t *Tx) InsertArea(ctx context.Context, a *model.Area) error {
	t.stamp(&a.ID, model.KindArea, &a.CreatedAt, &a.UpdatedAt)
	_, err := t.exec(ctx, `INSERT INTO areas(`+areaCols+`) VALUES(?, ?, ?, ?, ?)`,
		a.ID, a.Name, boolToInt(a.Active), formatTS(a.CreatedAt), formatTS(a.UpdatedAt))
	return err
}

// EnsureArea inserts a unless a row with the same id exists. It reports whether a row was created.
func (t *Tx) EnsureArea(ctx context.Context, a *model.Area) (bool, error) {
	t.stamp(&a.ID, model.KindArea, &a.CreatedAt, &a.UpdatedAt)
	n, err := t.exec(ctx, `INSERT OR IGNORE INTO areas(`+areaCols+`) VALUES(?, ?, ?, ?, ?)`,
		a.ID, a.Name, boolToInt(a.Active), formatTS(a.CreatedAt), formatTS(a.UpdatedAt))
	return n > 0, err
}

func (t *Tx) GetArea(ctx context.Context, id string) (model.Area, error) {
	return queryOne(ctx, t, scanArea, `SELECT `+areaCols+` FROM areas WHERE id = ?`, strings.TrimSpace(id))
}

// ListAreas returns areas ordered by name.
func (t *Tx) ListAreas(ctx context.Context, onlyActive bool) ([]model.Area, error) {
	if onlyActive {
		return queryRows(ctx, t, scanArea, `SELECT `+areaCols+` FROM areas WHERE active = 1 ORDER BY name COLLATE NOCASE ASC, rowid ASC`)
	}
	return queryRows(ctx, t, scanArea, `SELECT `+areaCols+` FROM areas ORDER BY name COLLATE NOCASE ASC, rowid ASC`)
}

func (t *Tx) UpdateArea(ctx context.Context, a *model.Area) error {
	a.UpdatedAt = t.now
	return t.execOne(ctx, `UPDATE areas SET name = ?, active = ?, updated_at = ? WHERE id = ?`,
		a.Name, boolToInt(a.Active), formatTS(a.UpdatedAt), a.ID)
}
