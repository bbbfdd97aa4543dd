package store

import (
	"context"
	"strings"

	"auralis-cli/internal/model"
)

const inboxCols = `id, content, source, state, created_at, updated_at`

func scanInboxItem(r rowScanner) (model.InboxItem, error) {
	var (
		it               model.InboxItem
		source, state    string
		created, updated string
	)
	if err := r.Scan(&it.ID, &it.Content, &source, &state, &created, &updated); err != nil {
		return model.InboxItem{}, err
	}
	it.Source = model.InboxSource(source)
	it.State = model.InboxState(state)
	var err error
	if it.CreatedAt, err = parseTS(created); err != nil {
		return model.InboxItem{}, err
	}
	if it.UpdatedAt, err = parseTS(updated); err != nil {
		return model.InboxItem{}, err
	}
	return it, nil
}

func (t *Tx) InsertInboxItem(ctx context.Context, it *model.InboxItem) error {
	t.stamp(&it.ID, model.KindInbox, &it.CreatedAt, &it.UpdatedAt)
	_, err := t.exec(ctx, `INSERT INTO inbox_items(`+inboxCols+`) VALUES(?, ?, ?, ?, ?, ?)`,
		it.ID, it.Content, string(it.Source), string(it.State), formatTS(it.CreatedAt), formatTS(it.UpdatedAt))
	return err
}

func (t *Tx) GetInboxItem(ctx context.Context, id string) (model.InboxItem, error) {
	return queryOne(ctx, t, scanInboxItem, `SELECT `+inboxCols+` FROM inbox_items WHERE id = ?`, strings.TrimSpace(id))
}

// ListInboxItems returns captures in creation order, optionally restricted to one state.
func (t *Tx) ListInboxItems(ctx context.Context, state *model.InboxState) ([]model.InboxItem, error) {
	if state != nil {
		return queryRows(ctx, t, scanInboxItem, `SELECT `+inboxCols+` FROM inbox_items WHERE state = ? ORDER BY created_at ASC, rowid ASC`, string(*state))
	}
	return queryRows(ctx, t, scanInboxItem, `SELECT `+inboxCols+` FROM inbox_items ORDER BY created_at ASC, rowid ASC`)
}

func (t *Tx) UpdateInboxItem(ctx context.Context, it *model.InboxItem) error {
	it.UpdatedAt = t.now
	return t.execOne(ctx, `UPDATE inbox_items SET content = ?, source = ?, state = ?, updated_at = ? WHERE id = ?`,
		it.Content, string(it.Source), string(it.State), formatTS(it.UpdatedAt), it.ID)
}
