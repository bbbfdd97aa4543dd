package store

import (
	"context"
	"encoding/json"
	"strings"

	"auralis-cli/internal/model"
)

func scanEvent(r rowScanner) (model.Event, error) {
	var (
		ev          model.Event
		ts, kind    string
		payloadJSON string
	)
	if err := r.Scan(&ev.ID, &ts, &ev.Type, &kind, &ev.EntityID, &payloadJSON); err != nil {
		return model.Event{}, err
	}
	ev.EntityKind = model.Kind(kind)
	var err error
	if ev.TS, err = parseTS(ts); err != nil {
		return model.Event{}, err
	}
	if payloadJSON != "" && payloadJSON != "null" {
		if err := json.Unmarshal([]byte(payloadJSON), &ev.Payload); err != nil {
			return model.Event{}, err
		}
	}
	return ev, nil
}

// AppendEvent records a mutation in the history table as part of the current transaction.
func (t *Tx) AppendEvent(ctx context.Context, typ string, kind model.Kind, entityID string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = t.exec(ctx, `INSERT INTO events(id, ts, type, entity_kind, entity_id, payload_json) VALUES(?, ?, ?, ?, ?, ?)`,
		newEventID(), formatTS(t.now), typ, string(kind), entityID, string(b))
	return err
}

// ListEvents returns the last limit events (all when limit <= 0), oldest first.
// An empty entityID matches every entity.
func (t *Tx) ListEvents(ctx context.Context, entityID string, limit int) ([]model.Event, error) {
	entityID = strings.TrimSpace(entityID)
	q := `SELECT id, ts, type, entity_kind, entity_id, payload_json FROM events`
	var args []any
	if entityID != "" {
		q += ` WHERE entity_id = ?`
		args = append(args, entityID)
	}
	q += ` ORDER BY ts DESC, rowid DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	evs, err := queryRows(ctx, t, scanEvent, q, args...)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(evs)-1; i < j; i, j = i+1, j-1 {
		evs[i], evs[j] = evs[j], evs[i]
	}
	return evs, nil
}
