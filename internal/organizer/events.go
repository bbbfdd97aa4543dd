package organizer

import (
	"context"
	"strings"

	"auralis-cli/internal/model"
	"auralis-cli/internal/store"
)

// EventsList returns the most recent limit events (all when limit <= 0), oldest first.
func (s *Service) EventsList(ctx context.Context, entityID string, limit int) ([]model.Event, error) {
	entityID = strings.TrimSpace(entityID)
	var out []model.Event
	err := s.view(ctx, "events_list", func(tx *store.Tx) error {
		var err error
		out, err = tx.ListEvents(ctx, entityID, limit)
		return err
	})
	return out, err
}
