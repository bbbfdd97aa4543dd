package mutate

import (
	"context"
	"strings"

	"auralis-cli/internal/model"
	"auralis-cli/internal/store"
)

type ConvertResult struct {
	Task  *model.Task
	Inbox SetInboxStateResult
}

// ConvertInboxToTask creates a todo task titled with the item's content in the default
// area and marks the item processed. Both writes happen on tx, so they commit together
// or not at all. An archived item cannot be converted.
func ConvertInboxToTask(ctx context.Context, tx *store.Tx, id, defaultAreaID string) (ConvertResult, error) {
	id = strings.TrimSpace(id)
	it, err := tx.GetInboxItem(ctx, id)
	if err != nil {
		return ConvertResult{}, lookupErr(model.KindInbox, id, "get inbox item", err)
	}
	// Check the state edge before creating anything.
	if err := CheckInboxTransition(id, it.State, model.InboxProcessed); err != nil {
		return ConvertResult{}, err
	}

	tk, err := CreateTask(ctx, tx, it.Content, nil, nil, defaultAreaID)
	if err != nil {
		return ConvertResult{}, err
	}
	res, err := SetInboxState(ctx, tx, id, model.InboxProcessed)
	if err != nil {
		return ConvertResult{}, err
	}
	return ConvertResult{Task: tk, Inbox: res}, nil
}
