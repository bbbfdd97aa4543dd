package organizer

import (
	"context"

	"auralis-cli/internal/model"
	"auralis-cli/internal/mutate"
	"auralis-cli/internal/store"
)

// InboxAdd captures raw content. An empty source defaults to text.
func (s *Service) InboxAdd(ctx context.Context, content, source string) (*model.InboxItem, error) {
	content, err := requireText("content", content)
	if err != nil {
		return nil, err
	}
	src := model.SourceText
	if source != "" {
		if src, err = parse(model.ParseInboxSource, source); err != nil {
			return nil, err
		}
	}

	var it *model.InboxItem
	err = s.mutation(ctx, "inbox_add", model.KindInbox, func(tx *store.Tx) (string, error) {
		var err error
		if it, err = mutate.CreateInboxItem(ctx, tx, content, src); err != nil {
			return "", err
		}
		return it.ID, record(ctx, tx, "inbox.create", model.KindInbox, it.ID, it)
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

// InboxList returns items in capture order, optionally filtered by state.
func (s *Service) InboxList(ctx context.Context, state string) ([]model.InboxItem, error) {
	st, err := parseOptional(model.ParseInboxState, state)
	if err != nil {
		return nil, err
	}
	var out []model.InboxItem
	err = s.view(ctx, "inbox_list", func(tx *store.Tx) error {
		var err error
		out, err = tx.ListInboxItems(ctx, st)
		return err
	})
	return out, err
}

func (s *Service) InboxGet(ctx context.Context, id string) (*model.InboxItem, error) {
	id, err := requireID(model.KindInbox, id)
	if err != nil {
		return nil, err
	}
	var it model.InboxItem
	err = s.view(ctx, "inbox_get", func(tx *store.Tx) error {
		var err error
		if it, err = tx.GetInboxItem(ctx, id); err != nil {
			return getErr(model.KindInbox, id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *Service) InboxSetState(ctx context.Context, id, state string) (*model.InboxItem, error) {
	id, err := requireID(model.KindInbox, id)
	if err != nil {
		return nil, err
	}
	to, err := parse(model.ParseInboxState, state)
	if err != nil {
		return nil, err
	}

	var res mutate.SetInboxStateResult
	err = s.mutation(ctx, "inbox_set_state", model.KindInbox, func(tx *store.Tx) (string, error) {
		var err error
		if res, err = mutate.SetInboxState(ctx, tx, id, to); err != nil {
			return "", err
		}
		if !res.Changed {
			return id, nil
		}
		return id, record(ctx, tx, "inbox.set_state", model.KindInbox, id, res.EventPayload)
	})
	if err != nil {
		return nil, err
	}
	return res.Item, nil
}

// InboxConvertToTask turns an item into a todo task in the default area and
// marks it processed, atomically.
func (s *Service) InboxConvertToTask(ctx context.Context, id string) (*model.Task, error) {
	id, err := requireID(model.KindInbox, id)
	if err != nil {
		return nil, err
	}

	var res mutate.ConvertResult
	err = s.mutation(ctx, "inbox_convert_to_task", model.KindTask, func(tx *store.Tx) (string, error) {
		var err error
		if res, err = mutate.ConvertInboxToTask(ctx, tx, id, s.defaultAreaID); err != nil {
			return "", err
		}
		if err := record(ctx, tx, "task.create", model.KindTask, res.Task.ID, res.Task); err != nil {
			return "", err
		}
		payload := map[string]any{"taskId": res.Task.ID}
		if res.Inbox.Changed {
			for k, v := range res.Inbox.EventPayload {
				payload[k] = v
			}
		}
		return res.Task.ID, record(ctx, tx, "inbox.convert", model.KindInbox, id, payload)
	})
	if err != nil {
		return nil, err
	}
	return res.Task, nil
}
