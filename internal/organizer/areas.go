package organizer

import (
	"context"

	"auralis-cli/internal/model"
	"auralis-cli/internal/mutate"
	"auralis-cli/internal/store"
)

func (s *Service) AreaAdd(ctx context.Context, name string) (*model.Area, error) {
	name, err := requireText("name", name)
	if err != nil {
		return nil, err
	}
	var a *model.Area
	err = s.mutation(ctx, "area_add", model.KindArea, func(tx *store.Tx) (string, error) {
		var err error
		if a, err = mutate.CreateArea(ctx, tx, name); err != nil {
			return "", err
		}
		return a.ID, record(ctx, tx, "area.create", model.KindArea, a.ID, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// AreaList returns areas sorted by name.
func (s *Service) AreaList(ctx context.Context, onlyActive bool) ([]model.Area, error) {
	var out []model.Area
	err := s.view(ctx, "area_list", func(tx *store.Tx) error {
		var err error
		out, err = tx.ListAreas(ctx, onlyActive)
		return err
	})
	return out, err
}

func (s *Service) AreaGet(ctx context.Context, id string) (*model.Area, error) {
	id, err := requireID(model.KindArea, id)
	if err != nil {
		return nil, err
	}
	var a model.Area
	err = s.view(ctx, "area_get", func(tx *store.Tx) error {
		var err error
		if a, err = tx.GetArea(ctx, id); err != nil {
			return getErr(model.KindArea, id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AreaSetActive toggles the active flag. Projects and tasks of the area are untouched.
func (s *Service) AreaSetActive(ctx context.Context, id string, active bool) (*model.Area, error) {
	id, err := requireID(model.KindArea, id)
	if err != nil {
		return nil, err
	}
	var res mutate.SetAreaActiveResult
	err = s.mutation(ctx, "area_set_active", model.KindArea, func(tx *store.Tx) (string, error) {
		var err error
		if res, err = mutate.SetAreaActive(ctx, tx, id, active); err != nil {
			return "", err
		}
		if !res.Changed {
			return id, nil
		}
		return id, record(ctx, tx, "area.set_active", model.KindArea, id, res.EventPayload)
	})
	if err != nil {
		return nil, err
	}
	return res.Area, nil
}
