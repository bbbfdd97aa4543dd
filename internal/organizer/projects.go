package organizer

import (
	"context"

	"auralis-cli/internal/model"
	"auralis-cli/internal/mutate"
	"auralis-cli/internal/store"
)

// ProjectAdd creates a paused project in areaID, or the default area when nil.
func (s *Service) ProjectAdd(ctx context.Context, name string, areaID *string) (*model.Project, error) {
	name, err := requireText("name", name)
	if err != nil {
		return nil, err
	}
	var p *model.Project
	err = s.mutation(ctx, "project_add", model.KindProject, func(tx *store.Tx) (string, error) {
		var err error
		if p, err = mutate.CreateProject(ctx, tx, name, areaID, s.defaultAreaID); err != nil {
			return "", err
		}
		return p.ID, record(ctx, tx, "project.create", model.KindProject, p.ID, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ProjectList(ctx context.Context, status string) ([]model.Project, error) {
	st, err := parseOptional(model.ParseProjectStatus, status)
	if err != nil {
		return nil, err
	}
	var out []model.Project
	err = s.view(ctx, "project_list", func(tx *store.Tx) error {
		var err error
		out, err = tx.ListProjects(ctx, st)
		return err
	})
	return out, err
}

func (s *Service) ProjectGet(ctx context.Context, id string) (*model.Project, error) {
	id, err := requireID(model.KindProject, id)
	if err != nil {
		return nil, err
	}
	var p model.Project
	err = s.view(ctx, "project_get", func(tx *store.Tx) error {
		var err error
		if p, err = tx.GetProject(ctx, id); err != nil {
			return getErr(model.KindProject, id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProjectSetStatus enforces the project state machine, including the rule that
// a project needs an open task to become active.
func (s *Service) ProjectSetStatus(ctx context.Context, id, status string) (*model.Project, error) {
	id, err := requireID(model.KindProject, id)
	if err != nil {
		return nil, err
	}
	to, err := parse(model.ParseProjectStatus, status)
	if err != nil {
		return nil, err
	}
	return s.projectChange(ctx, "project_set_status", "project.set_status", id, func(tx *store.Tx) (mutate.SetProjectResult, error) {
		return mutate.SetProjectStatus(ctx, tx, id, to)
	})
}

// ProjectMove moves a project and all of its tasks and notes to areaID.
func (s *Service) ProjectMove(ctx context.Context, id, areaID string) (*model.Project, error) {
	id, err := requireID(model.KindProject, id)
	if err != nil {
		return nil, err
	}
	areaID, err = requireID(model.KindArea, areaID)
	if err != nil {
		return nil, err
	}
	return s.projectChange(ctx, "project_move", "project.move", id, func(tx *store.Tx) (mutate.SetProjectResult, error) {
		return mutate.MoveProject(ctx, tx, id, areaID)
	})
}

func (s *Service) projectChange(ctx context.Context, op, eventType, id string, fn func(tx *store.Tx) (mutate.SetProjectResult, error)) (*model.Project, error) {
	var res mutate.SetProjectResult
	err := s.mutation(ctx, op, model.KindProject, func(tx *store.Tx) (string, error) {
		var err error
		if res, err = fn(tx); err != nil {
			return "", err
		}
		if !res.Changed {
			return id, nil
		}
		return id, record(ctx, tx, eventType, model.KindProject, id, res.EventPayload)
	})
	if err != nil {
		return nil, err
	}
	return res.Project, nil
}
