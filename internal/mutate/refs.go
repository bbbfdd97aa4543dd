package mutate

import (
	"context"
	"errors"
	"strings"

	"auralis-cli/internal/model"
	"auralis-cli/internal/store"
)

// TaskRefs are the resolved references a task is stored with.
type TaskRefs struct {
	AreaID    string
	ProjectID *string
}

// ResolveTaskRefs applies area inheritance: a project always wins over an explicit
// area; without a project the explicit area is used, else defaultAreaID.
func ResolveTaskRefs(ctx context.Context, tx *store.Tx, areaID, projectID *string, defaultAreaID string) (TaskRefs, error) {
	if pid := trimRef(projectID); pid != "" {
		p, err := requireProject(ctx, tx, pid)
		if err != nil {
			return TaskRefs{}, err
		}
		return TaskRefs{AreaID: p.AreaID, ProjectID: &p.ID}, nil
	}
	aid, err := ResolveProjectArea(ctx, tx, areaID, defaultAreaID)
	if err != nil {
		return TaskRefs{}, err
	}
	return TaskRefs{AreaID: aid}, nil
}

// ResolveProjectArea returns the area a project belongs to: the explicit one when
// given, else defaultAreaID. The area must exist.
func ResolveProjectArea(ctx context.Context, tx *store.Tx, areaID *string, defaultAreaID string) (string, error) {
	aid := trimRef(areaID)
	if aid == "" {
		aid = strings.TrimSpace(defaultAreaID)
	}
	if aid == "" {
		return "", InvalidReferenceError{Kind: model.KindArea, Reason: "no area given and no default area configured"}
	}
	a, err := requireArea(ctx, tx, aid)
	if err != nil {
		return "", err
	}
	return a.ID, nil
}

// NoteRefs are the resolved optional references of a note.
type NoteRefs struct {
	AreaID    *string
	ProjectID *string
}

// ResolveNoteRefs validates a note's optional references. With a project the area
// is set to the project's area regardless of the supplied one.
func ResolveNoteRefs(ctx context.Context, tx *store.Tx, areaID, projectID *string) (NoteRefs, error) {
	if pid := trimRef(projectID); pid != "" {
		p, err := requireProject(ctx, tx, pid)
		if err != nil {
			return NoteRefs{}, err
		}
		return NoteRefs{AreaID: &p.AreaID, ProjectID: &p.ID}, nil
	}
	if aid := trimRef(areaID); aid != "" {
		a, err := requireArea(ctx, tx, aid)
		if err != nil {
			return NoteRefs{}, err
		}
		return NoteRefs{AreaID: &a.ID}, nil
	}
	return NoteRefs{}, nil
}

func requireArea(ctx context.Context, tx *store.Tx, id string) (model.Area, error) {
	a, err := tx.GetArea(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Area{}, InvalidReferenceError{Kind: model.KindArea, ID: id}
	}
	if err != nil {
		return model.Area{}, StoreFailure{Op: "get area", Err: err}
	}
	return a, nil
}

func requireProject(ctx context.Context, tx *store.Tx, id string) (model.Project, error) {
	p, err := tx.GetProject(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Project{}, InvalidReferenceError{Kind: model.KindProject, ID: id}
	}
	if err != nil {
		return model.Project{}, StoreFailure{Op: "get project", Err: err}
	}
	return p, nil
}

func trimRef(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
