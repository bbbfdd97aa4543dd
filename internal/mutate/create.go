package mutate

import (
	"context"
	"strings"

	"auralis-cli/internal/model"
	"auralis-cli/internal/store"
)

// Create* functions expect already-validated input (trimmed, non-empty text and parsed enums).
// Callers are responsible for appending the <kind>.create event.

func CreateArea(ctx context.Context, tx *store.Tx, name string) (*model.Area, error) {
	a := model.Area{Name: name, Active: true}
	if err := tx.InsertArea(ctx, &a); err != nil {
		return nil, StoreFailure{Op: "insert area", Err: err}
	}
	return &a, nil
}

func CreateProject(ctx context.Context, tx *store.Tx, name string, areaID *string, defaultAreaID string) (*model.Project, error) {
	aid, err := ResolveProjectArea(ctx, tx, areaID, defaultAreaID)
	if err != nil {
		return nil, err
	}
	p := model.Project{AreaID: aid, Name: name, Status: model.ProjectPaused}
	if err := tx.InsertProject(ctx, &p); err != nil {
		return nil, StoreFailure{Op: "insert project", Err: err}
	}
	return &p, nil
}

func CreateTask(ctx context.Context, tx *store.Tx, title string, areaID, projectID *string, defaultAreaID string) (*model.Task, error) {
	refs, err := ResolveTaskRefs(ctx, tx, areaID, projectID, defaultAreaID)
	if err != nil {
		return nil, err
	}
	tk := model.Task{
		AreaID:    refs.AreaID,
		ProjectID: refs.ProjectID,
		Title:     title,
		Status:    model.TaskTodo,
		Priority:  model.PriorityNormal,
	}
	if err := tx.InsertTask(ctx, &tk); err != nil {
		return nil, StoreFailure{Op: "insert task", Err: err}
	}
	return &tk, nil
}

func CreateInboxItem(ctx context.Context, tx *store.Tx, content string, source model.InboxSource) (*model.InboxItem, error) {
	it := model.InboxItem{Content: content, Source: source, State: model.InboxUnprocessed}
	if err := tx.InsertInboxItem(ctx, &it); err != nil {
		return nil, StoreFailure{Op: "insert inbox item", Err: err}
	}
	return &it, nil
}

func CreateNote(ctx context.Context, tx *store.Tx, title, content string, areaID, projectID *string) (*model.Note, error) {
	refs, err := ResolveNoteRefs(ctx, tx, areaID, projectID)
	if err != nil {
		return nil, err
	}
	n := model.Note{Title: title, Content: content, AreaID: refs.AreaID, ProjectID: refs.ProjectID}
	if err := tx.InsertNote(ctx, &n); err != nil {
		return nil, StoreFailure{Op: "insert note", Err: err}
	}
	return &n, nil
}

type UpdateNoteResult struct {
	Note         *model.Note
	Changed      bool
	EventPayload map[string]any
}

// UpdateNote replaces title, content and both references of a note.
func UpdateNote(ctx context.Context, tx *store.Tx, id, title, content string, areaID, projectID *string) (UpdateNoteResult, error) {
	id = strings.TrimSpace(id)
	n, err := tx.GetNote(ctx, id)
	if err != nil {
		return UpdateNoteResult{}, lookupErr(model.KindNote, id, "get note", err)
	}
	refs, err := ResolveNoteRefs(ctx, tx, areaID, projectID)
	if err != nil {
		return UpdateNoteResult{}, err
	}
	if n.Title == title && n.Content == content &&
		model.Deref(n.AreaID) == model.Deref(refs.AreaID) &&
		model.Deref(n.ProjectID) == model.Deref(refs.ProjectID) {
		return UpdateNoteResult{Note: &n, Changed: false}, nil
	}
	n.Title = title
	n.Content = content
	n.AreaID = refs.AreaID
	n.ProjectID = refs.ProjectID
	if err := tx.UpdateNote(ctx, &n); err != nil {
		return UpdateNoteResult{}, lookupErr(model.KindNote, id, "update note", err)
	}
	return UpdateNoteResult{
		Note:    &n,
		Changed: true,
		EventPayload: map[string]any{
			"title":     n.Title,
			"areaId":    n.AreaID,
			"projectId": n.ProjectID,
		},
	}, nil
}

func DeleteNote(ctx context.Context, tx *store.Tx, id string) error {
	id = strings.TrimSpace(id)
	if err := tx.DeleteNote(ctx, id); err != nil {
		return lookupErr(model.KindNote, id, "delete note", err)
	}
	return nil
}

// MoveTask re-resolves a task's references with the same rules as creation.
func MoveTask(ctx context.Context, tx *store.Tx, id string, areaID, projectID *string, defaultAreaID string) (SetTaskResult, error) {
	id = strings.TrimSpace(id)
	tk, err := tx.GetTask(ctx, id)
	if err != nil {
		return SetTaskResult{}, lookupErr(model.KindTask, id, "get task", err)
	}
	refs, err := ResolveTaskRefs(ctx, tx, areaID, projectID, defaultAreaID)
	if err != nil {
		return SetTaskResult{}, err
	}
	if tk.AreaID == refs.AreaID && model.Deref(tk.ProjectID) == model.Deref(refs.ProjectID) {
		return SetTaskResult{Task: &tk, Changed: false}, nil
	}
	tk.AreaID = refs.AreaID
	tk.ProjectID = refs.ProjectID
	if err := tx.UpdateTask(ctx, &tk); err != nil {
		return SetTaskResult{}, lookupErr(model.KindTask, id, "update task", err)
	}
	return SetTaskResult{
		Task:         &tk,
		Changed:      true,
		EventPayload: map[string]any{"areaId": tk.AreaID, "projectId": tk.ProjectID},
	}, nil
}

// MoveProject changes a project's area and carries its tasks and notes along so
// they keep inheriting the project's area.
func MoveProject(ctx context.Context, tx *store.Tx, id, areaID string) (SetProjectResult, error) {
	id = strings.TrimSpace(id)
	p, err := tx.GetProject(ctx, id)
	if err != nil {
		return SetProjectResult{}, lookupErr(model.KindProject, id, "get project", err)
	}
	a, err := requireArea(ctx, tx, strings.TrimSpace(areaID))
	if err != nil {
		return SetProjectResult{}, err
	}
	if p.AreaID == a.ID {
		return SetProjectResult{Project: &p, Changed: false}, nil
	}
	prev := p.AreaID
	p.AreaID = a.ID
	if err := tx.UpdateProject(ctx, &p); err != nil {
		return SetProjectResult{}, lookupErr(model.KindProject, id, "update project", err)
	}
	tasks, err := tx.MoveProjectTasks(ctx, p.ID, a.ID)
	if err != nil {
		return SetProjectResult{}, StoreFailure{Op: "move project tasks", Err: err}
	}
	notes, err := tx.MoveProjectNotes(ctx, p.ID, a.ID)
	if err != nil {
		return SetProjectResult{}, StoreFailure{Op: "move project notes", Err: err}
	}
	return SetProjectResult{
		Project: &p,
		Changed: true,
		EventPayload: map[string]any{
			"from":       prev,
			"to":         p.AreaID,
			"movedTasks": tasks,
			"movedNotes": notes,
		},
	}, nil
}
