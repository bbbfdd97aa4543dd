package organizer

import (
	"context"
	"strings"

	"auralis-cli/internal/model"
	"auralis-cli/internal/mutate"
	"auralis-cli/internal/store"
)

// NoteAdd stores a note. When projectID is set the note takes the project's area.
func (s *Service) NoteAdd(ctx context.Context, title, content string, areaID, projectID *string) (*model.Note, error) {
	title, content, err := noteText(title, content)
	if err != nil {
		return nil, err
	}
	var n *model.Note
	err = s.mutation(ctx, "note_add", model.KindNote, func(tx *store.Tx) (string, error) {
		var err error
		if n, err = mutate.CreateNote(ctx, tx, title, content, areaID, projectID); err != nil {
			return "", err
		}
		return n.ID, record(ctx, tx, "note.create", model.KindNote, n.ID, map[string]any{
			"title":     n.Title,
			"areaId":    n.AreaID,
			"projectId": n.ProjectID,
		})
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// NoteList filters by project when projectID is set, else by area, else returns all notes.
func (s *Service) NoteList(ctx context.Context, areaID, projectID *string) ([]model.Note, error) {
	f := store.NoteFilter{
		AreaID:    model.StrPtr(strings.TrimSpace(model.Deref(areaID))),
		ProjectID: model.StrPtr(strings.TrimSpace(model.Deref(projectID))),
	}
	var out []model.Note
	err := s.view(ctx, "note_list", func(tx *store.Tx) error {
		var err error
		out, err = tx.ListNotes(ctx, f)
		return err
	})
	return out, err
}

func (s *Service) NoteGet(ctx context.Context, id string) (*model.Note, error) {
	id, err := requireID(model.KindNote, id)
	if err != nil {
		return nil, err
	}
	var n model.Note
	err = s.view(ctx, "note_get", func(tx *store.Tx) error {
		var err error
		if n, err = tx.GetNote(ctx, id); err != nil {
			return getErr(model.KindNote, id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// NoteUpdate replaces every field of the note, references included.
func (s *Service) NoteUpdate(ctx context.Context, id, title, content string, areaID, projectID *string) (*model.Note, error) {
	id, err := requireID(model.KindNote, id)
	if err != nil {
		return nil, err
	}
	title, content, err = noteText(title, content)
	if err != nil {
		return nil, err
	}
	var res mutate.UpdateNoteResult
	err = s.mutation(ctx, "note_update", model.KindNote, func(tx *store.Tx) (string, error) {
		var err error
		if res, err = mutate.UpdateNote(ctx, tx, id, title, content, areaID, projectID); err != nil {
			return "", err
		}
		if !res.Changed {
			return id, nil
		}
		return id, record(ctx, tx, "note.update", model.KindNote, id, res.EventPayload)
	})
	if err != nil {
		return nil, err
	}
	return res.Note, nil
}

func (s *Service) NoteDelete(ctx context.Context, id string) error {
	id, err := requireID(model.KindNote, id)
	if err != nil {
		return err
	}
	return s.mutation(ctx, "note_delete", model.KindNote, func(tx *store.Tx) (string, error) {
		if err := mutate.DeleteNote(ctx, tx, id); err != nil {
			return "", err
		}
		return id, record(ctx, tx, "note.delete", model.KindNote, id, map[string]any{"id": id})
	})
}

func noteText(title, content string) (string, string, error) {
	title, err := requireText("title", title)
	if err != nil {
		return "", "", err
	}
	content, err = requireText("content", content)
	if err != nil {
		return "", "", err
	}
	return title, content, nil
}
