package mutate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auralis-cli/internal/model"
	"auralis-cli/internal/store"
)

func TestCreateTask_ProjectAreaWins(t *testing.T) {
	s := newTestStore(t)

	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		home, err := CreateArea(ctx, tx, "Home")
		require.NoError(t, err)
		work, err := CreateArea(ctx, tx, "Work")
		require.NoError(t, err)
		p, err := CreateProject(ctx, tx, "Fix fence", &home.ID, testDefaultArea)
		require.NoError(t, err)

		tk, err := CreateTask(ctx, tx, "Buy nails", &work.ID, &p.ID, testDefaultArea)
		require.NoError(t, err)
		assert.Equal(t, home.ID, tk.AreaID)
		require.NotNil(t, tk.ProjectID)
		assert.Equal(t, p.ID, *tk.ProjectID)

		// A bogus explicit area is ignored when a project is given.
		tk2, err := CreateTask(ctx, tx, "Paint", strPtr("area_nope"), &p.ID, testDefaultArea)
		require.NoError(t, err)
		assert.Equal(t, home.ID, tk2.AreaID)
		return nil
	})
}

func TestCreateTask_Defaults(t *testing.T) {
	s := newTestStore(t)

	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		tk, err := CreateTask(ctx, tx, "Loose end", nil, nil, testDefaultArea)
		require.NoError(t, err)
		assert.Equal(t, testDefaultArea, tk.AreaID)
		assert.Nil(t, tk.ProjectID)
		assert.Equal(t, model.TaskTodo, tk.Status)

		blank := "   "
		tk, err = CreateTask(ctx, tx, "Blank refs", &blank, &blank, testDefaultArea)
		require.NoError(t, err)
		assert.Equal(t, testDefaultArea, tk.AreaID)
		return nil
	})
}

func TestCreateTask_InvalidReferences(t *testing.T) {
	s := newTestStore(t)

	err := txErr(s, func(ctx context.Context, tx *store.Tx) error {
		_, err := CreateTask(ctx, tx, "x", nil, strPtr("project_missing"), testDefaultArea)
		return err
	})
	assert.Equal(t, CodeInvalidReference, Code(err))

	err = txErr(s, func(ctx context.Context, tx *store.Tx) error {
		_, err := CreateTask(ctx, tx, "x", strPtr("area_missing"), nil, testDefaultArea)
		return err
	})
	assert.Equal(t, CodeInvalidReference, Code(err))

	err = txErr(s, func(ctx context.Context, tx *store.Tx) error {
		_, err := CreateProject(ctx, tx, "x", strPtr("area_missing"), testDefaultArea)
		return err
	})
	assert.Equal(t, CodeInvalidReference, Code(err))

	err = txErr(s, func(ctx context.Context, tx *store.Tx) error {
		_, err := CreateProject(ctx, tx, "x", nil, "")
		return err
	})
	assert.Equal(t, CodeInvalidReference, Code(err))
}

func TestNoteRefs_AreaFollowsProject(t *testing.T) {
	s := newTestStore(t)

	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		home, err := CreateArea(ctx, tx, "Home")
		require.NoError(t, err)
		work, err := CreateArea(ctx, tx, "Work")
		require.NoError(t, err)
		p, err := CreateProject(ctx, tx, "Fence", &home.ID, testDefaultArea)
		require.NoError(t, err)

		n, err := CreateNote(ctx, tx, "Ideas", "wood or metal", &work.ID, &p.ID)
		require.NoError(t, err)
		require.NotNil(t, n.AreaID)
		assert.Equal(t, home.ID, *n.AreaID)

		n2, err := CreateNote(ctx, tx, "Only project", "c", nil, &p.ID)
		require.NoError(t, err)
		assert.Equal(t, home.ID, model.Deref(n2.AreaID))

		n3, err := CreateNote(ctx, tx, "Loose", "c", nil, nil)
		require.NoError(t, err)
		assert.Nil(t, n3.AreaID)
		assert.Nil(t, n3.ProjectID)

		res, err := UpdateNote(ctx, tx, n3.ID, "Loose", "c", &work.ID, nil)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, work.ID, model.Deref(res.Note.AreaID))
		return nil
	})

	err := txErr(s, func(ctx context.Context, tx *store.Tx) error {
		_, err := CreateNote(ctx, tx, "t", "c", nil, strPtr("project_missing"))
		return err
	})
	assert.Equal(t, CodeInvalidReference, Code(err))

	err = txErr(s, func(ctx context.Context, tx *store.Tx) error {
		_, err := UpdateNote(ctx, tx, "note_missing", "t", "c", nil, nil)
		return err
	})
	assert.Equal(t, CodeNotFound, Code(err))

	err = txErr(s, func(ctx context.Context, tx *store.Tx) error {
		return DeleteNote(ctx, tx, "note_missing")
	})
	assert.Equal(t, CodeNotFound, Code(err))
}

func TestMoveProject_CarriesTasksAndNotes(t *testing.T) {
	s := newTestStore(t)

	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		home, err := CreateArea(ctx, tx, "Home")
		require.NoError(t, err)
		work, err := CreateArea(ctx, tx, "Work")
		require.NoError(t, err)
		p, err := CreateProject(ctx, tx, "Shed", &home.ID, testDefaultArea)
		require.NoError(t, err)
		tk, err := CreateTask(ctx, tx, "Plan", nil, &p.ID, testDefaultArea)
		require.NoError(t, err)
		n, err := CreateNote(ctx, tx, "Sketch", "c", nil, &p.ID)
		require.NoError(t, err)

		res, err := MoveProject(ctx, tx, p.ID, work.ID)
		require.NoError(t, err)
		assert.True(t, res.Changed)

		gotTask, err := tx.GetTask(ctx, tk.ID)
		require.NoError(t, err)
		assert.Equal(t, work.ID, gotTask.AreaID)
		gotNote, err := tx.GetNote(ctx, n.ID)
		require.NoError(t, err)
		assert.Equal(t, work.ID, model.Deref(gotNote.AreaID))

		_, err = MoveProject(ctx, tx, p.ID, "area_missing")
		assert.Equal(t, CodeInvalidReference, Code(err))
		return nil
	})
}

func TestMoveTask_ReappliesInheritance(t *testing.T) {
	s := newTestStore(t)

	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		home, err := CreateArea(ctx, tx, "Home")
		require.NoError(t, err)
		p, err := CreateProject(ctx, tx, "Shed", &home.ID, testDefaultArea)
		require.NoError(t, err)
		tk, err := CreateTask(ctx, tx, "Loose", nil, nil, testDefaultArea)
		require.NoError(t, err)

		res, err := MoveTask(ctx, tx, tk.ID, nil, &p.ID, testDefaultArea)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, home.ID, res.Task.AreaID)

		res, err = MoveTask(ctx, tx, tk.ID, nil, nil, testDefaultArea)
		require.NoError(t, err)
		assert.Nil(t, res.Task.ProjectID)
		assert.Equal(t, testDefaultArea, res.Task.AreaID)
		return nil
	})
}
