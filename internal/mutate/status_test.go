package mutate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auralis-cli/internal/model"
	"auralis-cli/internal/store"
)

func TestCheckInboxTransition(t *testing.T) {
	cases := []struct {
		from, to model.InboxState
		ok       bool
	}{
		{model.InboxUnprocessed, model.InboxProcessed, true},
		{model.InboxUnprocessed, model.InboxArchived, true},
		{model.InboxProcessed, model.InboxArchived, true},
		{model.InboxProcessed, model.InboxProcessed, true},
		{model.InboxArchived, model.InboxArchived, true},
		{model.InboxArchived, model.InboxUnprocessed, false},
		{model.InboxArchived, model.InboxProcessed, false},
		{model.InboxProcessed, model.InboxUnprocessed, false},
	}
	for _, tc := range cases {
		err := CheckInboxTransition("inbox_x", tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			continue
		}
		var te InvalidTransitionError
		require.True(t, errors.As(err, &te), "%s -> %s", tc.from, tc.to)
		assert.Contains(t, te.Error(), string(tc.from))
		assert.Contains(t, te.Error(), string(tc.to))
	}
}

func TestCheckProjectTransition(t *testing.T) {
	cases := []struct {
		from, to model.ProjectStatus
		open     int
		code     string
	}{
		{model.ProjectPaused, model.ProjectActive, 1, ""},
		{model.ProjectPaused, model.ProjectActive, 0, CodeGuardViolation},
		{model.ProjectActive, model.ProjectPaused, 0, ""},
		{model.ProjectActive, model.ProjectCompleted, 0, ""},
		{model.ProjectPaused, model.ProjectCompleted, 0, ""},
		{model.ProjectPaused, model.ProjectPaused, 0, ""},
		{model.ProjectActive, model.ProjectActive, 0, ""},
		{model.ProjectCompleted, model.ProjectPaused, 5, CodeInvalidTransition},
		{model.ProjectCompleted, model.ProjectActive, 5, CodeInvalidTransition},
		{model.ProjectCompleted, model.ProjectCompleted, 5, CodeInvalidTransition},
	}
	for _, tc := range cases {
		err := CheckProjectTransition("project_x", tc.from, tc.to, tc.open)
		assert.Equal(t, tc.code, Code(err), "%s -> %s (open=%d)", tc.from, tc.to, tc.open)
	}
}

func TestSetInboxState_IdempotentKeepsCreatedAt(t *testing.T) {
	s := newTestStore(t)

	var it *model.InboxItem
	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		var err error
		it, err = CreateInboxItem(ctx, tx, "Call dentist", model.SourceVoice)
		return err
	})

	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		res, err := SetInboxState(ctx, tx, it.ID, model.InboxUnprocessed)
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.True(t, it.CreatedAt.Equal(res.Item.CreatedAt))
		return nil
	})

	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		res, err := SetInboxState(ctx, tx, it.ID, model.InboxArchived)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, "unprocessed", res.EventPayload["from"])
		return nil
	})

	err := txErr(s, func(ctx context.Context, tx *store.Tx) error {
		_, err := SetInboxState(ctx, tx, it.ID, model.InboxUnprocessed)
		return err
	})
	assert.Equal(t, CodeInvalidTransition, Code(err))

	err = txErr(s, func(ctx context.Context, tx *store.Tx) error {
		_, err := SetInboxState(ctx, tx, "inbox_missing", model.InboxArchived)
		return err
	})
	assert.Equal(t, CodeNotFound, Code(err))
}

func TestSetTaskStatus_CompletedAtFollowsDone(t *testing.T) {
	s := newTestStore(t)

	var tk *model.Task
	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		var err error
		tk, err = CreateTask(ctx, tx, "Write report", nil, nil, testDefaultArea)
		return err
	})
	assert.Nil(t, tk.CompletedAt)

	steps := []struct {
		to        model.TaskStatus
		completed bool
	}{
		{model.TaskDoing, false},
		{model.TaskDone, true},
		{model.TaskDone, true},
		{model.TaskTodo, false},
		{model.TaskDeferred, false},
		{model.TaskDone, true},
		{model.TaskDoing, false},
	}
	for _, st := range steps {
		inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
			_, err := SetTaskStatus(ctx, tx, tk.ID, st.to)
			require.NoError(t, err)
			got, err := tx.GetTask(ctx, tk.ID)
			require.NoError(t, err)
			assert.Equal(t, st.to, got.Status)
			assert.Equal(t, st.completed, got.CompletedAt != nil, "after -> %s", st.to)
			return nil
		})
	}
}

func TestSetProjectStatus_ActivationGuard(t *testing.T) {
	s := newTestStore(t)

	var p *model.Project
	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		var err error
		p, err = CreateProject(ctx, tx, "Fix fence", nil, testDefaultArea)
		return err
	})
	assert.Equal(t, model.ProjectPaused, p.Status)

	err := txErr(s, func(ctx context.Context, tx *store.Tx) error {
		_, err := SetProjectStatus(ctx, tx, p.ID, model.ProjectActive)
		return err
	})
	var gv GuardViolationError
	require.True(t, errors.As(err, &gv))
	assert.Contains(t, gv.Error(), "no open task")

	// A done task does not satisfy the guard.
	var tk *model.Task
	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		var err error
		tk, err = CreateTask(ctx, tx, "Buy nails", nil, &p.ID, testDefaultArea)
		require.NoError(t, err)
		_, err = SetTaskStatus(ctx, tx, tk.ID, model.TaskDone)
		return err
	})
	err = txErr(s, func(ctx context.Context, tx *store.Tx) error {
		_, err := SetProjectStatus(ctx, tx, p.ID, model.ProjectActive)
		return err
	})
	assert.Equal(t, CodeGuardViolation, Code(err))

	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		_, err := SetTaskStatus(ctx, tx, tk.ID, model.TaskDoing)
		require.NoError(t, err)
		res, err := SetProjectStatus(ctx, tx, p.ID, model.ProjectActive)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		return nil
	})

	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		_, err := SetProjectStatus(ctx, tx, p.ID, model.ProjectCompleted)
		return err
	})
	for _, to := range []model.ProjectStatus{model.ProjectPaused, model.ProjectActive, model.ProjectCompleted} {
		err := txErr(s, func(ctx context.Context, tx *store.Tx) error {
			_, err := SetProjectStatus(ctx, tx, p.ID, to)
			return err
		})
		assert.Equal(t, CodeInvalidTransition, Code(err), "completed -> %s", to)
	}
}

func TestSetAreaActive_DoesNotCascade(t *testing.T) {
	s := newTestStore(t)

	var (
		a *model.Area
		p *model.Project
	)
	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		var err error
		a, err = CreateArea(ctx, tx, "Work")
		require.NoError(t, err)
		p, err = CreateProject(ctx, tx, "Launch", &a.ID, testDefaultArea)
		return err
	})

	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		res, err := SetAreaActive(ctx, tx, a.ID, false)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		res, err = SetAreaActive(ctx, tx, a.ID, false)
		require.NoError(t, err)
		assert.False(t, res.Changed)

		got, err := tx.GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.AreaID)

		// Inactive areas still accept new work.
		_, err = CreateTask(ctx, tx, "Draft", &a.ID, nil, testDefaultArea)
		return err
	})

	err := txErr(s, func(ctx context.Context, tx *store.Tx) error {
		_, err := SetAreaActive(ctx, tx, "area_missing", true)
		return err
	})
	assert.Equal(t, CodeNotFound, Code(err))
}

func TestSetTaskPriorityAndDates(t *testing.T) {
	s := newTestStore(t)

	var tk *model.Task
	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		var err error
		tk, err = CreateTask(ctx, tx, "Taxes", nil, nil, testDefaultArea)
		return err
	})
	assert.Equal(t, model.PriorityNormal, tk.Priority)

	inTx(t, s, func(ctx context.Context, tx *store.Tx) error {
		res, err := SetTaskPriority(ctx, tx, tk.ID, model.PriorityHigh)
		require.NoError(t, err)
		assert.True(t, res.Changed)

		due := tx.Now().AddDate(0, 0, 7)
		res, err = SetTaskDates(ctx, tx, tk.ID, &due, nil)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		res, err = SetTaskDates(ctx, tx, tk.ID, &due, nil)
		require.NoError(t, err)
		assert.False(t, res.Changed)

		got, err := tx.GetTask(ctx, tk.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PriorityHigh, got.Priority)
		require.NotNil(t, got.DueAt)
		assert.Nil(t, got.ScheduledAt)
		return nil
	})
}
