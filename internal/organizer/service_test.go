package organizer

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auralis-cli/internal/logging"
	"auralis-cli/internal/model"
	"auralis-cli/internal/mutate"
	"auralis-cli/internal/store"
)

const (
	testAreaID   = "area_admin_life"
	testAreaName = "Admin/Life"
)

func strPtr(s string) *string { return &s }

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(context.Background(), openStore(t), Options{DefaultAreaID: testAreaID, DefaultAreaName: testAreaName})
	require.NoError(t, err)
	return svc
}

func eventTypes(t *testing.T, svc *Service, entityID string) []string {
	t.Helper()
	evs, err := svc.EventsList(context.Background(), entityID, 0)
	require.NoError(t, err)
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Type)
	}
	return out
}

func TestEndToEndProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	a1, err := svc.AreaAdd(ctx, "Home")
	require.NoError(t, err)

	p1, err := svc.ProjectAdd(ctx, "Fix fence", &a1.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectPaused, p1.Status)
	assert.Equal(t, a1.ID, p1.AreaID)

	t1, err := svc.TaskAdd(ctx, "Buy nails", &a1.ID, &p1.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskTodo, t1.Status)

	_, err = svc.ProjectSetStatus(ctx, p1.ID, "active")
	require.NoError(t, err)

	done, err := svc.TaskSetStatus(ctx, t1.ID, "done")
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)

	_, err = svc.ProjectSetStatus(ctx, p1.ID, "completed")
	require.NoError(t, err)

	_, err = svc.ProjectSetStatus(ctx, p1.ID, "paused")
	var te mutate.InvalidTransitionError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, err.Error(), "completed")
	assert.Contains(t, err.Error(), "paused")

	got, err := svc.ProjectGet(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectCompleted, got.Status)

	assert.Equal(t, []string{"project.create", "project.set_status", "project.set_status"}, eventTypes(t, svc, p1.ID))
}

func TestProjectActivationNeedsOpenTask(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	p, err := svc.ProjectAdd(ctx, "Garden", nil)
	require.NoError(t, err)
	assert.Equal(t, testAreaID, p.AreaID)

	_, err = svc.ProjectSetStatus(ctx, p.ID, "active")
	assert.Equal(t, mutate.CodeGuardViolation, mutate.Code(err))

	_, err = svc.TaskAdd(ctx, "Dig beds", &p.AreaID, &p.ID)
	require.NoError(t, err)
	_, err = svc.ProjectSetStatus(ctx, p.ID, "active")
	require.NoError(t, err)

	got, err := svc.ProjectGet(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectActive, got.Status)
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.InboxAdd(ctx, "   ", "text")
	assert.Equal(t, mutate.CodeValidation, mutate.Code(err))

	_, err = svc.InboxAdd(ctx, "Call mum", "fax")
	var ve mutate.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "source", ve.Field)

	_, err = svc.InboxList(ctx, "pending")
	assert.Equal(t, mutate.CodeValidation, mutate.Code(err))

	_, err = svc.TaskAdd(ctx, "", nil, nil)
	assert.Equal(t, mutate.CodeValidation, mutate.Code(err))

	_, err = svc.AreaAdd(ctx, "\t")
	assert.Equal(t, mutate.CodeValidation, mutate.Code(err))

	_, err = svc.NoteAdd(ctx, "Title", " ", nil, nil)
	assert.Equal(t, mutate.CodeValidation, mutate.Code(err))

	tk, err := svc.TaskAdd(ctx, "Taxes", nil, nil)
	require.NoError(t, err)
	_, err = svc.TaskSetStatus(ctx, tk.ID, "finished")
	assert.Equal(t, mutate.CodeValidation, mutate.Code(err))
	_, err = svc.TaskSetPriority(ctx, tk.ID, "urgent")
	assert.Equal(t, mutate.CodeValidation, mutate.Code(err))

	// Enum parsing is case-insensitive.
	_, err = svc.TaskSetPriority(ctx, tk.ID, "HIGH")
	require.NoError(t, err)

	// Nothing invalid reached the store.
	items, err := svc.InboxList(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.InboxSetState(ctx, "inbox_missing", "archived")
	assert.Equal(t, mutate.CodeNotFound, mutate.Code(err))
	_, err = svc.InboxConvertToTask(ctx, "inbox_missing")
	assert.Equal(t, mutate.CodeNotFound, mutate.Code(err))
	_, err = svc.TaskSetStatus(ctx, "task_missing", "done")
	assert.Equal(t, mutate.CodeNotFound, mutate.Code(err))
	_, err = svc.TaskListByProject(ctx, "project_missing")
	assert.Equal(t, mutate.CodeNotFound, mutate.Code(err))
	_, err = svc.ProjectGet(ctx, "project_missing")
	assert.Equal(t, mutate.CodeNotFound, mutate.Code(err))
	_, err = svc.AreaSetActive(ctx, "area_missing", false)
	assert.Equal(t, mutate.CodeNotFound, mutate.Code(err))
	_, err = svc.NoteGet(ctx, "note_missing")
	assert.Equal(t, mutate.CodeNotFound, mutate.Code(err))
	err = svc.NoteDelete(ctx, "note_missing")
	assert.Equal(t, mutate.CodeNotFound, mutate.Code(err))
}

func TestInboxConvertToTask(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	it, err := svc.InboxAdd(ctx, "Renew passport", "voice")
	require.NoError(t, err)
	assert.Equal(t, model.InboxUnprocessed, it.State)

	tk, err := svc.InboxConvertToTask(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renew passport", tk.Title)
	assert.Equal(t, model.TaskTodo, tk.Status)
	assert.Equal(t, testAreaID, tk.AreaID)
	assert.Nil(t, tk.ProjectID)

	got, err := svc.InboxGet(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InboxProcessed, got.State)

	assert.Equal(t, []string{"inbox.create", "inbox.convert"}, eventTypes(t, svc, it.ID))
	assert.Equal(t, []string{"task.create"}, eventTypes(t, svc, tk.ID))

	_, err = svc.InboxSetState(ctx, it.ID, "archived")
	require.NoError(t, err)
	_, err = svc.InboxConvertToTask(ctx, it.ID)
	assert.Equal(t, mutate.CodeInvalidTransition, mutate.Code(err))

	tasks, err := svc.TaskList(ctx, "")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestNoOpTransitionsRecordNothing(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	it, err := svc.InboxAdd(ctx, "Idea", "")
	require.NoError(t, err)
	assert.Equal(t, model.SourceText, it.Source)

	again, err := svc.InboxSetState(ctx, it.ID, "unprocessed")
	require.NoError(t, err)
	assert.True(t, it.CreatedAt.Equal(again.CreatedAt))
	assert.Equal(t, []string{"inbox.create"}, eventTypes(t, svc, it.ID))

	a, err := svc.AreaAdd(ctx, "Work")
	require.NoError(t, err)
	_, err = svc.AreaSetActive(ctx, a.ID, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"area.create"}, eventTypes(t, svc, a.ID))
}

func TestListsFollowCreationOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	home, err := svc.AreaAdd(ctx, "Home")
	require.NoError(t, err)
	p, err := svc.ProjectAdd(ctx, "Shed", &home.ID)
	require.NoError(t, err)

	var want []string
	for _, title := range []string{"Plan", "Buy wood", "Build"} {
		n, err := svc.NoteAdd(ctx, title, "content for "+title, nil, &p.ID)
		require.NoError(t, err)
		assert.Equal(t, home.ID, model.Deref(n.AreaID))
		want = append(want, n.ID)
	}
	_, err = svc.NoteAdd(ctx, "Unrelated", "c", &home.ID, nil)
	require.NoError(t, err)

	notes, err := svc.NoteList(ctx, nil, &p.ID)
	require.NoError(t, err)
	var got []string
	for _, n := range notes {
		got = append(got, n.ID)
	}
	assert.Equal(t, want, got)

	byArea, err := svc.NoteList(ctx, &home.ID, nil)
	require.NoError(t, err)
	assert.Len(t, byArea, 4)

	// Project filter wins over area filter.
	both, err := svc.NoteList(ctx, &home.ID, &p.ID)
	require.NoError(t, err)
	assert.Len(t, both, 3)

	_, err = svc.AreaAdd(ctx, "Admin")
	require.NoError(t, err)
	areas, err := svc.AreaList(ctx, false)
	require.NoError(t, err)
	var names []string
	for _, a := range areas {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Admin", "Admin/Life", "Home"}, names)
}

func TestNoteLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	n, err := svc.NoteAdd(ctx, "Recipe", "flour, water", nil, nil)
	require.NoError(t, err)

	_, err = svc.NoteUpdate(ctx, n.ID, "Recipe", "flour, water", strPtr("area_missing"), nil)
	assert.Equal(t, mutate.CodeInvalidReference, mutate.Code(err))

	up, err := svc.NoteUpdate(ctx, n.ID, "Bread", "flour, water, salt", strPtr(testAreaID), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bread", up.Title)
	assert.Equal(t, testAreaID, model.Deref(up.AreaID))

	require.NoError(t, svc.NoteDelete(ctx, n.ID))
	_, err = svc.NoteGet(ctx, n.ID)
	assert.Equal(t, mutate.CodeNotFound, mutate.Code(err))

	assert.Equal(t, []string{"note.create", "note.update", "note.delete"}, eventTypes(t, svc, n.ID))
}

func TestTaskDatesAndMove(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	work, err := svc.AreaAdd(ctx, "Work")
	require.NoError(t, err)
	p, err := svc.ProjectAdd(ctx, "Launch", &work.ID)
	require.NoError(t, err)
	tk, err := svc.TaskAdd(ctx, "Write copy", nil, nil)
	require.NoError(t, err)

	due := time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)
	dated, err := svc.TaskSetDates(ctx, tk.ID, &due, nil)
	require.NoError(t, err)
	require.NotNil(t, dated.DueAt)
	assert.True(t, due.Equal(*dated.DueAt))

	moved, err := svc.TaskMove(ctx, tk.ID, nil, &p.ID)
	require.NoError(t, err)
	assert.Equal(t, work.ID, moved.AreaID)

	byProject, err := svc.TaskListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, byProject, 1)
	assert.Equal(t, tk.ID, byProject[0].ID)

	home, err := svc.AreaAdd(ctx, "Home")
	require.NoError(t, err)
	_, err = svc.ProjectMove(ctx, p.ID, home.ID)
	require.NoError(t, err)
	got, err := svc.TaskGet(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, home.ID, got.AreaID)
}

func TestNew_SeedsDefaultAreaOnce(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	for i := 0; i < 2; i++ {
		_, err := New(ctx, st, Options{DefaultAreaID: testAreaID, DefaultAreaName: testAreaName})
		require.NoError(t, err)
	}
	svc, err := New(ctx, st, Options{DefaultAreaID: testAreaID, DefaultAreaName: testAreaName})
	require.NoError(t, err)

	areas, err := svc.AreaList(ctx, true)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, testAreaName, areas[0].Name)

	_, err = New(ctx, st, Options{})
	assert.Error(t, err)
}

func TestConcurrentWritesAreSerialized(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	tk, err := svc.TaskAdd(ctx, "Contended", nil, nil)
	require.NoError(t, err)

	statuses := []string{"doing", "done", "todo", "deferred"}
	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := svc.TaskSetStatus(ctx, tk.ID, statuses[i%len(statuses)])
			errs <- err
		}(i)
		go func() {
			defer wg.Done()
			_, err := svc.InboxAdd(ctx, "capture", "text")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	items, err := svc.InboxList(ctx, "unprocessed")
	require.NoError(t, err)
	assert.Len(t, items, 20)

	got, err := svc.TaskGet(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Status == model.TaskDone, got.CompletedAt != nil)
}

func TestStoreFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	var buf bytes.Buffer
	svc, err := New(ctx, st, Options{
		DefaultAreaID:   testAreaID,
		DefaultAreaName: testAreaName,
		Logger:          logging.New(&buf, slog.LevelDebug),
	})
	require.NoError(t, err)

	_, err = svc.AreaAdd(ctx, "Home")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "op=area_add")

	require.NoError(t, st.Close())
	_, err = svc.AreaAdd(ctx, "Work")
	var sf mutate.StoreFailure
	require.True(t, errors.As(err, &sf))
	assert.Equal(t, mutate.CodeStoreFailure, mutate.Code(err))
	assert.Contains(t, buf.String(), "store failure")
}
