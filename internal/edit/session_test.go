package edit

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskflow-client/internal/apperror"
	"taskflow-client/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	items   map[string]entity.Task
	err     error
	started chan struct{}
	release chan struct{}
	updates int
}

func newFakeTarget(tasks ...entity.Task) *fakeTarget {
	items := make(map[string]entity.Task, len(tasks))
	for _, t := range tasks {
		items[t.Id] = t
	}
	return &fakeTarget{items: items}
}

func (f *fakeTarget) Find(id string) (entity.Task, bool) {
	t, ok := f.items[id]
	return t, ok
}

func (f *fakeTarget) Update(ctx context.Context, id string, item entity.Task) (entity.Task, error) {
	f.updates++
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	if f.err != nil {
		return entity.Task{}, f.err
	}
	f.items[id] = item
	return item, nil
}

var writeDocs = entity.Task{Id: "t1", Title: "Write docs", Description: "README", Status: entity.TaskStatusPending, ProjectId: "p1"}

func TestSaveFailureKeepsDraftAndCollection(t *testing.T) {
	target := newFakeTarget(writeDocs)
	target.err = apperror.Remote(apperror.KindUpdate, 500, "Server error")
	s := NewSession[entity.Task](target, nil)

	s.Open(writeDocs)
	require.NoError(t, s.MutateField("status", "Completed"))

	_, err := s.Save(context.Background())

	assert.True(t, errors.Is(err, apperror.ErrUpdate))
	assert.Equal(t, StateEditing, s.State())
	draft, ok := s.Draft()
	require.True(t, ok)
	assert.Equal(t, entity.TaskStatusCompleted, draft.Status)
	stored, _ := target.Find("t1")
	assert.Equal(t, entity.TaskStatusPending, stored.Status)
}

func TestSaveSuccessCloses(t *testing.T) {
	target := newFakeTarget(writeDocs)
	s := NewSession[entity.Task](target, nil)

	require.NoError(t, s.OpenById("t1"))
	require.NoError(t, s.MutateField("title", "Write better docs"))

	saved, err := s.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Write better docs", saved.Title)
	assert.Equal(t, StateClosed, s.State())
	_, ok := s.Draft()
	assert.False(t, ok)
}

func TestDraftIsACopy(t *testing.T) {
	target := newFakeTarget(writeDocs)
	s := NewSession[entity.Task](target, nil)

	require.NoError(t, s.OpenById("t1"))
	require.NoError(t, s.MutateField("title", "Changed"))

	stored, _ := target.Find("t1")
	assert.Equal(t, "Write docs", stored.Title)
	assert.Zero(t, target.updates)
}

func TestDiscardThenOpenYieldsFreshDraft(t *testing.T) {
	target := newFakeTarget(writeDocs)
	s := NewSession[entity.Task](target, nil)

	require.NoError(t, s.OpenById("t1"))
	require.NoError(t, s.MutateField("description", "scribbles"))
	s.Discard()
	assert.Equal(t, StateClosed, s.State())

	require.NoError(t, s.OpenById("t1"))
	draft, _ := s.Draft()
	assert.Equal(t, writeDocs, draft)
}

func TestOpeningAnotherItemDiscardsDraft(t *testing.T) {
	other := entity.Task{Id: "t2", Title: "Review", Description: "PR", Status: entity.TaskStatusInProgress}
	target := newFakeTarget(writeDocs, other)
	s := NewSession[entity.Task](target, nil)

	require.NoError(t, s.OpenById("t1"))
	require.NoError(t, s.MutateField("title", "unsaved"))
	require.NoError(t, s.OpenById("t2"))

	draft, ok := s.Draft()
	require.True(t, ok)
	assert.Equal(t, other, draft)
}

func TestMutateFieldRules(t *testing.T) {
	s := NewSession[entity.Task](newFakeTarget(writeDocs), nil)

	assert.ErrorIs(t, s.MutateField("title", "x"), ErrNotEditing)
	_, err := s.Save(context.Background())
	assert.ErrorIs(t, err, ErrNotEditing)

	s.Open(writeDocs)
	assert.True(t, errors.Is(s.MutateField("status", "Someday"), apperror.ErrValidation))
	assert.True(t, errors.Is(s.MutateField("projectId", "p9"), apperror.ErrValidation))
	draft, _ := s.Draft()
	assert.Equal(t, writeDocs, draft)
}

func TestOpenByIdUnknown(t *testing.T) {
	s := NewSession[entity.Task](newFakeTarget(), nil)
	assert.True(t, errors.Is(s.OpenById("missing"), apperror.ErrUpdate))
	assert.Equal(t, StateClosed, s.State())
}

func TestSaveInFlight(t *testing.T) {
	target := newFakeTarget(writeDocs)
	target.started = make(chan struct{}, 1)
	target.release = make(chan struct{})
	s := NewSession[entity.Task](target, nil)
	s.Open(writeDocs)

	done := make(chan error, 1)
	go func() {
		_, err := s.Save(context.Background())
		done <- err
	}()
	select {
	case <-target.started:
	case <-time.After(2 * time.Second):
		t.Fatal("save never reached the target")
	}

	assert.Equal(t, StateSaving, s.State())
	_, err := s.Save(context.Background())
	assert.True(t, errors.Is(err, apperror.ErrBusy))
	assert.True(t, errors.Is(s.MutateField("title", "x"), apperror.ErrBusy))

	// Discarding mid-save: the late result must not reopen or close anything.
	s.Discard()
	s.Open(entity.Task{Id: "t1", Title: "Fresh", Description: "d", Status: entity.TaskStatusPending})
	close(target.release)
	require.NoError(t, <-done)

	assert.Equal(t, StateEditing, s.State())
	draft, _ := s.Draft()
	assert.Equal(t, "Fresh", draft.Title)
	assert.Equal(t, 1, target.updates)
}

func TestProjectEditing(t *testing.T) {
	s := NewSession[entity.Project](&projectTarget{}, nil)
	s.Open(entity.Project{Id: "p1", Title: "A", Description: "B"})

	require.NoError(t, s.MutateField("title", "Renamed"))
	assert.True(t, errors.Is(s.MutateField("status", "Completed"), apperror.ErrValidation))

	saved, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Renamed", saved.Title)
}

type projectTarget struct{}

func (projectTarget) Find(id string) (entity.Project, bool) { return entity.Project{}, false }

func (projectTarget) Update(ctx context.Context, id string, p entity.Project) (entity.Project, error) {
	return p, nil
}
