package confirm

import (
	"context"
	"errors"
	"testing"

	"taskflow-client/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemover struct {
	removed []string
	err     error
}

func (f *fakeRemover) Remove(ctx context.Context, id string) error {
	f.removed = append(f.removed, id)
	return f.err
}

func TestRequestThenCancelNeverRemoves(t *testing.T) {
	remover := &fakeRemover{}
	d := NewDeletion(remover, nil)

	d.RequestDelete("t1")
	assert.Equal(t, StatePendingConfirm, d.State())
	assert.True(t, d.IsPending("t1"))
	assert.False(t, d.IsPending("t2"))

	d.Cancel()

	assert.Equal(t, StateIdle, d.State())
	assert.Empty(t, remover.removed)
}

func TestConfirmInIdleIsNoop(t *testing.T) {
	remover := &fakeRemover{}
	d := NewDeletion(remover, nil)

	ran, err := d.Confirm(context.Background())

	assert.False(t, ran)
	assert.NoError(t, err)
	assert.Empty(t, remover.removed)
}

func TestLaterRequestReplacesTarget(t *testing.T) {
	remover := &fakeRemover{}
	d := NewDeletion(remover, nil)

	d.RequestDelete("t1")
	d.RequestDelete("t2")
	target, ok := d.Target()
	require.True(t, ok)
	assert.Equal(t, "t2", target)

	ran, err := d.Confirm(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, []string{"t2"}, remover.removed)
	assert.Equal(t, StateIdle, d.State())

	ran, _ = d.Confirm(context.Background())
	assert.False(t, ran)
	assert.Len(t, remover.removed, 1)
}

func TestConfirmFailureStillReturnsToIdle(t *testing.T) {
	remover := &fakeRemover{err: apperror.Remote(apperror.KindDelete, 500, "Server error")}
	d := NewDeletion(remover, nil)

	d.RequestDelete("t1")
	ran, err := d.Confirm(context.Background())

	assert.True(t, ran)
	assert.True(t, errors.Is(err, apperror.ErrDelete))
	assert.Equal(t, StateIdle, d.State())
	_, ok := d.Target()
	assert.False(t, ok)
}
