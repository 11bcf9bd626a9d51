package memory

import (
	"context"
	"testing"
	"time"

	"taskflow-client/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevokedTokens(t *testing.T) {
	repo := NewRevokedTokenRepository(time.Hour)

	repo.Revoke("live", time.Now().Add(time.Minute))
	repo.Revoke("expired", time.Now().Add(-time.Minute))

	assert.True(t, repo.IsRevoked("live"))
	assert.False(t, repo.IsRevoked("expired"))
	assert.False(t, repo.IsRevoked("unknown"))
}

func TestRollbackUndoesTransactionWrites(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewDatabase())

	uow := factory.NewUnitOfWork(ctx)
	p := &entity.Project{Title: "Keep", Description: "d", Owner: "u1"}
	require.NoError(t, uow.ProjectRepository().Create(ctx, p))

	tx := factory.NewUnitOfWork(ctx)
	require.NoError(t, tx.Begin(ctx))
	require.NoError(t, tx.ProjectRepository().Delete(ctx, p.Id))
	require.NoError(t, tx.Rollback())

	found, err := uow.ProjectRepository().FindById(ctx, p.Id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Keep", found.Title)
	assert.Error(t, tx.Commit())
}

func TestRollbackKeepsWritesMadeOutsideTheTransaction(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewDatabase())
	other := factory.NewUnitOfWork(ctx)

	first := &entity.Project{Title: "First", Description: "d", Owner: "u1"}
	require.NoError(t, other.ProjectRepository().Create(ctx, first))

	tx := factory.NewUnitOfWork(ctx)
	require.NoError(t, tx.Begin(ctx))
	rejected := &entity.Project{Title: "Rejected", Description: "d", Owner: "u1"}
	require.NoError(t, tx.ProjectRepository().Create(ctx, rejected))
	require.NoError(t, tx.ProjectRepository().Delete(ctx, first.Id))

	task := &entity.Task{Title: "Acked", Description: "d", Status: entity.TaskStatusPending, ProjectId: "p9"}
	require.NoError(t, other.TaskRepository().Create(ctx, task))
	user := &entity.User{UserProfile: entity.UserProfile{Email: "bob@example.com"}}
	require.NoError(t, other.UserRepository().Create(ctx, user))
	second := &entity.Project{Title: "Second", Description: "d", Owner: "u2"}
	require.NoError(t, other.ProjectRepository().Create(ctx, second))

	require.NoError(t, tx.Rollback())

	foundTask, err := other.TaskRepository().FindById(ctx, task.Id)
	require.NoError(t, err)
	assert.NotNil(t, foundTask)
	foundUser, err := other.UserRepository().FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.NotNil(t, foundUser)

	gone, err := other.ProjectRepository().FindById(ctx, rejected.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)

	u1, err := other.ProjectRepository().FindAllByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, u1, 1)
	assert.Equal(t, "First", u1[0].Title)
	u2, err := other.ProjectRepository().FindAllByOwner(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, u2, 1)
}

func TestRollbackRestoresUpdatedTask(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewDatabase())
	uow := factory.NewUnitOfWork(ctx)
	task := &entity.Task{Title: "Before", Description: "d", Status: entity.TaskStatusPending, ProjectId: "p1"}
	require.NoError(t, uow.TaskRepository().Create(ctx, task))

	tx := factory.NewUnitOfWork(ctx)
	require.NoError(t, tx.Begin(ctx))
	changed := *task
	changed.Title = "After"
	changed.Status = entity.TaskStatusCompleted
	require.NoError(t, tx.TaskRepository().Update(ctx, &changed))
	require.NoError(t, tx.Rollback())

	found, err := uow.TaskRepository().FindById(ctx, task.Id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Before", found.Title)
	assert.Equal(t, entity.TaskStatusPending, found.Status)
}

func TestTasksKeepCreationOrderPerProject(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(NewDatabase()).NewUnitOfWork(ctx)
	tasks := uow.TaskRepository()

	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, tasks.Create(ctx, &entity.Task{Title: title, Description: "d", Status: entity.TaskStatusPending, ProjectId: "p1"}))
	}
	require.NoError(t, tasks.Create(ctx, &entity.Task{Title: "other", Description: "d", Status: entity.TaskStatusPending, ProjectId: "p2"}))

	found, err := tasks.FindAllByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, "a", found[0].Title)
	assert.Equal(t, "c", found[2].Title)

	require.NoError(t, tasks.DeleteAllByProject(ctx, "p1"))
	found, err = tasks.FindAllByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, found)
	left, err := tasks.FindAllByProject(ctx, "p2")
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
