package service

import (
	"context"
	"testing"
	"time"

	"taskflow-client/internal/dto"
	"taskflow-client/internal/entity"
	"taskflow-client/internal/pkg/logger"
	"taskflow-client/internal/repository/memory"
	"taskflow-client/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	uow      unitofwork.RepositoryFactory
	auth     IAuthService
	projects IProjectService
	tasks    ITaskService
}

func newFixture() fixture {
	factory := memory.NewRepositoryFactory(memory.NewDatabase())
	log := logger.NewNopLogger()
	return fixture{
		uow:      factory,
		auth:     NewAuthService(factory, memory.NewRevokedTokenRepository(time.Hour), "test-secret", time.Hour, log),
		projects: NewProjectService(factory, 4, log),
		tasks:    NewTaskService(factory, log),
	}
}

func (f fixture) signup(t *testing.T, email string) *entity.UserProfile {
	t.Helper()
	user, err := f.auth.Signup(context.Background(), &dto.SignupRequest{Name: "User", Email: email, Country: "NO", Password: "secret"})
	require.NoError(t, err)
	return user
}

func TestAuthFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := f.signup(t, "alice@example.com")
	assert.Equal(t, entity.UserRoleMember, user.Role)

	_, err := f.auth.Signup(ctx, &dto.SignupRequest{Name: "Again", Email: "alice@example.com", Country: "NO", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	issued, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, user.Id, issued.User.Id)

	userId, err := f.auth.ParseToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, user.Id, userId)

	profile, err := f.auth.CheckAuth(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)

	f.auth.Logout(ctx, issued.Token)
	_, err = f.auth.ParseToken(issued.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.NotPanics(t, func() { f.auth.Logout(ctx, "garbage") })
	_, err = f.auth.ParseToken("garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestProjectLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.signup(t, "owner@example.com")

	for i := 0; i < 4; i++ {
		_, err := f.projects.Create(ctx, owner.Id, &dto.CreateProjectRequest{Title: "P", Description: "D"})
		require.NoError(t, err)
	}
	_, err := f.projects.Create(ctx, owner.Id, &dto.CreateProjectRequest{Title: "P5", Description: "D"})
	assert.ErrorIs(t, err, ErrProjectLimit)

	projects, err := f.projects.List(ctx, owner.Id)
	require.NoError(t, err)
	assert.Len(t, projects, 4)

	other := f.signup(t, "other@example.com")
	_, err = f.projects.Create(ctx, other.Id, &dto.CreateProjectRequest{Title: "Mine", Description: "D"})
	assert.NoError(t, err)
}

func TestProjectsAreScopedToOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.signup(t, "owner@example.com")
	intruder := f.signup(t, "intruder@example.com")

	project, err := f.projects.Create(ctx, owner.Id, &dto.CreateProjectRequest{Title: "P", Description: "D"})
	require.NoError(t, err)

	_, err = f.projects.Get(ctx, intruder.Id, project.Id)
	assert.ErrorIs(t, err, ErrProjectNotFound)
	_, err = f.projects.Update(ctx, intruder.Id, project.Id, &dto.UpdateProjectRequest{Title: "Mine", Description: "now"})
	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.ErrorIs(t, f.projects.Delete(ctx, intruder.Id, project.Id), ErrProjectNotFound)
	_, err = f.tasks.Create(ctx, intruder.Id, &dto.CreateTaskRequest{Title: "T", Description: "D", ProjectId: project.Id})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	updated, err := f.projects.Update(ctx, owner.Id, project.Id, &dto.UpdateProjectRequest{Title: "Renamed", Description: "D"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestDeleteProjectCascadesToTasks(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.signup(t, "owner@example.com")
	project, err := f.projects.Create(ctx, owner.Id, &dto.CreateProjectRequest{Title: "P", Description: "D"})
	require.NoError(t, err)

	task, err := f.tasks.Create(ctx, owner.Id, &dto.CreateTaskRequest{Title: "T", Description: "D", ProjectId: project.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusPending, task.Status)

	require.NoError(t, f.projects.Delete(ctx, owner.Id, project.Id))

	found, err := f.uow.NewUnitOfWork(ctx).TaskRepository().FindById(ctx, task.Id)
	require.NoError(t, err)
	assert.Nil(t, found)
	_, err = f.tasks.ListByProject(ctx, owner.Id, project.Id)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.signup(t, "owner@example.com")
	project, err := f.projects.Create(ctx, owner.Id, &dto.CreateProjectRequest{Title: "P", Description: "D"})
	require.NoError(t, err)

	task, err := f.tasks.Create(ctx, owner.Id, &dto.CreateTaskRequest{Title: "T", Description: "D", Status: entity.TaskStatusInProgress, ProjectId: project.Id})
	require.NoError(t, err)

	updated, err := f.tasks.Update(ctx, owner.Id, task.Id, &dto.UpdateTaskRequest{Title: "T2", Description: "D2", Status: entity.TaskStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusCompleted, updated.Status)

	tasks, err := f.tasks.ListByProject(ctx, owner.Id, project.Id)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "T2", tasks[0].Title)

	require.NoError(t, f.tasks.Delete(ctx, owner.Id, task.Id))
	assert.ErrorIs(t, f.tasks.Delete(ctx, owner.Id, task.Id), ErrTaskNotFound)
}
