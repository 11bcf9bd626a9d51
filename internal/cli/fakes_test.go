package cli

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"taskflow-client/internal/apperror"
	"taskflow-client/internal/collection"
	"taskflow-client/internal/dto"
	"taskflow-client/internal/entity"
)

// fakeBackend is an in-memory Session Authority and Resource Store.
type fakeBackend struct {
	mu       sync.Mutex
	user     entity.UserProfile
	password string
	signedIn bool
	nextId   int

	projects []entity.Project
	tasks    map[string][]entity.Task

	verifyCalls        int
	projectCreateCalls int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		user:     entity.UserProfile{Id: "u1", Name: "Alice", Email: "alice@example.com"},
		password: "secret",
		tasks:    make(map[string][]entity.Task),
	}
}

func (b *fakeBackend) id(prefix string) string {
	b.nextId++
	return fmt.Sprintf("%s%d", prefix, b.nextId)
}

func (b *fakeBackend) Login(ctx context.Context, req dto.LoginRequest) (*entity.UserProfile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if req.Email != b.user.Email || req.Password != b.password {
		return nil, apperror.Auth(apperror.ReasonInvalidCredentials, http.StatusBadRequest, "Invalid email or password")
	}
	b.signedIn = true
	u := b.user
	return &u, nil
}

func (b *fakeBackend) Logout(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.signedIn = false
	return nil
}

func (b *fakeBackend) Verify(ctx context.Context) (*entity.UserProfile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.verifyCalls++
	if !b.signedIn {
		return nil, apperror.Auth(apperror.ReasonUnauthorized, http.StatusUnauthorized, "Unauthorized")
	}
	u := b.user
	return &u, nil
}

func (b *fakeBackend) Signup(ctx context.Context, req dto.SignupRequest) error {
	return nil
}

func (b *fakeBackend) ProjectStore() collection.ProjectStore {
	return fakeProjects{b}
}

func (b *fakeBackend) TaskStore(projectId string) collection.TaskStore {
	return fakeTasks{b: b, projectId: projectId}
}

func (b *fakeBackend) verifies() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.verifyCalls
}

func (b *fakeBackend) remoteProjects() []entity.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.Project(nil), b.projects...)
}

func (b *fakeBackend) remoteTasks(projectId string) []entity.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.Task(nil), b.tasks[projectId]...)
}

type fakeProjects struct{ b *fakeBackend }

func (s fakeProjects) List(ctx context.Context) ([]entity.Project, error) {
	return s.b.remoteProjects(), nil
}

func (s fakeProjects) Create(ctx context.Context, draft dto.CreateProjectRequest) (entity.Project, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.projectCreateCalls++
	p := entity.Project{Id: s.b.id("p"), Title: draft.Title, Description: draft.Description, Owner: s.b.user.Id}
	s.b.projects = append(s.b.projects, p)
	return p, nil
}

func (s fakeProjects) Update(ctx context.Context, id string, p entity.Project) (entity.Project, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	for i := range s.b.projects {
		if s.b.projects[i].Id == id {
			s.b.projects[i] = p
			return p, nil
		}
	}
	return entity.Project{}, apperror.Remote(apperror.KindUpdate, http.StatusNotFound, "Project not found")
}

func (s fakeProjects) Delete(ctx context.Context, id string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	for i := range s.b.projects {
		if s.b.projects[i].Id == id {
			s.b.projects = append(s.b.projects[:i], s.b.projects[i+1:]...)
			delete(s.b.tasks, id)
			return nil
		}
	}
	return apperror.Remote(apperror.KindDelete, http.StatusNotFound, "Project not found")
}

type fakeTasks struct {
	b         *fakeBackend
	projectId string
}

func (s fakeTasks) ProjectId() string {
	return s.projectId
}

func (s fakeTasks) List(ctx context.Context) ([]entity.Task, error) {
	return s.b.remoteTasks(s.projectId), nil
}

func (s fakeTasks) Create(ctx context.Context, draft dto.TaskDraft) (entity.Task, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	req := draft.ForProject(s.projectId)
	t := entity.Task{Id: s.b.id("t"), Title: req.Title, Description: req.Description, Status: req.Status, ProjectId: s.projectId}
	s.b.tasks[s.projectId] = append(s.b.tasks[s.projectId], t)
	return t, nil
}

func (s fakeTasks) Update(ctx context.Context, id string, t entity.Task) (entity.Task, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	tasks := s.b.tasks[s.projectId]
	for i := range tasks {
		if tasks[i].Id == id {
			tasks[i] = t
			return t, nil
		}
	}
	return entity.Task{}, apperror.Remote(apperror.KindUpdate, http.StatusNotFound, "Task not found")
}

func (s fakeTasks) Delete(ctx context.Context, id string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	tasks := s.b.tasks[s.projectId]
	for i := range tasks {
		if tasks[i].Id == id {
			s.b.tasks[s.projectId] = append(tasks[:i], tasks[i+1:]...)
			return nil
		}
	}
	return apperror.Remote(apperror.KindDelete, http.StatusNotFound, "Task not found")
}
