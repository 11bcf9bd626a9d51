package transport

import (
	"context"
	"net/url"

	"taskflow-client/internal/apperror"
	"taskflow-client/internal/dto"
	"taskflow-client/internal/entity"

	"github.com/gofiber/fiber/v2"
)

func (c *Client) ListProjects(ctx context.Context) ([]entity.Project, error) {
	projects := make([]entity.Project, 0)
	if err := c.call(ctx, fiber.MethodGet, "/api/projects", nil, apperror.KindFetch, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (entity.Project, error) {
	var project entity.Project
	err := c.call(ctx, fiber.MethodGet, "/api/projects/"+url.PathEscape(id), nil, apperror.KindFetch, &project)
	return project, err
}

func (c *Client) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (entity.Project, error) {
	var project entity.Project
	err := c.call(ctx, fiber.MethodPost, "/api/projects", req, apperror.KindCreate, &project)
	return project, err
}

func (c *Client) UpdateProject(ctx context.Context, id string, req dto.UpdateProjectRequest) (entity.Project, error) {
	var project entity.Project
	err := c.call(ctx, fiber.MethodPut, "/api/projects/"+url.PathEscape(id), req, apperror.KindUpdate, &project)
	return project, err
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.call(ctx, fiber.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, apperror.KindDelete, nil)
}

func (c *Client) ListTasks(ctx context.Context, projectId string) ([]entity.Task, error) {
	tasks := make([]entity.Task, 0)
	if err := c.call(ctx, fiber.MethodGet, "/api/tasks/"+url.PathEscape(projectId), nil, apperror.KindFetch, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (entity.Task, error) {
	var task entity.Task
	err := c.call(ctx, fiber.MethodPost, "/api/tasks", req, apperror.KindCreate, &task)
	return task, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, req dto.UpdateTaskRequest) (entity.Task, error) {
	var task entity.Task
	err := c.call(ctx, fiber.MethodPut, "/api/tasks/"+url.PathEscape(id), req, apperror.KindUpdate, &task)
	return task, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.call(ctx, fiber.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, apperror.KindDelete, nil)
}

// ProjectStore adapts the client to a project collection.
type ProjectStore struct {
	client *Client
}

func NewProjectStore(c *Client) ProjectStore {
	return ProjectStore{client: c}
}

func (s ProjectStore) List(ctx context.Context) ([]entity.Project, error) {
	return s.client.ListProjects(ctx)
}

func (s ProjectStore) Create(ctx context.Context, draft dto.CreateProjectRequest) (entity.Project, error) {
	return s.client.CreateProject(ctx, draft)
}

func (s ProjectStore) Update(ctx context.Context, id string, p entity.Project) (entity.Project, error) {
	return s.client.UpdateProject(ctx, id, dto.UpdateProjectRequest{Title: p.Title, Description: p.Description})
}

func (s ProjectStore) Delete(ctx context.Context, id string) error {
	return s.client.DeleteProject(ctx, id)
}

// TaskStore adapts the client to the task collection of one project.
type TaskStore struct {
	client    *Client
	projectId string
}

func NewTaskStore(c *Client, projectId string) TaskStore {
	return TaskStore{client: c, projectId: projectId}
}

func (s TaskStore) ProjectId() string {
	return s.projectId
}

func (s TaskStore) List(ctx context.Context) ([]entity.Task, error) {
	return s.client.ListTasks(ctx, s.projectId)
}

func (s TaskStore) Create(ctx context.Context, draft dto.TaskDraft) (entity.Task, error) {
	return s.client.CreateTask(ctx, draft.ForProject(s.projectId))
}

func (s TaskStore) Update(ctx context.Context, id string, t entity.Task) (entity.Task, error) {
	return s.client.UpdateTask(ctx, id, dto.UpdateTaskFrom(t))
}

func (s TaskStore) Delete(ctx context.Context, id string) error {
	return s.client.DeleteTask(ctx, id)
}
