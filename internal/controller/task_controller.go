package controller

import (
	"taskflow-client/internal/dto"
	"taskflow-client/internal/pkg/serverutils"
	"taskflow-client/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITaskController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	ListByProject(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type taskController struct {
	service service.ITaskService
}

func NewTaskController(service service.ITaskService) ITaskController {
	return &taskController{service: service}
}

// The task routes share one :id segment: GET takes a project id, PUT and
// DELETE a task id.
func (c *taskController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/tasks", auth)
	h.Post("", c.Create)
	h.Get("/:projectId", c.ListByProject)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *taskController) ListByProject(ctx *fiber.Ctx) error {
	tasks, err := c.service.ListByProject(ctx.UserContext(), serverutils.UserId(ctx), ctx.Params("projectId"))
	if err != nil {
		return failure(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Tasks fetched", tasks)
}

func (c *taskController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	task, err := c.service.Create(ctx.UserContext(), serverutils.UserId(ctx), &req)
	if err != nil {
		return failure(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "Task created", task)
}

func (c *taskController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateTaskRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	task, err := c.service.Update(ctx.UserContext(), serverutils.UserId(ctx), ctx.Params("id"), &req)
	if err != nil {
		return failure(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Task updated", task)
}

func (c *taskController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.UserContext(), serverutils.UserId(ctx), ctx.Params("id")); err != nil {
		return failure(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Task deleted", nil)
}
