package controller

import (
	"taskflow-client/internal/dto"
	"taskflow-client/internal/pkg/serverutils"
	"taskflow-client/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProjectController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type projectController struct {
	service service.IProjectService
}

func NewProjectController(service service.IProjectService) IProjectController {
	return &projectController{service: service}
}

func (c *projectController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/projects", auth)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get("/:id", c.Get)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *projectController) List(ctx *fiber.Ctx) error {
	projects, err := c.service.List(ctx.UserContext(), serverutils.UserId(ctx))
	if err != nil {
		return failure(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Projects fetched", projects)
}

func (c *projectController) Get(ctx *fiber.Ctx) error {
	project, err := c.service.Get(ctx.UserContext(), serverutils.UserId(ctx), ctx.Params("id"))
	if err != nil {
		return failure(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Project fetched", project)
}

func (c *projectController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	project, err := c.service.Create(ctx.UserContext(), serverutils.UserId(ctx), &req)
	if err != nil {
		return failure(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "Project created", project)
}

func (c *projectController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateProjectRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	project, err := c.service.Update(ctx.UserContext(), serverutils.UserId(ctx), ctx.Params("id"), &req)
	if err != nil {
		return failure(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Project updated", project)
}

func (c *projectController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.UserContext(), serverutils.UserId(ctx), ctx.Params("id")); err != nil {
		return failure(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Project deleted", nil)
}
