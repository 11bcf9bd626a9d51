package bootstrap

import (
	"taskflow-client/internal/config"
	"taskflow-client/internal/controller"
	"taskflow-client/internal/pkg/logger"
	"taskflow-client/internal/pkg/serverutils"
	"taskflow-client/internal/repository/memory"
	"taskflow-client/internal/repository/unitofwork"
	"taskflow-client/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	AuthController    controller.IAuthController
	ProjectController controller.IProjectController
	TaskController    controller.ITaskController

	AuthMiddleware fiber.Handler
}

// NewContainer wires the devstore. A nil db selects the in-memory
// repositories.
func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	// 1. Repositories
	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
		sysLogger.Info("BOOTSTRAP", "Using PostgreSQL repositories", nil)
	} else {
		uowFactory = memory.NewRepositoryFactory(memory.NewDatabase())
		sysLogger.Info("BOOTSTRAP", "Using in-memory repositories", nil)
	}
	revokedTokens := memory.NewRevokedTokenRepository(cfg.Store.TokenTTL)

	// 2. Services
	authService := service.NewAuthService(uowFactory, revokedTokens, cfg.Store.JwtSecret, cfg.Store.TokenTTL, sysLogger)
	projectService := service.NewProjectService(uowFactory, cfg.Store.MaxProjects, sysLogger)
	taskService := service.NewTaskService(uowFactory, sysLogger)

	// 3. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService, cfg.IsProduction()),
		ProjectController: controller.NewProjectController(projectService),
		TaskController:    controller.NewTaskController(taskService),
		AuthMiddleware:    serverutils.NewJwtMiddleware(authService),
	}
}
