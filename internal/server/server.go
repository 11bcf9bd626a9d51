package server

import (
	"net"

	"taskflow-client/internal/bootstrap"
	"taskflow-client/internal/config"
	"taskflow-client/internal/pkg/logger"
	"taskflow-client/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
	logger    logger.ILogger
}

func New(cfg *config.Config, container *bootstrap.Container, l logger.ILogger) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Store.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
		logger:    l,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.logger.Info("SERVER", "Devstore listening", map[string]interface{}{"addr": "http://localhost:" + s.cfg.Store.Port})
	return s.app.Listen(":" + s.cfg.Store.Port)
}

// Serve runs on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("SERVER", "Devstore listening", map[string]interface{}{"addr": ln.Addr().String()})
	return s.app.Listener(ln)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api, c.AuthMiddleware)
	c.ProjectController.RegisterRoutes(api, c.AuthMiddleware)
	c.TaskController.RegisterRoutes(api, c.AuthMiddleware)
}
