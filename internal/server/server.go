package server

import (
	"context"
	"log"

	"shopping-assistant-be/internal/bootstrap"
	"shopping-assistant-be/internal/config"
	"shopping-assistant-be/internal/pkg/serverutils"
	"shopping-assistant-be/internal/service"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		JSONEncoder:  jsoniter.Marshal,
		JSONDecoder:  jsoniter.Unmarshal,
		ErrorHandler: NewErrorHandler(container),
	})

	// Middleware
	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

// NewErrorHandler maps the service sentinels onto HTTP statuses.
func NewErrorHandler(container *bootstrap.Container) fiber.ErrorHandler {
	return serverutils.NewErrorHandler(container.Logger,
		serverutils.StatusMapping{Err: service.ErrEmptyMessage, Status: fiber.StatusBadRequest},
		serverutils.StatusMapping{Err: service.ErrMissingUserId, Status: fiber.StatusBadRequest},
		serverutils.StatusMapping{Err: service.ErrProductNotFound, Status: fiber.StatusNotFound},
	)
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.ChatController.RegisterRoutes(api, c.RateLimiter)
	c.ProductController.RegisterRoutes(api)
	c.MemoryController.RegisterRoutes(api, c.AdminMiddleware)
	c.SystemController.RegisterRoutes(api, c.AdminMiddleware)

	// probes and discovery also answer at the root
	app.Get("/", c.SystemController.Info)
	app.Get("/health", c.SystemController.Health)

	c.ChatSocketHandler.RegisterRoutes(app)
}
