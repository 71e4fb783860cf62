package controller

import (
	"context"
	"sort"
	"strings"
	"time"

	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/pkg/serverutils"
	"shopping-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	serviceVersion = "1.0.0"
	healthTimeout  = 2 * time.Second
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

type ISystemController interface {
	RegisterRoutes(r fiber.Router, admin fiber.Handler)
	Stats(ctx *fiber.Ctx) error
	TestIntents(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	Info(ctx *fiber.Ctx) error
}

type systemController struct {
	serviceName      string
	assistantService service.IAssistantService
	checks           map[string]HealthCheck
}

func NewSystemController(serviceName string, assistantService service.IAssistantService, checks map[string]HealthCheck) ISystemController {
	return &systemController{
		serviceName:      serviceName,
		assistantService: assistantService,
		checks:           checks,
	}
}

func (c *systemController) RegisterRoutes(r fiber.Router, admin fiber.Handler) {
	r.Get("/", c.Info)
	r.Get("/health", c.Health)
	r.Get("/stats", admin, c.Stats)
	r.Get("/intents/test", c.TestIntents)
}

func (c *systemController) Stats(ctx *fiber.Ctx) error {
	res, err := c.assistantService.Stats(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success stats", res))
}

func (c *systemController) TestIntents(ctx *fiber.Ctx) error {
	message := ctx.Query("message")
	if strings.TrimSpace(message) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message query parameter is required")
	}

	res, err := c.assistantService.TestIntents(ctx.UserContext(), message)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success test intents", res))
}

// Health always answers 200; a failing optional dependency only marks the
// service as degraded.
func (c *systemController) Health(ctx *fiber.Ctx) error {
	checkCtx, cancel := context.WithTimeout(ctx.UserContext(), healthTimeout)
	defer cancel()

	status := "healthy"
	components := make(map[string]string, len(c.checks))
	for name, check := range c.checks {
		if err := check(checkCtx); err != nil {
			components[name] = "unavailable: " + err.Error()
			status = "degraded"
			continue
		}
		components[name] = "ok"
	}

	return ctx.JSON(serverutils.SuccessResponse("Success health", dto.HealthResponse{
		Status:     status,
		Service:    c.serviceName,
		Components: components,
		Timestamp:  time.Now(),
	}))
}

func (c *systemController) Info(ctx *fiber.Ctx) error {
	var endpoints []string
	for _, route := range ctx.App().GetRoutes(true) {
		if route.Method == fiber.MethodHead {
			continue
		}
		endpoints = append(endpoints, route.Method+" "+route.Path)
	}
	sort.Strings(endpoints)

	return ctx.JSON(serverutils.SuccessResponse("Success info", dto.ServiceInfoResponse{
		Name:      c.serviceName,
		Version:   serviceVersion,
		Endpoints: endpoints,
	}))
}
