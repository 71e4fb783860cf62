package controller

import (
	"shopping-assistant-be/internal/pkg/serverutils"
	"shopping-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultMemoryLimit  = 10
	defaultUnknownLimit = 50
)

type IMemoryController interface {
	RegisterRoutes(r fiber.Router, admin fiber.Handler)
	Show(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	UnknownQueries(ctx *fiber.Ctx) error
}

type memoryController struct {
	memoryService service.IMemoryService
}

func NewMemoryController(memoryService service.IMemoryService) IMemoryController {
	return &memoryController{
		memoryService: memoryService,
	}
}

func (c *memoryController) RegisterRoutes(r fiber.Router, admin fiber.Handler) {
	h := r.Group("/memory")
	// registered before :userId so "unknown" is not taken for a user id
	h.Get("unknown", admin, c.UnknownQueries)
	h.Get(":userId", c.Show)
	h.Delete(":userId", admin, c.Clear)
}

func (c *memoryController) Show(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", defaultMemoryLimit)
	if limit <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "limit must be positive")
	}

	res, err := c.memoryService.GetMemory(ctx.UserContext(), ctx.Params("userId"), limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show memory", res))
}

func (c *memoryController) Clear(ctx *fiber.Ctx) error {
	userId := ctx.Params("userId")
	if err := c.memoryService.ClearMemory(ctx.UserContext(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear memory", fiber.Map{"user_id": userId}))
}

func (c *memoryController) UnknownQueries(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", defaultUnknownLimit)
	if limit <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "limit must be positive")
	}

	res, err := c.memoryService.UnknownQueries(ctx.UserContext(), limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list unknown queries", res))
}
