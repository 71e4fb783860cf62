package controller

import (
	"strings"

	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/pkg/serverutils"
	"shopping-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, middlewares ...fiber.Handler)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	assistantService service.IAssistantService
}

func NewChatController(assistantService service.IAssistantService) IChatController {
	return &chatController{
		assistantService: assistantService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router, middlewares ...fiber.Handler) {
	handlers := append(middlewares, c.Chat)
	r.Post("/chat", handlers...)
	// legacy path kept for older frontends
	r.Post("/chatbot", handlers...)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userId := strings.TrimSpace(req.UserId)
	if userId == "" {
		userId = dto.AnonymousUserId
	}

	res, err := c.assistantService.Chat(ctx.UserContext(), userId, req.Message)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}
