package handler

import (
	"context"
	"errors"
	"strings"

	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/pkg/logger"
	"shopping-assistant-be/internal/service"
	internalWS "shopping-assistant-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
)

const socketModule = "WebSocket"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type socketRequest struct {
	Message string `json:"message"`
}

type socketReply struct {
	Type    string            `json:"type"`
	Data    *dto.ChatResponse `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
}

// ChatSocketHandler serves the assistant over a websocket: every text frame
// {"message": "..."} is answered with {"type": "chat_response", "data": ...}.
type ChatSocketHandler struct {
	assistant service.IAssistantService
	hub       *internalWS.Hub
	logger    logger.ILogger
}

func NewChatSocketHandler(assistant service.IAssistantService, hub *internalWS.Hub, log logger.ILogger) *ChatSocketHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ChatSocketHandler{
		assistant: assistant,
		hub:       hub,
		logger:    log,
	}
}

func (h *ChatSocketHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/chat", h.ServeWs)
}

// ServeWs upgrades the request; the user comes from ?user_id= and defaults to
// the anonymous user.
func (h *ChatSocketHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		userID = dto.AnonymousUserId
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info(socketModule, "Starting chat session", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(context.Background(), h.hub, conn, userID, h.Respond)
		h.logger.Info(socketModule, "Chat session ended", map[string]interface{}{"user_id": userID})
	})(c)
}

// Respond answers one frame. Malformed or blank frames get an error reply
// instead of closing the connection.
func (h *ChatSocketHandler) Respond(ctx context.Context, userID string, frame []byte) []byte {
	var req socketRequest
	if err := json.Unmarshal(frame, &req); err != nil {
		return h.encode(socketReply{Type: "error", Message: "invalid frame: expected {\"message\": \"...\"}"})
	}

	res, err := h.assistant.Chat(ctx, userID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return h.encode(socketReply{Type: "error", Message: err.Error()})
		}
		h.logger.Error(socketModule, "Chat failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return h.encode(socketReply{Type: "error", Message: "internal error"})
	}

	return h.encode(socketReply{Type: "chat_response", Data: res})
}

func (h *ChatSocketHandler) encode(reply socketReply) []byte {
	data, err := json.Marshal(reply)
	if err != nil {
		h.logger.Error(socketModule, "Failed to encode reply", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return data
}
