package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAssistant struct {
	service.IAssistantService
	gotUser    string
	gotMessage string
	err        error
}

func (s *stubAssistant) Chat(_ context.Context, userId, message string) (*dto.ChatResponse, error) {
	s.gotUser, s.gotMessage = userId, message
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ChatResponse{Response: "🔍 ok", Confidence: 0.9}, nil
}

func decodeReply(t *testing.T, raw []byte) socketReply {
	t.Helper()
	require.NotNil(t, raw)
	var reply socketReply
	require.NoError(t, json.Unmarshal(raw, &reply))
	return reply
}

func TestRespond(t *testing.T) {
	tests := []struct {
		name        string
		frame       string
		err         error
		wantType    string
		wantMessage string
	}{
		{name: "chat", frame: `{"message":"casquette rouge"}`, wantType: "chat_response"},
		{name: "malformed", frame: `casquette`, wantType: "error"},
		{name: "blank", frame: `{"message":"  "}`, err: service.ErrEmptyMessage, wantType: "error", wantMessage: service.ErrEmptyMessage.Error()},
		{name: "internal", frame: `{"message":"x"}`, err: errors.New("catalog offline"), wantType: "error", wantMessage: "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assistant := &stubAssistant{err: tt.err}
			h := NewChatSocketHandler(assistant, nil, nil)

			reply := decodeReply(t, h.Respond(context.Background(), "u1", []byte(tt.frame)))
			assert.Equal(t, tt.wantType, reply.Type)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, reply.Message)
			}
			if tt.wantType == "chat_response" {
				require.NotNil(t, reply.Data)
				assert.Equal(t, "🔍 ok", reply.Data.Response)
				assert.Equal(t, "u1", assistant.gotUser)
				assert.Equal(t, "casquette rouge", assistant.gotMessage)
			}
		})
	}
}

func TestServeWsRequiresUpgrade(t *testing.T) {
	app := fiber.New()
	NewChatSocketHandler(&stubAssistant{}, nil, nil).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws/chat", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
