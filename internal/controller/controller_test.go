package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/pkg/serverutils"
	repomemory "shopping-assistant-be/internal/repository/memory"
	"shopping-assistant-be/internal/service"
	"shopping-assistant-be/pkg/memory"
	"shopping-assistant-be/pkg/nlu"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminSecret = "test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T, checks map[string]HealthCheck) *fiber.App {
	t.Helper()

	products, err := repomemory.NewProductRepository()
	require.NoError(t, err)

	mem := memory.New(memory.DefaultConfig(), nil, nil, nil, nil)
	assistant := service.NewAssistantService(nlu.NewScorer(nil), mem, products, nil, nil, nil, service.DefaultAssistantOptions())

	app := fiber.New(fiber.Config{
		ErrorHandler: serverutils.NewErrorHandler(nil,
			serverutils.StatusMapping{Err: service.ErrEmptyMessage, Status: fiber.StatusBadRequest},
			serverutils.StatusMapping{Err: service.ErrMissingUserId, Status: fiber.StatusBadRequest},
			serverutils.StatusMapping{Err: service.ErrProductNotFound, Status: fiber.StatusNotFound},
		),
	})
	admin := serverutils.AdminMiddleware(adminSecret)

	api := app.Group("/api")
	NewChatController(assistant).RegisterRoutes(api)
	NewProductController(service.NewProductService(products)).RegisterRoutes(api)
	NewMemoryController(service.NewMemoryService(mem, nil, nil)).RegisterRoutes(api, admin)
	NewSystemController("shopping-assistant-be", assistant, checks).RegisterRoutes(api, admin)
	return app
}

func token(t *testing.T, role string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "ops", "role": role}).
		SignedString([]byte(adminSecret))
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}, bearer string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

type productRef struct {
	Id int `json:"id"`
}

type chatPayload struct {
	Response           string                 `json:"response"`
	Products           []productRef           `json:"products"`
	Confidence         float64                `json:"confidence"`
	DetectedIntents    []string               `json:"detected_intents"`
	ContextUsed        map[string]interface{} `json:"context_used"`
	SuggestedQuestions []string               `json:"suggested_questions"`
}

func ids(products []productRef) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.Id)
	}
	return out
}

func TestChatEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	status, env := do(t, app, http.MethodPost, "/api/chat", map[string]string{
		"user_id": "u1",
		"message": "Montrez-moi des casquettes rouges",
	}, "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	res := decode[chatPayload](t, env)
	assert.Equal(t, []int{1}, ids(res.Products))
	assert.Equal(t, 0.9, res.Confidence)
	assert.Equal(t, map[string]interface{}{"category": "casquette", "color": "rouge"}, res.ContextUsed)
	assert.LessOrEqual(t, len(res.SuggestedQuestions), 3)
}

func TestChatEndpointRejectsBlankMessage(t *testing.T) {
	app := newTestApp(t, nil)

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "missing", body: map[string]string{"user_id": "u1"}},
		{name: "whitespace", body: map[string]string{"message": "   \t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, app, http.MethodPost, "/api/chat", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, status)
			assert.False(t, env.Success)
			assert.Equal(t, http.StatusBadRequest, env.Code)
		})
	}
}

func TestChatbotAliasUsesAnonymousUser(t *testing.T) {
	app := newTestApp(t, nil)

	status, _ := do(t, app, http.MethodPost, "/api/chatbot", map[string]string{"message": "Bonjour"}, "")
	require.Equal(t, http.StatusOK, status)

	status, env := do(t, app, http.MethodGet, "/api/memory/"+dto.AnonymousUserId, nil, "")
	require.Equal(t, http.StatusOK, status)
	res := decode[dto.MemoryResponse](t, env)
	assert.Equal(t, 1, res.TotalTurns)
	require.Len(t, res.History, 1)
	assert.Equal(t, "Bonjour", res.History[0].Message)
}

func TestProductEndpoints(t *testing.T) {
	app := newTestApp(t, nil)

	t.Run("list", func(t *testing.T) {
		status, env := do(t, app, http.MethodGet, "/api/products", nil, "")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 30, decode[dto.ProductListResponse](t, env).Count)
	})

	t.Run("show", func(t *testing.T) {
		status, env := do(t, app, http.MethodGet, "/api/products/4", nil, "")
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(env.Data), "Montre Digitale Bleue")
	})

	t.Run("show missing", func(t *testing.T) {
		status, env := do(t, app, http.MethodGet, "/api/products/999", nil, "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.False(t, env.Success)
	})

	t.Run("show bad id", func(t *testing.T) {
		status, _ := do(t, app, http.MethodGet, "/api/products/abc", nil, "")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("search", func(t *testing.T) {
		status, env := do(t, app, http.MethodPost, "/api/products/search",
			map[string]string{"color": "rouge", "category": "casquette"}, "")
		require.Equal(t, http.StatusOK, status)
		res := decode[dto.ProductListResponse](t, env)
		require.Equal(t, 1, res.Count)
		assert.Equal(t, 1, res.Products[0].Id)
	})

	t.Run("search without criteria returns everything", func(t *testing.T) {
		status, env := do(t, app, http.MethodPost, "/api/products/search", nil, "")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 30, decode[dto.ProductListResponse](t, env).Count)
	})

	t.Run("search rejects negative budget", func(t *testing.T) {
		status, _ := do(t, app, http.MethodPost, "/api/products/search", map[string]interface{}{"max_price": -5}, "")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("categories", func(t *testing.T) {
		status, env := do(t, app, http.MethodGet, "/api/categories", nil, "")
		require.Equal(t, http.StatusOK, status)
		res := decode[dto.CategoriesResponse](t, env)
		assert.Contains(t, res.Categories, "bijoux")
		assert.Contains(t, res.Colors, "multicolore")
		assert.Equal(t, dto.PriceRange{Min: 12, Max: 95}, res.PriceRange)
	})
}

func TestAdminEndpointsRequireAdminToken(t *testing.T) {
	app := newTestApp(t, nil)

	tests := []struct {
		name   string
		bearer string
		want   int
	}{
		{name: "no token", bearer: "", want: http.StatusUnauthorized},
		{name: "garbage token", bearer: "not-a-jwt", want: http.StatusUnauthorized},
		{name: "user role", bearer: token(t, "user"), want: http.StatusForbidden},
		{name: "admin role", bearer: token(t, "admin"), want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, path := range []string{"/api/stats", "/api/memory/unknown"} {
				status, _ := do(t, app, http.MethodGet, path, nil, tt.bearer)
				assert.Equal(t, tt.want, status, path)
			}
		})
	}
}

func TestClearMemoryEndpoint(t *testing.T) {
	app := newTestApp(t, nil)
	admin := token(t, "admin")

	_, _ = do(t, app, http.MethodPost, "/api/chat", map[string]string{"user_id": "u1", "message": "Bonjour"}, "")

	status, _ := do(t, app, http.MethodDelete, "/api/memory/u1", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := do(t, app, http.MethodDelete, "/api/memory/u1", nil, admin)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	_, env = do(t, app, http.MethodGet, "/api/memory/u1", nil, "")
	res := decode[dto.MemoryResponse](t, env)
	assert.Zero(t, res.TotalTurns)
	assert.Empty(t, res.History)
}

func TestUnknownQueriesEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	for i := 0; i < 2; i++ {
		status, _ := do(t, app, http.MethodPost, "/api/chat", map[string]string{"user_id": "u1", "message": "blabla xyz"}, "")
		require.Equal(t, http.StatusOK, status)
	}

	status, env := do(t, app, http.MethodGet, "/api/memory/unknown?limit=5", nil, token(t, "admin"))
	require.Equal(t, http.StatusOK, status)
	res := decode[dto.UnknownQueriesResponse](t, env)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "blabla xyz", res.Queries[0].Message)
	assert.Equal(t, 2, res.Queries[0].Frequency)
}

func TestMemoryEndpointRejectsBadLimit(t *testing.T) {
	app := newTestApp(t, nil)

	status, _ := do(t, app, http.MethodGet, "/api/memory/u1?limit=0", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestIntentTestEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	status, _ := do(t, app, http.MethodGet, "/api/intents/test", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, env := do(t, app, http.MethodGet, "/api/intents/test?message=Bonjour", nil, "")
	require.Equal(t, http.StatusOK, status)
	res := decode[dto.IntentTestResponse](t, env)
	assert.Equal(t, nlu.IntentGreeting, res.PrimaryIntent.Intent)
	assert.LessOrEqual(t, len(res.AllIntents), 5)
}

func TestHealthEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]HealthCheck
		wantStatus string
	}{
		{
			name:       "all components up",
			checks:     map[string]HealthCheck{"catalog": func(context.Context) error { return nil }},
			wantStatus: "healthy",
		},
		{
			name: "optional component down",
			checks: map[string]HealthCheck{
				"catalog": func(context.Context) error { return nil },
				"cache":   func(context.Context) error { return errors.New("connection refused") },
			},
			wantStatus: "degraded",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, tt.checks)

			status, env := do(t, app, http.MethodGet, "/api/health", nil, "")
			require.Equal(t, http.StatusOK, status)
			res := decode[dto.HealthResponse](t, env)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, "ok", res.Components["catalog"])
			assert.Len(t, res.Components, len(tt.checks))
		})
	}
}

func TestServiceInfoListsRoutes(t *testing.T) {
	app := newTestApp(t, nil)

	status, env := do(t, app, http.MethodGet, "/api/", nil, "")
	require.Equal(t, http.StatusOK, status)
	res := decode[dto.ServiceInfoResponse](t, env)
	assert.Equal(t, "shopping-assistant-be", res.Name)
	assert.Contains(t, res.Endpoints, "POST /api/chat")
	assert.Contains(t, res.Endpoints, "GET /api/memory/unknown")
}
