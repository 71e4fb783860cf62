package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGone = errors.New("gone")

type sample struct {
	Message string  `validate:"required,notblank"`
	Budget  float64 `validate:"gte=0"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     sample
		wantErr bool
	}{
		{name: "valid", req: sample{Message: "casquette rouge"}},
		{name: "empty", req: sample{}, wantErr: true},
		{name: "whitespace only", req: sample{Message: "  \n\t"}, wantErr: true},
		{name: "negative budget", req: sample{Message: "ok", Budget: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Fields)
		})
	}
}

func statusOf(t *testing.T, app *fiber.App, req *http.Request) (int, BaseResponse[any]) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: NewErrorHandler(nil, StatusMapping{Err: errGone, Status: fiber.StatusNotFound}),
	})
	app.Get("/validation", func(c *fiber.Ctx) error { return ValidateRequest(sample{}) })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusConflict, "busy") })
	app.Get("/mapped", func(c *fiber.Ctx) error { return fmt.Errorf("lookup: %w", errGone) })
	app.Get("/other", func(c *fiber.Ctx) error { return errors.New("db password leaked in message") })

	tests := []struct {
		path        string
		wantStatus  int
		wantMessage string
	}{
		{path: "/validation", wantStatus: http.StatusBadRequest},
		{path: "/fiber", wantStatus: http.StatusConflict, wantMessage: "busy"},
		{path: "/mapped", wantStatus: http.StatusNotFound, wantMessage: "lookup: gone"},
		{path: "/other", wantStatus: http.StatusInternalServerError, wantMessage: "internal error"},
		{path: "/missing-route", wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := statusOf(t, app, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, status)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantStatus, body.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body.Message)
			}
		})
	}
}

func signed(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAdminMiddleware(t *testing.T) {
	const secret = "s3cret"

	tests := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{name: "disabled without secret", secret: "", header: "", want: http.StatusOK},
		{name: "missing header", secret: secret, header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", secret: secret, header: "Basic abc", want: http.StatusUnauthorized},
		{name: "wrong signature", secret: secret, header: "Bearer " + signed(t, "other", jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"}), want: http.StatusUnauthorized},
		{name: "other algorithm", secret: secret, header: "Bearer " + signed(t, secret, jwt.SigningMethodHS512, jwt.MapClaims{"role": "admin"}), want: http.StatusUnauthorized},
		{name: "not admin", secret: secret, header: "Bearer " + signed(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{"role": "user"}), want: http.StatusForbidden},
		{name: "admin", secret: secret, header: "Bearer " + signed(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"}), want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", AdminMiddleware(tt.secret), func(c *fiber.Ctx) error {
				return c.JSON(SuccessResponse("ok", true))
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			status, _ := statusOf(t, app, req)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Get("/", RateLimiter(2, nil), func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("ok", true))
	})

	var codes []int
	for i := 0; i < 3; i++ {
		status, _ := statusOf(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, status)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterDisabled(t *testing.T) {
	app := fiber.New()
	app.Get("/", RateLimiter(0, nil), func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("ok", true))
	})

	for i := 0; i < 5; i++ {
		status, _ := statusOf(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, status)
	}
}
