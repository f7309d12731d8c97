//go:build unit

package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"checkout-fulfillment/internal/handler/middleware"
	"checkout-fulfillment/internal/pkg/config"
	"checkout-fulfillment/internal/pkg/jwt"
	"checkout-fulfillment/tests/common/authtest"
	"checkout-fulfillment/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter(t *testing.T, cfg config.Config) (*gin.Engine, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	auth := middleware.NewAuthMiddleware(jwt.NewService(cfg.JWT.Secret))

	r := gin.New()
	r.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/webhook", func(c *gin.Context) { c.Status(http.StatusConflict) })
	return r, buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestLoggingMiddleware(t *testing.T) {
	cfg := config.NewTestConfig()
	tokens := authtest.NewJWTHelper(cfg.JWT)

	t.Run("認証済みリクエストは user_id と role を含む", func(t *testing.T) {
		router, buf := newLoggedRouter(t, cfg)
		userID := uuid.New()

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, tokens.GenerateToken(t, userID, authtest.RoleBuyer))
		require.Equal(t, http.StatusNoContent, rec.Code)

		entry := lastLine(t, buf)
		assert.Equal(t, "Request completed", entry["msg"])
		assert.Equal(t, userID.String(), entry["user_id"])
		assert.Equal(t, authtest.RoleBuyer, entry["role"])
		assert.Equal(t, "/me", entry["route"])
		assert.Equal(t, rec.Header().Get(middleware.HeaderRequestID), entry["request_id"])
	})

	t.Run("署名付き webhook の 409 は INFO", func(t *testing.T) {
		router, buf := newLoggedRouter(t, cfg)

		rec := httptest.PerformRawRequest(t, router, http.MethodPost, "/webhook", []byte(`{}`), map[string]string{
			"Stripe-Signature": "t=1,v1=00",
		})
		require.Equal(t, http.StatusConflict, rec.Code)

		entry := lastLine(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, true, entry["signed_webhook"])
		assert.NotContains(t, buf.String(), "t=1,v1=00")
	})

	t.Run("上流のリクエストIDを引き継ぐ", func(t *testing.T) {
		router, _ := newLoggedRouter(t, cfg)
		upstream := uuid.NewString()

		rec := httptest.PerformRawRequest(t, router, http.MethodPost, "/webhook", nil, map[string]string{
			middleware.HeaderRequestID: upstream,
		})
		assert.Equal(t, upstream, rec.Header().Get(middleware.HeaderRequestID))
	})

	t.Run("不正なリクエストIDは採番し直す", func(t *testing.T) {
		router, _ := newLoggedRouter(t, cfg)

		rec := httptest.PerformRawRequest(t, router, http.MethodPost, "/webhook", nil, map[string]string{
			middleware.HeaderRequestID: "not-a-uuid",
		})
		got := rec.Header().Get(middleware.HeaderRequestID)
		_, err := uuid.Parse(got)
		assert.NoError(t, err)
	})
}
