//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"checkout-fulfillment/internal/pkg/config"
	"checkout-fulfillment/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	RoleBuyer = "buyer"
	RoleAdmin = jwt.RoleAdmin
)

// JWTHelper mints tokens the way the identity service does, signed with the test secret.
type JWTHelper struct {
	service *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{service: jwt.NewService(cfg.Secret)}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, role, 15*time.Minute)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, role, -time.Minute)
	require.NoError(t, err)
	return token
}
