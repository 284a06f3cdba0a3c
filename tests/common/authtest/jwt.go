//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"tour-booking/internal/domain/user"
	"tour-booking/internal/pkg/config"
	"tour-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, duration)
	token, err := service.GenerateToken(userID, userID.String()+"@example.com", role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, time.Millisecond)
	token, err := service.GenerateToken(userID, userID.String()+"@example.com", role)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)
	return token
}
