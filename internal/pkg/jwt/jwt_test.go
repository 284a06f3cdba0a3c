//go:build unit

package jwt

import (
	"testing"
	"time"

	"tour-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ExpiryUsesClock(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService("secret", "tour-booking", time.Hour)
	svc.now = func() time.Time { return now }

	id := uuid.New()
	token, err := svc.GenerateToken(id, "a@example.com", user.RoleOperator)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, "tour-booking", claims.Issuer)
	assert.Equal(t, id.String(), claims.Subject)

	now = now.Add(time.Hour + time.Second)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestService_RejectsTampering(t *testing.T) {
	svc := NewService("secret", "tour-booking", time.Hour)
	token, err := svc.GenerateToken(uuid.New(), "a@example.com", user.RoleClient)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
