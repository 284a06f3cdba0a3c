//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"tour-booking/internal/domain/user"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/pkg/jwt"
	"tour-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator_Authenticate(t *testing.T) {
	svc := jwt.NewService("test-secret", "tour-booking", time.Hour)
	validator := usecase.NewTokenValidator(svc)
	id := uuid.New()

	token, err := svc.GenerateToken(id, "admin@example.com", user.RoleAdmin)
	require.NoError(t, err)

	p, err := validator.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "admin@example.com", p.Email)
	assert.True(t, p.IsAdmin())

	forged, err := jwt.NewService("other-secret", "tour-booking", time.Hour).GenerateToken(id, "admin@example.com", user.RoleAdmin)
	require.NoError(t, err)
	unknownRole, err := svc.GenerateToken(id, "x@example.com", user.Role("root"))
	require.NoError(t, err)
	expired, err := jwt.NewService("test-secret", "tour-booking", -time.Minute).GenerateToken(id, "x@example.com", user.RoleClient)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-jwt",
		"wrong secret": forged,
		"unknown role": unknownRole,
		"expired":      expired,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := validator.Authenticate(tok)
			assert.True(t, errs.Is(err, errs.ErrUnauthenticated))
		})
	}
}
