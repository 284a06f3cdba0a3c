//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tour-booking/internal/domain/user"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/pkg/cookie"
	"tour-booking/internal/pkg/jwt"
	"tour-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := jwt.NewService("test-secret", "tour-booking", time.Hour)
	mw := middleware.NewAuthMiddleware(usecase.NewTokenValidator(svc))

	r := gin.New()
	r.GET("/me", mw.RequireAuth(), func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		require.True(t, ok)
		c.String(http.StatusOK, p.ID.String())
	})
	r.GET("/admin", mw.RequireAuth(), mw.RequireRole(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, svc
}

func TestRequireAuth(t *testing.T) {
	r, svc := newAuthRouter(t)
	id := uuid.New()
	token, err := svc.GenerateToken(id, "a@example.com", user.RoleClient)
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id.String(), w.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: cookie.AccessTokenCookieName, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bearer header wins over a stale cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.AddCookie(&http.Cookie{Name: cookie.AccessTokenCookieName, Value: "stale"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id.String(), w.Body.String())
	})

	for name, header := range map[string]string{
		"missing":      "",
		"wrong scheme": "Basic " + token,
		"garbage":      "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "UNAUTHENTICATED")
		})
	}
}

func TestRequireRole(t *testing.T) {
	r, svc := newAuthRouter(t)

	for role, want := range map[user.Role]int{
		user.RoleAdmin:    http.StatusNoContent,
		user.RoleOperator: http.StatusForbidden,
		user.RoleClient:   http.StatusForbidden,
	} {
		t.Run(role.String(), func(t *testing.T) {
			token, err := svc.GenerateToken(uuid.New(), "a@example.com", role)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, want, w.Code)
		})
	}
}
