package middleware

import (
	"log/slog"
	"strings"

	"tour-booking/internal/domain/auth"
	"tour-booking/internal/domain/user"
	"tour-booking/internal/handler/httperr"
	"tour-booking/internal/pkg/cookie"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxPrincipalKey = "principal"
	ctxClaimsKey    = "jwt_claims"
)

var errPrincipalMissing = errs.New("principal missing from context; RequireAuth not applied")

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAuth accepts a Bearer header, falling back to the access_token cookie.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := m.tokenValidator.Authenticate(extractToken(c))
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.Abort(c, err)
			return
		}

		c.Set(ctxPrincipalKey, p)
		c.Set(ctxClaimsKey, map[string]any{
			"user_id": p.ID.String(),
			"role":    p.Role.String(),
		})
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			httperr.Abort(c, errPrincipalMissing)
			return
		}

		if err := auth.Authorize(p, roles...); err != nil {
			httperr.Abort(c, errs.Mark(err, errs.ErrForbidden))
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return cookie.GetAccessToken(c)
}

func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return auth.Principal{}, false
	}

	p, ok := v.(auth.Principal)
	return p, ok
}

// SetPrincipal is used by handler tests that skip the token round trip.
func SetPrincipal(c *gin.Context, p auth.Principal) {
	c.Set(ctxPrincipalKey, p)
}
