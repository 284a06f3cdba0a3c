//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"tour-booking/internal/domain/user"
	"tour-booking/internal/handler/dto/request"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/tests/common/authtest"
	"tour-booking/tests/common/dbtest"
	"tour-booking/tests/common/httptest"
	"tour-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	logoutURL   = "/api/auth/logout"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "admin@example.com", string(user.RoleAdmin))
	dbtest.CreateTestUser(s.T(), s.DB, "client@example.com", string(user.RoleClient))
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", string(user.RoleClient))

	_, err := s.DB.Exec(s.T().Context(), "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestRegister() {
	s.Run("a new account is a client and can log in right away", func() {
		body := request.RegisterRequest{Email: "Sari@Example.com", Password: "rahasia123", Name: "Sari"}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, body, "")

		var res resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		s.Equal("sari@example.com", res.User.Email)
		s.Equal("client", res.User.Role)
		s.NotEmpty(res.AccessToken)

		token := authtest.LoginUser(s.T(), s.Router, "sari@example.com", "rahasia123")
		s.NotEmpty(token)
	})

	s.Run("an email already in use is a conflict", func() {
		body := request.RegisterRequest{Email: "client@example.com", Password: "rahasia123", Name: "Dup"}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "CONFLICT")
	})
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{"valid credentials", "admin@example.com", dbtest.DefaultPassword, http.StatusOK},
		{"email is case-insensitive", "ADMIN@example.com", dbtest.DefaultPassword, http.StatusOK},
		{"unknown user", "nobody@example.com", dbtest.DefaultPassword, http.StatusUnauthorized},
		{"wrong password", "admin@example.com", "wrongpassword", http.StatusUnauthorized},
		{"inactive user", "inactive@example.com", dbtest.DefaultPassword, http.StatusForbidden},
		{"invalid email format", "not-an-email", dbtest.DefaultPassword, http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")

			if tt.expectedStatus == http.StatusOK {
				var res resdto.AuthResponse
				httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
				s.NotEmpty(res.AccessToken)
				s.NotNil(httptest.ExtractCookie(w, "access_token"))
				return
			}
			s.Equal(tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func (s *authSuite) TestMe() {
	s.Run("cookie and bearer both authenticate", func() {
		token := authtest.LoginUser(s.T(), s.Router, "client@example.com", dbtest.DefaultPassword)

		var res resdto.UserResponse
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal("client@example.com", res.Email)

		cookies := []*http.Cookie{{Name: "access_token", Value: token}}
		w = httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet, meURL, nil, cookies, "")
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("token rejections", func() {
		cases := map[string]string{
			"no token": "",
			"garbage":  "not-a-jwt",
			"expired":  s.jwt.CreateExpiredToken(s.T(), uuid.New(), user.RoleClient),
		}
		for name, token := range cases {
			s.Run(name, func() {
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
				httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "UNAUTHENTICATED")
			})
		}
	})

	s.Run("a valid token for a deleted user is not found", func() {
		token := s.jwt.GenerateToken(s.T(), uuid.New(), user.RoleClient)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "NOT_FOUND")
	})
}

func (s *authSuite) TestLogout() {
	s.Run("clears the cookie", func() {
		token := authtest.LoginUser(s.T(), s.Router, "client@example.com", dbtest.DefaultPassword)
		cookies := []*http.Cookie{{Name: "access_token", Value: token}}

		w := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, logoutURL, nil, cookies, "")

		s.Equal(http.StatusNoContent, w.Code)
		cleared := httptest.ExtractCookie(w, "access_token")
		s.Require().NotNil(cleared)
		s.Empty(cleared.Value)
	})
}
