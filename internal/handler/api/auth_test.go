//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"tour-booking/internal/handler/api"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/pkg/config"
	"tour-booking/internal/pkg/cookie"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/pkg/jwt"
	"tour-booking/internal/usecase/commands"
	"tour-booking/tests/common/builder"
	"tour-booking/tests/common/httptest"
	"tour-booking/tests/common/testutil"
	commandsmock "tour-booking/tests/mock/commands"
	queriesmock "tour-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
	user         *builder.UserBuilder
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	gin.EnableJsonDecoderDisallowUnknownFields()
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	jwtService := jwt.NewService("test-secret", "tour-booking", time.Hour)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, jwtService, config.NewTestConfig())
	s.user = builder.NewUserBuilder()

	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		// stands in for RequireAuth
		if c.GetHeader("Authorization") != "" {
			middleware.SetPrincipal(c, s.user.BuildPrincipal())
		}
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *AuthHandlerTestSuite) authResult() *commands.AuthResult {
	return &commands.AuthResult{Token: "test-jwt-token", User: s.user.BuildReadModel()}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := builder.NewAuthBuilder().BuildDTO()

	s.Run("success: returns token, user and cookie", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).
			Return(s.authResult(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("test-jwt-token", response.AccessToken)
		s.Equal(s.user.Email, response.User.Email)

		c := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(c)
		s.Equal("test-jwt-token", c.Value)
		s.True(c.HttpOnly)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		bound := []testCaseAuth{
			{name: "email boundary OK (valid email)", mutate: testutil.Field("email", "valid@example.com"), expectCode: http.StatusOK},
			{name: "email boundary invalid (invalid email)", mutate: testutil.Field("email", "invalid-email"), expectCode: http.StatusBadRequest},
			{name: "password boundary OK (8 chars)", mutate: testutil.Field("password", "password"), expectCode: http.StatusOK},
			{name: "password boundary invalid (7 chars)", mutate: testutil.Field("password", strings.Repeat("a", 7)), expectCode: http.StatusBadRequest},
		}
		missing := []testCaseAuth{
			{name: "missing field: email (required)", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: password (required)", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
		}
		unknown := []testCaseAuth{
			{name: "unknown field rejected", mutate: testutil.Field("remember", true), expectCode: http.StatusBadRequest},
		}

		for _, group := range [][]testCaseAuth{bound, missing, unknown} {
			for _, tc := range group {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusOK {
						email, _ := requestMap["email"].(string)
						password, _ := requestMap["password"].(string)
						s.mockCommands.EXPECT().Login(gomock.Any(), email, password).Return(s.authResult(), nil)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
					if tc.expectCode == http.StatusOK {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "VALIDATION_ERROR")
					}
				})
			}
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{
				name:           "invalid credentials",
				commandsError:  errs.Mark(commands.ErrInvalidCredentials, errs.ErrUnauthenticated),
				expectedStatus: http.StatusUnauthorized,
				expectedCode:   "UNAUTHENTICATED",
			},
			{
				name:           "user inactive",
				commandsError:  errs.Mark(commands.ErrUserInactive, errs.ErrForbidden),
				expectedStatus: http.StatusForbidden,
				expectedCode:   "FORBIDDEN",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedCode:   "INTERNAL",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedCode)
				s.Nil(httptest.ExtractCookie(rec, cookie.AccessTokenCookieName))
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	reqBody := builder.NewAuthBuilder().BuildRegisterDTO()

	s.Run("success: returns 201 Created", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody.ToInput()).Return(s.authResult(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("client", response.User.Role)
		s.NotNil(httptest.ExtractCookie(rec, cookie.AccessTokenCookieName))
	})

	s.Run("error: 400 on oversized fields", func() {
		for name, mutate := range map[string]func(map[string]any){
			"password over 72": testutil.Field("password", strings.Repeat("p", 73)),
			"name over 100":    testutil.Field("name", strings.Repeat("n", 101)),
			"missing name":     testutil.Field("name", nil),
		} {
			s.Run(name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
			})
		}
	})

	s.Run("error: 409 when the email is taken", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, errs.MarkAll(commands.ErrEmailTaken, errs.ErrConflict)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "CONFLICT")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: returns 204 and expires the cookie", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)

		c := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(c)
		s.Empty(c.Value)
		s.Negative(c.MaxAge)
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns current user info", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.user.BuildPrincipal()).
			Return(s.user.BuildReadModel(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.user.Email, response["email"])
		s.Equal(s.user.Name, response["name"])
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queryError     error
			expectedStatus int
			expectedCode   string
		}{
			{"anonymous", errs.Mark(errs.New("no principal"), errs.ErrUnauthenticated), http.StatusUnauthorized, "UNAUTHENTICATED"},
			{"user not found", errs.Mark(errs.ErrUserNotFound, errs.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
			{"internal server error", errors.New("database error"), http.StatusInternalServerError, "INTERNAL"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any()).
					Return(nil, tc.queryError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})
}
