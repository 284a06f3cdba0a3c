package api

import (
	"net/http"

	reqdto "tour-booking/internal/handler/dto/request"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/httperr"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/pkg/config"
	"tour-booking/internal/pkg/cookie"
	"tour-booking/internal/pkg/jwt"
	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	userQueries  queries.UserQueries
	jwtService   *jwt.Service
	cookieCfg    config.CookieConfig
}

func NewAuthHandler(
	authCommands commands.AuthCommands,
	userQueries queries.UserQueries,
	jwtService *jwt.Service,
	cfg config.Config,
) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		userQueries:  userQueries,
		jwtService:   jwtService,
		cookieCfg:    cfg.Cookie,
	}
}

// @Summary Register
// @Description Create a client account and sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 201 {object} resdto.Envelope{data=resdto.AuthResponse}
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	result, err := h.authCommands.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondWithToken(c, http.StatusCreated, result, "Account created")
}

// @Summary User login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.Envelope{data=resdto.AuthResponse}
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, result, "Logged in")
}

// @Summary User logout
// @Description Clear the access token cookie. Bearer tokens stay valid until they expire.
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessToken(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.Envelope{data=resdto.UserResponse}
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	view, err := h.userQueries.GetCurrentUser(c.Request.Context(), p)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	out, err := resdto.FromUserView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.Write(c, http.StatusOK, out, "")
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, result *commands.AuthResult, msg string) {
	out, err := resdto.FromAuthResult(result)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	cookie.SetAccessToken(c, h.cookieCfg, result.Token, h.jwtService.TokenDuration())
	resdto.Write(c, status, out, msg)
}
