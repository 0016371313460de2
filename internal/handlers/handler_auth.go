package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/notes_app/internal/apperrors"
	portssvc "github.com/SscSPs/notes_app/internal/core/ports/services"
	"github.com/SscSPs/notes_app/internal/dto"
	"github.com/SscSPs/notes_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles sign-up, sign-in and session cookie rotation.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	userService portssvc.UserSvcFacade
	cookies     cookieJar
}

func newAuthHandler(as portssvc.AuthSvcFacade, us portssvc.UserSvcFacade, cookies cookieJar) *authHandler {
	return &authHandler{authService: as, userService: us, cookies: cookies}
}

// registerAuthRoutes sets up the routes for authentication. loginGuard, when not nil, runs
// before the login handler.
func registerAuthRoutes(api *gin.RouterGroup, h *authHandler, requireAuth gin.HandlerFunc, loginGuard gin.HandlerFunc) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.register)
		if loginGuard != nil {
			auth.POST("/login", loginGuard, h.login)
		} else {
			auth.POST("/login", h.login)
		}
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", requireAuth, h.logout)
		auth.GET("/me", requireAuth, h.me)
	}
}

// register godoc
// @Summary Register new user
// @Description Creates a new local account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res := h.userService.CreateUser(c.Request.Context(), req)
	if res.IsFailure() {
		respondFailure(c, res.Failure())
		return
	}

	user := res.Value()
	middleware.GetLoggerFromContext(c).Info("User registered", slog.String("new_user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary User login
// @Description Checks the credentials and sets the authToken and refreshToken cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if res.IsFailure() {
		middleware.RecordAuthOutcome("login", "failure")
		logger.Warn("Login failed", slog.String("reason", res.Failure().Message))
		respondFailure(c, res.Failure())
		return
	}

	middleware.RecordAuthOutcome("login", "success")
	h.cookies.setSession(c, res.Value())
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Message: "Successfully logged in", Status: http.StatusOK})
}

// refresh godoc
// @Summary Rotate session tokens
// @Description Exchanges the refreshToken cookie for a new token pair. Every refresh token works once.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(middleware.RefreshTokenCookie)

	res := h.authService.Refresh(c.Request.Context(), refreshToken)
	if res.IsFailure() {
		failure := res.Failure()
		middleware.RecordAuthOutcome("refresh", "failure")
		if failure.Kind == apperrors.KindUnauthorized {
			h.cookies.clearSession(c)
			respondError(c, http.StatusUnauthorized, failure.Message)
			return
		}
		respondError(c, http.StatusBadRequest, failure.Message)
		return
	}

	middleware.RecordAuthOutcome("refresh", "success")
	h.cookies.setSession(c, res.Value())
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Message: "Tokens refreshed", Status: http.StatusOK})
}

// logout godoc
// @Summary Logout
// @Description Revokes the refresh token and clears the session cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	res := h.authService.Logout(c.Request.Context(), userID)
	if res.IsFailure() {
		middleware.RecordAuthOutcome("logout", "failure")
		middleware.GetLoggerFromContext(c).Error("Logout failed", slog.String("error", res.Failure().Error()))
		respondError(c, http.StatusBadRequest, res.Failure().Message)
		return
	}

	middleware.RecordAuthOutcome("logout", "success")
	h.cookies.clearSession(c)
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Message: "Successfully logged out", Status: http.StatusOK})
}

// me godoc
// @Summary Current user
// @Description Returns the profile of the authenticated user.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	res := h.userService.GetUserByID(c.Request.Context(), userID)
	if res.IsFailure() {
		respondFailure(c, res.Failure())
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(res.Value()))
}
