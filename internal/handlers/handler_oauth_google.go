package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/SscSPs/notes_app/internal/core/domain"
	portssvc "github.com/SscSPs/notes_app/internal/core/ports/services"
	"github.com/SscSPs/notes_app/internal/dto"
	"github.com/SscSPs/notes_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler handles Google OAuth related requests.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	authService        portssvc.AuthSvcFacade
	cookies            cookieJar
	frontendURL        string
}

func newGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	authService portssvc.AuthSvcFacade,
	cookies cookieJar,
	frontendURL string,
) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleOAuthService: googleOAuthService,
		authService:        authService,
		cookies:            cookies,
		frontendURL:        frontendURL,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(api *gin.RouterGroup, h *googleOAuthHandler) {
	googleRoutes := api.Group("/auth/google")
	{
		googleRoutes.GET("", h.login)
		googleRoutes.GET("/redirect", h.callback)
		googleRoutes.POST("/exchange-code", h.exchangeCode)
	}
}

// login godoc
// @Summary Start Google login
// @Description Redirects to Google's consent screen with a CSRF state cookie.
// @Tags oauth
// @Success 307
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/google [get]
func (h *googleOAuthHandler) login(c *gin.Context) {
	state, err := h.googleOAuthService.GenerateStateString(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to start Google login")
		return
	}
	h.cookies.setState(c, state)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// callback godoc
// @Summary Google OAuth callback
// @Description Validates the state, signs the user in, sets the session cookies and redirects to the frontend.
// @Tags oauth
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 302
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /auth/google/redirect [get]
func (h *googleOAuthHandler) callback(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	expected, _ := c.Cookie(oauthStateCookie)
	h.cookies.clearState(c)
	state := c.Query("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		logger.Warn("OAuth state mismatch")
		respondError(c, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("Google denied authorization", slog.String("error", errParam))
		respondError(c, http.StatusBadRequest, "Google authorization was not granted")
		return
	}

	pair, ok := h.authenticateCode(c, c.Query("code"))
	if !ok {
		return
	}
	h.cookies.setSession(c, pair)
	logger.Info("Redirecting to frontend", slog.String("url", h.frontendURL))
	c.Redirect(http.StatusFound, h.frontendURL)
}

// exchangeCode godoc
// @Summary Exchange authorization code for a session
// @Description Used by single-page clients that receive the code themselves. Sets the session cookies.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pair, ok := h.authenticateCode(c, req.Code)
	if !ok {
		return
	}
	h.cookies.setSession(c, pair)
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Message: "Successfully logged in", Status: http.StatusOK})
}

// authenticateCode runs code exchange, identity verification and sign-in. It writes the error
// response itself and reports whether the caller may continue.
func (h *googleOAuthHandler) authenticateCode(c *gin.Context, code string) (domain.TokenPair, bool) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromContext(c)

	if code == "" {
		respondError(c, http.StatusBadRequest, "Authorization code is required")
		return domain.TokenPair{}, false
	}

	token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		middleware.RecordAuthOutcome("google", "failure")
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			respondError(c, http.StatusBadRequest, "Invalid or expired authorization code")
		} else {
			respondError(c, http.StatusGatewayTimeout, "Failed to communicate with Google")
		}
		return domain.TokenPair{}, false
	}

	identity, err := h.googleOAuthService.VerifyIdentity(ctx, token)
	if err != nil {
		logger.Error("Google identity verification failed", slog.String("error", err.Error()))
		middleware.RecordAuthOutcome("google", "failure")
		respondError(c, http.StatusUnauthorized, "Invalid Google identity")
		return domain.TokenPair{}, false
	}

	res := h.authService.AuthenticateGoogle(ctx, *identity)
	if res.IsFailure() {
		logger.Warn("Google authentication failed", slog.String("reason", res.Failure().Message))
		middleware.RecordAuthOutcome("google", "failure")
		if res.Failure().Kind == apperrors.KindInternal {
			respondFailure(c, res.Failure())
		} else {
			respondError(c, http.StatusBadRequest, "Failed to authenticate with Google")
		}
		return domain.TokenPair{}, false
	}

	middleware.RecordAuthOutcome("google", "success")
	return res.Value(), true
}
