package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/SscSPs/notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/notes_app/internal/core/ports/services"
	"github.com/SscSPs/notes_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// Cookie names carrying the session tokens.
const (
	AccessTokenCookie  = "authToken"
	RefreshTokenCookie = "refreshToken"
)

// AuthMiddleware creates a Gin middleware handler that authenticates requests with an access
// token taken from the authToken cookie or, failing that, a Bearer Authorization header.
func AuthMiddleware(signer portssvc.TokenSigner, users portsrepo.UserReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, problem := accessTokenFromRequest(c)
		if problem != "" {
			logger.Warn("Access token missing", slog.String("reason", problem))
			abortUnauthorized(c, problem)
			return
		}

		payload, err := signer.Verify(tokenString)
		if err != nil {
			logger.Warn("Invalid access token", slog.String("error", err.Error()))
			abortUnauthorized(c, "Invalid token")
			return
		}
		if payload.Use != domain.TokenUseAccess {
			logger.Warn("Non-access token presented", slog.String("use", string(payload.Use)))
			abortUnauthorized(c, "Invalid token")
			return
		}

		if _, err := users.FindUserByID(c.Request.Context(), payload.Subject); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				abortUnauthorized(c, "User no longer exists")
				return
			}
			logger.Error("Failed to load token subject", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(http.StatusInternalServerError, "Internal server error", c.Request.URL.Path))
			return
		}

		setUserID(c, payload.Subject)
		enriched := logger.With(slog.String("user_id", payload.Subject))
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), enriched))

		c.Next()
	}
}

// accessTokenFromRequest returns the token, or a client-facing message explaining its absence.
func accessTokenFromRequest(c *gin.Context) (token string, problem string) {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie, ""
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "Authentication required"
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", "Authorization header format must be Bearer {token}"
	}
	return parts[1], ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(http.StatusUnauthorized, message, c.Request.URL.Path))
}
