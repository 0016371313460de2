package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/SscSPs/notes_app/internal/dto"
	"github.com/SscSPs/notes_app/internal/middleware"
	"github.com/SscSPs/notes_app/internal/validation"
	"github.com/gin-gonic/gin"
)

// statusForKind is the single mapping from failure kinds to HTTP status codes.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindBadRequest:
		return http.StatusBadRequest
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindGatewayTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(status, message, c.Request.URL.Path))
}

// respondFailure writes a service failure. Internal details never reach the client.
func respondFailure(c *gin.Context, failure *apperrors.AppError) {
	status := statusForKind(failure.Kind)
	message := failure.Message
	if status == http.StatusInternalServerError {
		middleware.GetLoggerFromContext(c).Error("Request failed", slog.String("error", failure.Error()))
		if message == "" {
			message = "Internal server error"
		}
	}
	respondError(c, status, message)
}

func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromContext(c).Warn("Invalid request", slog.String("error", err.Error()))
	respondError(c, http.StatusBadRequest, validation.Describe(err))
}

// currentUserID returns the authenticated user or writes a 401.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromContext(c).Error("User ID not found in context")
		respondError(c, http.StatusUnauthorized, "User not authenticated")
	}
	return userID, ok
}
