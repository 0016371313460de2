package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/notes_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedPrefixes are operational routes that never produce analytics events.
var untrackedPrefixes = []string{"/health", "/metrics", "/swagger"}

// PosthogMiddleware reports each successful authenticated API call as a PostHog event named
// after its route template, e.g. "/api/notes/:id/archive" becomes "notes_id_archive".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || isUntracked(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		eventName := routeEventName(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

func isUntracked(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func routeEventName(route string) string {
	route = strings.TrimPrefix(route, "/api")
	parts := strings.FieldsFunc(route, func(r rune) bool { return r == '/' })
	for i, p := range parts {
		parts[i] = strings.TrimPrefix(p, ":")
	}
	return strings.Join(parts, "_")
}
