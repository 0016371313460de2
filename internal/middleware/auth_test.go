package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/notes_app/internal/core/domain"
	"github.com/SscSPs/notes_app/internal/dto"
	"github.com/SscSPs/notes_app/internal/middleware"
	"github.com/SscSPs/notes_app/internal/repositories/memory"
	"github.com/SscSPs/notes_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *utils.JWTSigner, *memory.UserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	signer, err := utils.NewJWTSigner("test-secret", "notes-test")
	require.NoError(t, err)
	users := memory.NewUserRepository()

	router := gin.New()
	router.GET("/protected", middleware.AuthMiddleware(signer, users), func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		require.True(t, ok)
		ctxUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
		require.True(t, ok)
		assert.Equal(t, userID, ctxUserID)
		c.String(http.StatusOK, userID)
	})
	return router, signer, users
}

func saveUser(t *testing.T, users *memory.UserRepository, userID string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, users.SaveUser(context.Background(), domain.User{
		UserID:       userID,
		Email:        userID + "@example.com",
		AuthProvider: domain.ProviderLocal,
		AuditFields:  domain.NewAuditFields(userID, now),
	}))
}

func sign(t *testing.T, signer *utils.JWTSigner, userID string, use domain.TokenUse) string {
	t.Helper()
	token, err := signer.Sign(domain.TokenPayload{Subject: userID, Use: use}, time.Hour)
	require.NoError(t, err)
	return token
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware_AcceptsCookie(t *testing.T) {
	router, signer, users := setupAuthRouter(t)
	saveUser(t, users, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: sign(t, signer, "user-1", domain.TokenUseAccess)})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestAuthMiddleware_AcceptsBearerHeader(t *testing.T) {
	router, signer, users := setupAuthRouter(t)
	saveUser(t, users, "user-2")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, signer, "user-2", domain.TokenUseAccess))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-2", w.Body.String())
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	router, signer, users := setupAuthRouter(t)
	saveUser(t, users, "user-3")

	tests := []struct {
		name    string
		prepare func(r *http.Request)
		message string
	}{
		{
			name:    "no credentials",
			prepare: func(r *http.Request) {},
			message: "Authentication required",
		},
		{
			name:    "malformed header",
			prepare: func(r *http.Request) { r.Header.Set("Authorization", "Token abc") },
			message: "Authorization header format must be Bearer {token}",
		},
		{
			name:    "garbage token",
			prepare: func(r *http.Request) { r.Header.Set("Authorization", "Bearer not-a-jwt") },
			message: "Invalid token",
		},
		{
			name: "refresh token used as access token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+sign(t, signer, "user-3", domain.TokenUseRefresh))
			},
			message: "Invalid token",
		},
		{
			name: "deleted user",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+sign(t, signer, "ghost", domain.TokenUseAccess))
			},
			message: "User no longer exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
			assert.Equal(t, "/protected", body.Path)
		})
	}
}
