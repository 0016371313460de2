package services

import (
	"context"
	"time"

	"github.com/SscSPs/notes_app/internal/core/domain"
	"github.com/SscSPs/notes_app/internal/core/result"
	"golang.org/x/oauth2"
)

// Hasher produces salted one-way digests and compares plaintext against them.
type Hasher interface {
	Hash(plaintext string) (string, error)
	// Compare reports whether plaintext matches digest. A malformed digest never matches.
	Compare(plaintext, digest string) bool
}

// TokenSigner signs and verifies token payloads.
type TokenSigner interface {
	Sign(payload domain.TokenPayload, ttl time.Duration) (string, error)
	// Verify returns an error wrapping apperrors.ErrInvalidToken for any invalid token.
	Verify(token string) (*domain.TokenPayload, error)
}

// TokenIssuer mints access and refresh token pairs.
type TokenIssuer interface {
	GenerateTokens(userID string) (domain.TokenPair, error)
}

// AuthSvcFacade is the session-token core: sign-in, rotation and revocation.
type AuthSvcFacade interface {
	// SignIn checks the password and issues a fresh pair, replacing any previous refresh token.
	SignIn(ctx context.Context, email, password string) result.Result[domain.TokenPair]
	// Refresh rotates a valid refresh token into a new pair.
	Refresh(ctx context.Context, refreshToken string) result.Result[domain.TokenPair]
	// Logout revokes the user's refresh token.
	Logout(ctx context.Context, userID string) result.Result[struct{}]
	// AuthenticateGoogle signs in, creating the account when needed, from a verified Google identity.
	AuthenticateGoogle(ctx context.Context, identity domain.ExternalIdentity) result.Result[domain.TokenPair]
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo uses the access token to get user information from Google.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// VerifyIdentity validates the ID token in Google's token response and returns the identity it asserts.
	VerifyIdentity(ctx context.Context, token *oauth2.Token) (*domain.ExternalIdentity, error)
}
