package services_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/SscSPs/notes_app/internal/core/domain"
	"github.com/SscSPs/notes_app/internal/core/services"
	"github.com/SscSPs/notes_app/internal/platform/config"
	"github.com/SscSPs/notes_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

func googleConfig() *config.Config {
	return &config.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost:3000/api/auth/google/redirect",
	}
}

func TestGoogleOAuth_LoginURLCarriesState(t *testing.T) {
	svc := services.NewGoogleOAuthHandlerService(googleConfig())
	ctx := context.Background()

	state, err := svc.GenerateStateString(ctx)
	require.NoError(t, err)
	assert.Len(t, state, 32)

	loginURL, err := url.Parse(svc.GetGoogleLoginURL(ctx, state))
	require.NoError(t, err)
	assert.Equal(t, state, loginURL.Query().Get("state"))
	assert.Equal(t, "client-id", loginURL.Query().Get("client_id"))
}

func TestGoogleOAuth_VerifyIdentityFromIDToken(t *testing.T) {
	var gotAudience, gotToken string
	validator := func(_ context.Context, idToken, audience string) (*idtoken.Payload, error) {
		gotToken, gotAudience = idToken, audience
		return &idtoken.Payload{
			Subject: "google-sub",
			Claims: map[string]any{
				"email":          "erin@example.com",
				"name":           "Erin",
				"email_verified": true,
			},
		}, nil
	}
	svc := services.NewGoogleOAuthHandlerService(googleConfig(), services.WithIDTokenValidator(validator))
	token := (&oauth2.Token{AccessToken: "access"}).WithExtra(map[string]any{"id_token": "raw-id-token"})

	identity, err := svc.VerifyIdentity(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "raw-id-token", gotToken)
	assert.Equal(t, "client-id", gotAudience)
	assert.Equal(t, domain.ExternalIdentity{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: "google-sub",
		Email:          "erin@example.com",
		Name:           "Erin",
		EmailVerified:  true,
	}, *identity)
}

func TestGoogleOAuth_VerifyIdentityRejectsInvalidIDToken(t *testing.T) {
	validator := func(context.Context, string, string) (*idtoken.Payload, error) {
		return nil, errors.New("idtoken: token expired")
	}
	svc := services.NewGoogleOAuthHandlerService(googleConfig(), services.WithIDTokenValidator(validator))
	token := (&oauth2.Token{AccessToken: "access"}).WithExtra(map[string]any{"id_token": "stale"})

	_, err := svc.VerifyIdentity(context.Background(), token)

	assert.ErrorContains(t, err, "token expired")
}

func TestGoogleOAuth_VerifyIdentityFallsBackToUserInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"123","email":"frank@example.com","verified_email":true,"name":"Frank"}`))
	}))
	defer server.Close()

	svc := services.NewGoogleOAuthHandlerService(googleConfig(),
		services.WithGoogleEndpoints(oauth2.Endpoint{AuthURL: server.URL + "/auth", TokenURL: server.URL + "/token"}, server.URL+"/userinfo"))
	token := &oauth2.Token{AccessToken: "access", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)}

	identity, err := svc.VerifyIdentity(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "123", identity.ProviderUserID)
	assert.Equal(t, "frank@example.com", identity.Email)
	assert.True(t, identity.EmailVerified)
}

func TestTokenIssuer_SignsBothUses(t *testing.T) {
	signer, err := utils.NewJWTSigner("issuer-secret", "notes-test")
	require.NoError(t, err)
	issuer := services.NewTokenIssuer(signer, time.Minute, time.Hour)

	pair, err := issuer.GenerateTokens("user-9")
	require.NoError(t, err)

	access, err := signer.Verify(pair.AccessToken)
	require.NoError(t, err)
	refresh, err := signer.Verify(pair.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, domain.TokenUseAccess, access.Use)
	assert.Equal(t, domain.TokenUseRefresh, refresh.Use)
	assert.Equal(t, "user-9", refresh.Subject)
	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt))

	_, err = issuer.GenerateTokens("")
	assert.Error(t, err)
}
