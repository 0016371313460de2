package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/notes_app/internal/core/domain"
	portssvc "github.com/SscSPs/notes_app/internal/core/ports/services"
	"github.com/SscSPs/notes_app/internal/platform/config"
	"github.com/SscSPs/notes_app/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// IDTokenValidator checks a Google ID token against an audience.
type IDTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg *config.Config
	// oauth2Config is configured at initialization time
	oauth2Config *oauth2.Config
	validate     IDTokenValidator
	userInfoURL  string
}

// GoogleOAuthOption customises the Google OAuth service.
type GoogleOAuthOption func(*googleOAuthHandlerService)

// WithIDTokenValidator replaces idtoken.Validate.
func WithIDTokenValidator(v IDTokenValidator) GoogleOAuthOption {
	return func(s *googleOAuthHandlerService) {
		s.validate = v
	}
}

// WithGoogleEndpoints points the service at a different OAuth endpoint and userinfo URL.
func WithGoogleEndpoints(endpoint oauth2.Endpoint, userInfoURL string) GoogleOAuthOption {
	return func(s *googleOAuthHandlerService) {
		s.oauth2Config.Endpoint = endpoint
		s.userInfoURL = userInfoURL
	}
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config, opts ...GoogleOAuthOption) portssvc.GoogleOAuthHandlerSvcFacade {
	s := &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		validate:    idtoken.Validate,
		userInfoURL: googleUserInfoURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.RandomHex(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// GetUserInfo uses the access token to get user information from Google.
func (s *googleOAuthHandlerService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned non-200 status for userinfo: %s", resp.Status)
	}

	var userInfo domain.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info from google: %w", err)
	}
	return &userInfo, nil
}

// VerifyIdentity prefers the signed ID token in the token response and falls back to the
// userinfo endpoint when Google did not return one.
func (s *googleOAuthHandlerService) VerifyIdentity(ctx context.Context, token *oauth2.Token) (*domain.ExternalIdentity, error) {
	if token == nil {
		return nil, errors.New("missing oauth token")
	}

	rawIDToken, _ := token.Extra("id_token").(string)
	if rawIDToken == "" {
		info, err := s.GetUserInfo(ctx, token)
		if err != nil {
			return nil, err
		}
		identity := info.ToExternalIdentity()
		return &identity, nil
	}

	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}
	payload, err := s.validate(ctx, rawIDToken, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}

	identity := &domain.ExternalIdentity{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: payload.Subject,
	}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	return identity, nil
}
