package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/SscSPs/notes_app/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the JWT claim set for access and refresh tokens.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Use   string `json:"use"`
}

// JWTSigner signs token payloads with HS256.
type JWTSigner struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTSigner fails on an empty secret, which is a fatal configuration error.
func NewJWTSigner(secret, issuer string) (*JWTSigner, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &JWTSigner{secret: []byte(secret), issuer: issuer, now: time.Now}, nil
}

// Sign produces a signed token for payload that expires after ttl.
// A random token ID is added when payload has none.
func (s *JWTSigner) Sign(payload domain.TokenPayload, ttl time.Duration) (string, error) {
	if payload.Subject == "" {
		return "", errors.New("token subject must not be empty")
	}
	now := s.now()
	tokenID := payload.TokenID
	if tokenID == "" {
		tokenID = uuid.NewString()
	}
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    s.issuer,
			Subject:   payload.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: payload.Email,
		Use:   string(payload.Use),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token, checks signature, algorithm, issuer and expiry, and returns its payload.
// Every failure wraps apperrors.ErrInvalidToken.
func (s *JWTSigner) Verify(token string) (*domain.TokenPayload, error) {
	claims := &TokenClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, apperrors.ErrInvalidToken
	}

	payload := &domain.TokenPayload{
		Subject: claims.Subject,
		Email:   claims.Email,
		Use:     domain.TokenUse(claims.Use),
		TokenID: claims.ID,
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		payload.ExpiresAt = claims.ExpiresAt.Time
	}
	return payload, nil
}
