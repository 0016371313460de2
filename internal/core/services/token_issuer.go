package services

import (
	"fmt"
	"time"

	"github.com/SscSPs/notes_app/internal/core/domain"
	portssvc "github.com/SscSPs/notes_app/internal/core/ports/services"
)

type tokenIssuer struct {
	signer     portssvc.TokenSigner
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenIssuer returns an issuer that signs both tokens of a pair with signer.
func NewTokenIssuer(signer portssvc.TokenSigner, accessTTL, refreshTTL time.Duration) portssvc.TokenIssuer {
	return &tokenIssuer{signer: signer, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (i *tokenIssuer) GenerateTokens(userID string) (domain.TokenPair, error) {
	access, err := i.signer.Sign(domain.TokenPayload{Subject: userID, Use: domain.TokenUseAccess}, i.accessTTL)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := i.signer.Sign(domain.TokenPayload{Subject: userID, Use: domain.TokenUseRefresh}, i.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
