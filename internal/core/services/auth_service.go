package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/SscSPs/notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/notes_app/internal/core/ports/services"
	"github.com/SscSPs/notes_app/internal/core/result"
)

type authService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	users    portssvc.UserOAuthSvc
	issuer   portssvc.TokenIssuer
	signer   portssvc.TokenSigner
	hasher   portssvc.Hasher
}

// NewAuthService wires the session-token core.
func NewAuthService(
	userRepo portsrepo.UserRepositoryFacade,
	users portssvc.UserOAuthSvc,
	issuer portssvc.TokenIssuer,
	signer portssvc.TokenSigner,
	hasher portssvc.Hasher,
) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: newBaseService(),
		userRepo:    userRepo,
		users:       users,
		issuer:      issuer,
		signer:      signer,
		hasher:      hasher,
	}
}

func (s *authService) SignIn(ctx context.Context, email, password string) result.Result[domain.TokenPair] {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return result.Fail[domain.TokenPair](apperrors.NewUnauthorizedError("User not found"))
		}
		s.LogError(ctx, err, "Failed to look up user for sign-in")
		return result.Fail[domain.TokenPair](apperrors.NewAppError(apperrors.KindInternal, "Failed to sign in", err))
	}

	if !user.HasPassword() || !s.hasher.Compare(password, *user.PasswordHash) {
		return result.Fail[domain.TokenPair](apperrors.NewUnauthorizedError("Invalid password"))
	}

	return s.issueSession(ctx, user.UserID)
}

// issueSession mints a pair and overwrites the stored refresh hash, revoking any older session.
func (s *authService) issueSession(ctx context.Context, userID string) result.Result[domain.TokenPair] {
	pair, err := s.issuer.GenerateTokens(userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate tokens", slog.String("user_id", userID))
		return result.Fail[domain.TokenPair](apperrors.NewAppError(apperrors.KindInternal, "Failed to generate tokens", err))
	}
	hash, err := s.hasher.Hash(pair.RefreshToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash refresh token", slog.String("user_id", userID))
		return result.Fail[domain.TokenPair](apperrors.NewAppError(apperrors.KindInternal, "Failed to generate tokens", err))
	}
	if err := s.userRepo.UpdateRefreshTokenHash(ctx, userID, hash); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", userID))
		return result.Fail[domain.TokenPair](apperrors.NewAppError(apperrors.KindInternal, "Failed to store refresh token", err))
	}
	return result.Ok(pair)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) result.Result[domain.TokenPair] {
	if refreshToken == "" {
		return result.Fail[domain.TokenPair](apperrors.NewUnauthorizedError("Missing refresh token"))
	}

	payload, err := s.signer.Verify(refreshToken)
	if err != nil || payload.Use != domain.TokenUseRefresh {
		return result.Fail[domain.TokenPair](apperrors.NewUnauthorizedError("Invalid refresh token"))
	}

	user, err := s.userRepo.FindUserByID(ctx, payload.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return result.Fail[domain.TokenPair](apperrors.NewNotFoundError("User not found"))
		}
		s.LogError(ctx, err, "Failed to look up user for refresh", slog.String("user_id", payload.Subject))
		return result.Fail[domain.TokenPair](apperrors.NewAppError(apperrors.KindInternal, "Failed to refresh tokens", err))
	}

	if !s.hasher.Compare(refreshToken, user.RefreshTokenHash) {
		return result.Fail[domain.TokenPair](apperrors.NewUnauthorizedError("Refresh token does not match"))
	}

	pair, err := s.issuer.GenerateTokens(user.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate tokens on refresh", slog.String("user_id", user.UserID))
		return result.Fail[domain.TokenPair](apperrors.NewAppError(apperrors.KindBadRequest, "Failed to generate new tokens", err))
	}
	newHash, err := s.hasher.Hash(pair.RefreshToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash refresh token on refresh", slog.String("user_id", user.UserID))
		return result.Fail[domain.TokenPair](apperrors.NewAppError(apperrors.KindBadRequest, "Failed to generate new tokens", err))
	}

	// Only one of several concurrent refreshes with the same token may win the swap.
	err = s.userRepo.SwapRefreshTokenHash(ctx, user.UserID, user.RefreshTokenHash, newHash)
	switch {
	case err == nil:
		return result.Ok(pair)
	case errors.Is(err, apperrors.ErrRefreshTokenMismatch):
		return result.Fail[domain.TokenPair](apperrors.NewUnauthorizedError("Refresh token does not match"))
	case errors.Is(err, apperrors.ErrNotFound):
		return result.Fail[domain.TokenPair](apperrors.NewNotFoundError("User not found"))
	default:
		s.LogError(ctx, err, "Failed to store rotated refresh token", slog.String("user_id", user.UserID))
		return result.Fail[domain.TokenPair](apperrors.NewAppError(apperrors.KindBadRequest, "Failed to generate new tokens", err))
	}
}

func (s *authService) Logout(ctx context.Context, userID string) result.Result[struct{}] {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return result.Fail[struct{}](apperrors.NewNotFoundError("User not found"))
		}
		s.LogError(ctx, err, "Failed to look up user for logout", slog.String("user_id", userID))
		return result.Fail[struct{}](apperrors.NewAppError(apperrors.KindInternal, "Failed to logout", err))
	}

	if err := s.userRepo.UpdateRefreshTokenHash(ctx, userID, ""); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return result.Fail[struct{}](apperrors.NewNotFoundError("User not found"))
		}
		s.LogError(ctx, err, "Failed to revoke refresh token", slog.String("user_id", userID))
		return result.Fail[struct{}](apperrors.NewAppError(apperrors.KindInternal, "Failed to logout", err))
	}
	return result.Ok(struct{}{})
}

func (s *authService) AuthenticateGoogle(ctx context.Context, identity domain.ExternalIdentity) result.Result[domain.TokenPair] {
	userRes := s.users.ValidateOrCreateOAuthUser(ctx, identity)
	if userRes.IsFailure() {
		failure := userRes.Failure()
		return result.Fail[domain.TokenPair](apperrors.NewAppError(apperrors.KindBadRequest, failure.Message, failure))
	}
	user := userRes.Value()
	s.LogInfo(ctx, "Google identity authenticated", slog.String("user_id", user.UserID))
	return s.issueSession(ctx, user.UserID)
}
