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
	"github.com/SscSPs/notes_app/internal/dto"
	"github.com/google/uuid"
)

type UserService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	hasher   portssvc.Hasher
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, hasher portssvc.Hasher) *UserService {
	return &UserService{BaseService: newBaseService(), userRepo: userRepo, hasher: hasher}
}

func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) result.Result[*domain.User] {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return result.Fail[*domain.User](apperrors.NewAppError(apperrors.KindInternal, "Failed to create user", err))
	}

	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hash,
		AuthProvider: domain.ProviderLocal,
		AuditFields:  domain.NewAuditFields(userID, s.Now()),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return result.Fail[*domain.User](apperrors.NewConflictError("User already exists"))
		}
		s.LogError(ctx, err, "Failed to save user")
		return result.Fail[*domain.User](apperrors.NewAppError(apperrors.KindInternal, "Failed to create user", err))
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", userID))
	return result.Ok(&user)
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) result.Result[*domain.User] {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return s.userLookupFailure(ctx, err, userID)
	}
	return result.Ok(user)
}

func (s *UserService) userLookupFailure(ctx context.Context, err error, userID string) result.Result[*domain.User] {
	if errors.Is(err, apperrors.ErrNotFound) {
		return result.Fail[*domain.User](apperrors.NewNotFoundError("User not found"))
	}
	s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
	return result.Fail[*domain.User](apperrors.NewAppError(apperrors.KindInternal, "Failed to get user", err))
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) result.Result[*domain.User] {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return s.userLookupFailure(ctx, err, userID)
	}

	if req.Name != nil {
		user.Rename(*req.Name, s.Now())
	}

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return result.Fail[*domain.User](apperrors.NewNotFoundError("User not found"))
		}
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return result.Fail[*domain.User](apperrors.NewAppError(apperrors.KindInternal, "Failed to update user", err))
	}
	return result.Ok(user)
}

func (s *UserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) result.Result[struct{}] {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return result.Fail[struct{}](s.userLookupFailure(ctx, err, userID).Failure())
	}

	if !user.HasPassword() || !s.hasher.Compare(req.OldPassword, *user.PasswordHash) {
		return result.Fail[struct{}](apperrors.NewBadRequestError("Old password does not match"))
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash new password", slog.String("user_id", userID))
		return result.Fail[struct{}](apperrors.NewAppError(apperrors.KindInternal, "Failed to change password", err))
	}
	user.SetPasswordHash(hash, s.Now())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to store new password", slog.String("user_id", userID))
		return result.Fail[struct{}](apperrors.NewAppError(apperrors.KindInternal, "Failed to change password", err))
	}
	return result.Ok(struct{}{})
}

// ValidateOrCreateOAuthUser links a verified external identity to the account with the same
// email, creating a password-less account when none exists.
func (s *UserService) ValidateOrCreateOAuthUser(ctx context.Context, identity domain.ExternalIdentity) result.Result[*domain.User] {
	if identity.Email == "" || identity.ProviderUserID == "" {
		return result.Fail[*domain.User](apperrors.NewBadRequestError("Essential user information missing from identity"))
	}
	if !identity.EmailVerified {
		return result.Fail[*domain.User](apperrors.NewBadRequestError("Email address is not verified"))
	}

	user, err := s.userRepo.FindUserByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		return s.linkIdentity(ctx, user, identity)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up user by email")
		return result.Fail[*domain.User](apperrors.NewAppError(apperrors.KindInternal, "Failed to look up user", err))
	}

	userID := uuid.NewString()
	newUser := domain.User{
		UserID:         userID,
		Email:          identity.Email,
		Name:           identity.Name,
		AuthProvider:   identity.Provider,
		ProviderUserID: identity.ProviderUserID,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent sign-up for the same email.
			existing, findErr := s.userRepo.FindUserByEmail(ctx, identity.Email)
			if findErr == nil {
				return s.linkIdentity(ctx, existing, identity)
			}
		}
		s.LogError(ctx, err, "Failed to create oauth user")
		return result.Fail[*domain.User](apperrors.NewAppError(apperrors.KindInternal, "Failed to create user", err))
	}

	s.LogInfo(ctx, "User created from external identity", slog.String("user_id", userID), slog.String("provider", string(identity.Provider)))
	return result.Ok(&newUser)
}

func (s *UserService) linkIdentity(ctx context.Context, user *domain.User, identity domain.ExternalIdentity) result.Result[*domain.User] {
	if user.ProviderUserID == identity.ProviderUserID {
		return result.Ok(user)
	}
	if user.ProviderUserID != "" {
		return result.Fail[*domain.User](apperrors.NewConflictError("Account is linked to a different external identity"))
	}

	user.LinkProvider(identity.Provider, identity.ProviderUserID, s.Now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to link external identity", slog.String("user_id", user.UserID))
		return result.Fail[*domain.User](apperrors.NewAppError(apperrors.KindInternal, "Failed to link account", err))
	}
	return result.Ok(user)
}
