package services

import (
	"context"

	"github.com/SscSPs/notes_app/internal/core/domain"
	"github.com/SscSPs/notes_app/internal/core/result"
	"github.com/SscSPs/notes_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) result.Result[*domain.User]
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new local account.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) result.Result[*domain.User]

	// UpdateUser updates an existing user's profile.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) result.Result[*domain.User]

	// ChangePassword replaces the password after checking the old one.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) result.Result[struct{}]
}

// UserOAuthSvc defines account operations driven by external identity providers.
type UserOAuthSvc interface {
	// ValidateOrCreateOAuthUser returns the account for the identity's email, creating it if absent.
	ValidateOrCreateOAuthUser(ctx context.Context, identity domain.ExternalIdentity) result.Result[*domain.User]
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserOAuthSvc
}
