package repositories

import (
	"context"

	"github.com/SscSPs/notes_app/internal/core/domain"
)

// UserReader defines read operations for user data.
// Lookups return apperrors.ErrNotFound when no user matches.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the email is taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's profile, credentials and provider link.
	UpdateUser(ctx context.Context, user domain.User) error
}

// RefreshTokenStore manages the single refresh-token hash kept on a user.
type RefreshTokenStore interface {
	// UpdateRefreshTokenHash overwrites the stored hash. An empty hash revokes.
	UpdateRefreshTokenHash(ctx context.Context, userID string, refreshTokenHash string) error

	// SwapRefreshTokenHash replaces the stored hash only if it still equals expectedHash.
	// Returns apperrors.ErrRefreshTokenMismatch when another writer got there first.
	SwapRefreshTokenHash(ctx context.Context, userID string, expectedHash string, newHash string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	RefreshTokenStore
}
