package pgsql

import (
	"errors"
	"fmt"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// swapMissError explains a refresh token swap that matched no row, given the result of looking
// the user up afterwards.
func swapMissError(userID string, findErr error) error {
	switch {
	case findErr == nil:
		return apperrors.ErrRefreshTokenMismatch
	case errors.Is(findErr, apperrors.ErrNotFound):
		return apperrors.ErrNotFound
	default:
		return fmt.Errorf("failed to check user %s after refresh token swap: %w", userID, findErr)
	}
}
