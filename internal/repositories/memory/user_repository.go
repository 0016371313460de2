package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/SscSPs/notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
)

// UserRepository keeps users in process memory. It backs tests and the "memory" storage driver.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (r *UserRepository) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	u := cloneUser(r.byID[id])
	return &u, nil
}

func (r *UserRepository) SaveUser(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return apperrors.ErrDuplicate
	}
	if _, ok := r.byID[user.UserID]; ok {
		return apperrors.ErrDuplicate
	}
	r.byID[user.UserID] = cloneUser(user)
	r.byEmail[user.Email] = user.UserID
	return nil
}

// UpdateUser replaces profile fields. The refresh hash is only changed through RefreshTokenStore.
func (r *UserRepository) UpdateUser(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[user.UserID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if existing.Email != user.Email {
		if _, taken := r.byEmail[user.Email]; taken {
			return apperrors.ErrDuplicate
		}
		delete(r.byEmail, existing.Email)
		r.byEmail[user.Email] = user.UserID
	}
	updated := cloneUser(user)
	updated.RefreshTokenHash = existing.RefreshTokenHash
	updated.CreatedAt = existing.CreatedAt
	updated.CreatedBy = existing.CreatedBy
	r.byID[user.UserID] = updated
	return nil
}

func (r *UserRepository) UpdateRefreshTokenHash(_ context.Context, userID string, refreshTokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.RefreshTokenHash = refreshTokenHash
	r.byID[userID] = u
	return nil
}

func (r *UserRepository) SwapRefreshTokenHash(_ context.Context, userID string, expectedHash string, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if u.RefreshTokenHash != expectedHash {
		return apperrors.ErrRefreshTokenMismatch
	}
	u.RefreshTokenHash = newHash
	r.byID[userID] = u
	return nil
}

func cloneUser(u domain.User) domain.User {
	if u.PasswordHash != nil {
		h := *u.PasswordHash
		u.PasswordHash = &h
	}
	return u
}
