package services_test

import (
	"context"

	"github.com/SscSPs/notes_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository records calls so tests can assert which store operations happened.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshTokenHash(ctx context.Context, userID string, refreshTokenHash string) error {
	args := m.Called(ctx, userID, refreshTokenHash)
	return args.Error(0)
}

func (m *MockUserRepository) SwapRefreshTokenHash(ctx context.Context, userID string, expectedHash string, newHash string) error {
	args := m.Called(ctx, userID, expectedHash, newHash)
	return args.Error(0)
}

// MockNoteRepository is used for store failure paths of the note service.
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) FindNoteByID(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	args := m.Called(ctx, userID, noteID)
	var note *domain.Note
	if args.Get(0) != nil {
		note = args.Get(0).(*domain.Note)
	}
	return note, args.Error(1)
}

func (m *MockNoteRepository) FindNotes(ctx context.Context, filter domain.NoteFilter) ([]domain.Note, error) {
	args := m.Called(ctx, filter)
	var notes []domain.Note
	if args.Get(0) != nil {
		notes = args.Get(0).([]domain.Note)
	}
	return notes, args.Error(1)
}

func (m *MockNoteRepository) FindDistinctTags(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	var tags []string
	if args.Get(0) != nil {
		tags = args.Get(0).([]string)
	}
	return tags, args.Error(1)
}

func (m *MockNoteRepository) SaveNote(ctx context.Context, note domain.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNoteRepository) UpdateNote(ctx context.Context, note domain.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNoteRepository) DeleteNote(ctx context.Context, userID, noteID string) error {
	return m.Called(ctx, userID, noteID).Error(0)
}
