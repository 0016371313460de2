package handlers_test

import (
	"context"

	"github.com/SscSPs/notes_app/internal/core/domain"
	portssvc "github.com/SscSPs/notes_app/internal/core/ports/services"
	"github.com/SscSPs/notes_app/internal/core/result"
	"github.com/SscSPs/notes_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) result.Result[domain.TokenPair] {
	args := m.Called(ctx, email, password)
	return args.Get(0).(result.Result[domain.TokenPair])
}
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) result.Result[domain.TokenPair] {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(result.Result[domain.TokenPair])
}
func (m *MockAuthService) Logout(ctx context.Context, userID string) result.Result[struct{}] {
	args := m.Called(ctx, userID)
	return args.Get(0).(result.Result[struct{}])
}
func (m *MockAuthService) AuthenticateGoogle(ctx context.Context, identity domain.ExternalIdentity) result.Result[domain.TokenPair] {
	args := m.Called(ctx, identity)
	return args.Get(0).(result.Result[domain.TokenPair])
}

// Ensure mock implements the interface
var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) result.Result[*domain.User] {
	args := m.Called(ctx, userID)
	return args.Get(0).(result.Result[*domain.User])
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) result.Result[*domain.User] {
	args := m.Called(ctx, req)
	return args.Get(0).(result.Result[*domain.User])
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) result.Result[*domain.User] {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(result.Result[*domain.User])
}
func (m *MockUserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) result.Result[struct{}] {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(result.Result[struct{}])
}
func (m *MockUserService) ValidateOrCreateOAuthUser(ctx context.Context, identity domain.ExternalIdentity) result.Result[*domain.User] {
	args := m.Called(ctx, identity)
	return args.Get(0).(result.Result[*domain.User])
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock NoteService ---
type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) GetNote(ctx context.Context, userID, noteID string) result.Result[*domain.Note] {
	args := m.Called(ctx, userID, noteID)
	return args.Get(0).(result.Result[*domain.Note])
}
func (m *MockNoteService) ListNotes(ctx context.Context, userID string, params dto.ListNotesParams) result.Result[dto.ListNotesResponse] {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(result.Result[dto.ListNotesResponse])
}
func (m *MockNoteService) ListTags(ctx context.Context, userID string) result.Result[[]string] {
	args := m.Called(ctx, userID)
	return args.Get(0).(result.Result[[]string])
}
func (m *MockNoteService) CreateNote(ctx context.Context, userID string, req dto.CreateNoteRequest) result.Result[*domain.Note] {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(result.Result[*domain.Note])
}
func (m *MockNoteService) UpdateNote(ctx context.Context, userID, noteID string, req dto.UpdateNoteRequest) result.Result[struct{}] {
	args := m.Called(ctx, userID, noteID, req)
	return args.Get(0).(result.Result[struct{}])
}
func (m *MockNoteService) DeleteNote(ctx context.Context, userID, noteID string) result.Result[struct{}] {
	args := m.Called(ctx, userID, noteID)
	return args.Get(0).(result.Result[struct{}])
}
func (m *MockNoteService) ArchiveNote(ctx context.Context, userID, noteID string) result.Result[struct{}] {
	args := m.Called(ctx, userID, noteID)
	return args.Get(0).(result.Result[struct{}])
}
func (m *MockNoteService) ActivateNote(ctx context.Context, userID, noteID string) result.Result[struct{}] {
	args := m.Called(ctx, userID, noteID)
	return args.Get(0).(result.Result[struct{}])
}

var _ portssvc.NoteSvcFacade = (*MockNoteService)(nil)

// --- Mock GoogleOAuthHandlerService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}
func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}
func (m *MockGoogleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}
func (m *MockGoogleOAuthService) VerifyIdentity(ctx context.Context, token *oauth2.Token) (*domain.ExternalIdentity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExternalIdentity), args.Error(1)
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)
