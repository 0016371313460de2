package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/SscSPs/notes_app/internal/core/domain"
	portssvc "github.com/SscSPs/notes_app/internal/core/ports/services"
	"github.com/SscSPs/notes_app/internal/core/result"
	"github.com/SscSPs/notes_app/internal/core/services"
	"github.com/SscSPs/notes_app/internal/dto"
	"github.com/SscSPs/notes_app/internal/repositories/memory"
	"github.com/SscSPs/notes_app/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "correct-horse-battery"

type AuthServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	users   *memory.UserRepository
	signer  *utils.JWTSigner
	hasher  *utils.BcryptHasher
	issuer  portssvc.TokenIssuer
	userSvc *services.UserService
	authSvc portssvc.AuthSvcFacade
}

func (s *AuthServiceTestSuite) SetupTest() {
	var err error
	s.ctx = context.Background()
	s.hasher, err = utils.NewBcryptHasher(bcrypt.MinCost)
	s.Require().NoError(err)
	s.signer, err = utils.NewJWTSigner("suite-secret", "notes-test")
	s.Require().NoError(err)

	s.users = memory.NewUserRepository()
	s.userSvc = services.NewUserService(s.users, s.hasher)
	s.issuer = services.NewTokenIssuer(s.signer, 15*time.Minute, time.Hour)
	s.authSvc = services.NewAuthService(s.users, s.userSvc, s.issuer, s.signer, s.hasher)
}

// withRepo rebuilds the auth service on top of a mock store.
func (s *AuthServiceTestSuite) withRepo(repo *MockUserRepository) portssvc.AuthSvcFacade {
	userSvc := services.NewUserService(repo, s.hasher)
	return services.NewAuthService(repo, userSvc, s.issuer, s.signer, s.hasher)
}

func (s *AuthServiceTestSuite) registerUser(email string) *domain.User {
	res := s.userSvc.CreateUser(s.ctx, dto.CreateUserRequest{Email: email, Password: testPassword, Name: "Test"})
	s.Require().True(res.IsOk())
	return res.Value()
}

func (s *AuthServiceTestSuite) storedHash(userID string) string {
	user, err := s.users.FindUserByID(s.ctx, userID)
	s.Require().NoError(err)
	return user.RefreshTokenHash
}

func (s *AuthServiceTestSuite) assertFailure(res interface {
	Failure() *apperrors.AppError
}, kind apperrors.Kind, message string) {
	failure := res.Failure()
	s.Require().NotNil(failure)
	s.Equal(kind, failure.Kind)
	s.Equal(message, failure.Message)
}

func (s *AuthServiceTestSuite) TestSignIn_IssuesPairAndPersistsMatchingHash() {
	user := s.registerUser("alice@example.com")

	res := s.authSvc.SignIn(s.ctx, "alice@example.com", testPassword)

	s.Require().True(res.IsOk())
	pair := res.Value()
	s.NotEmpty(pair.AccessToken)
	s.NotEmpty(pair.RefreshToken)
	s.True(s.hasher.Compare(pair.RefreshToken, s.storedHash(user.UserID)))

	access, err := s.signer.Verify(pair.AccessToken)
	s.Require().NoError(err)
	s.Equal(user.UserID, access.Subject)
	s.Equal(domain.TokenUseAccess, access.Use)

	refresh, err := s.signer.Verify(pair.RefreshToken)
	s.Require().NoError(err)
	s.Equal(domain.TokenUseRefresh, refresh.Use)
}

func (s *AuthServiceTestSuite) TestSignIn_ReplacesPreviousSession() {
	s.registerUser("alice@example.com")
	first := s.authSvc.SignIn(s.ctx, "alice@example.com", testPassword).Value()
	second := s.authSvc.SignIn(s.ctx, "alice@example.com", testPassword).Value()

	s.NotEqual(first.RefreshToken, second.RefreshToken)
	s.assertFailure(s.authSvc.Refresh(s.ctx, first.RefreshToken), apperrors.KindUnauthorized, "Refresh token does not match")
	s.True(s.authSvc.Refresh(s.ctx, second.RefreshToken).IsOk())
}

func (s *AuthServiceTestSuite) TestSignIn_UnknownEmailWritesNothing() {
	repo := new(MockUserRepository)
	repo.On("FindUserByEmail", mock.Anything, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	res := s.withRepo(repo).SignIn(s.ctx, "nobody@example.com", testPassword)

	s.assertFailure(res, apperrors.KindUnauthorized, "User not found")
	repo.AssertExpectations(s.T())
	repo.AssertNotCalled(s.T(), "UpdateRefreshTokenHash", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(s.T(), "SwapRefreshTokenHash", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestSignIn_WrongPasswordKeepsStoredHash() {
	user := s.registerUser("bob@example.com")
	s.Require().True(s.authSvc.SignIn(s.ctx, "bob@example.com", testPassword).IsOk())
	before := s.storedHash(user.UserID)

	res := s.authSvc.SignIn(s.ctx, "bob@example.com", "wrong-password")

	s.assertFailure(res, apperrors.KindUnauthorized, "Invalid password")
	s.Equal(before, s.storedHash(user.UserID))
}

func (s *AuthServiceTestSuite) TestSignIn_OAuthOnlyAccountHasNoPassword() {
	res := s.userSvc.ValidateOrCreateOAuthUser(s.ctx, domain.ExternalIdentity{
		Provider: domain.ProviderGoogle, ProviderUserID: "sub-1", Email: "g@example.com", EmailVerified: true,
	})
	s.Require().True(res.IsOk())

	s.assertFailure(s.authSvc.SignIn(s.ctx, "g@example.com", testPassword), apperrors.KindUnauthorized, "Invalid password")
}

func (s *AuthServiceTestSuite) TestSignIn_PersistFailureIsInternal() {
	hash, err := s.hasher.Hash(testPassword)
	s.Require().NoError(err)
	user := &domain.User{UserID: "u1", Email: "u1@example.com", PasswordHash: &hash}

	repo := new(MockUserRepository)
	repo.On("FindUserByEmail", mock.Anything, "u1@example.com").Return(user, nil)
	repo.On("UpdateRefreshTokenHash", mock.Anything, "u1", mock.AnythingOfType("string")).Return(errors.New("connection reset"))

	res := s.withRepo(repo).SignIn(s.ctx, "u1@example.com", testPassword)

	s.assertFailure(res, apperrors.KindInternal, "Failed to store refresh token")
	repo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestRefresh_RotationScenario() {
	s.registerUser("u1@example.com")
	pair1 := s.authSvc.SignIn(s.ctx, "u1@example.com", testPassword).Value()

	res := s.authSvc.Refresh(s.ctx, pair1.RefreshToken)
	s.Require().True(res.IsOk())
	pair2 := res.Value()
	s.NotEqual(pair1.RefreshToken, pair2.RefreshToken)
	s.NotEqual(pair1.AccessToken, pair2.AccessToken)

	s.assertFailure(s.authSvc.Refresh(s.ctx, pair1.RefreshToken), apperrors.KindUnauthorized, "Refresh token does not match")

	s.True(s.authSvc.Refresh(s.ctx, pair2.RefreshToken).IsOk())
}

func (s *AuthServiceTestSuite) TestRefresh_EmptyTokenTouchesNoStore() {
	repo := new(MockUserRepository)

	res := s.withRepo(repo).Refresh(s.ctx, "")

	s.assertFailure(res, apperrors.KindUnauthorized, "Missing refresh token")
	repo.AssertNotCalled(s.T(), "FindUserByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(s.T(), "SwapRefreshTokenHash", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestRefresh_ExpiredToken() {
	user := s.registerUser("old@example.com")
	expired, err := s.signer.Sign(domain.TokenPayload{Subject: user.UserID, Use: domain.TokenUseRefresh}, -time.Minute)
	s.Require().NoError(err)

	s.assertFailure(s.authSvc.Refresh(s.ctx, expired), apperrors.KindUnauthorized, "Invalid refresh token")
}

func (s *AuthServiceTestSuite) TestRefresh_RejectsAccessTokenAndForgeries() {
	user := s.registerUser("carol@example.com")
	pair := s.authSvc.SignIn(s.ctx, "carol@example.com", testPassword).Value()

	s.assertFailure(s.authSvc.Refresh(s.ctx, pair.AccessToken), apperrors.KindUnauthorized, "Invalid refresh token")

	otherSigner, err := utils.NewJWTSigner("another-secret", "notes-test")
	s.Require().NoError(err)
	forged, err := otherSigner.Sign(domain.TokenPayload{Subject: user.UserID, Use: domain.TokenUseRefresh}, time.Hour)
	s.Require().NoError(err)
	s.assertFailure(s.authSvc.Refresh(s.ctx, forged), apperrors.KindUnauthorized, "Invalid refresh token")

	s.assertFailure(s.authSvc.Refresh(s.ctx, "not.a.token"), apperrors.KindUnauthorized, "Invalid refresh token")
}

func (s *AuthServiceTestSuite) TestRefresh_UnknownUser() {
	token, err := s.signer.Sign(domain.TokenPayload{Subject: "ghost", Use: domain.TokenUseRefresh}, time.Hour)
	s.Require().NoError(err)

	s.assertFailure(s.authSvc.Refresh(s.ctx, token), apperrors.KindNotFound, "User not found")
}

func (s *AuthServiceTestSuite) TestRefresh_PersistFailureIsBadRequest() {
	token, err := s.signer.Sign(domain.TokenPayload{Subject: "u1", Use: domain.TokenUseRefresh}, time.Hour)
	s.Require().NoError(err)
	hash, err := s.hasher.Hash(token)
	s.Require().NoError(err)

	repo := new(MockUserRepository)
	repo.On("FindUserByID", mock.Anything, "u1").Return(&domain.User{UserID: "u1", RefreshTokenHash: hash}, nil)
	repo.On("SwapRefreshTokenHash", mock.Anything, "u1", hash, mock.AnythingOfType("string")).Return(errors.New("write conflict"))

	res := s.withRepo(repo).Refresh(s.ctx, token)

	s.assertFailure(res, apperrors.KindBadRequest, "Failed to generate new tokens")
	repo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestRefresh_LostSwapIsUnauthorized() {
	token, err := s.signer.Sign(domain.TokenPayload{Subject: "u1", Use: domain.TokenUseRefresh}, time.Hour)
	s.Require().NoError(err)
	hash, err := s.hasher.Hash(token)
	s.Require().NoError(err)

	repo := new(MockUserRepository)
	repo.On("FindUserByID", mock.Anything, "u1").Return(&domain.User{UserID: "u1", RefreshTokenHash: hash}, nil)
	repo.On("SwapRefreshTokenHash", mock.Anything, "u1", hash, mock.AnythingOfType("string")).Return(apperrors.ErrRefreshTokenMismatch)

	s.assertFailure(s.withRepo(repo).Refresh(s.ctx, token), apperrors.KindUnauthorized, "Refresh token does not match")
}

func (s *AuthServiceTestSuite) TestRefresh_ConcurrentCallsHaveOneWinner() {
	s.registerUser("race@example.com")
	pair := s.authSvc.SignIn(s.ctx, "race@example.com", testPassword).Value()

	const callers = 8
	results := make([]result.Result[domain.TokenPair], callers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = s.authSvc.Refresh(s.ctx, pair.RefreshToken)
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	for _, res := range results {
		if res.IsOk() {
			winners++
			continue
		}
		s.Equal(apperrors.KindUnauthorized, res.Failure().Kind)
	}
	s.Equal(1, winners)
}

func (s *AuthServiceTestSuite) TestLogout_IsIdempotent() {
	user := s.registerUser("dave@example.com")
	pair := s.authSvc.SignIn(s.ctx, "dave@example.com", testPassword).Value()

	s.True(s.authSvc.Logout(s.ctx, user.UserID).IsOk())
	s.Empty(s.storedHash(user.UserID))
	s.True(s.authSvc.Logout(s.ctx, user.UserID).IsOk())
	s.Empty(s.storedHash(user.UserID))

	s.assertFailure(s.authSvc.Refresh(s.ctx, pair.RefreshToken), apperrors.KindUnauthorized, "Refresh token does not match")
}

func (s *AuthServiceTestSuite) TestLogout_UnknownUser() {
	s.assertFailure(s.authSvc.Logout(s.ctx, "ghost"), apperrors.KindNotFound, "User not found")
}

func (s *AuthServiceTestSuite) TestLogout_PersistFailureIsInternal() {
	repo := new(MockUserRepository)
	repo.On("FindUserByID", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)
	repo.On("UpdateRefreshTokenHash", mock.Anything, "u1", "").Return(errors.New("timeout"))

	s.assertFailure(s.withRepo(repo).Logout(s.ctx, "u1"), apperrors.KindInternal, "Failed to logout")
}

func (s *AuthServiceTestSuite) TestAuthenticateGoogle_CreatesAccountAndSession() {
	identity := domain.ExternalIdentity{
		Provider: domain.ProviderGoogle, ProviderUserID: "google-sub", Email: "erin@example.com", Name: "Erin", EmailVerified: true,
	}

	res := s.authSvc.AuthenticateGoogle(s.ctx, identity)
	s.Require().True(res.IsOk())

	user, err := s.users.FindUserByEmail(s.ctx, "erin@example.com")
	s.Require().NoError(err)
	s.Equal(domain.ProviderGoogle, user.AuthProvider)
	s.Equal("google-sub", user.ProviderUserID)
	s.False(user.HasPassword())
	s.True(s.hasher.Compare(res.Value().RefreshToken, user.RefreshTokenHash))

	again := s.authSvc.AuthenticateGoogle(s.ctx, identity)
	s.Require().True(again.IsOk())
	s.assertFailure(s.authSvc.Refresh(s.ctx, res.Value().RefreshToken), apperrors.KindUnauthorized, "Refresh token does not match")
}

func (s *AuthServiceTestSuite) TestAuthenticateGoogle_InvalidIdentityIsBadRequest() {
	res := s.authSvc.AuthenticateGoogle(s.ctx, domain.ExternalIdentity{Provider: domain.ProviderGoogle, Email: "x@example.com"})

	s.assertFailure(res, apperrors.KindBadRequest, "Essential user information missing from identity")
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
