package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/notes_app/internal/core/ports/services"
	"github.com/SscSPs/notes_app/internal/platform/config"
	"github.com/SscSPs/notes_app/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, oauthOpts ...GoogleOAuthOption) (*portssvc.ServiceContainer, error) {
	hasher, err := utils.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create hasher: %w", err)
	}
	signer, err := utils.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create token signer: %w", err)
	}

	userSvc := NewUserService(repos.UserRepo, hasher)
	issuer := NewTokenIssuer(signer, cfg.AccessTokenExpiryDuration, cfg.RefreshTokenExpiryDuration)

	return &portssvc.ServiceContainer{
		Auth:               NewAuthService(repos.UserRepo, userSvc, issuer, signer, hasher),
		User:               userSvc,
		Note:               NewNoteService(repos.NoteRepo),
		GoogleOAuthHandler: NewGoogleOAuthHandlerService(cfg, oauthOpts...),
		TokenSigner:        signer,
	}, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade               = (*UserService)(nil)
	_ portssvc.AuthSvcFacade               = (*authService)(nil)
	_ portssvc.NoteSvcFacade               = (*noteService)(nil)
	_ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)
	_ portssvc.TokenIssuer                 = (*tokenIssuer)(nil)
	_ portssvc.Hasher                      = (*utils.BcryptHasher)(nil)
	_ portssvc.TokenSigner                 = (*utils.JWTSigner)(nil)
)
