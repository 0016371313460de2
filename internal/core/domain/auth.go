package domain

import "time"

// TokenUse distinguishes access tokens from refresh tokens.
type TokenUse string

const (
	TokenUseAccess  TokenUse = "access"
	TokenUseRefresh TokenUse = "refresh"
)

// TokenPayload is the claim set carried by every token the service issues.
type TokenPayload struct {
	Subject   string
	Email     string
	Use       TokenUse
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is the access and refresh token handed to a client after authentication.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ExternalIdentity is an identity already verified by an external provider.
type ExternalIdentity struct {
	Provider       AuthProvider
	ProviderUserID string
	Email          string
	Name           string
	EmailVerified  bool
}

// GoogleUserInfo is the payload returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// ToExternalIdentity converts Google's userinfo response into an ExternalIdentity.
func (g GoogleUserInfo) ToExternalIdentity() ExternalIdentity {
	return ExternalIdentity{
		Provider:       ProviderGoogle,
		ProviderUserID: g.ID,
		Email:          g.Email,
		Name:           g.Name,
		EmailVerified:  g.VerifiedEmail,
	}
}
