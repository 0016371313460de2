package domain

import "time"

// AuthProvider identifies how a user account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents a user of the application in the domain.
type User struct {
	UserID         string       `json:"userID"`
	Email          string       `json:"email"`
	Name           string       `json:"name"`
	PasswordHash   *string      `json:"-"` // nil for accounts that only sign in through an external provider
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"-"`
	// RefreshTokenHash is the hash of the single refresh token currently valid for the user.
	// Empty means no refresh token is active.
	RefreshTokenHash string `json:"-"`
	AuditFields
}

// HasPassword reports whether the user can sign in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// SetPasswordHash replaces the stored password hash.
func (u *User) SetPasswordHash(hash string, now time.Time) {
	u.PasswordHash = &hash
	u.touch(now)
}

// Rename changes the display name.
func (u *User) Rename(name string, now time.Time) {
	u.Name = name
	u.touch(now)
}

// LinkProvider attaches an external identity to the account. Accounts with a password
// keep their local provider.
func (u *User) LinkProvider(provider AuthProvider, providerUserID string, now time.Time) {
	if !u.HasPassword() {
		u.AuthProvider = provider
	}
	u.ProviderUserID = providerUserID
	u.touch(now)
}

func (u *User) touch(now time.Time) {
	u.LastUpdatedAt = now
	u.LastUpdatedBy = u.UserID
}
