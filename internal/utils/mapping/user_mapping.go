package mapping

import (
	"github.com/SscSPs/notes_app/internal/core/domain"
	"github.com/SscSPs/notes_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	var providerUserID *string
	if d.ProviderUserID != "" {
		id := d.ProviderUserID
		providerUserID = &id
	}
	return models.User{
		UserID:           d.UserID,
		Email:            d.Email,
		Name:             d.Name,
		PasswordHash:     d.PasswordHash,
		AuthProvider:     string(d.AuthProvider),
		ProviderUserID:   providerUserID,
		RefreshTokenHash: d.RefreshTokenHash,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	u := domain.User{
		UserID:           m.UserID,
		Email:            m.Email,
		Name:             m.Name,
		PasswordHash:     m.PasswordHash,
		AuthProvider:     domain.AuthProvider(m.AuthProvider),
		RefreshTokenHash: m.RefreshTokenHash,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.ProviderUserID != nil {
		u.ProviderUserID = *m.ProviderUserID
	}
	return u
}
