package models

// User is the stored form of a user, shared by the MongoDB and PostgreSQL repositories.
type User struct {
	UserID           string  `bson:"_id" db:"user_id"`
	Email            string  `bson:"email" db:"email"`
	Name             string  `bson:"name" db:"name"`
	PasswordHash     *string `bson:"passwordHash,omitempty" db:"password_hash"`
	AuthProvider     string  `bson:"provider" db:"auth_provider"`
	ProviderUserID   *string `bson:"providerUserId,omitempty" db:"provider_user_id"`
	RefreshTokenHash string  `bson:"refreshTokenHash" db:"refresh_token_hash"`
	AuditFields      `bson:",inline"`
}
