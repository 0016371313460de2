package dto

import (
	"time"

	"github.com/SscSPs/notes_app/internal/core/domain"
)

// CreateUserRequest is the sign-up payload.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Name     string `json:"name" binding:"omitempty,max=100"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"` // Only name is updatable for now
}

// ChangePasswordRequest carries the old and the new password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=128"`
}

type UserResponse struct {
	UserID       string    `json:"userID"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AuthProvider string    `json:"authProvider"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain user into its public representation.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:       user.UserID,
		Email:        user.Email,
		Name:         user.Name,
		AuthProvider: string(user.AuthProvider),
		CreatedAt:    user.CreatedAt,
	}
}
