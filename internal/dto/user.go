package dto

import (
	"github.com/google/uuid"
)

type RegisterInput struct {
	Username string `validate:"required,min=3,max=50"`
	Email    string `validate:"required,email"`
	// Opaque credential produced by the authentication collaborator.
	PasswordHash string `validate:"required"`
	Is18Plus     bool
}

type RegisterOutput struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type UpdateProfileInput struct {
	DisplayName       *string `validate:"omitempty,min=1,max=100"`
	ProfilePictureURL *string `validate:"omitempty,url"`
	PhoneNumber       *string `validate:"omitempty,max=12"`
}
