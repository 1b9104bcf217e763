package dto

import "github.com/google/uuid"

type PostMessageInput struct {
	JointID     uuid.UUID `validate:"required"`
	UserID      uuid.UUID `validate:"required"`
	Content     string    `validate:"required"`
	MessageType string    `validate:"omitempty,oneof=text image audio video"`
	MediaURL    *string   `validate:"omitempty,url"`
}
