package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
	"github.com/alfredjulianstanly/spot-feed/internal/dto"
)

type MessageService interface {
	Post(ctx context.Context, in dto.PostMessageInput) (*domain.Message, error)
	History(ctx context.Context, jointID uuid.UUID, limit int) ([]domain.Message, error)
}
