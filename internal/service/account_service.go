package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
	"github.com/alfredjulianstanly/spot-feed/internal/dto"
)

type AccountService interface {
	Register(ctx context.Context, in dto.RegisterInput) (*dto.RegisterOutput, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in dto.UpdateProfileInput) (*domain.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}
