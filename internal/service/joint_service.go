package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
	"github.com/alfredjulianstanly/spot-feed/internal/dto"
)

// JointService owns the joint lifecycle: creation with atomic creator
// membership, membership mutation, expiry sweeping, and nearby queries.
type JointService interface {
	Create(ctx context.Context, in dto.CreateJointInput) (*domain.Joint, error)
	Join(ctx context.Context, userID, jointID uuid.UUID) (*domain.JointMember, error)
	Leave(ctx context.Context, userID, jointID uuid.UUID) error
	ExpireSweep(ctx context.Context, now time.Time) (int64, error)
	FindNearby(ctx context.Context, q dto.NearbyQuery) ([]dto.JointWithDistance, error)
	ActiveForUser(ctx context.Context, userID uuid.UUID) ([]dto.JointWithDistance, error)
}
