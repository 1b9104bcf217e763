package service

import (
	"context"

	"github.com/google/uuid"
)

// OTPService issues and consumes email verification codes. At most one
// code is live per user: issuing burns any outstanding codes first.
type OTPService interface {
	Issue(ctx context.Context, userID uuid.UUID) error
	Consume(ctx context.Context, email, code string) error
}
