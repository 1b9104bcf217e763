package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
)

type OTPStore struct{ db *gorm.DB }

func (s *Store) OTPCodes() *OTPStore { return &OTPStore{db: s.DB} }

func (o *OTPStore) Create(ctx context.Context, code *domain.OTPCode) error {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	return translate(o.db.WithContext(ctx).Create(code).Error)
}

// LatestUnused returns the newest unused code row matching (user, code).
// Expiry is checked by the caller so it can distinguish invalid from
// expired.
func (o *OTPStore) LatestUnused(ctx context.Context, userID uuid.UUID, code string) (*domain.OTPCode, error) {
	var out domain.OTPCode
	err := o.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND is_used = false", userID, code).
		Order("created_at DESC").
		First(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (o *OTPStore) MarkUsed(ctx context.Context, id uuid.UUID) error {
	return translate(o.db.WithContext(ctx).Model(&domain.OTPCode{}).
		Where("id = ?", id).
		Update("is_used", true).Error)
}

// InvalidateOutstanding burns every unused code for the user. Issuing a
// new code calls this first so at most one code is live per user.
func (o *OTPStore) InvalidateOutstanding(ctx context.Context, userID uuid.UUID) error {
	return translate(o.db.WithContext(ctx).Model(&domain.OTPCode{}).
		Where("user_id = ? AND is_used = false", userID).
		Update("is_used", true).Error)
}
