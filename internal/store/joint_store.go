package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
	"github.com/alfredjulianstanly/spot-feed/internal/geo"
)

type JointStore struct{ db *gorm.DB }

func (s *Store) Joints() *JointStore { return &JointStore{db: s.DB} }

func (j *JointStore) Create(ctx context.Context, joint *domain.Joint) error {
	if joint.ID == uuid.Nil {
		joint.ID = uuid.New()
	}
	return translate(j.db.WithContext(ctx).Create(joint).Error)
}

func (j *JointStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Joint, error) {
	var out domain.Joint
	if err := j.db.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (j *JointStore) Deactivate(ctx context.Context, id uuid.UUID) error {
	return translate(j.db.WithContext(ctx).Model(&domain.Joint{}).
		Where("id = ?", id).
		Update("is_active", false).Error)
}

// ExpireDue flips every joint past its expiry to inactive and returns
// the number of rows changed. The WHERE clause makes the update
// conditional, so concurrent sweeps are idempotent; the storage
// engine's row-level write serialization is the only lock involved.
func (j *JointStore) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	res := j.db.WithContext(ctx).Model(&domain.Joint{}).
		Where("expires_at <= ? AND is_active = true", now).
		Update("is_active", false)
	return res.RowsAffected, translate(res.Error)
}

// ActiveWithin returns live joints inside the bounding box. Exact
// distance refinement happens in the service; this is only the index
// friendly prefilter.
func (j *JointStore) ActiveWithin(ctx context.Context, box geo.BoundingBox, now time.Time) ([]domain.Joint, error) {
	var out []domain.Joint
	err := j.db.WithContext(ctx).
		Where("is_active = true AND expires_at > ?", now).
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("longitude BETWEEN ? AND ?", box.MinLon, box.MaxLon).
		Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// ActiveForUser returns live joints the user is a member of, newest
// first.
func (j *JointStore) ActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Joint, error) {
	var out []domain.Joint
	err := j.db.WithContext(ctx).
		Joins("JOIN joint_members jm ON jm.joint_id = joints.id AND jm.user_id = ?", userID).
		Where("joints.is_active = true AND joints.expires_at > ?", now).
		Order("joints.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}
