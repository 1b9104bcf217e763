package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
)

type MemberStore struct{ db *gorm.DB }

func (s *Store) Members() *MemberStore { return &MemberStore{db: s.DB} }

// Create inserts a membership row. The unique index on
// (joint_id, user_id) arbitrates concurrent joins; the loser gets
// ErrConflict.
func (m *MemberStore) Create(ctx context.Context, member *domain.JointMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	return translate(m.db.WithContext(ctx).Create(member).Error)
}

func (m *MemberStore) Get(ctx context.Context, jointID, userID uuid.UUID) (*domain.JointMember, error) {
	var out domain.JointMember
	err := m.db.WithContext(ctx).
		First(&out, "joint_id = ? AND user_id = ?", jointID, userID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (m *MemberStore) Delete(ctx context.Context, jointID, userID uuid.UUID) error {
	res := m.db.WithContext(ctx).
		Where("joint_id = ? AND user_id = ?", jointID, userID).
		Delete(&domain.JointMember{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *MemberStore) CountByJoint(ctx context.Context, jointID uuid.UUID) (int64, error) {
	var n int64
	err := m.db.WithContext(ctx).Model(&domain.JointMember{}).
		Where("joint_id = ?", jointID).
		Count(&n).Error
	return n, translate(err)
}

// CountByJoints returns member counts keyed by joint for the nearby
// listing. Joints with no members are absent from the map.
func (m *MemberStore) CountByJoints(ctx context.Context, jointIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(jointIDs))
	if len(jointIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		JointID uuid.UUID
		N       int64
	}
	err := m.db.WithContext(ctx).Model(&domain.JointMember{}).
		Select("joint_id, COUNT(*) AS n").
		Where("joint_id IN ?", jointIDs).
		Group("joint_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, r := range rows {
		counts[r.JointID] = r.N
	}
	return counts, nil
}
