package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
)

type MessageStore struct{ db *gorm.DB }

func (s *Store) Messages() *MessageStore { return &MessageStore{db: s.DB} }

func (m *MessageStore) Create(ctx context.Context, msg *domain.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	return translate(m.db.WithContext(ctx).Create(msg).Error)
}

// ListByJoint returns the joint's messages newest first, served by the
// (joint_id, created_at DESC) index.
func (m *MessageStore) ListByJoint(ctx context.Context, jointID uuid.UUID, limit int) ([]domain.Message, error) {
	var out []domain.Message
	tx := m.db.WithContext(ctx).
		Where("joint_id = ?", jointID).
		Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}
