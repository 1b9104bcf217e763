package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
	"github.com/alfredjulianstanly/spot-feed/internal/dto"
	"github.com/alfredjulianstanly/spot-feed/internal/events"
	"github.com/alfredjulianstanly/spot-feed/internal/observability/metrics"
	"github.com/alfredjulianstanly/spot-feed/internal/store"
)

type MessageServiceImpl struct {
	Store  dataStore
	Events events.Publisher

	now func() time.Time
}

func NewMessageServiceImpl(st *store.Store, pub events.Publisher) *MessageServiceImpl {
	return &MessageServiceImpl{Store: newGormStoreAdapter(st), Events: pub, now: time.Now}
}

// Post validates the ingestion rules and writes the message: the joint
// must be live, the author must be a member, and non-text types need a
// media URL (the schema leaves that a soft contract; it is enforced
// here).
func (m *MessageServiceImpl) Post(ctx context.Context, in dto.PostMessageInput) (*domain.Message, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	msgType := in.MessageType
	if msgType == "" {
		msgType = domain.MessageTypeText
	}
	if msgType != domain.MessageTypeText && (in.MediaURL == nil || *in.MediaURL == "") {
		return nil, fmt.Errorf("%w: media_url is required for %s messages", domain.ErrValidation, msgType)
	}

	userID := in.UserID
	msg := &domain.Message{
		ID:          uuid.New(),
		JointID:     in.JointID,
		UserID:      &userID,
		Content:     in.Content,
		MessageType: msgType,
		MediaURL:    in.MediaURL,
		CreatedAt:   m.nowUTC(),
	}

	err := m.Store.WithTx(ctx, func(tx storeTx) error {
		joint, err := tx.Joints().GetByID(ctx, in.JointID)
		if err != nil {
			return err
		}
		if !joint.Live(m.nowUTC()) {
			return fmt.Errorf("%w: joint %s", domain.ErrExpired, in.JointID)
		}
		if _, err := tx.Members().Get(ctx, in.JointID, in.UserID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: not a member of joint %s", domain.ErrForbidden, in.JointID)
			}
			return err
		}
		return tx.Messages().Create(ctx, msg)
	})
	if err != nil {
		return nil, err
	}

	metrics.MessagesPostedTotal.WithLabelValues(msgType).Inc()
	if m.Events != nil {
		m.Events.Publish(ctx, "message.posted", events.MessagePosted{
			MessageID: msg.ID.String(),
			JointID:   msg.JointID.String(),
			Type:      msg.MessageType,
			At:        msg.CreatedAt,
		})
	}
	return msg, nil
}

func (m *MessageServiceImpl) History(ctx context.Context, jointID uuid.UUID, limit int) ([]domain.Message, error) {
	return m.Store.Messages().ListByJoint(ctx, jointID, limit)
}

func (m *MessageServiceImpl) nowUTC() time.Time {
	if m.now != nil {
		return m.now().UTC()
	}
	return time.Now().UTC()
}
