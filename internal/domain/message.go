package domain

import "time"

const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeAudio = "audio"
	MessageTypeVideo = "video"
)

// Message belongs to exactly one joint. The author reference is nulled
// when the user is deleted; the message and its media reference survive.
type Message struct {
	ID          MessageID `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	JointID     JointID   `gorm:"type:uuid;not null;index:idx_messages_joint_id" db:"joint_id" json:"jointId"`
	UserID      *UserID   `gorm:"type:uuid;index:idx_messages_user_id" db:"user_id" json:"userId,omitempty"`
	Content     string    `gorm:"not null" db:"content" json:"content"`
	MessageType string    `gorm:"not null;default:text" db:"message_type" json:"messageType"`
	MediaURL    *string   `db:"media_url" json:"mediaUrl,omitempty"`
	CreatedAt   time.Time `gorm:"not null" db:"created_at" json:"createdAt"`
}

func (Message) TableName() string { return "messages" }
