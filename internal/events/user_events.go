package events

import "time"

type UserRegistered struct {
	UserID string    `json:"userId"`
	Email  string    `json:"email"`
	At     time.Time `json:"at"`
}

type EmailVerified struct {
	UserID string    `json:"userId"`
	At     time.Time `json:"at"`
}

type MessagePosted struct {
	MessageID string    `json:"messageId"`
	JointID   string    `json:"jointId"`
	Type      string    `json:"type"`
	At        time.Time `json:"at"`
}
