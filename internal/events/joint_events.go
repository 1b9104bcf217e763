package events

import "time"

type JointCreated struct {
	JointID   string    `json:"jointId"`
	CreatorID string    `json:"creatorId"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type JointExpired struct {
	Count int64     `json:"count"`
	At    time.Time `json:"at"`
}

type MemberJoined struct {
	JointID string    `json:"jointId"`
	UserID  string    `json:"userId"`
	Role    string    `json:"role"`
	At      time.Time `json:"at"`
}

type MemberLeft struct {
	JointID     string    `json:"jointId"`
	UserID      string    `json:"userId"`
	Deactivated bool      `json:"deactivated"`
	At          time.Time `json:"at"`
}
