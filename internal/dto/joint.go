package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
)

type CreateJointInput struct {
	CreatorID   uuid.UUID `validate:"required"`
	Name        string    `validate:"required,min=3,max=100"`
	Description *string   `validate:"omitempty,max=500"`
	Latitude    float64   `validate:"min=-90,max=90"`
	Longitude   float64   `validate:"min=-180,max=180"`
	// Radius in meters; zero means the schema default of 500.
	Radius int `validate:"omitempty,min=10,max=5000"`
	// TTL until expiry; nil means the conventional 6 hours. An explicit
	// zero is accepted and yields a joint that is already expired.
	TTL        *time.Duration `validate:"omitempty,max=6h"`
	JointType  string        `validate:"omitempty,oneof=public private"`
	Visibility string        `validate:"omitempty,oneof=visible hidden"`
}

type JointWithDistance struct {
	Joint          domain.Joint `json:"joint"`
	DistanceMeters float64      `json:"distanceMeters"`
	MemberCount    int64        `json:"memberCount"`
}

type NearbyQuery struct {
	Latitude  float64 `validate:"min=-90,max=90"`
	Longitude float64 `validate:"min=-180,max=180"`
	// Search radius in meters.
	MaxDistance float64 `validate:"gt=0,max=10000"`
}
