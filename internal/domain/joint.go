package domain

import "time"

const (
	JointTypePublic  = "public"
	JointTypePrivate = "private"

	VisibilityVisible = "visible"
	VisibilityHidden  = "hidden"
)

const (
	RoleCreator   = "creator"
	RoleModerator = "moderator"
	RoleMember    = "member"
)

// Joint is an ephemeral geofenced group. It is live only while
// IsActive is true and the current time is before ExpiresAt; expiry
// is terminal (no transition back to active).
type Joint struct {
	ID          JointID    `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	CreatorID   UserID     `gorm:"type:uuid;not null;index:idx_joints_creator_id" db:"creator_id" json:"creatorId"`
	Name        string     `gorm:"not null" db:"name" json:"name"`
	JointType   string     `gorm:"not null;default:public" db:"joint_type" json:"jointType"`
	Visibility  string     `gorm:"not null;default:visible" db:"visibility" json:"visibility"`
	Latitude    float64    `gorm:"not null;check:latitude >= -90 AND latitude <= 90" db:"latitude" json:"latitude"`
	Longitude   float64    `gorm:"not null;check:longitude >= -180 AND longitude <= 180" db:"longitude" json:"longitude"`
	Radius      int        `gorm:"not null;default:500" db:"radius" json:"radius"`
	CreatedAt   time.Time  `gorm:"not null" db:"created_at" json:"createdAt"`
	ExpiresAt   time.Time  `gorm:"not null" db:"expires_at" json:"expiresAt"`
	Description *string    `db:"description" json:"description,omitempty"`
	IsActive    bool       `gorm:"not null;default:true" db:"is_active" json:"isActive"`
}

func (Joint) TableName() string { return "joints" }

// Live reports whether the joint is visible to queries at the given time.
func (j *Joint) Live(now time.Time) bool {
	return j.IsActive && now.Before(j.ExpiresAt)
}

type JointMember struct {
	ID       UserID    `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	JointID  JointID   `gorm:"type:uuid;not null;uniqueIndex:ux_joint_members_joint_user" db:"joint_id" json:"jointId"`
	UserID   UserID    `gorm:"type:uuid;not null;uniqueIndex:ux_joint_members_joint_user" db:"user_id" json:"userId"`
	Role     string    `gorm:"not null;default:member" db:"role" json:"role"`
	JoinedAt time.Time `gorm:"not null" db:"joined_at" json:"joinedAt"`
}

func (JointMember) TableName() string { return "joint_members" }
