package domain

import "time"

type User struct {
	ID                UserID    `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	Username          string    `gorm:"not null;uniqueIndex:ux_users_username" db:"username" json:"username"`
	Email             string    `gorm:"not null;uniqueIndex:ux_users_email" db:"email" json:"email"`
	PasswordHash      string    `gorm:"not null" db:"password_hash" json:"-"`
	DisplayName       *string   `db:"display_name" json:"displayName,omitempty"`
	ProfilePictureURL *string   `db:"profile_picture_url" json:"profilePictureUrl,omitempty"`
	PhoneNumber       *string   `db:"phone_number" json:"phoneNumber,omitempty"`
	Phone             *string   `db:"phone" json:"phone,omitempty"`
	Is18Plus          bool      `gorm:"not null;default:false" db:"is_18_plus" json:"is18Plus"`
	IsVerified        bool      `gorm:"not null;default:false" db:"is_verified" json:"isVerified"`
	CreatedAt         time.Time `gorm:"not null" db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"not null" db:"updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// ProfilePatch carries the user-editable profile fields; nil means
// leave the stored value unchanged.
type ProfilePatch struct {
	DisplayName       *string
	ProfilePictureURL *string
	PhoneNumber       *string
}

// OTPCode is a single-use email verification code. Valid only while
// IsUsed is false and the current time is before ExpiresAt.
type OTPCode struct {
	ID        UserID    `gorm:"type:uuid;primaryKey" db:"id"`
	UserID    UserID    `gorm:"type:uuid;not null;index:idx_otp_codes_user_id" db:"user_id"`
	Code      string    `gorm:"type:char(6);not null;index:idx_otp_codes_code" db:"code"`
	ExpiresAt time.Time `gorm:"not null;index:idx_otp_codes_expires_at" db:"expires_at"`
	IsUsed    bool      `gorm:"not null;default:false" db:"is_used"`
	CreatedAt time.Time `gorm:"not null" db:"created_at"`
}

func (OTPCode) TableName() string { return "otp_codes" }
