package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if usr.ID == uuid.Nil {
		usr.ID = uuid.New()
	}
	return translate(u.db.WithContext(ctx).Create(usr).Error)
}

func (u *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (u *UserStore) SetVerified(ctx context.Context, userID uuid.UUID) error {
	return translate(u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"is_verified": true, "updated_at": time.Now().UTC()}).Error)
}

// UpdateProfile applies only the non-nil fields, mirroring the
// COALESCE semantics of the original update statement.
func (u *UserStore) UpdateProfile(ctx context.Context, userID uuid.UUID, in *domain.ProfilePatch) (*domain.User, error) {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if in.DisplayName != nil {
		updates["display_name"] = *in.DisplayName
	}
	if in.ProfilePictureURL != nil {
		updates["profile_picture_url"] = *in.ProfilePictureURL
	}
	if in.PhoneNumber != nil {
		updates["phone_number"] = *in.PhoneNumber
	}
	res := u.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return u.GetByID(ctx, userID)
}

// Delete removes the user row. Memberships, OTP codes and owned joints
// cascade at the schema level; authored messages keep their row with the
// author reference nulled.
func (u *UserStore) Delete(ctx context.Context, userID uuid.UUID) error {
	res := u.db.WithContext(ctx).Where("id = ?", userID).Delete(&domain.User{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
