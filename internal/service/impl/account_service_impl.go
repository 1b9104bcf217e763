package impl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
	"github.com/alfredjulianstanly/spot-feed/internal/dto"
	"github.com/alfredjulianstanly/spot-feed/internal/events"
	"github.com/alfredjulianstanly/spot-feed/internal/store"
)

type AccountServiceImpl struct {
	Store  dataStore
	Events events.Publisher

	now func() time.Time
}

func NewAccountServiceImpl(st *store.Store, pub events.Publisher) *AccountServiceImpl {
	return &AccountServiceImpl{Store: newGormStoreAdapter(st), Events: pub, now: time.Now}
}

// Register creates the account row. Email is lowercased here; the
// schema stores whatever it is given. Uniqueness races resolve at the
// DB constraint and surface as ErrConflict. The age attestation is
// write-once: there is no path that updates is_18_plus later.
func (a *AccountServiceImpl) Register(ctx context.Context, in dto.RegisterInput) (*dto.RegisterOutput, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	if !in.Is18Plus {
		return nil, fmt.Errorf("%w: must be 18 or older to register", domain.ErrValidation)
	}

	now := a.nowUTC()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: in.PasswordHash,
		Is18Plus:     true,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.Store.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	if a.Events != nil {
		a.Events.Publish(ctx, "user.registered", events.UserRegistered{
			UserID: user.ID.String(),
			Email:  user.Email,
			At:     now,
		})
	}
	return &dto.RegisterOutput{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (a *AccountServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return a.Store.Users().GetByID(ctx, userID)
}

// UpdateProfile changes only the fields the caller provided.
func (a *AccountServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, in dto.UpdateProfileInput) (*domain.User, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	return a.Store.Users().UpdateProfile(ctx, userID, &domain.ProfilePatch{
		DisplayName:       in.DisplayName,
		ProfilePictureURL: in.ProfilePictureURL,
		PhoneNumber:       in.PhoneNumber,
	})
}

// Delete removes the account. Owned joints, memberships and OTP codes
// cascade at the schema level; authored messages survive authorless.
func (a *AccountServiceImpl) Delete(ctx context.Context, userID uuid.UUID) error {
	return a.Store.Users().Delete(ctx, userID)
}

func (a *AccountServiceImpl) nowUTC() time.Time {
	if a.now != nil {
		return a.now().UTC()
	}
	return time.Now().UTC()
}
