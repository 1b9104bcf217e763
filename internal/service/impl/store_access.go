package impl

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
	"github.com/alfredjulianstanly/spot-feed/internal/geo"
	"github.com/alfredjulianstanly/spot-feed/internal/store"
)

// The services depend on these narrow interfaces instead of the gorm
// store directly, so tests can substitute in-memory implementations.

type storeTx interface {
	Users() userStore
	OTPCodes() otpStore
	Joints() jointStore
	Members() memberStore
	Messages() messageStore
}

type dataStore interface {
	storeTx
	WithTx(ctx context.Context, fn func(tx storeTx) error) error
}

type userStore interface {
	Create(ctx context.Context, usr *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetVerified(ctx context.Context, userID uuid.UUID) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, in *domain.ProfilePatch) (*domain.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type otpStore interface {
	Create(ctx context.Context, code *domain.OTPCode) error
	LatestUnused(ctx context.Context, userID uuid.UUID, code string) (*domain.OTPCode, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	InvalidateOutstanding(ctx context.Context, userID uuid.UUID) error
}

type jointStore interface {
	Create(ctx context.Context, joint *domain.Joint) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Joint, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
	ActiveWithin(ctx context.Context, box geo.BoundingBox, now time.Time) ([]domain.Joint, error)
	ActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Joint, error)
}

type memberStore interface {
	Create(ctx context.Context, member *domain.JointMember) error
	Get(ctx context.Context, jointID, userID uuid.UUID) (*domain.JointMember, error)
	Delete(ctx context.Context, jointID, userID uuid.UUID) error
	CountByJoint(ctx context.Context, jointID uuid.UUID) (int64, error)
	CountByJoints(ctx context.Context, jointIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type messageStore interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByJoint(ctx context.Context, jointID uuid.UUID, limit int) ([]domain.Message, error)
}

type gormStoreAdapter struct {
	store *store.Store
}

func newGormStoreAdapter(st *store.Store) gormStoreAdapter {
	return gormStoreAdapter{store: st}
}

func (g gormStoreAdapter) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	if g.store == nil {
		return errors.New("nil store")
	}
	return g.store.WithTx(ctx, func(tx *store.Store) error {
		return fn(gormStoreAdapter{store: tx})
	})
}

func (g gormStoreAdapter) Users() userStore       { return g.store.Users() }
func (g gormStoreAdapter) OTPCodes() otpStore     { return g.store.OTPCodes() }
func (g gormStoreAdapter) Joints() jointStore     { return g.store.Joints() }
func (g gormStoreAdapter) Members() memberStore   { return g.store.Members() }
func (g gormStoreAdapter) Messages() messageStore { return g.store.Messages() }
