package impl

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
	"github.com/alfredjulianstanly/spot-feed/internal/dto"
	"github.com/alfredjulianstanly/spot-feed/internal/events"
	"github.com/alfredjulianstanly/spot-feed/internal/geo"
	"github.com/alfredjulianstanly/spot-feed/internal/observability/metrics"
	"github.com/alfredjulianstanly/spot-feed/internal/store"
)

const (
	defaultRadiusMeters = 500
	defaultJointTTL     = 6 * time.Hour
)

type JointServiceImpl struct {
	Store      dataStore
	Events     events.Publisher
	DefaultTTL time.Duration

	now func() time.Time
}

func NewJointServiceImpl(st *store.Store, pub events.Publisher, defaultTTL time.Duration) *JointServiceImpl {
	if defaultTTL <= 0 {
		defaultTTL = defaultJointTTL
	}
	return &JointServiceImpl{
		Store:      newGormStoreAdapter(st),
		Events:     pub,
		DefaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Create inserts the joint and its creator membership in one
// transaction; a joint without a creator member must never exist.
func (s *JointServiceImpl) Create(ctx context.Context, in dto.CreateJointInput) (*domain.Joint, error) {
	if err := checkInput(in); err != nil {
		metrics.JointsCreatedTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	ttl := s.DefaultTTL
	if in.TTL != nil {
		if *in.TTL < 0 {
			metrics.JointsCreatedTotal.WithLabelValues("invalid").Inc()
			return nil, fmt.Errorf("%w: ttl must not be negative", domain.ErrValidation)
		}
		// An explicit zero is a joint born expired.
		ttl = *in.TTL
	}
	radius := in.Radius
	if radius == 0 {
		radius = defaultRadiusMeters
	}
	jointType := in.JointType
	if jointType == "" {
		jointType = domain.JointTypePublic
	}
	visibility := in.Visibility
	if visibility == "" {
		visibility = domain.VisibilityVisible
	}

	now := s.nowUTC()
	joint := &domain.Joint{
		ID:          uuid.New(),
		CreatorID:   in.CreatorID,
		Name:        in.Name,
		JointType:   jointType,
		Visibility:  visibility,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Radius:      radius,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
		Description: in.Description,
		IsActive:    true,
	}

	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		if err := tx.Joints().Create(ctx, joint); err != nil {
			return err
		}
		return tx.Members().Create(ctx, &domain.JointMember{
			ID:       uuid.New(),
			JointID:  joint.ID,
			UserID:   in.CreatorID,
			Role:     domain.RoleCreator,
			JoinedAt: now,
		})
	})
	if err != nil {
		metrics.JointsCreatedTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.JointsCreatedTotal.WithLabelValues("ok").Inc()
	s.publish(ctx, "joint.created", events.JointCreated{
		JointID:   joint.ID.String(),
		CreatorID: joint.CreatorID.String(),
		Name:      joint.Name,
		ExpiresAt: joint.ExpiresAt,
	})
	return joint, nil
}

// Join adds the user with role member. The membership uniqueness
// constraint arbitrates concurrent joins; the loser observes
// ErrConflict.
func (s *JointServiceImpl) Join(ctx context.Context, userID, jointID uuid.UUID) (*domain.JointMember, error) {
	member := &domain.JointMember{
		ID:       uuid.New(),
		JointID:  jointID,
		UserID:   userID,
		Role:     domain.RoleMember,
		JoinedAt: s.nowUTC(),
	}
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		joint, err := tx.Joints().GetByID(ctx, jointID)
		if err != nil {
			return err
		}
		if !joint.Live(s.nowUTC()) {
			return fmt.Errorf("%w: joint %s", domain.ErrExpired, jointID)
		}
		return tx.Members().Create(ctx, member)
	})
	if err != nil {
		metrics.MembershipChangesTotal.WithLabelValues("join", "error").Inc()
		return nil, err
	}

	metrics.MembershipChangesTotal.WithLabelValues("join", "ok").Inc()
	s.publish(ctx, "joint.member_joined", events.MemberJoined{
		JointID: jointID.String(),
		UserID:  userID.String(),
		Role:    member.Role,
		At:      member.JoinedAt,
	})
	return member, nil
}

// Leave removes the membership. The creator may not leave while other
// members remain; a creator leaving an otherwise empty joint takes the
// joint down with them.
func (s *JointServiceImpl) Leave(ctx context.Context, userID, jointID uuid.UUID) error {
	var deactivated bool
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		member, err := tx.Members().Get(ctx, jointID, userID)
		if err != nil {
			return err
		}
		if member.Role != domain.RoleCreator {
			return tx.Members().Delete(ctx, jointID, userID)
		}
		n, err := tx.Members().CountByJoint(ctx, jointID)
		if err != nil {
			return err
		}
		if n > 1 {
			return fmt.Errorf("%w: creator cannot leave while other members remain", domain.ErrForbidden)
		}
		if err := tx.Members().Delete(ctx, jointID, userID); err != nil {
			return err
		}
		deactivated = true
		return tx.Joints().Deactivate(ctx, jointID)
	})
	if err != nil {
		metrics.MembershipChangesTotal.WithLabelValues("leave", "error").Inc()
		return err
	}

	metrics.MembershipChangesTotal.WithLabelValues("leave", "ok").Inc()
	s.publish(ctx, "joint.member_left", events.MemberLeft{
		JointID:     jointID.String(),
		UserID:      userID.String(),
		Deactivated: deactivated,
		At:          s.nowUTC(),
	})
	return nil
}

// ExpireSweep transitions every joint past its expiry to inactive.
// The update is a conditional set, so repeated or concurrent sweeps for
// the same instant converge on the same state.
func (s *JointServiceImpl) ExpireSweep(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.Store.Joints().ExpireDue(ctx, now)
	if err != nil {
		metrics.SweepRunsTotal.WithLabelValues("error").Inc()
		return 0, err
	}
	metrics.SweepRunsTotal.WithLabelValues("ok").Inc()
	metrics.SweepExpiredTotal.Add(float64(count))
	if count > 0 {
		s.publish(ctx, "joint.expired", events.JointExpired{Count: count, At: now})
	}
	return count, nil
}

// FindNearby returns live joints whose great-circle distance from the
// query point is within min(q.MaxDistance, joint radius), closest
// first, newest first on ties. Rows are prefiltered with a bounding box
// and refined with exact haversine distance.
func (s *JointServiceImpl) FindNearby(ctx context.Context, q dto.NearbyQuery) ([]dto.JointWithDistance, error) {
	if err := checkInput(q); err != nil {
		return nil, err
	}
	now := s.nowUTC()
	box := geo.NewBoundingBox(q.Latitude, q.Longitude, q.MaxDistance)
	joints, err := s.Store.Joints().ActiveWithin(ctx, box, now)
	if err != nil {
		return nil, err
	}

	results := make([]dto.JointWithDistance, 0, len(joints))
	ids := make([]uuid.UUID, 0, len(joints))
	for _, j := range joints {
		d := geo.Haversine(q.Latitude, q.Longitude, j.Latitude, j.Longitude)
		limit := q.MaxDistance
		if r := float64(j.Radius); r < limit {
			limit = r
		}
		if d > limit {
			continue
		}
		results = append(results, dto.JointWithDistance{Joint: j, DistanceMeters: d})
		ids = append(ids, j.ID)
	}

	counts, err := s.Store.Members().CountByJoints(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].MemberCount = counts[results[i].Joint.ID]
	}

	sort.SliceStable(results, func(i, k int) bool {
		if results[i].DistanceMeters != results[k].DistanceMeters {
			return results[i].DistanceMeters < results[k].DistanceMeters
		}
		return results[i].Joint.CreatedAt.After(results[k].Joint.CreatedAt)
	})
	return results, nil
}

// ActiveForUser lists the live joints the user belongs to, newest
// first. Distance is not meaningful here and stays zero.
func (s *JointServiceImpl) ActiveForUser(ctx context.Context, userID uuid.UUID) ([]dto.JointWithDistance, error) {
	joints, err := s.Store.Joints().ActiveForUser(ctx, userID, s.nowUTC())
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(joints))
	for i, j := range joints {
		ids[i] = j.ID
	}
	counts, err := s.Store.Members().CountByJoints(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.JointWithDistance, len(joints))
	for i, j := range joints {
		out[i] = dto.JointWithDistance{Joint: j, MemberCount: counts[j.ID]}
	}
	return out, nil
}

func (s *JointServiceImpl) nowUTC() time.Time {
	if s.now != nil {
		return s.now().UTC()
	}
	return time.Now().UTC()
}

func (s *JointServiceImpl) publish(ctx context.Context, name string, payload any) {
	if s.Events != nil {
		s.Events.Publish(ctx, name, payload)
	}
}
