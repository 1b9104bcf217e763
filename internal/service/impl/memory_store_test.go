package impl

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
	"github.com/alfredjulianstanly/spot-feed/internal/geo"
)

// memoryStore implements dataStore with the same constraint semantics
// the schema provides: unique username/email, unique (joint, user)
// membership, FK presence checks, cascade on joint/user delete and
// SET NULL on message authors. WithTx snapshots state and restores it
// on error, and its mutex stands in for the storage engine's write
// serialization.
type memoryStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*domain.User
	otps     map[uuid.UUID]*domain.OTPCode
	joints   map[uuid.UUID]*domain.Joint
	members  map[uuid.UUID]*domain.JointMember
	messages map[uuid.UUID]*domain.Message
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[uuid.UUID]*domain.User),
		otps:     make(map[uuid.UUID]*domain.OTPCode),
		joints:   make(map[uuid.UUID]*domain.Joint),
		members:  make(map[uuid.UUID]*domain.JointMember),
		messages: make(map[uuid.UUID]*domain.Message),
	}
}

type memSnapshot struct {
	users    map[uuid.UUID]*domain.User
	otps     map[uuid.UUID]*domain.OTPCode
	joints   map[uuid.UUID]*domain.Joint
	members  map[uuid.UUID]*domain.JointMember
	messages map[uuid.UUID]*domain.Message
}

func copyMap[V any](src map[uuid.UUID]*V) map[uuid.UUID]*V {
	dst := make(map[uuid.UUID]*V, len(src))
	for k, v := range src {
		c := *v
		dst[k] = &c
	}
	return dst
}

func (m *memoryStore) snapshot() memSnapshot {
	return memSnapshot{
		users:    copyMap(m.users),
		otps:     copyMap(m.otps),
		joints:   copyMap(m.joints),
		members:  copyMap(m.members),
		messages: copyMap(m.messages),
	}
}

func (m *memoryStore) restore(s memSnapshot) {
	m.users = s.users
	m.otps = s.otps
	m.joints = s.joints
	m.members = s.members
	m.messages = s.messages
}

func (m *memoryStore) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot()
	if err := fn(memView{s: m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

// Direct (non-transactional) access takes the lock per call; the tx
// view runs under the lock WithTx already holds.
func (m *memoryStore) Users() userStore       { return memUsers{s: m, lock: true} }
func (m *memoryStore) OTPCodes() otpStore     { return memOTPs{s: m, lock: true} }
func (m *memoryStore) Joints() jointStore     { return memJoints{s: m, lock: true} }
func (m *memoryStore) Members() memberStore   { return memMembers{s: m, lock: true} }
func (m *memoryStore) Messages() messageStore { return memMessages{s: m, lock: true} }

type memView struct{ s *memoryStore }

func (v memView) Users() userStore       { return memUsers{s: v.s} }
func (v memView) OTPCodes() otpStore     { return memOTPs{s: v.s} }
func (v memView) Joints() jointStore     { return memJoints{s: v.s} }
func (v memView) Members() memberStore   { return memMembers{s: v.s} }
func (v memView) Messages() messageStore { return memMessages{s: v.s} }

func (m *memoryStore) acquire(lock bool) func() {
	if !lock {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

// --- users ---

type memUsers struct {
	s    *memoryStore
	lock bool
}

func (u memUsers) Create(ctx context.Context, usr *domain.User) error {
	defer u.s.acquire(u.lock)()
	for _, existing := range u.s.users {
		if existing.Username == usr.Username || existing.Email == usr.Email {
			return domain.ErrConflict
		}
	}
	c := *usr
	u.s.users[usr.ID] = &c
	return nil
}

func (u memUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	defer u.s.acquire(u.lock)()
	usr, ok := u.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *usr
	return &c, nil
}

func (u memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	defer u.s.acquire(u.lock)()
	for _, usr := range u.s.users {
		if usr.Email == email {
			c := *usr
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (u memUsers) SetVerified(ctx context.Context, userID uuid.UUID) error {
	defer u.s.acquire(u.lock)()
	usr, ok := u.s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	usr.IsVerified = true
	return nil
}

func (u memUsers) UpdateProfile(ctx context.Context, userID uuid.UUID, in *domain.ProfilePatch) (*domain.User, error) {
	defer u.s.acquire(u.lock)()
	usr, ok := u.s.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.DisplayName != nil {
		usr.DisplayName = in.DisplayName
	}
	if in.ProfilePictureURL != nil {
		usr.ProfilePictureURL = in.ProfilePictureURL
	}
	if in.PhoneNumber != nil {
		usr.PhoneNumber = in.PhoneNumber
	}
	c := *usr
	return &c, nil
}

func (u memUsers) Delete(ctx context.Context, userID uuid.UUID) error {
	defer u.s.acquire(u.lock)()
	if _, ok := u.s.users[userID]; !ok {
		return domain.ErrNotFound
	}
	delete(u.s.users, userID)
	for id, otp := range u.s.otps {
		if otp.UserID == userID {
			delete(u.s.otps, id)
		}
	}
	for id, mem := range u.s.members {
		if mem.UserID == userID {
			delete(u.s.members, id)
		}
	}
	for jid, j := range u.s.joints {
		if j.CreatorID != userID {
			continue
		}
		delete(u.s.joints, jid)
		for id, mem := range u.s.members {
			if mem.JointID == jid {
				delete(u.s.members, id)
			}
		}
		for id, msg := range u.s.messages {
			if msg.JointID == jid {
				delete(u.s.messages, id)
			}
		}
	}
	for _, msg := range u.s.messages {
		if msg.UserID != nil && *msg.UserID == userID {
			msg.UserID = nil
		}
	}
	return nil
}

// --- otp codes ---

type memOTPs struct {
	s    *memoryStore
	lock bool
}

func (o memOTPs) Create(ctx context.Context, code *domain.OTPCode) error {
	defer o.s.acquire(o.lock)()
	if _, ok := o.s.users[code.UserID]; !ok {
		return domain.ErrNotFound
	}
	c := *code
	o.s.otps[code.ID] = &c
	return nil
}

func (o memOTPs) LatestUnused(ctx context.Context, userID uuid.UUID, code string) (*domain.OTPCode, error) {
	defer o.s.acquire(o.lock)()
	var latest *domain.OTPCode
	for _, otp := range o.s.otps {
		if otp.UserID != userID || otp.Code != code || otp.IsUsed {
			continue
		}
		if latest == nil || otp.CreatedAt.After(latest.CreatedAt) {
			latest = otp
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	c := *latest
	return &c, nil
}

func (o memOTPs) MarkUsed(ctx context.Context, id uuid.UUID) error {
	defer o.s.acquire(o.lock)()
	otp, ok := o.s.otps[id]
	if !ok {
		return domain.ErrNotFound
	}
	otp.IsUsed = true
	return nil
}

func (o memOTPs) InvalidateOutstanding(ctx context.Context, userID uuid.UUID) error {
	defer o.s.acquire(o.lock)()
	for _, otp := range o.s.otps {
		if otp.UserID == userID && !otp.IsUsed {
			otp.IsUsed = true
		}
	}
	return nil
}

// --- joints ---

type memJoints struct {
	s    *memoryStore
	lock bool
}

func (j memJoints) Create(ctx context.Context, joint *domain.Joint) error {
	defer j.s.acquire(j.lock)()
	if _, ok := j.s.users[joint.CreatorID]; !ok {
		return domain.ErrNotFound
	}
	c := *joint
	j.s.joints[joint.ID] = &c
	return nil
}

func (j memJoints) GetByID(ctx context.Context, id uuid.UUID) (*domain.Joint, error) {
	defer j.s.acquire(j.lock)()
	joint, ok := j.s.joints[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *joint
	return &c, nil
}

func (j memJoints) Deactivate(ctx context.Context, id uuid.UUID) error {
	defer j.s.acquire(j.lock)()
	joint, ok := j.s.joints[id]
	if !ok {
		return domain.ErrNotFound
	}
	joint.IsActive = false
	return nil
}

func (j memJoints) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	defer j.s.acquire(j.lock)()
	var n int64
	for _, joint := range j.s.joints {
		if joint.IsActive && !joint.ExpiresAt.After(now) {
			joint.IsActive = false
			n++
		}
	}
	return n, nil
}

func (j memJoints) ActiveWithin(ctx context.Context, box geo.BoundingBox, now time.Time) ([]domain.Joint, error) {
	defer j.s.acquire(j.lock)()
	var out []domain.Joint
	for _, joint := range j.s.joints {
		if joint.Live(now) && box.Contains(joint.Latitude, joint.Longitude) {
			out = append(out, *joint)
		}
	}
	return out, nil
}

func (j memJoints) ActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Joint, error) {
	defer j.s.acquire(j.lock)()
	var out []domain.Joint
	for _, mem := range j.s.members {
		if mem.UserID != userID {
			continue
		}
		if joint, ok := j.s.joints[mem.JointID]; ok && joint.Live(now) {
			out = append(out, *joint)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

// --- members ---

type memMembers struct {
	s    *memoryStore
	lock bool
}

func (m memMembers) Create(ctx context.Context, member *domain.JointMember) error {
	defer m.s.acquire(m.lock)()
	if _, ok := m.s.joints[member.JointID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := m.s.users[member.UserID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range m.s.members {
		if existing.JointID == member.JointID && existing.UserID == member.UserID {
			return domain.ErrConflict
		}
	}
	c := *member
	m.s.members[member.ID] = &c
	return nil
}

func (m memMembers) Get(ctx context.Context, jointID, userID uuid.UUID) (*domain.JointMember, error) {
	defer m.s.acquire(m.lock)()
	for _, mem := range m.s.members {
		if mem.JointID == jointID && mem.UserID == userID {
			c := *mem
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m memMembers) Delete(ctx context.Context, jointID, userID uuid.UUID) error {
	defer m.s.acquire(m.lock)()
	for id, mem := range m.s.members {
		if mem.JointID == jointID && mem.UserID == userID {
			delete(m.s.members, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m memMembers) CountByJoint(ctx context.Context, jointID uuid.UUID) (int64, error) {
	defer m.s.acquire(m.lock)()
	var n int64
	for _, mem := range m.s.members {
		if mem.JointID == jointID {
			n++
		}
	}
	return n, nil
}

func (m memMembers) CountByJoints(ctx context.Context, jointIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	defer m.s.acquire(m.lock)()
	counts := make(map[uuid.UUID]int64, len(jointIDs))
	for _, id := range jointIDs {
		for _, mem := range m.s.members {
			if mem.JointID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

// --- messages ---

type memMessages struct {
	s    *memoryStore
	lock bool
}

func (m memMessages) Create(ctx context.Context, msg *domain.Message) error {
	defer m.s.acquire(m.lock)()
	if _, ok := m.s.joints[msg.JointID]; !ok {
		return domain.ErrNotFound
	}
	c := *msg
	m.s.messages[msg.ID] = &c
	return nil
}

func (m memMessages) ListByJoint(ctx context.Context, jointID uuid.UUID, limit int) ([]domain.Message, error) {
	defer m.s.acquire(m.lock)()
	var out []domain.Message
	for _, msg := range m.s.messages {
		if msg.JointID == jointID {
			out = append(out, *msg)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
