package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"artmarket-backend/internal/domain/artworks"
	"artmarket-backend/internal/domain/orders"
	"artmarket-backend/internal/domain/users"
)

// Memory keeps every record in process memory. It backs the server when no
// DB_URL is configured and the package tests; records vanish on restart.
type Memory struct {
	mu sync.RWMutex

	artworks      map[string]*artworks.Artwork
	verifications map[string]*artworks.Verification // keyed by artwork id
	orders        map[string]*orders.Order
	users         map[uint]*users.User

	artworkSeq []string // insertion order, oldest first
	orderSeq   []string
	nextUserID uint
	nextVerID  uint
}

func NewMemory() *Memory {
	return &Memory{
		artworks:      make(map[string]*artworks.Artwork),
		verifications: make(map[string]*artworks.Verification),
		orders:        make(map[string]*orders.Order),
		users:         make(map[uint]*users.User),
	}
}

func (m *Memory) CreateArtwork(_ context.Context, a *artworks.Artwork) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.artworks[a.ID]; ok {
		return fmt.Errorf("artwork %s already exists", a.ID)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	cp := *a
	cp.Verification = nil
	m.artworks[a.ID] = &cp
	m.artworkSeq = append(m.artworkSeq, a.ID)
	return nil
}

func (m *Memory) AttachVerification(_ context.Context, v *artworks.Verification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.artworks[v.ArtworkID]; !ok {
		return fmt.Errorf("artwork %s: %w", v.ArtworkID, ErrNotFound)
	}
	if _, ok := m.verifications[v.ArtworkID]; ok {
		return fmt.Errorf("artwork %s already verified", v.ArtworkID)
	}
	m.nextVerID++
	v.ID = m.nextVerID
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	cp := *v
	cp.Explanations = append([]string(nil), v.Explanations...)
	m.verifications[v.ArtworkID] = &cp
	return nil
}

func (m *Memory) ArtworkByID(_ context.Context, id string) (*artworks.Artwork, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.artworks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.cloneArtwork(a), nil
}

func (m *Memory) ListArtworks(_ context.Context) ([]artworks.Artwork, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]artworks.Artwork, 0, len(m.artworkSeq))
	for i := len(m.artworkSeq) - 1; i >= 0; i-- {
		out = append(out, *m.cloneArtwork(m.artworks[m.artworkSeq[i]]))
	}
	return out, nil
}

func (m *Memory) CreateOrder(_ context.Context, o *orders.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orders[o.ID]; ok {
		return fmt.Errorf("order %s already exists", o.ID)
	}
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	cp := *o
	m.orders[o.ID] = &cp
	m.orderSeq = append(m.orderSeq, o.ID)
	return nil
}

func (m *Memory) SettleOrdersBySession(_ context.Context, sessionID string, status orders.Status) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, id := range m.orderSeq {
		o := m.orders[id]
		if o.StripeSessionID == nil || *o.StripeSessionID != sessionID {
			continue
		}
		if o.Status != orders.StatusPending {
			continue
		}
		o.Status = status
		o.UpdatedAt = time.Now()
		n++
	}
	return n, nil
}

func (m *Memory) ListOrders(_ context.Context) ([]orders.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]orders.Order, 0, len(m.orderSeq))
	for i := len(m.orderSeq) - 1; i >= 0; i-- {
		out = append(out, *m.orders[m.orderSeq[i]])
	}
	return out, nil
}

// OrderByID is not part of the Store interface; tests use it to observe
// order state directly.
func (m *Memory) OrderByID(id string) (*orders.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *Memory) CreateUser(_ context.Context, u *users.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return fmt.Errorf("email %s already registered", u.Email)
		}
	}
	m.nextUserID++
	u.ID = m.nextUserID
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *Memory) SaveUser(_ context.Context, u *users.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[u.ID]; !ok {
		return fmt.Errorf("user %d: %w", u.ID, ErrNotFound)
	}
	u.UpdatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*users.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UserByID(_ context.Context, id uint) (*users.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *Memory) UserByGoogleSub(_ context.Context, sub string) (*users.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.GoogleSub != nil && *u.GoogleSub == sub {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListUsers(_ context.Context) ([]users.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]users.User, 0, len(m.users))
	for id := uint(1); id <= m.nextUserID; id++ {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *Memory) cloneArtwork(a *artworks.Artwork) *artworks.Artwork {
	cp := *a
	if v, ok := m.verifications[a.ID]; ok {
		vc := *v
		vc.Explanations = append([]string(nil), v.Explanations...)
		cp.Verification = &vc
	}
	return &cp
}
