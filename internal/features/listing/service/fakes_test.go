package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
)

type memoryListings struct {
	mu     sync.Mutex
	rows   map[string]listing.Listing
	seq    int
	now    func() time.Time
	listed int
}

func newMemoryListings(now func() time.Time) *memoryListings {
	return &memoryListings{rows: make(map[string]listing.Listing), now: now}
}

func (m *memoryListings) put(l listing.Listing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[l.ID] = l
}

func (m *memoryListings) ListAll(ctx context.Context) ([]listing.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listed++
	out := make([]listing.Listing, 0, len(m.rows))
	for _, l := range m.rows {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryListings) ListByUser(ctx context.Context, userID string) ([]listing.Listing, error) {
	all, _ := m.ListAll(ctx)
	out := make([]listing.Listing, 0)
	for _, l := range all {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memoryListings) GetByID(ctx context.Context, id string) (*listing.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.rows[id]
	if !ok {
		return nil, listing.ErrNotFound
	}
	return &l, nil
}

func (m *memoryListings) Create(ctx context.Context, l *listing.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	l.ID = fmt.Sprintf("%08d-0000-4000-8000-000000000000", m.seq)
	l.CreatedAt = m.now().Add(time.Duration(m.seq) * time.Millisecond)
	m.rows[l.ID] = *l
	return nil
}

func (m *memoryListings) UpdatePromotion(ctx context.Context, id string, expectPending bool, p listing.Promotion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.rows[id]
	if !ok {
		return listing.ErrNotFound
	}
	if l.IsPending != expectPending {
		return listing.ErrStateChanged
	}
	p.Apply(&l)
	m.rows[id] = l
	return nil
}

func (m *memoryListings) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return listing.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryListings) ClearExpiredFeatured(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, l := range m.rows {
		if l.IsFeatured && !listing.IsActivelyFeatured(&l, now) {
			l.IsFeatured = false
			m.rows[id] = l
			n++
		}
	}
	return n, nil
}

type memoryFavorites struct {
	mu      sync.Mutex
	pairs   map[string]map[string]bool
	deleted []string
}

func newMemoryFavorites() *memoryFavorites {
	return &memoryFavorites{pairs: make(map[string]map[string]bool)}
}

func (m *memoryFavorites) add(userID, jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pairs[userID] == nil {
		m.pairs[userID] = make(map[string]bool)
	}
	m.pairs[userID][jobID] = true
}

func (m *memoryFavorites) JobIDs(ctx context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0)
	for id := range m.pairs[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memoryFavorites) DeleteByJob(ctx context.Context, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, jobID)
	for _, jobs := range m.pairs {
		delete(jobs, jobID)
	}
	return nil
}

type stubLinks struct{}

func (stubLinks) ListingContact(l *listing.Listing) string   { return "contact:" + l.ShortID() }
func (stubLinks) PromotionPayment(l *listing.Listing) string { return "pay:" + l.ShortID() }

// stallingListings pauses the first ListAll after the rows were read, so a
// write can land while that read is still in flight.
type stallingListings struct {
	*memoryListings
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func newStallingListings(inner *memoryListings) *stallingListings {
	return &stallingListings{memoryListings: inner, read: make(chan struct{}), release: make(chan struct{})}
}

func (s *stallingListings) ListAll(ctx context.Context) ([]listing.Listing, error) {
	rows, err := s.memoryListings.ListAll(ctx)
	s.once.Do(func() {
		close(s.read)
		<-s.release
	})
	return rows, err
}
