package mem

import (
	"context"
	"sync"
	"time"

	"wanderplan/internal/models/response_models"
	"wanderplan/pkg/utils"
)

// DraftStore keeps freshly generated itineraries until the owner saves them as a plan.
type DraftStore interface {
	Save(ctx context.Context, id string, it *response_models.GeneratedItinerary) error

	// Get returns utils.ErrDraftNotFound when the draft is missing or expired.
	Get(ctx context.Context, id string) (*response_models.GeneratedItinerary, error)

	// Consume is Get followed by removal (single-use).
	Consume(ctx context.Context, id string) (*response_models.GeneratedItinerary, error)
}

type entry struct {
	itinerary response_models.GeneratedItinerary
	expiresAt time.Time
}

type MemoryDrafts struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]entry
	now  func() time.Time
}

func NewMemoryDrafts(ttl time.Duration) *MemoryDrafts {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryDrafts{
		ttl:  ttl,
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *MemoryDrafts) Save(_ context.Context, id string, it *response_models.GeneratedItinerary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[id] = entry{
		itinerary: cloneItinerary(it),
		expiresAt: s.now().Add(s.ttl),
	}
	s.sweepLocked()
	return nil
}

func (s *MemoryDrafts) Get(_ context.Context, id string) (*response_models.GeneratedItinerary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok || s.now().After(e.expiresAt) {
		return nil, utils.ErrDraftNotFound
	}
	it := cloneItinerary(&e.itinerary)
	return &it, nil
}

func (s *MemoryDrafts) Consume(_ context.Context, id string) (*response_models.GeneratedItinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return nil, utils.ErrDraftNotFound
	}
	delete(s.data, id) // single-use, expired or not
	if s.now().After(e.expiresAt) {
		return nil, utils.ErrDraftNotFound
	}
	return &e.itinerary, nil
}

// sweepLocked drops expired drafts. Callers hold the write lock.
func (s *MemoryDrafts) sweepLocked() {
	now := s.now()
	for id, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, id)
		}
	}
}

func cloneItinerary(it *response_models.GeneratedItinerary) response_models.GeneratedItinerary {
	out := *it
	out.Days = make([]response_models.Day, len(it.Days))
	for i, d := range it.Days {
		d.Segments = append([]response_models.Segment(nil), d.Segments...)
		out.Days[i] = d
	}
	return out
}
