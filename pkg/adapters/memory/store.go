package memory

import (
	"context"
	"sync"
	"time"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
)

// Store implements ports.SelectionStore in memory.
// Safe for concurrent use. Contents are lost on restart.
type Store struct {
	data map[string]domain.Selection
	mu   sync.RWMutex
	ttl  time.Duration
	now  func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithTTL expires selections older than ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a new in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: make(map[string]domain.Selection),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores a copy of the selection so later mutation by the caller is not observed.
func (s *Store) Save(ctx context.Context, userID string, sel *domain.Selection) error {
	copied := *sel
	if copied.SelectedAt.IsZero() {
		copied.SelectedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = copied
	return nil
}

// Load retrieves the selection from memory.
func (s *Store) Load(ctx context.Context, userID string) (*domain.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sel, ok := s.data[userID]
	if !ok || s.expired(sel) {
		return nil, domain.ErrSelectionNotFound
	}
	return &sel, nil
}

// Delete removes the selection.
func (s *Store) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

// List returns users with a live selection and drops expired ones.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]string, 0, len(s.data))
	for id, sel := range s.data {
		if s.expired(sel) {
			delete(s.data, id)
			continue
		}
		users = append(users, id)
	}
	return users, nil
}

func (s *Store) expired(sel domain.Selection) bool {
	return s.ttl > 0 && s.now().Sub(sel.SelectedAt) > s.ttl
}
