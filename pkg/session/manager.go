package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/asianjeff44490-crypto/discord-bot/internal/logging"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/ports"
)

// DefaultLockTTL is how long a distributed guard outlives a crashed holder
// unless WithLockTTL says otherwise.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager is the selection registry. It reads and writes selections through a
// SelectionStore and guards the purchase protocol with a per-user token.
//
// Registry reads and writes are not serialized by the guard: a user may change
// their selection while a purchase is in flight, and last write wins.
type Manager struct {
	store ports.SelectionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active guards

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL bounds how long a distributed guard survives a crashed holder.
// It must outlast the guarded work, or a second replica may enter.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock overrides the time source stamped on new selections.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a new selection registry backed by store.
func NewManager(store ports.SelectionStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST call release(userID) when done with the entry.
func (m *Manager) acquire(userID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		entry = &lockEntry{}
		m.locks[userID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, userID)
	}
}

// Set replaces the user's selection.
func (m *Manager) Set(ctx context.Context, userID string, product domain.Product) (*domain.Selection, error) {
	sel := &domain.Selection{
		UserID:     userID,
		Product:    product,
		SelectedAt: m.now().UTC(),
	}
	if err := m.store.Save(ctx, userID, sel); err != nil {
		return nil, fmt.Errorf("failed to save selection: %w", err)
	}
	return sel, nil
}

// Get returns the user's current product. The bool is false when there is none.
func (m *Manager) Get(ctx context.Context, userID string) (domain.Product, bool, error) {
	sel, err := m.store.Load(ctx, userID)
	if errors.Is(err, domain.ErrSelectionNotFound) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("failed to load selection: %w", err)
	}
	return sel.Product, true, nil
}

// Clear removes the user's selection. Clearing a missing selection is not an error.
func (m *Manager) Clear(ctx context.Context, userID string) error {
	if err := m.store.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}

// List returns the users holding a selection.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying selection store.
func (m *Manager) Store() ports.SelectionStore {
	return m.store
}

// TryWithLock executes fn while holding the user's guard. If the guard is
// already held it returns domain.ErrBusy without calling fn.
func (m *Manager) TryWithLock(ctx context.Context, userID string, fn func(context.Context) error) error {
	entry := m.acquire(userID)
	defer m.release(userID)

	if !entry.mu.TryLock() {
		return domain.ErrBusy
	}
	defer entry.mu.Unlock()

	if m.locker != nil {
		unlock, err := m.locker.TryLock(ctx, userID, m.lockTTL)
		if err != nil {
			if errors.Is(err, domain.ErrBusy) {
				return domain.ErrBusy
			}
			return err
		}
		defer m.unlock(ctx, userID, unlock)
	}

	return fn(ctx)
}

func (m *Manager) unlock(ctx context.Context, userID string, unlock ports.UnlockFunc) {
	// The purchase context may already be done; release on a fresh one.
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	if err := unlock(ctx); err != nil {
		m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
			"user_id", userID,
			"err", err,
		)
	}
}
