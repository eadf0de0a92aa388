package dispatch

import (
	"context"
	"sync"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
)

// HandlerFunc handles one interaction and returns the reply it is owed.
type HandlerFunc func(ctx context.Context, in domain.Interaction) (domain.Response, error)

type route struct {
	kind   domain.InteractionKind
	target string
}

type handler struct {
	fn       HandlerFunc
	deferred bool
}

// Registry maps interaction kind and target to a handler.
type Registry struct {
	mu     sync.RWMutex
	routes map[route]handler
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		routes: make(map[route]handler),
	}
}

// Register adds a handler. An existing handler for the same route is overwritten.
func (r *Registry) Register(kind domain.InteractionKind, target string, fn HandlerFunc) {
	r.add(kind, target, handler{fn: fn})
}

// RegisterDeferred adds a handler that may outlast the platform's
// acknowledgement window. The interaction is acknowledged privately before fn
// runs, so its reply is always private.
func (r *Registry) RegisterDeferred(kind domain.InteractionKind, target string, fn HandlerFunc) {
	r.add(kind, target, handler{fn: fn, deferred: true})
}

func (r *Registry) add(kind domain.InteractionKind, target string, h handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[route{kind: kind, target: target}] = h
}

// Lookup returns the handler for an interaction.
func (r *Registry) Lookup(kind domain.InteractionKind, target string) (HandlerFunc, bool) {
	h, ok := r.lookup(kind, target)
	return h.fn, ok
}

func (r *Registry) lookup(kind domain.InteractionKind, target string) (handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.routes[route{kind: kind, target: target}]
	return h, ok
}

// Len returns the number of registered routes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}
