package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/asianjeff44490-crypto/discord-bot/internal/logging"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/ports"
)

// GenericFailure is shown when a handler fails in a way no renderer knows about.
const GenericFailure = "❌ Something went wrong. Please try again."

// ErrorRenderer turns a handler error into the reply shown to the user.
type ErrorRenderer func(err error) domain.Response

// Dispatcher routes interactions to handlers and guarantees that every
// interaction gets exactly one reply, whatever the handler does.
type Dispatcher struct {
	*Registry

	responder ports.Responder
	render    ErrorRenderer
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithErrorRenderer sets how handler errors are shown to users.
func WithErrorRenderer(fn ErrorRenderer) Option {
	return func(d *Dispatcher) {
		d.render = fn
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// WithLogger configures a logger for the Dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New creates a Dispatcher replying through responder.
func New(responder ports.Responder, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		Registry:  NewRegistry(),
		responder: responder,
		render:    func(error) domain.Response { return domain.Notice(GenericFailure) },
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch runs the handler for in and sends its reply. Handler errors and
// panics become user-visible replies; only a failure to acknowledge or reply
// is returned. Deferred routes are acknowledged before the handler runs and
// their reply edits the acknowledgement.
func (d *Dispatcher) Dispatch(ctx context.Context, in domain.Interaction) error {
	start := d.now()
	h, found := d.lookup(in.Kind, in.Target)

	send := d.responder.Reply
	if found && h.deferred {
		if err := d.responder.Defer(ctx, in, true); err != nil {
			d.logger.Error("Failed to acknowledge interaction",
				"kind", in.Kind,
				"target", in.Target,
				"user_id", in.Actor.ID,
				"err", err,
			)
			return fmt.Errorf("acknowledge %s %q: %w", in.Kind, in.Target, err)
		}
		send = d.responder.Edit
	}

	resp, panicked, err := d.run(ctx, in, h.fn)

	outcome := domain.OutcomeOK
	var kind domain.Kind
	switch {
	case panicked:
		outcome = domain.OutcomePanic
		kind = domain.KindInternal
	case err != nil:
		kind = domain.KindOf(err)
		outcome = domain.OutcomeRejected
		if kind == domain.KindProvisioning || kind == domain.KindInternal {
			outcome = domain.OutcomeFailed
		}
	}

	if err != nil {
		resp = d.render(err)
		d.logger.Log(ctx, levelFor(outcome), "Interaction failed",
			"kind", in.Kind,
			"target", in.Target,
			"user_id", in.Actor.ID,
			"guild_id", in.Context.GuildID,
			"error_kind", kind,
			"err", err,
		)
	}

	if d.hooks.OnInteraction != nil {
		d.hooks.OnInteraction(ctx, &domain.InteractionEvent{
			Timestamp: start,
			Kind:      in.Kind,
			Target:    in.Target,
			UserID:    in.Actor.ID,
			Outcome:   outcome,
			ErrorKind: kind,
			Duration:  d.now().Sub(start),
		})
	}

	if err := send(ctx, in, resp); err != nil {
		d.logger.Error("Failed to send reply",
			"kind", in.Kind,
			"target", in.Target,
			"user_id", in.Actor.ID,
			"err", err,
		)
		return fmt.Errorf("reply to %s %q: %w", in.Kind, in.Target, err)
	}
	return nil
}

func (d *Dispatcher) run(ctx context.Context, in domain.Interaction, fn HandlerFunc) (resp domain.Response, panicked bool, err error) {
	if fn == nil {
		return domain.Response{}, false, fmt.Errorf("%w: %s %q", domain.ErrUnknownInteraction, in.Kind, in.Target)
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Handler panicked",
				"kind", in.Kind,
				"target", in.Target,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			resp, panicked, err = domain.Response{}, true, fmt.Errorf("handler panic: %v", r)
		}
	}()

	resp, err = fn(ctx, in)
	return resp, false, err
}

func levelFor(o domain.Outcome) slog.Level {
	if o == domain.OutcomeRejected {
		return slog.LevelInfo
	}
	return slog.LevelError
}
