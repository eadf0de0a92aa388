package domain

import (
	"context"
	"time"
)

// Outcome labels how an interaction ended.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
	OutcomePanic    Outcome = "panic"
)

// InteractionEvent is emitted once per dispatched interaction.
type InteractionEvent struct {
	Timestamp time.Time       `json:"timestamp"`
	Kind      InteractionKind `json:"kind"`
	Target    string          `json:"target"`
	UserID    string          `json:"user_id"`
	Outcome   Outcome         `json:"outcome"`
	ErrorKind Kind            `json:"error_kind,omitempty"`
	Duration  time.Duration   `json:"duration"`
}

// TicketEvent is emitted after every channel creation attempt.
type TicketEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	GuildID   string        `json:"guild_id"`
	UserID    string        `json:"user_id"`
	ProductID string        `json:"product_id"`
	ChannelID string        `json:"channel_id,omitempty"`
	Grants    int           `json:"grants"`
	Err       error         `json:"-"`
	Duration  time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for observability.
type LifecycleHooks struct {
	OnInteraction func(context.Context, *InteractionEvent)
	OnSelection   func(context.Context, *Selection)
	OnTicket      func(context.Context, *TicketEvent)
}
