package observability

import (
	"context"
	"log/slog"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the bot's Prometheus collectors.
type Metrics struct {
	Interactions     *prometheus.CounterVec
	InteractionTime  *prometheus.HistogramVec
	Selections       prometheus.Counter
	Tickets          *prometheus.CounterVec
	ProvisioningTime prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Interactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_interactions_total",
				Help: "Interactions handled, by kind, target and outcome",
			},
			[]string{"kind", "target", "outcome"},
		),
		InteractionTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storefront_interaction_duration_seconds",
				Help:    "Time spent in interaction handlers",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "target"},
		),
		Selections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_selections_total",
			Help: "Products picked from the shop menu",
		}),
		Tickets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_tickets_total",
				Help: "Ticket channel creation attempts, by result",
			},
			[]string{"result"},
		),
		ProvisioningTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "storefront_channel_create_duration_seconds",
			Help:    "Latency of the platform's channel creation call",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.Interactions, m.InteractionTime, m.Selections, m.Tickets, m.ProvisioningTime)
	return m
}

// Hooks returns lifecycle hooks that record metrics and log events.
// logger may be nil.
func (m *Metrics) Hooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInteraction: func(ctx context.Context, e *domain.InteractionEvent) {
			m.Interactions.WithLabelValues(string(e.Kind), e.Target, string(e.Outcome)).Inc()
			m.InteractionTime.WithLabelValues(string(e.Kind), e.Target).Observe(e.Duration.Seconds())
			if logger != nil {
				logger.Debug("interaction",
					"kind", e.Kind,
					"target", e.Target,
					"user_id", e.UserID,
					"outcome", e.Outcome,
					"duration", e.Duration,
				)
			}
		},
		OnSelection: func(ctx context.Context, s *domain.Selection) {
			m.Selections.Inc()
		},
		OnTicket: func(ctx context.Context, e *domain.TicketEvent) {
			result := "created"
			if e.Err != nil {
				result = "failed"
			}
			m.Tickets.WithLabelValues(result).Inc()
			m.ProvisioningTime.Observe(e.Duration.Seconds())
		},
	}
}
