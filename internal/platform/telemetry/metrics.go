package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Engagement action labels.
const (
	ActionLike   = "like"
	ActionUnlike = "unlike"
	ActionSave   = "save"
	ActionUnsave = "unsave"
	ActionShare  = "share"
)

// Engagement counts quote interactions for the /-/metrics endpoint.
type Engagement struct {
	interactions *prometheus.CounterVec
	quotesAdded  prometheus.Counter
}

// NewEngagement creates engagement metrics registered on reg.
// Tests pass a fresh registry to avoid duplicate registration.
func NewEngagement(reg prometheus.Registerer) *Engagement {
	e := &Engagement{
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_interactions_total",
			Help: "Quote interactions by action.",
		}, []string{"action"}),
		quotesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quotes_added_total",
			Help: "Quotes added to the collection.",
		}),
	}

	reg.MustRegister(e.interactions, e.quotesAdded)

	return e
}

// RecordInteraction counts one like/unlike/save/unsave/share action.
func (e *Engagement) RecordInteraction(action string) {
	if e == nil {
		return
	}

	e.interactions.WithLabelValues(action).Inc()
}

// RecordQuoteAdded counts one new quote.
func (e *Engagement) RecordQuoteAdded() {
	if e == nil {
		return
	}

	e.quotesAdded.Inc()
}
