package processor

import (
	"github.com/birchwoodgc/league-tracker/internal/metrics"
	"github.com/birchwoodgc/league-tracker/internal/pubsub"
	"github.com/birchwoodgc/league-tracker/internal/scoring"
)

// Processor handles the business logic of processing tournaments.
type Processor struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	fallback scoring.Fallback
}
