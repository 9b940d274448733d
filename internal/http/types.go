package http

import (
	"net/http"

	"github.com/birchwoodgc/league-tracker/internal/config"
	"github.com/birchwoodgc/league-tracker/internal/league"
	"github.com/birchwoodgc/league-tracker/internal/metrics"
	"github.com/birchwoodgc/league-tracker/internal/notifier"
	"github.com/birchwoodgc/league-tracker/internal/processor"
	"github.com/birchwoodgc/league-tracker/internal/pubsub"
)

type Server struct {
	Store          league.LeagueStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Counters       metrics.MetricsStore
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
