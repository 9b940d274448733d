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

func NewServer(store league.LeagueStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, counters metrics.MetricsStore, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Counters:       counters,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/metrics/counters", Chain(s.CountersHandler(), paramsMiddleware))
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments", Chain(s.ListTournamentsHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/results", Chain(s.TournamentResultsHandler(), paramsMiddleware))
	s.Router.Handle("/upload", Chain(s.UploadResultsHandler(), paramsMiddleware))
	s.Router.Handle("/process", Chain(s.ProcessTournamentsHandler(), paramsMiddleware))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("/standings-updated", Chain(s.StandingsUpdatedHandler(), paramsMiddleware))
	slackVerify := verifySlackSignature(s.Cfg.Slack.SigningSecret)
	s.Router.Handle("/slack/command/standings", Chain(s.StandingsCommandHandler(), paramsMiddleware, slackVerify))
	s.Router.Handle("/slack/command/player", Chain(s.PlayerStandingCommandHandler(), paramsMiddleware, slackVerify))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
