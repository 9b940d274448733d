package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventStandingsUpdated EventType = "standings-updated"
)

// StandingsUpdatedEvent is published when a tournament finishes processing
// and the season standings have changed.
type StandingsUpdatedEvent struct {
	TournamentID   string `msgpack:"tournament_id"`
	TournamentName string `msgpack:"tournament_name"`
}
