package processor

import (
	"time"

	"github.com/birchwoodgc/league-tracker/internal/league"
	"github.com/birchwoodgc/league-tracker/internal/metrics"
	"github.com/birchwoodgc/league-tracker/internal/pubsub"
	"github.com/birchwoodgc/league-tracker/internal/scoring"
	"github.com/charmbracelet/log"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, fallback scoring.Fallback) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		fallback: fallback,
	}
}

// ProcessTournaments fetches tournaments that need processing and advances them through the state machine.
func (p *Processor) ProcessTournaments(dryRun bool) {
	log.Info("Starting tournament processing...")
	tournaments, err := p.store.GetTournamentsForProcessing()
	if err != nil {
		log.Error("Failed to get tournaments for processing", "error", err)
		return
	}

	if len(tournaments) == 0 {
		log.Info("No tournaments to process.")
		return
	}

	log.Info("Found tournaments to process", "count", len(tournaments))
	for _, tournament := range tournaments {
		startTime := time.Now()
		p.processTournament(tournament, dryRun)
		duration := time.Since(startTime).Seconds()
		p.metrics.ObserveScoringDuration(duration)
	}
	log.Info("Tournament processing finished.")
}

func (p *Processor) processTournament(tournament *league.Tournament, dryRun bool) {
	log.Info("Processing tournament", "tournamentID", tournament.ID, "initial_status", tournament.ProcessingStatus)
	for {
		currentState := tournament.ProcessingStatus
		log.Debug("Evaluating tournament state", "tournamentID", tournament.ID, "status", currentState)

		switch currentState {
		case league.StatusNew:
			if err := p.scoreTournament(tournament, dryRun); err != nil {
				log.Error("Failed to score tournament, leaving it for the next run", "error", err, "tournamentID", tournament.ID)
				return
			}
			p.metrics.IncTournamentsProcessed()
			p.updateStatus(tournament, league.StatusScored, dryRun)

		case league.StatusScored:
			log.Info("Tournament is scored. Sending result notification.", "tournamentID", tournament.ID)
			results, err := p.store.GetTournamentResults(tournament.ID)
			if err != nil {
				log.Error("Failed to load results for notification", "error", err, "tournamentID", tournament.ID)
				return
			}
			if err := p.notifier.SendResultNotification(tournament, results, dryRun); err != nil {
				log.Error("Failed to send result notification", "error", err, "tournamentID", tournament.ID)
				return
			}
			p.updateStatus(tournament, league.StatusResultNotified, dryRun)

		case league.StatusResultNotified:
			log.Info("Tournament results have been notified. Publishing standings update.", "tournamentID", tournament.ID)
			if !dryRun {
				p.pubsub.SendMessage(pubsub.EventStandingsUpdated, pubsub.StandingsUpdatedEvent{
					TournamentID:   tournament.ID,
					TournamentName: tournament.Name,
				})
			}
			p.updateStatus(tournament, league.StatusCompleted, dryRun)

		case league.StatusCompleted:
			log.Debug("Tournament is complete. No further processing needed.", "tournamentID", tournament.ID)
			return // End of the line for this tournament

		default:
			log.Warn("Unknown processing status", "status", currentState, "tournamentID", tournament.ID)
			return // Exit if status is unknown
		}

		// If the status hasn't changed, we're done with this tournament for now.
		if tournament.ProcessingStatus == currentState {
			log.Debug("Tournament state did not change. Finished processing for now.", "tournamentID", tournament.ID, "status", currentState)
			break
		}
	}
	log.Info("Finished processing tournament", "tournamentID", tournament.ID, "final_status", tournament.ProcessingStatus)
}

// scoreTournament runs both scoring passes and persists them. A configuration
// problem or a persistence failure leaves the tournament untouched in NEW.
func (p *Processor) scoreTournament(tournament *league.Tournament, dryRun bool) error {
	raw, err := p.store.GetRawResults(tournament.ID)
	if err != nil {
		return err
	}

	cfg, err := p.store.GetPointsConfig()
	if err != nil {
		return err
	}
	table, err := scoring.NewPointsTable(cfg, p.fallback)
	if err != nil {
		return err
	}
	handler := scoring.NewTieHandler(table)

	var net, gross []scoring.ProcessedResult
	if tournament.PointsMode == league.PointsModeManual {
		// Manually entered positions are authoritative. They only exist on the
		// net axis; the gross board is still ranked from gross scores.
		net, err = handler.AssignManualPoints(raw, tournament.Category, scoring.AxisNet)
	} else {
		net, err = handler.ProcessResultsWithTies(raw, tournament.Category, scoring.AxisNet)
	}
	if err != nil {
		return err
	}
	gross, err = handler.ProcessResultsWithTies(raw, tournament.Category, scoring.AxisGross)
	if err != nil {
		return err
	}

	if dryRun {
		log.Info("[Dry Run] Would persist scoring", "tournamentID", tournament.ID, "net", len(net), "gross", len(gross))
		return nil
	}

	if err := p.store.ApplyScoring(tournament.ID, scoring.AxisNet, net); err != nil {
		return err
	}
	if err := p.store.ApplyScoring(tournament.ID, scoring.AxisGross, gross); err != nil {
		return err
	}
	log.Info("Persisted scoring", "tournamentID", tournament.ID, "players", len(net))
	return nil
}

// PublishStandings loads the season standings and sends them through the
// notifier. It backs the pub/sub push handler for standings updates.
func (p *Processor) PublishStandings(dryRun bool) error {
	standings, err := p.store.GetSeasonStandings()
	if err != nil {
		log.Error("Failed to load season standings", "error", err)
		return err
	}
	return p.notifier.SendStandings(standings, dryRun)
}

func (p *Processor) updateStatus(tournament *league.Tournament, newStatus league.ProcessingStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update tournament status", "tournamentID", tournament.ID, "from", tournament.ProcessingStatus, "to", newStatus)
		tournament.ProcessingStatus = newStatus // Update in-memory for the loop
		return
	}

	err := p.store.UpdateProcessingStatus(tournament.ID, newStatus)
	if err != nil {
		log.Error("Failed to update processing status", "error", err, "tournamentID", tournament.ID)
	} else {
		log.Debug("Successfully updated status", "tournamentID", tournament.ID, "from", tournament.ProcessingStatus, "to", newStatus)
		tournament.ProcessingStatus = newStatus // Keep the in-memory object in sync
	}
}
