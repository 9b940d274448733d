package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/birchwoodgc/league-tracker/internal/ingest"
	"github.com/birchwoodgc/league-tracker/internal/league"
	"github.com/birchwoodgc/league-tracker/internal/metrics"
	"github.com/birchwoodgc/league-tracker/internal/pubsub"
	"github.com/birchwoodgc/league-tracker/internal/scoring"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID := r.URL.Query().Get("tournamentID")
		if tournamentID != "" {
			log.Info("Received request to clear a specific tournament", "tournamentID", tournamentID)
			s.Store.ClearTournament(tournamentID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared tournament %s from store!", tournamentID)
			log.Info("Successfully cleared tournament from store", "tournamentID", tournamentID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
			log.Info("Store cleared successfully")
		}
	}
}

// UploadResultsHandler ingests an xlsx results sheet and registers a new
// tournament in NEW state. Tournament metadata comes from query parameters:
// name (required), category (required), points_mode and played_on (optional).
func (s *Server) UploadResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting results upload...")
		s.Metrics.IncUploadRuns()
		isDryRun := isDryRunFromContext(r)

		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "Tournament name is required", http.StatusBadRequest)
			return
		}

		category := scoring.Category(r.URL.Query().Get("category"))
		if !isKnownCategory(category) {
			http.Error(w, fmt.Sprintf("Unknown category %q", category), http.StatusBadRequest)
			return
		}

		pointsMode := league.PointsModeCalculated
		if mode := r.URL.Query().Get("points_mode"); mode != "" {
			switch league.PointsMode(mode) {
			case league.PointsModeCalculated, league.PointsModeManual:
				pointsMode = league.PointsMode(mode)
			default:
				http.Error(w, fmt.Sprintf("Unknown points mode %q", mode), http.StatusBadRequest)
				return
			}
		}

		playedOn := time.Now().Unix()
		if raw := r.URL.Query().Get("played_on"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				http.Error(w, "played_on must be a unix timestamp", http.StatusBadRequest)
				return
			}
			playedOn = parsed
		}

		results, err := ingest.ParseWorkbook(r.Body)
		if err != nil {
			log.Error("Failed to parse uploaded workbook", "error", err)
			http.Error(w, fmt.Sprintf("Failed to parse workbook: %v", err), http.StatusBadRequest)
			return
		}

		tournament := &league.Tournament{
			ID:         uuid.NewString(),
			Name:       name,
			PlayedOn:   playedOn,
			Category:   category,
			PointsMode: pointsMode,
		}

		if isDryRun {
			log.Info("[Dry Run] Would register tournament", "name", name, "players", len(results))
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "[Dry Run] Parsed %d results for %q.\n", len(results), name)
			return
		}

		players := make([]league.PlayerInfo, 0, len(results))
		for _, result := range results {
			players = append(players, league.PlayerInfo{
				ID:       result.PlayerID,
				Name:     result.PlayerName,
				Handicap: result.Handicap,
			})
		}
		if err := s.Store.UpsertPlayers(players); err != nil {
			log.Error("Failed to upsert players", "error", err)
			http.Error(w, "Failed to save players", http.StatusInternalServerError)
			return
		}
		if err := s.Store.UpsertTournament(tournament); err != nil {
			log.Error("Failed to upsert tournament", "error", err)
			http.Error(w, "Failed to save tournament", http.StatusInternalServerError)
			return
		}
		if err := s.Store.ReplaceRawResults(tournament.ID, results); err != nil {
			log.Error("Failed to store raw results", "error", err)
			http.Error(w, "Failed to save results", http.StatusInternalServerError)
			return
		}

		s.Counters.Increment(metrics.CounterUploadsReceived)
		log.Info("Results upload finished.", "tournamentID", tournament.ID, "players", len(results))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"tournament_id": tournament.ID,
			"players":       len(results),
		})
	}
}

func isKnownCategory(category scoring.Category) bool {
	for _, known := range scoring.KnownCategories() {
		if category == known {
			return true
		}
	}
	return false
}

func (s *Server) ProcessTournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting tournament processing...")
		isDryRun := isDryRunFromContext(r)

		s.Processor.ProcessTournaments(isDryRun)
		if !isDryRun {
			s.Counters.Increment(metrics.CounterProcessingRuns)
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Tournament processing completed.")
		log.Info("Tournament processing finished.")
	}
}

// CountersHandler serves the persisted lifetime counters as JSON. These
// complement /metrics, which only covers the current process.
func (s *Server) CountersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Counters.GetAll()
		if err != nil {
			http.Error(w, "Failed to get counters", http.StatusInternalServerError)
			log.Error("Failed to get counters from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(counters); err != nil {
			log.Error("Failed to encode counters to JSON", "error", err)
		}
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(players); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

func (s *Server) ListTournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := s.Store.GetAllTournaments()
		if err != nil {
			http.Error(w, "Failed to get tournaments", http.StatusInternalServerError)
			log.Error("Failed to get tournaments from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tournaments); err != nil {
			log.Error("Failed to encode tournaments to JSON", "error", err)
		}
	}
}

// TournamentResultsHandler serves the stored results for one tournament,
// including both scoring passes where they have been applied.
func (s *Server) TournamentResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID := r.URL.Query().Get("tournamentID")
		if tournamentID == "" {
			http.Error(w, "tournamentID is required", http.StatusBadRequest)
			return
		}

		results, err := s.Store.GetTournamentResults(tournamentID)
		if err != nil {
			http.Error(w, "Failed to get tournament results", http.StatusInternalServerError)
			log.Error("Failed to get tournament results from store", "error", err, "tournamentID", tournamentID)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(results); err != nil {
			log.Error("Failed to encode results to JSON", "error", err)
		}
	}
}

// StandingsHandler serves the season standings as JSON.
func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Store.GetSeasonStandings()
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings from store", "error", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(standings); err != nil {
			log.Error("Failed to encode standings to JSON", "error", err)
		}
	}
}

// StandingsUpdatedHandler receives pub/sub push deliveries for the
// standings-updated topic and reposts the season standings to Slack.
func (s *Server) StandingsUpdatedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received standings updated message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		event := pubsub.StandingsUpdatedEvent{}
		s.pubsub.ProcessMessage(rawData, &event)
		log.Info("Publishing standings after tournament", "tournamentID", event.TournamentID, "name", event.TournamentName)
		if err := s.Processor.PublishStandings(isDryRun); err != nil {
			http.Error(w, "Failed to publish standings", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// StandingsCommandHandler returns a handler for the /standings Slack command.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Store.GetSeasonStandings()
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings from store", "error", err)
			return
		}

		msg, err := s.Notifier.FormatStandingsResponse(standings)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// PlayerStandingCommandHandler returns a handler for the /player Slack command.
func (s *Server) PlayerStandingCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		playerName := r.FormValue("text")
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player standing command", "player", playerName)

		standing, err := s.Store.GetStandingByName(playerName)
		var msg any
		if err != nil {
			log.Warn("Could not find player standing", "player", playerName, "error", err)
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(playerName)
		} else {
			msg, err = s.Notifier.FormatPlayerStandingResponse(standing, playerName)
		}

		if err != nil {
			http.Error(w, "Failed to format player standing", http.StatusInternalServerError)
			log.Error("Failed to format player standing", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}
