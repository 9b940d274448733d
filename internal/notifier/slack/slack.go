package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/birchwoodgc/league-tracker/internal/league"
	"github.com/birchwoodgc/league-tracker/internal/metrics"
	"github.com/birchwoodgc/league-tracker/internal/notifier"
	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendResultNotification(tournament *league.Tournament, results []league.ResultRow, dryRun bool) error {
	msg := s.formatResultNotification(tournament, results)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendStandings(standings []league.Standing, dryRun bool) error {
	msg := s.formatStandings(standings)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendPlayerStanding(standing *league.Standing, query string, dryRun bool) error {
	msg := s.formatPlayerStanding(standing, query)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendPlayerNotFound(query string, dryRun bool) error {
	msg := s.formatPlayerNotFound(query)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatStandingsResponse formats a standings message for a slash command response.
func (s *Notifier) FormatStandingsResponse(standings []league.Standing) (any, error) {
	return s.formatStandings(standings), nil
}

// FormatPlayerStandingResponse formats a player standing message for a slash command response.
func (s *Notifier) FormatPlayerStandingResponse(standing *league.Standing, query string) (any, error) {
	return s.formatPlayerStanding(standing, query), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// rankLabel renders a finishing position, prefixed with T when the position
// is shared by more than one player.
func rankLabel(position int, shared map[int]int) string {
	if shared[position] > 1 {
		return fmt.Sprintf("T%d", position)
	}
	return strconv.Itoa(position)
}

// formatPoints trims trailing zeros so whole-point values read cleanly while
// half-point averages keep their fraction.
func formatPoints(points float64) string {
	return strconv.FormatFloat(points, 'f', -1, 64)
}

// formatResultNotification creates the Slack message for a scored tournament using Block Kit.
func (s *Notifier) formatResultNotification(tournament *league.Tournament, results []league.ResultRow) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("⛳ %s — Final Results ⛳", tournament.Name), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Details
	dateStr := time.Unix(tournament.PlayedOn, 0).Format("Monday 02 Jan 2006")
	detailsText := fmt.Sprintf("Category: %s\nPlayed: %s", tournament.Category, dateStr)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	if lines := resultLines(results, netAxis); len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "*Net*\n"+lines, false, false), nil, nil))
	}
	if lines := resultLines(results, grossAxis); len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "*Gross*\n"+lines, false, false), nil, nil))
	}
	if len(results) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No results reported.", true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

type resultAxis int

const (
	netAxis resultAxis = iota
	grossAxis
)

// resultLines renders one ranked line per scored player for the given axis.
func resultLines(results []league.ResultRow, axis resultAxis) string {
	type line struct {
		position int
		text     string
	}

	position := func(r league.ResultRow) *int {
		if axis == grossAxis {
			return r.GrossPosition
		}
		return r.Position
	}
	points := func(r league.ResultRow) *float64 {
		if axis == grossAxis {
			return r.GrossPoints
		}
		return r.Points
	}
	score := func(r league.ResultRow) *int {
		if axis == grossAxis {
			return r.GrossScore
		}
		return r.NetScore
	}

	shared := make(map[int]int)
	for _, r := range results {
		if p := position(r); p != nil {
			shared[*p]++
		}
	}

	var lines []line
	for _, r := range results {
		p := position(r)
		pts := points(r)
		if p == nil || pts == nil {
			continue
		}
		scoreText := "-"
		if sc := score(r); sc != nil {
			scoreText = strconv.Itoa(*sc)
		}
		lines = append(lines, line{
			position: *p,
			text:     fmt.Sprintf("%s. %s — %s (%s pts)", rankLabel(*p, shared), r.PlayerName, scoreText, formatPoints(*pts)),
		})
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].position < lines[j].position })

	var out string
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l.text
	}
	return out
}

// formatStandings creates a Slack message to display the season standings.
func (s *Notifier) formatStandings(standings []league.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🏆 Season Standings 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No standings yet. Go play some golf!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	// Player Ranks
	for i, standing := range standings {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Net: %s pts | Gross: %s pts | Played: %d | Wins: %d",
			rank,
			medal,
			standing.PlayerName,
			formatPoints(standing.NetPoints),
			formatPoints(standing.GrossPoints),
			standing.TournamentsPlayed,
			standing.Wins,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStanding creates a Slack message to display a single player's season line.
func (s *Notifier) formatPlayerStanding(standing *league.Standing, query string) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := fmt.Sprintf("🏆 Season standing for %s 🏆", standing.PlayerName)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	playerText := fmt.Sprintf("> *Net points*: %s\n> *Gross points*: %s\n> *Tournaments played*: %d\n> *Wins*: %d",
		formatPoints(standing.NetPoints),
		formatPoints(standing.GrossPoints),
		standing.TournamentsPlayed,
		standing.Wins,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's standing is not found.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}
