package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/lmercier/tir-tracker/internal/metrics"
	"github.com/lmercier/tir-tracker/internal/notifier"
	"github.com/lmercier/tir-tracker/internal/shooting"
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
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendSessionComplete announces a finished shooting session.
func (s *Notifier) SendSessionComplete(player *shooting.Player, dryRun bool) error {
	msg := s.formatSessionComplete(player)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendNewLeader announces a change at the top of the leaderboard.
func (s *Notifier) SendNewLeader(entry shooting.LeaderboardEntry, dryRun bool) error {
	msg := s.formatNewLeader(entry)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendLeaderboard posts the full ranking to the channel.
func (s *Notifier) SendLeaderboard(entries []shooting.LeaderboardEntry, dryRun bool) error {
	msg := s.formatLeaderboard(entries)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}
