package notifier

import "github.com/lmercier/tir-tracker/internal/shooting"

// Notifier defines a high-level interface for announcing range events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendSessionComplete announces that a player has fired their last
	// configured shot.
	SendSessionComplete(player *shooting.Player, dryRun bool) error

	// SendNewLeader announces a change at the top of the leaderboard.
	SendNewLeader(entry shooting.LeaderboardEntry, dryRun bool) error

	// SendLeaderboard posts the full ranking.
	SendLeaderboard(entries []shooting.LeaderboardEntry, dryRun bool) error
}
