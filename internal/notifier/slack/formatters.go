package slack

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/lmercier/tir-tracker/internal/shooting"
)

// formatSessionComplete creates the Slack message for a finished shooting session using Block Kit.
func (s *Notifier) formatSessionComplete(player *shooting.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎯 Session complete! 🎯", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s fired %d/%d shots\nTotal: %.1f\nAverage: %.2f\nBest: %.1f",
		player.Name, player.ShotCount, player.TotalShots, player.TotalScore, player.AverageScore, player.BestShot)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatNewLeader creates the Slack message announcing a leaderboard takeover.
func (s *Notifier) formatNewLeader(entry shooting.LeaderboardEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 New leader! 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s takes the lead with %.1f points (avg %.2f over %d shots)",
		entry.PlayerName, entry.TotalScore, entry.AverageScore, entry.ShotCount)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates the Slack message for the full ranking.
func (s *Notifier) formatLeaderboard(entries []shooting.LeaderboardEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎯 Leaderboard 🎯", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(entries) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered yet.", false, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for _, entry := range entries {
		medal := ""
		switch entry.Rank {
		case 1:
			medal = "🥇 "
		case 2:
			medal = "🥈 "
		case 3:
			medal = "🥉 "
		}
		lines = append(lines, fmt.Sprintf("%s%d. %s — %.1f pts (avg %.2f, %d%% done)",
			medal, entry.Rank, entry.PlayerName, entry.TotalScore, entry.AverageScore, entry.Completion))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
