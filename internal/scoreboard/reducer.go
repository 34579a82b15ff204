// Package scoreboard is the in-memory mirror of the range's scoring
// state. It is a pure reducer: (state, action) -> state, no I/O. The
// syncer owns a single State cell and is the only dispatcher; the store
// remains the durable source of truth.
package scoreboard

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lmercier/tir-tracker/internal/scoring"
)

// Reduce applies an action and returns the next state. The input state
// is never mutated; player slices are copied before any change.
func Reduce(s State, a Action) State {
	next, _ := Apply(s, a)
	return next
}

// Apply is Reduce plus a flag reporting whether the action changed
// state. An AddScore at the shot limit and a RemovePlayer of an unknown
// id both return the state unchanged with applied == false.
func Apply(s State, a Action) (State, bool) {
	switch act := a.(type) {
	case LoadPlayers:
		s.Players = clonePlayers(act.Players)
		s.Loading = false
		s.Err = ""
		s.TopScorerID = topScorer(s.Players)
		return s, true

	case AddPlayer:
		if act.Name == "" {
			log.Warn("Ignoring add of player with empty name")
			return s, false
		}
		player := Player{
			ID:         uuid.NewString(),
			Name:       act.Name,
			TotalShots: act.TotalShots,
			Scores:     []float64{},
		}
		s.Players = append(clonePlayers(s.Players), player)
		s.TopScorerID = topScorer(s.Players)
		return s, true

	case RemovePlayer:
		idx := indexOf(s.Players, act.ID)
		if idx < 0 {
			return s, false
		}
		players := clonePlayers(s.Players)
		s.Players = append(players[:idx], players[idx+1:]...)
		if s.CurrentPlayerID == act.ID {
			s.CurrentPlayerID = ""
		}
		s.TopScorerID = topScorer(s.Players)
		return s, true

	case SetCurrentPlayer:
		s.CurrentPlayerID = act.ID
		return s, true

	case AddScore:
		idx := indexOf(s.Players, act.PlayerID)
		if idx < 0 {
			return s, false
		}
		if s.Players[idx].CurrentShot >= s.Players[idx].TotalShots {
			log.Warn("Shot limit reached, ignoring score", "playerID", act.PlayerID, "totalShots", s.Players[idx].TotalShots)
			return s, false
		}
		players := clonePlayers(s.Players)
		p := &players[idx]
		p.Scores = append(p.Scores, act.Score)
		p.CurrentShot = len(p.Scores)
		p.TotalScore = scoring.Total(p.Scores)
		s.Players = players
		s.TopScorerID = topScorer(s.Players)
		return s, true

	case UpdatePlayerShots:
		idx := indexOf(s.Players, act.ID)
		if idx < 0 {
			return s, false
		}
		players := clonePlayers(s.Players)
		p := &players[idx]
		p.TotalShots = act.TotalShots
		if len(p.Scores) > act.TotalShots {
			p.Scores = p.Scores[:act.TotalShots]
		}
		p.CurrentShot = len(p.Scores)
		p.TotalScore = scoring.Total(p.Scores)
		s.Players = players
		s.TopScorerID = topScorer(s.Players)
		return s, true

	case ResetPlayerScores:
		idx := indexOf(s.Players, act.ID)
		if idx < 0 {
			return s, false
		}
		players := clonePlayers(s.Players)
		p := &players[idx]
		p.Scores = []float64{}
		p.CurrentShot = 0
		p.TotalScore = 0
		s.Players = players
		s.TopScorerID = topScorer(s.Players)
		return s, true
	}

	log.Error("Unknown action dispatched to scoreboard", "action", a)
	return s, false
}

// topScorer folds over the players keeping the running champion only
// when a candidate's total is strictly greater, so ties keep the
// earlier-added player. Empty list means no champion.
func topScorer(players []Player) string {
	if len(players) == 0 {
		return ""
	}
	champion := players[0]
	for _, p := range players[1:] {
		if p.TotalScore > champion.TotalScore {
			champion = p
		}
	}
	return champion.ID
}

func indexOf(players []Player, id string) int {
	for i := range players {
		if players[i].ID == id {
			return i
		}
	}
	return -1
}

// clonePlayers copies the slice and each player's score sheet so a
// transition never aliases the previous state's backing arrays.
func clonePlayers(players []Player) []Player {
	out := make([]Player, len(players))
	copy(out, players)
	for i := range out {
		if out[i].Scores != nil {
			scores := make([]float64, len(out[i].Scores))
			copy(scores, out[i].Scores)
			out[i].Scores = scores
		}
	}
	return out
}
