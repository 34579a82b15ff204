package scoreboard

// Player is the in-memory projection of a tireur. TotalScore and
// CurrentShot are derived from Scores and are recomputed inside the same
// transition as any change to Scores, so a caller never observes them
// out of step.
type Player struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	TotalShots  int       `json:"totalShots"`
	CurrentShot int       `json:"currentShot"`
	Scores      []float64 `json:"scores"`
	TotalScore  float64   `json:"totalScore"`
}

// State is the root of the scoring state machine. Players keeps
// insertion order for display. CurrentPlayerID and TopScorerID are weak
// references: they hold an id, not a player, and may be empty.
type State struct {
	Players         []Player `json:"players"`
	CurrentPlayerID string   `json:"currentPlayerId"`
	TopScorerID     string   `json:"topScorerId"`
	Loading         bool     `json:"isLoading"`
	Err             string   `json:"error"`
}

// NewState returns the empty session state.
func NewState() State {
	return State{}
}

// FindPlayer returns the player with the given id, or nil.
func (s State) FindPlayer(id string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}
