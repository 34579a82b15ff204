package scoreboard

// Action is the closed set of mutations the reducer understands. Each
// variant is its own struct so payloads are typed and a switch over the
// variants is exhaustive.
type Action interface {
	isAction()
}

// LoadPlayers replaces the player list wholesale with an
// authoritative snapshot, clearing the loading and error flags.
type LoadPlayers struct {
	Players []Player
}

// AddPlayer appends a new player with a freshly generated id and an
// empty score sheet. Ignored when Name is empty.
type AddPlayer struct {
	Name       string
	TotalShots int
}

// RemovePlayer drops the player with the given id. A no-op when the id
// is unknown.
type RemovePlayer struct {
	ID string
}

// SetCurrentPlayer points the current-player reference at the given id
// unconditionally; existence is not validated.
type SetCurrentPlayer struct {
	ID string
}

// AddScore appends a shot to a player's sheet. A no-op once the
// player's shot limit is reached.
type AddScore struct {
	PlayerID string
	Score    float64
}

// UpdatePlayerShots changes a player's configured shot count,
// truncating any recorded shots past the new cap.
type UpdatePlayerShots struct {
	ID         string
	TotalShots int
}

// ResetPlayerScores clears a player's sheet back to zero shots.
type ResetPlayerScores struct {
	ID string
}

func (LoadPlayers) isAction()       {}
func (AddPlayer) isAction()         {}
func (RemovePlayer) isAction()      {}
func (SetCurrentPlayer) isAction()  {}
func (AddScore) isAction()          {}
func (UpdatePlayerShots) isAction() {}
func (ResetPlayerScores) isAction() {}
