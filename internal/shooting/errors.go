package shooting

import "errors"

var (
	// ErrPlayerNotFound is returned when no player matches the given id.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrNameTaken is returned when creating or renaming a player to a
	// name another player already holds.
	ErrNameTaken = errors.New("player name already taken")

	// ErrShotLimitReached is returned when a shot is recorded for a
	// player whose sheet is already full.
	ErrShotLimitReached = errors.New("shot limit reached")
)
