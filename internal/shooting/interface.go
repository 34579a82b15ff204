package shooting

// RangeStore defines the interface for interacting with the range's data.
type RangeStore interface {
	CreatePlayer(name string, totalShots int) (*Player, error)
	GetPlayer(playerID string) (*Player, error)
	GetAllPlayers() ([]Player, error)
	UpdatePlayer(playerID string, update PlayerUpdate) (*Player, error)
	ResetScores(playerID string) (*Player, error)
	DeletePlayer(playerID string) error
	RecordShot(playerID string, value float64, x, y *float64, ring string) (*Score, error)
	GetScores(playerID string) ([]Score, error)
	DeleteScores(playerID string) error
	GetLeaderboard() ([]LeaderboardEntry, error)
	IsKnownPlayer(playerID string) bool
	Clear()
}
