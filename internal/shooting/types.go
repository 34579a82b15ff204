package shooting

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the range.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player is a registered tireur together with the aggregates derived
// from their recorded shots.
type Player struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TotalShots   int       `json:"totalShots"`
	ShotCount    int       `json:"shotCount"`
	Scores       []float64 `json:"scores"`
	TotalScore   float64   `json:"totalScore"`
	AverageScore float64   `json:"averageScore"`
	BestShot     float64   `json:"bestShot"`
	WorstShot    float64   `json:"worstShot"`
	Consistency  float64   `json:"consistency"`
	Completion   int       `json:"completionPercentage"`
	CreatedAt    int64     `json:"createdAt"`
	UpdatedAt    int64     `json:"updatedAt"`
}

// Score is a single recorded shot. X and Y are impact coordinates
// relative to the target center when the entry device reports them.
type Score struct {
	ID         string   `json:"id"`
	PlayerID   string   `json:"playerId"`
	ShotNumber int      `json:"shotNumber"`
	Value      float64  `json:"value"`
	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
	Precision  float64  `json:"precision"`
	Ring       string   `json:"ring,omitempty"`
	RecordedAt int64    `json:"timestamp"`
}

// PlayerUpdate carries the optional fields of a player update; nil
// means leave unchanged.
type PlayerUpdate struct {
	Name       *string
	TotalShots *int
}

// LeaderboardEntry is one row of the ranking.
type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	PlayerID     string  `json:"playerId"`
	PlayerName   string  `json:"playerName"`
	TotalScore   float64 `json:"totalScore"`
	AverageScore float64 `json:"averageScore"`
	ShotCount    int     `json:"shotCount"`
	BestShot     float64 `json:"bestShot"`
	Consistency  float64 `json:"consistency"`
	Completion   int     `json:"completionPercentage"`
}
