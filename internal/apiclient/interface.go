package apiclient

import "context"

// Client defines the interface for talking to the score-tracker API.
// This allows for mock implementations to be used in tests.
type Client interface {
	ListPlayers(ctx context.Context) ([]PlayerRecord, error)
	CreatePlayer(ctx context.Context, name string, totalShots int) (*PlayerRecord, error)
	UpdatePlayer(ctx context.Context, playerID string, req UpdatePlayerRequest) (*PlayerRecord, error)
	DeletePlayer(ctx context.Context, playerID string) error
	ResetScores(ctx context.Context, playerID string) (*PlayerRecord, error)
	RecordScore(ctx context.Context, req ScoreRequest) (*ScoreRecord, error)
	DeleteScores(ctx context.Context, playerID string) error
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
}
