package apiclient

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	ListPlayersFunc  func(ctx context.Context) ([]PlayerRecord, error)
	CreatePlayerFunc func(ctx context.Context, name string, totalShots int) (*PlayerRecord, error)
	UpdatePlayerFunc func(ctx context.Context, playerID string, req UpdatePlayerRequest) (*PlayerRecord, error)
	DeletePlayerFunc func(ctx context.Context, playerID string) error
	ResetScoresFunc  func(ctx context.Context, playerID string) (*PlayerRecord, error)
	RecordScoreFunc  func(ctx context.Context, req ScoreRequest) (*ScoreRecord, error)
	DeleteScoresFunc func(ctx context.Context, playerID string) error
	LoginFunc        func(ctx context.Context, username, password string) (*LoginResponse, error)

	// Call records
	ListPlayersCalls  int
	CreatePlayerCalls []struct {
		Name       string
		TotalShots int
	}
	DeletePlayerCalls []string
	ResetScoresCalls  []string
	RecordScoreCalls  []ScoreRequest
	DeleteScoresCalls []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListPlayersCalls = 0
	m.CreatePlayerCalls = nil
	m.DeletePlayerCalls = nil
	m.ResetScoresCalls = nil
	m.RecordScoreCalls = nil
	m.DeleteScoresCalls = nil
}

func (m *MockClient) ListPlayers(ctx context.Context) ([]PlayerRecord, error) {
	m.mu.Lock()
	m.ListPlayersCalls++
	m.mu.Unlock()
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(ctx)
	}
	return []PlayerRecord{}, nil
}

func (m *MockClient) CreatePlayer(ctx context.Context, name string, totalShots int) (*PlayerRecord, error) {
	m.mu.Lock()
	m.CreatePlayerCalls = append(m.CreatePlayerCalls, struct {
		Name       string
		TotalShots int
	}{name, totalShots})
	m.mu.Unlock()
	if m.CreatePlayerFunc != nil {
		return m.CreatePlayerFunc(ctx, name, totalShots)
	}
	return &PlayerRecord{Name: name, TotalShots: totalShots}, nil
}

func (m *MockClient) UpdatePlayer(ctx context.Context, playerID string, req UpdatePlayerRequest) (*PlayerRecord, error) {
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(ctx, playerID, req)
	}
	return &PlayerRecord{ID: playerID}, nil
}

func (m *MockClient) DeletePlayer(ctx context.Context, playerID string) error {
	m.mu.Lock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, playerID)
	m.mu.Unlock()
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(ctx, playerID)
	}
	return nil
}

func (m *MockClient) ResetScores(ctx context.Context, playerID string) (*PlayerRecord, error) {
	m.mu.Lock()
	m.ResetScoresCalls = append(m.ResetScoresCalls, playerID)
	m.mu.Unlock()
	if m.ResetScoresFunc != nil {
		return m.ResetScoresFunc(ctx, playerID)
	}
	return &PlayerRecord{ID: playerID}, nil
}

func (m *MockClient) RecordScore(ctx context.Context, req ScoreRequest) (*ScoreRecord, error) {
	m.mu.Lock()
	m.RecordScoreCalls = append(m.RecordScoreCalls, req)
	m.mu.Unlock()
	if m.RecordScoreFunc != nil {
		return m.RecordScoreFunc(ctx, req)
	}
	return &ScoreRecord{PlayerID: req.PlayerID, Value: req.Score, ShotNumber: req.ShotNumber}, nil
}

func (m *MockClient) DeleteScores(ctx context.Context, playerID string) error {
	m.mu.Lock()
	m.DeleteScoresCalls = append(m.DeleteScoresCalls, playerID)
	m.mu.Unlock()
	if m.DeleteScoresFunc != nil {
		return m.DeleteScoresFunc(ctx, playerID)
	}
	return nil
}

func (m *MockClient) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return &LoginResponse{Success: true, Token: "auth_token_0_mock"}, nil
}
