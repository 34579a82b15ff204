package shooting

import "sync"

// MockStore is a mock implementation of the RangeStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreatePlayerFunc   func(name string, totalShots int) (*Player, error)
	GetPlayerFunc      func(playerID string) (*Player, error)
	GetAllPlayersFunc  func() ([]Player, error)
	UpdatePlayerFunc   func(playerID string, update PlayerUpdate) (*Player, error)
	ResetScoresFunc    func(playerID string) (*Player, error)
	DeletePlayerFunc   func(playerID string) error
	RecordShotFunc     func(playerID string, value float64, x, y *float64, ring string) (*Score, error)
	GetScoresFunc      func(playerID string) ([]Score, error)
	DeleteScoresFunc   func(playerID string) error
	GetLeaderboardFunc func() ([]LeaderboardEntry, error)
	IsKnownPlayerFunc  func(playerID string) bool

	// Call records
	CreatePlayerCalls []struct {
		Name       string
		TotalShots int
	}
	DeletePlayerCalls []string
	ResetScoresCalls  []string
	RecordShotCalls   []struct {
		PlayerID string
		Value    float64
	}
	DeleteScoresCalls []string
	ClearCalls        int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreatePlayer(name string, totalShots int) (*Player, error) {
	m.mu.Lock()
	m.CreatePlayerCalls = append(m.CreatePlayerCalls, struct {
		Name       string
		TotalShots int
	}{name, totalShots})
	m.mu.Unlock()
	if m.CreatePlayerFunc != nil {
		return m.CreatePlayerFunc(name, totalShots)
	}
	return &Player{Name: name, TotalShots: totalShots}, nil
}

func (m *MockStore) GetPlayer(playerID string) (*Player, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) GetAllPlayers() ([]Player, error) {
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdatePlayer(playerID string, update PlayerUpdate) (*Player, error) {
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(playerID, update)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) ResetScores(playerID string) (*Player, error) {
	m.mu.Lock()
	m.ResetScoresCalls = append(m.ResetScoresCalls, playerID)
	m.mu.Unlock()
	if m.ResetScoresFunc != nil {
		return m.ResetScoresFunc(playerID)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) DeletePlayer(playerID string) error {
	m.mu.Lock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, playerID)
	m.mu.Unlock()
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(playerID)
	}
	return nil
}

func (m *MockStore) RecordShot(playerID string, value float64, x, y *float64, ring string) (*Score, error) {
	m.mu.Lock()
	m.RecordShotCalls = append(m.RecordShotCalls, struct {
		PlayerID string
		Value    float64
	}{playerID, value})
	m.mu.Unlock()
	if m.RecordShotFunc != nil {
		return m.RecordShotFunc(playerID, value, x, y, ring)
	}
	return &Score{PlayerID: playerID, Value: value}, nil
}

func (m *MockStore) GetScores(playerID string) ([]Score, error) {
	if m.GetScoresFunc != nil {
		return m.GetScoresFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) DeleteScores(playerID string) error {
	m.mu.Lock()
	m.DeleteScoresCalls = append(m.DeleteScoresCalls, playerID)
	m.mu.Unlock()
	if m.DeleteScoresFunc != nil {
		return m.DeleteScoresFunc(playerID)
	}
	return nil
}

func (m *MockStore) GetLeaderboard() ([]LeaderboardEntry, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
}
