package notifier

import (
	"sync"

	"github.com/lmercier/tir-tracker/internal/shooting"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendSessionCompleteFunc func(player *shooting.Player, dryRun bool) error
	SendNewLeaderFunc       func(entry shooting.LeaderboardEntry, dryRun bool) error
	SendLeaderboardFunc     func(entries []shooting.LeaderboardEntry, dryRun bool) error

	// Call records
	SessionCompleteCalls []*shooting.Player
	NewLeaderCalls       []shooting.LeaderboardEntry
	LeaderboardCalls     [][]shooting.LeaderboardEntry
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionCompleteCalls = nil
	m.NewLeaderCalls = nil
	m.LeaderboardCalls = nil
}

func (m *Mock) SendSessionComplete(player *shooting.Player, dryRun bool) error {
	m.mu.Lock()
	m.SessionCompleteCalls = append(m.SessionCompleteCalls, player)
	m.mu.Unlock()
	if m.SendSessionCompleteFunc != nil {
		return m.SendSessionCompleteFunc(player, dryRun)
	}
	return nil
}

func (m *Mock) SendNewLeader(entry shooting.LeaderboardEntry, dryRun bool) error {
	m.mu.Lock()
	m.NewLeaderCalls = append(m.NewLeaderCalls, entry)
	m.mu.Unlock()
	if m.SendNewLeaderFunc != nil {
		return m.SendNewLeaderFunc(entry, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(entries []shooting.LeaderboardEntry, dryRun bool) error {
	m.mu.Lock()
	m.LeaderboardCalls = append(m.LeaderboardCalls, entries)
	m.mu.Unlock()
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(entries, dryRun)
	}
	return nil
}
