package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	playersCreated   int
	shotsRecorded    int
	shotLimitRejects int
	requestDurations map[string][]float64
	notifSent        int
	notifFailed      int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		requestDurations: make(map[string][]float64),
	}
}

func (m *Mock) IncPlayersCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersCreated++
}

func (m *Mock) IncShotsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shotsRecorded++
}

func (m *Mock) IncShotLimitRejections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shotLimitRejects++
}

func (m *Mock) ObserveRequestDuration(route string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestDurations[route] = append(m.requestDurations[route], seconds)
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// PlayersCreated returns the number of times IncPlayersCreated was called.
func (m *Mock) PlayersCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersCreated
}

// ShotsRecorded returns the number of times IncShotsRecorded was called.
func (m *Mock) ShotsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shotsRecorded
}

// ShotLimitRejections returns the number of times IncShotLimitRejections was called.
func (m *Mock) ShotLimitRejections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shotLimitRejects
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
