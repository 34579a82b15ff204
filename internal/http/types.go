package http

import (
	"net/http"
	"sync"

	"github.com/lmercier/tir-tracker/internal/auth"
	"github.com/lmercier/tir-tracker/internal/config"
	"github.com/lmercier/tir-tracker/internal/metrics"
	"github.com/lmercier/tir-tracker/internal/notifier"
	"github.com/lmercier/tir-tracker/internal/pubsub"
	"github.com/lmercier/tir-tracker/internal/shooting"
)

type Server struct {
	Store          shooting.RangeStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Auth           *auth.Service
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient

	// lastLeaderID tracks the top of the leaderboard so a change can be
	// announced exactly once.
	leaderMu     sync.Mutex
	lastLeaderID string
}
