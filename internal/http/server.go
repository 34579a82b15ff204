package http

import (
	"net/http"

	"github.com/lmercier/tir-tracker/internal/auth"
	"github.com/lmercier/tir-tracker/internal/config"
	"github.com/lmercier/tir-tracker/internal/metrics"
	"github.com/lmercier/tir-tracker/internal/notifier"
	"github.com/lmercier/tir-tracker/internal/pubsub"
	"github.com/lmercier/tir-tracker/internal/shooting"
)

func NewServer(store shooting.RangeStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, authSvc *auth.Service, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Auth:           authSvc,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Mutating routes additionally go through requireAuth.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), s.instrument("health"), paramsMiddleware))
	s.Router.Handle("POST /auth/login", Chain(s.LoginHandler(), s.instrument("login"), paramsMiddleware))
	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), s.instrument("players"), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(s.CreatePlayerHandler(), s.instrument("players"), paramsMiddleware, requireAuth))
	s.Router.Handle("PUT /players/{id}", Chain(s.UpdatePlayerHandler(), s.instrument("players"), paramsMiddleware, requireAuth))
	s.Router.Handle("DELETE /players/{id}", Chain(s.DeletePlayerHandler(), s.instrument("players"), paramsMiddleware, requireAuth))
	s.Router.Handle("GET /scores", Chain(s.ListScoresHandler(), s.instrument("scores"), paramsMiddleware))
	s.Router.Handle("POST /scores", Chain(s.RecordScoreHandler(), s.instrument("scores"), paramsMiddleware, requireAuth))
	s.Router.Handle("DELETE /scores", Chain(s.DeleteScoresHandler(), s.instrument("scores"), paramsMiddleware, requireAuth))
	s.Router.Handle("GET /leaderboard", Chain(s.LeaderboardHandler(), s.instrument("leaderboard"), paramsMiddleware))
	s.Router.Handle("POST /clear", Chain(s.ClearStoreHandler(), s.instrument("clear"), paramsMiddleware, requireAuth))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
