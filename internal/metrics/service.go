package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PlayersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tir_players_created_total",
			Help: "The total number of players registered.",
		}),
		ShotsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tir_shots_recorded_total",
			Help: "The total number of shots persisted.",
		}),
		ShotLimitRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tir_shot_limit_rejections_total",
			Help: "The total number of shots rejected because the player's sheet was full.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tir_request_duration_seconds",
			Help:    "The duration of HTTP requests by route.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route"}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tir_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tir_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tir_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PlayersCreated,
		s.ShotsRecorded,
		s.ShotLimitRejects,
		s.RequestDuration,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPlayersCreated() {
	s.PlayersCreated.Inc()
}

func (s *Service) IncShotsRecorded() {
	s.ShotsRecorded.Inc()
}

func (s *Service) IncShotLimitRejections() {
	s.ShotLimitRejects.Inc()
}

func (s *Service) ObserveRequestDuration(route string, seconds float64) {
	s.RequestDuration.WithLabelValues(route).Observe(seconds)
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
