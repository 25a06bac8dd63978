// Package metrics exposes prometheus collectors for the checkpoint game.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/myrjola/checkpoint/internal/models"
)

type Metrics struct {
	ApplicantsGenerated *prometheus.CounterVec
	Decisions           *prometheus.CounterVec
	PointsAwarded       prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
}

// New registers the collectors on reg together with the Go runtime and process collectors.
func New(reg prometheus.Registerer) *Metrics {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), //nolint:exhaustruct // defaults
	)
	factory := promauto.With(reg)
	return &Metrics{
		ApplicantsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkpoint_applicants_generated_total",
			Help: "Total number of generated applicants",
		}, []string{"theme", "valid"}),
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkpoint_decisions_total",
			Help: "Total number of judged decisions",
		}, []string{"theme", "outcome"}),
		PointsAwarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "checkpoint_points_awarded_total",
			Help: "Total number of points awarded to players",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "checkpoint_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern and status code",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"pattern", "status"}),
	}
}

// ApplicantGenerated counts a generated applicant.
func (m *Metrics) ApplicantGenerated(theme models.Theme, valid bool) {
	m.ApplicantsGenerated.WithLabelValues(string(theme), strconv.FormatBool(valid)).Inc()
}

// DecisionScored counts a decision and the points it earned.
func (m *Metrics) DecisionScored(theme models.Theme, correct bool, points int) {
	outcome := "incorrect"
	if correct {
		outcome = "correct"
	}
	m.Decisions.WithLabelValues(string(theme), outcome).Inc()
	m.PointsAwarded.Add(float64(points))
}

func (m *Metrics) ObserveRequest(pattern string, status int, start time.Time) {
	m.RequestDuration.WithLabelValues(pattern, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}
