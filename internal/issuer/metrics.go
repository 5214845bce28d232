package issuer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts issuance outcomes.
type Metrics struct {
	CredentialsIssued   prometheus.Counter
	CredentialsRejected *prometheus.CounterVec
	ProfilesRegistered  prometheus.Counter
	IssueDuration       prometheus.Histogram
}

// NewMetrics registers the issuer metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CredentialsIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "issuer_credentials_issued_total",
			Help: "Total number of expiring profile key credentials issued",
		}),
		CredentialsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "issuer_credentials_rejected_total",
			Help: "Credential requests refused, by reason",
		}, []string{"reason"}),
		ProfilesRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "issuer_profiles_registered_total",
			Help: "Total number of profile registrations",
		}),
		IssueDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "issuer_issue_duration_seconds",
			Help:    "Duration of credential issuance",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
}

func (m *Metrics) ObserveIssue(start time.Time) {
	m.IssueDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) Reject(reason string) {
	m.CredentialsRejected.WithLabelValues(reason).Inc()
}
