package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	SubmissionsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "demoday_submissions_accepted_total", Help: "Total demo submissions accepted"},
	)
	SubmissionsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "demoday_submissions_rejected_total", Help: "Total demo submissions rejected because the deadline passed"},
	)
	LiveStateUpdates = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "demoday_live_state_updates_total", Help: "Total live presentation state mutations"},
	)
)

func Register() {
	prometheus.MustRegister(SubmissionsAccepted, SubmissionsRejected, LiveStateUpdates)
}
