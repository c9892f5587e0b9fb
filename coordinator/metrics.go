package coordinator

import "github.com/prometheus/client_golang/prometheus"

var (
	rentalsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentals_started_total",
		Help: "Total number of rentals started",
	})

	rentalsFinished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentals_finished_total",
		Help: "Total number of rentals finished",
	})
)

// RegisterMetrics registers the rental counters with the provided registry.
func RegisterMetrics(reg *prometheus.Registry) {
	reg.MustRegister(rentalsStarted, rentalsFinished)
}
