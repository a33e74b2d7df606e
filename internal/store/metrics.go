package store

import "github.com/prometheus/client_golang/prometheus"

var (
	dispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hellod",
			Subsystem: "store",
			Name:      "dispatch_total",
			Help:      "Total number of committed dispatches",
		},
		[]string{"action", "changed"},
	)

	dispatchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hellod",
			Subsystem: "store",
			Name:      "dispatch_errors_total",
			Help:      "Total number of rejected dispatches",
		},
		[]string{"reason"},
	)

	listenersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hellod",
			Subsystem: "store",
			Name:      "listeners",
			Help:      "Currently subscribed store listeners",
		},
	)
)

func init() {
	prometheus.MustRegister(dispatchTotal, dispatchErrors, listenersGauge)
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
