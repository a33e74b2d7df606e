package userapi

import "github.com/prometheus/client_golang/prometheus"

var (
	fetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hellod",
			Subsystem: "userapi",
			Name:      "requests_total",
			Help:      "Total number of user fetches by outcome",
		},
		[]string{"outcome"},
	)

	fetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hellod",
			Subsystem: "userapi",
			Name:      "request_duration_seconds",
			Help:      "Duration of user fetches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(fetchTotal, fetchDuration)
}

// outcome labels
const (
	outcomeOK        = "ok"
	outcomeInvalid   = "invalid_id"
	outcomeStatus    = "status"
	outcomeTransport = "transport"
	outcomeDecode    = "decode"
	outcomeTimeout   = "timeout"
	outcomeStale     = "stale"
	outcomeDispatch  = "dispatch_error"
)
