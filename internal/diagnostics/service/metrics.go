package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	payloadsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "diag_payloads_received_total",
			Help: "Total number of diagnostics payloads accepted",
		},
	)

	payloadBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "diag_payload_bytes_total",
			Help: "Total bytes of accepted diagnostics payloads",
		},
	)

	ingestFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diag_ingest_failures_total",
			Help: "Total number of rejected diagnostics requests by failure kind",
		},
		[]string{"kind"},
	)

	fanoutErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "diag_fanout_errors_total",
			Help: "Total number of events that could not be published to live viewers",
		},
	)
)

func recordAccepted(size int) {
	payloadsReceived.Inc()
	payloadBytes.Add(float64(size))
}

func recordFailure(kind string) {
	ingestFailures.WithLabelValues(kind).Inc()
}

func recordFanoutError() {
	fanoutErrors.Inc()
}
