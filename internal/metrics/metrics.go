// Package metrics exposes Prometheus counters and gauges for connection
// and query activity. This is ambient instrumentation: it observes the
// handshake and framed-transport paths without participating in their
// control flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HandshakesAttempted counts every call to ConnectionBuilder.Connect.
	HandshakesAttempted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "goreql",
			Name:      "handshakes_attempted_total",
			Help:      "Total number of connection handshakes attempted.",
		},
	)

	// HandshakesSucceeded counts handshakes that reached an authenticated
	// Connection.
	HandshakesSucceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "goreql",
			Name:      "handshakes_succeeded_total",
			Help:      "Total number of connection handshakes that completed successfully.",
		},
	)

	// HandshakesFailed counts handshakes that failed at any stage: dial,
	// magic validation, or SCRAM exchange.
	HandshakesFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "goreql",
			Name:      "handshakes_failed_total",
			Help:      "Total number of connection handshakes that failed.",
		},
	)

	// OpenConnections tracks the number of Connections currently
	// authenticated and not yet Closed.
	OpenConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "goreql",
			Name:      "open_connections",
			Help:      "Current number of authenticated, unclosed connections.",
		},
	)

	// QueriesSent counts successfully framed and written queries.
	QueriesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "goreql",
			Name:      "queries_sent_total",
			Help:      "Total number of queries written to the wire.",
		},
	)

	// QueriesFailed counts queries whose frame failed to write.
	QueriesFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "goreql",
			Name:      "queries_failed_total",
			Help:      "Total number of queries that failed to write to the wire.",
		},
	)

	// BytesWritten accumulates the body-byte length of every query frame
	// successfully written, excluding the 12-byte token+length header.
	BytesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "goreql",
			Name:      "bytes_written_total",
			Help:      "Total query body bytes written across all connections.",
		},
	)

	// BytesRead accumulates the body-byte length of every reply frame
	// successfully read, excluding the header.
	BytesRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "goreql",
			Name:      "bytes_read_total",
			Help:      "Total reply body bytes read across all connections.",
		},
	)
)
