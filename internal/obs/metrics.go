package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the counters and gauges the router control plane exposes on
// /metrics. They are ambient observability, not part of the filter/routing
// core: no component reads them back to make a routing decision.
var (
	PacketsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mavrouter_packets_parsed_total",
		Help: "Frames successfully parsed into Packet values.",
	})

	ParserResyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mavrouter_parser_resyncs_total",
		Help: "Times the frame parser discarded a buffer and resynced to WAIT_MAGIC.",
	}, []string{"reason"})

	FilterAccepts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mavrouter_filter_decisions_total",
		Help: "Filter.WillAccept outcomes.",
	}, []string{"connection", "accepted"})

	RecursionErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mavrouter_recursion_errors_total",
		Help: "Chain evaluations aborted by the recursion guard.",
	})

	QueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mavrouter_queue_depth",
		Help: "Current number of packets buffered in a connection's queue.",
	}, []string{"connection"})

	ConnectionsLive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mavrouter_connections_live",
		Help: "Number of connections currently registered with the pool.",
	})
)
