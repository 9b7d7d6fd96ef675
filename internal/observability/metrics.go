package observability

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	readTraversals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netzob",
			Subsystem: "grammar",
			Name:      "read_traversals_total",
			Help:      "Read traversals by format and outcome.",
		},
		[]string{"format", "success"},
	)
	writeTraversals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netzob",
			Subsystem: "grammar",
			Name:      "write_traversals_total",
			Help:      "Write traversals by format and outcome.",
		},
		[]string{"format", "success"},
	)
	patternsBuilt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netzob",
			Subsystem: "grammar",
			Name:      "patterns_built_total",
			Help:      "Pattern derivations by format.",
		},
		[]string{"format"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(readTraversals, writeTraversals, patternsBuilt)
	})
}

func RecordRead(format string, success bool) {
	RegisterMetrics()
	readTraversals.WithLabelValues(format, strconv.FormatBool(success)).Inc()
}

func RecordWrite(format string, success bool) {
	RegisterMetrics()
	writeTraversals.WithLabelValues(format, strconv.FormatBool(success)).Inc()
}

func RecordPatternBuild(format string) {
	RegisterMetrics()
	patternsBuilt.WithLabelValues(format).Inc()
}
