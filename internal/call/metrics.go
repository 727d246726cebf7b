package call

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    metricStateTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "call_state_transitions_total",
        Help: "Call state machine transitions",
    }, []string{"from", "to"})

    metricLines = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "call_transcript_lines_total",
        Help: "Transcript lines appended by speaker",
    }, []string{"speaker"})

    metricResolved = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "calls_resolved_total",
        Help: "Resolved calls by outcome",
    }, []string{"outcome"})

    metricResets = promauto.NewCounter(prometheus.CounterOpts{
        Name: "call_resets_total",
        Help: "Call session resets",
    })
)
