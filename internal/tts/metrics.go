package tts

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    ttsSynthesisTotal = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "tts_synthesis_total",
        Help: "Total TTS synthesis requests by status",
    }, []string{"status"})

    ttsSynthesisMS = promauto.NewHistogram(prometheus.HistogramOpts{
        Name:    "tts_synthesis_ms",
        Help:    "Total TTS synthesis time in milliseconds",
        Buckets: prometheus.ExponentialBuckets(50, 1.6, 12),
    })
)
