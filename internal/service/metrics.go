package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RoundsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_rounds_total",
			Help: "Completed rounds by result from the human side",
		},
		[]string{"result"},
	)
	RoundDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rps_round_duration_seconds",
			Help:    "Time between round creation and the human pick",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rps_sessions_active",
			Help: "Sessions currently held in memory",
		},
	)
)

func init() {
	prometheus.MustRegister(RoundsTotal)
	prometheus.MustRegister(RoundDuration)
	prometheus.MustRegister(SessionsActive)
}
