package generation

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

type instrumented struct {
	next     Generator
	provider string
	outcomes *prometheus.CounterVec
	duration prometheus.Observer
}

// Instrument wraps g so every call is counted by outcome and timed.
func Instrument(g Generator, provider string, reg prometheus.Registerer) (Generator, error) {
	outcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_outcomes_total",
			Help: "Generation calls by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "Latency of generation calls.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)
	if err := reg.Register(outcomes); err != nil {
		return nil, err
	}
	if err := reg.Register(duration); err != nil {
		return nil, err
	}
	return &instrumented{
		next:     g,
		provider: provider,
		outcomes: outcomes,
		duration: duration.WithLabelValues(provider),
	}, nil
}

func (i *instrumented) Generate(ctx context.Context, req Request) Result {
	timer := prometheus.NewTimer(i.duration)
	res := i.next.Generate(ctx, req)
	timer.ObserveDuration()
	i.outcomes.WithLabelValues(i.provider, string(res.Outcome)).Inc()
	return res
}
