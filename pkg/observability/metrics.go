package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
type Metrics struct {
	Runs     *prometheus.CounterVec
	Steps    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Consumed *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_runs_total",
				Help: "Total number of processed input strings",
			},
			[]string{"automaton", "accepted", "halt"},
		),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_trace_records_total",
				Help: "Total number of trace records emitted, by kind",
			},
			[]string{"automaton", "kind"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_run_duration_seconds",
				Help:    "Duration of ProcessString calls",
				Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10),
			},
			[]string{"automaton"},
		),
		Consumed: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_symbols_consumed",
				Help:    "Symbols read before the run halted",
				Buckets: prometheus.ExponentialBuckets(1, 2, 11),
			},
			[]string{"automaton"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.Steps, m.Duration, m.Consumed)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(e.Automaton, string(e.Record.Kind)).Inc()
		},
		OnHalt: func(_ context.Context, e *domain.RunEvent) {
			m.Runs.WithLabelValues(e.Automaton, strconv.FormatBool(e.Result.Accepted), string(e.Result.Halt)).Inc()
			m.Duration.WithLabelValues(e.Automaton).Observe(e.Duration.Seconds())
			m.Consumed.WithLabelValues(e.Automaton).Observe(float64(e.Result.Consumed))
		},
	}
}
