// Package metrics counts proof activity with Prometheus collectors held in
// a private registry per Recorder.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eghg"

// Recorder implements session.Recorder and also counts translations.
type Recorder struct {
	registry     *prometheus.Registry
	moves        *prometheus.CounterVec
	outcomes     *prometheus.CounterVec
	translations *prometheus.CounterVec
}

// New creates a Recorder with its collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		moves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Moves attempted in proof sessions, by rule and outcome.",
		}, []string{"rule", "outcome"}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "innings_concluded_total",
			Help:      "Innings that reached a final status.",
		}, []string{"status"}),
		translations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translations_total",
			Help:      "CLIF translations, by outcome.",
		}, []string{"outcome"}),
	}
}

// RecordMove counts one move attempt.
func (r *Recorder) RecordMove(rule, outcome string) {
	r.moves.WithLabelValues(rule, outcome).Inc()
}

// RecordOutcome counts one concluded inning.
func (r *Recorder) RecordOutcome(status string) {
	r.outcomes.WithLabelValues(status).Inc()
}

// RecordTranslation counts one CLIF translation.
func (r *Recorder) RecordTranslation(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.translations.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
