// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus instrumentation for the client layer.

Collectors:

  - civicdesk_mutations_total / civicdesk_mutation_duration_seconds: one sample per guarded-through mutation.
  - civicdesk_cache_refreshes_total: one sample per local query refresh, labelled by key family.
  - civicdesk_devapi_requests_total: requests served by the development backend.

A [Recorder] owns its registry so tests and multiple instances never collide.
*/
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/civicdesk/internal/platform/querycache"
)

const namespace = "civicdesk"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder implements the mutation and cache observers.
type Recorder struct {
	registry         *prometheus.Registry
	mutations        *prometheus.CounterVec
	mutationDuration *prometheus.HistogramVec
	refreshes        *prometheus.CounterVec
	requests         *prometheus.CounterVec
}

/*
NewRecorder creates a Recorder on a fresh registry.

Parameters:
  - withRuntime: bool (also register Go runtime and process collectors)

Returns:
  - *Recorder
*/
func NewRecorder(withRuntime bool) *Recorder {
	registry := prometheus.NewRegistry()

	recorder := &Recorder{
		registry: registry,
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Mutations that passed their guard, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		mutationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mutation_duration_seconds",
			Help:      "Wall time of a mutation including cache refresh.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_refreshes_total",
			Help:      "Local query cache refreshes, by key family and outcome.",
		}, []string{"family", "outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "devapi_requests_total",
			Help:      "Requests served by the development backend.",
		}, []string{"method", "status"}),
	}

	registry.MustRegister(recorder.mutations, recorder.mutationDuration, recorder.refreshes, recorder.requests)
	if withRuntime {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return recorder
}

// Registry exposes the underlying registry (CLI dumps, tests).
func (recorder *Recorder) Registry() *prometheus.Registry {
	return recorder.registry
}

// Handler serves the registry in the Prometheus text format.
func (recorder *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(recorder.registry, promhttp.HandlerOpts{})
}

// ObserveMutation records one mutation attempt.
func (recorder *Recorder) ObserveMutation(operation string, err error, elapsed time.Duration) {
	recorder.mutations.WithLabelValues(operation, outcome(err)).Inc()
	recorder.mutationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveRefresh records one cache refresh.
func (recorder *Recorder) ObserveRefresh(key querycache.Key, err error) {
	recorder.refreshes.WithLabelValues(Family(key), outcome(err)).Inc()
}

// ObserveRequest records one request served by the development backend.
func (recorder *Recorder) ObserveRequest(method string, status int) {
	recorder.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Family drops the entity id from a key ("group:images:g-1" becomes "group:images").
func Family(key querycache.Key) string {
	segments := strings.Split(string(key), ":")
	if len(segments) > 2 {
		segments = segments[:2]
	}
	return strings.Join(segments, ":")
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
