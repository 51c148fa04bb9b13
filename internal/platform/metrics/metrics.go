// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics exposes Prometheus counters for HTTP traffic and GEDCOM
// interchange.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds every metric of the API. A nil *Recorder records nothing.
type Recorder struct {
	gatherer prometheus.Gatherer

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	imports             *prometheus.CounterVec
	importedIndividuals prometheus.Counter
	skippedRelations    prometheus.Counter
	exports             *prometheus.CounterVec
}

// New registers all metrics with registry.
func New(registry *prometheus.Registry) *Recorder {
	factory := promauto.With(registry)
	return &Recorder{
		gatherer: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stamtavla_http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stamtavla_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		imports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stamtavla_gedcom_imports_total",
			Help: "GEDCOM imports by mode and outcome",
		}, []string{"mode", "outcome"}),
		importedIndividuals: factory.NewCounter(prometheus.CounterOpts{
			Name: "stamtavla_gedcom_imported_individuals_total",
			Help: "Individuals created by GEDCOM imports",
		}),
		skippedRelations: factory.NewCounter(prometheus.CounterOpts{
			Name: "stamtavla_gedcom_skipped_relationships_total",
			Help: "Imported relationships dropped because they would close a cycle",
		}),
		exports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stamtavla_gedcom_exports_total",
			Help: "GEDCOM exports by cache result",
		}, []string{"cache"}),
	}
}

// ObserveRequest records one finished HTTP request.
func (r *Recorder) ObserveRequest(method string, status int, latency time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method).Observe(latency.Seconds())
}

// ImportSucceeded records a completed import.
func (r *Recorder) ImportSucceeded(mode string, individuals, skipped int) {
	if r == nil {
		return
	}
	r.imports.WithLabelValues(mode, "success").Inc()
	r.importedIndividuals.Add(float64(individuals))
	r.skippedRelations.Add(float64(skipped))
}

// ImportFailed records an import that stored nothing.
func (r *Recorder) ImportFailed(mode string) {
	if r == nil {
		return
	}
	r.imports.WithLabelValues(mode, "failure").Inc()
}

// Exported records an export served from the cache (hit) or rendered (miss).
func (r *Recorder) Exported(cacheHit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if cacheHit {
		result = "hit"
	}
	r.exports.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
