// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package metrics provides Prometheus collectors for OAuth code exchanges and
// API requests.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Exchange results recorded by ObserveExchange.
const (
	ExchangeSuccess       = "success"
	ExchangeProviderError = "provider_error"
	ExchangeInvalid       = "invalid_response"
)

// Recorder holds the collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	exchanges       *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates a Recorder and registers its collectors with reg.
// A nil reg leaves the collectors unregistered.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		exchanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "connect_oauth_token_exchanges_total",
				Help: "Authorization code exchanges by result",
			},
			[]string{"result"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "connect_api_requests_total",
				Help: "API requests by method and response status class",
			},
			[]string{"method", "status_class"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "connect_api_request_duration_seconds",
				Help:    "API request round trip duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	if reg == nil {
		return r, nil
	}
	for _, c := range r.Collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Collectors returns the collectors held by the recorder.
func (r *Recorder) Collectors() []prometheus.Collector {
	if r == nil {
		return nil
	}
	return []prometheus.Collector{r.exchanges, r.requests, r.requestDuration}
}

// ObserveExchange counts one code exchange outcome.
func (r *Recorder) ObserveExchange(result string) {
	if r == nil {
		return
	}
	r.exchanges.WithLabelValues(result).Inc()
}

// ObserveRequest records one API round trip. A status of zero means the
// transport failed before a response arrived.
func (r *Recorder) ObserveRequest(method string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, StatusClass(status)).Inc()
	r.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// StatusClass maps a status code to its label value ("2xx", "4xx", ...).
func StatusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
