/*
 * Copyright 2024 The Spindle Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package metrics implements prometheus metrics and exposes the metrics
// HTTP listener
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricNamespace   = "spindle"
	frontendSubsystem = "frontend"
)

// ConnectionsAccepted is a Counter of connections accepted by the listener
var ConnectionsAccepted prometheus.Counter

// ConnectionsDropped is a Counter of connections dropped before a response
// was written, e.g. on a parse or I/O failure
var ConnectionsDropped prometheus.Counter

// LaunchFailures is a Counter of connections that could not be handed to
// the configured launcher
var LaunchFailures prometheus.Counter

// RequestStatus is a Counter of served requests labeled by method and
// response status code
var RequestStatus *prometheus.CounterVec

func init() {
	ConnectionsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "connections_accepted_total",
			Help:      "Count of connections accepted by the listener",
		},
	)
	ConnectionsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "connections_dropped_total",
			Help:      "Count of connections dropped without a response",
		},
	)
	LaunchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "launch_failures_total",
			Help:      "Count of connections the launcher declined",
		},
	)
	RequestStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "requests_total",
			Help:      "Count of served requests by method and status code",
		},
		[]string{"method", "code"},
	)

	prometheus.MustRegister(ConnectionsAccepted)
	prometheus.MustRegister(ConnectionsDropped)
	prometheus.MustRegister(LaunchFailures)
	prometheus.MustRegister(RequestStatus)
}

// ListenAndServe serves the prometheus exposition endpoint at
// http://address/metrics. It blocks, so callers run it in a goroutine.
func ListenAndServe(address string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(address, mux)
}
