// Copyright (c) 2026, Cumulus Pipeline Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package splunk

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var (
	// Forwarding metrics
	eventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cumulus_splunk_events_total",
			Help: "Total number of log records forwarded to Splunk",
		},
		[]string{"status"}, // success or error
	)

	eventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cumulus_splunk_events_dropped_total",
			Help: "Records dropped because the sink had too many sends in flight",
		},
	)

	// Search metrics
	searchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cumulus_splunk_search_total",
			Help: "Total number of export searches",
		},
		[]string{"status"},
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cumulus_splunk_search_duration_seconds",
			Help:    "Time taken by export searches, including response parsing",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	searchResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cumulus_splunk_search_results_total",
			Help: "Total number of records returned by export searches",
		},
	)
)
