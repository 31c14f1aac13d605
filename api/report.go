// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package api

import "time"

// RqstStats contains a set of common runtime stats reported at both the
// Summary and Endpoint level
type RqstStats struct {
	// TimingResultsNanos contains the duration of each request.
	TimingResultsNanos []time.Duration `json:"-"`
	// TotalRqsts is the overall number of requests attempted
	TotalRqsts int64
	// TotalFailures is the number of requests that either failed to get a
	// response or got a response status of 400 or above
	TotalFailures int64
	// TotalRequestDurationNanos is the sum of all request run durations
	TotalRequestDurationNanos time.Duration
	// MaxRqstDurationNanos is the longest request duration
	MaxRqstDurationNanos time.Duration
	// MinRqstDurationNanos is the smallest request duration
	MinRqstDurationNanos time.Duration
	// AvgRqstDurationNanos is the average duration of a request
	AvgRqstDurationNanos time.Duration
}

// EndpointDetail is used to report an overview of the results of
// a swarm run for a given endpoint path.
type EndpointDetail struct {
	// Path is the endpoint path, e.g., /cargo/vertiports
	Path string
	// HTTPMethodStatusDist summarizes, by HTTP method, the number of times a
	// given status was returned (e.g., 200, 201, 404, etc). A status of 0
	// counts requests that never got a response.
	HTTPMethodStatusDist map[string]map[int]int
	// HTTPMethodRqstStats provides summary request statistics by HTTP Method.
	HTTPMethodRqstStats map[string]*RqstStats
	// Errors counts transport errors by error message
	Errors map[string]int `json:",omitempty"`
}

// RunResults is used to report an overview of the results of a
// swarm run
type RunResults struct {
	// RunSummary is a roll-up of the detailed run results
	RunSummary RunSummary
	// EndpointSummary describes how often each endpoint was called.
	// It is a map keyed by path of a map keyed by HTTP verb with a value of
	// number of requests.
	EndpointSummary map[string]map[string]int
	// EndpointDetails is the per endpoint summary of results keyed by path
	EndpointDetails map[string]*EndpointDetail `json:",omitempty"`
}

// RunSummary is a roll-up of the detailed run results
type RunSummary struct {
	// RqstRatePerSec is the overall request rate per second
	RqstRatePerSec float64
	// RunDurationNanos is the wall clock duration of the run
	RunDurationNanos time.Duration
	// RqstStats is a summary of runtime statistics
	RqstStats RqstStats
}
