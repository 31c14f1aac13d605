// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/youngkin/heyswarm/api"
)

// ResponseHandler is responsible for accepting, summarizing, and reporting
// on the overall swarm run results.
type ResponseHandler struct {
	// OutputType selects the format of the final report
	OutputType OutputType
	// ResponseC is used to receive responses. Closing it ends the run.
	ResponseC chan Response
	// DoneC is closed after the final report has been written
	DoneC chan struct{}
	// Collectors, if set, are updated for every response
	Collectors *Collectors
	// Out receives the final report. Defaults to os.Stdout.
	Out io.Writer

	results api.RunResults
}

// Start begins the process of accepting responses. It expects to be run as
// a goroutine and returns once ResponseC is closed.
func (rh *ResponseHandler) Start() {
	log.Debug().Msg("ResponseHandler starting")
	start := time.Now()
	totalRunTime := time.Duration(0)
	runResults := newRunResults()
	epRunSummary := make(map[string]*api.EndpointDetail)

	for resp := range rh.ResponseC {
		if rh.Collectors != nil {
			rh.Collectors.observe(resp)
		}
		rh.accumulateResponseStats(resp, &totalRunTime, &runResults, epRunSummary)
	}

	if err := rh.finalizeResponseStats(start, &totalRunTime, &runResults, epRunSummary); err != nil {
		log.Error().Err(err).Msg("error finalizing response stats")
	}
	rh.results = runResults

	out := rh.Out
	if out == nil {
		out = os.Stdout
	}
	if err := rh.report(out, runResults); err != nil {
		log.Error().Err(err).Msg("error writing run report")
	}

	if rh.DoneC != nil {
		close(rh.DoneC)
	}
}

// Results returns the finalized run results. It's only meaningful once
// DoneC has been closed.
func (rh *ResponseHandler) Results() api.RunResults {
	return rh.results
}

func newRunResults() api.RunResults {
	return api.RunResults{
		RunSummary: api.RunSummary{
			RqstStats: api.RqstStats{
				MinRqstDurationNanos: math.MaxInt64,
			},
		},
		EndpointSummary: make(map[string]map[string]int),
	}
}

func (rh *ResponseHandler) accumulateResponseStats(resp Response, totalRunTime *time.Duration,
	runResults *api.RunResults, epRunSummary map[string]*api.EndpointDetail) {

	*totalRunTime += resp.RequestDuration
	accumulateRqstStats(&runResults.RunSummary.RqstStats, resp)

	eqRqstCount, ok := runResults.EndpointSummary[resp.Path]
	if !ok {
		eqRqstCount = make(map[string]int)
		runResults.EndpointSummary[resp.Path] = eqRqstCount
	}
	eqRqstCount[resp.Method]++

	epDetail, ok := epRunSummary[resp.Path]
	if !ok {
		epDetail = &api.EndpointDetail{
			Path:                 resp.Path,
			HTTPMethodStatusDist: make(map[string]map[int]int),
			HTTPMethodRqstStats:  make(map[string]*api.RqstStats),
			Errors:               make(map[string]int),
		}
		epRunSummary[resp.Path] = epDetail
	}

	statusDist, ok := epDetail.HTTPMethodStatusDist[resp.Method]
	if !ok {
		statusDist = make(map[int]int)
		epDetail.HTTPMethodStatusDist[resp.Method] = statusDist
	}
	statusDist[resp.HTTPStatus]++

	if resp.Err != nil {
		epDetail.Errors[resp.Err.Error()]++
	}

	methodStats, ok := epDetail.HTTPMethodRqstStats[resp.Method]
	if !ok {
		methodStats = &api.RqstStats{MinRqstDurationNanos: math.MaxInt64}
		epDetail.HTTPMethodRqstStats[resp.Method] = methodStats
	}
	accumulateRqstStats(methodStats, resp)
}

func accumulateRqstStats(stats *api.RqstStats, resp Response) {
	stats.TotalRqsts++
	if resp.Failed() {
		stats.TotalFailures++
	}
	// Requests that never got a response have no meaningful latency
	if resp.Err != nil {
		return
	}
	stats.TimingResultsNanos = append(stats.TimingResultsNanos, resp.RequestDuration)
	stats.TotalRequestDurationNanos += resp.RequestDuration
	if resp.RequestDuration > stats.MaxRqstDurationNanos {
		stats.MaxRqstDurationNanos = resp.RequestDuration
	}
	if resp.RequestDuration < stats.MinRqstDurationNanos {
		stats.MinRqstDurationNanos = resp.RequestDuration
	}
}

func finalizeRqstStats(stats *api.RqstStats) {
	if len(stats.TimingResultsNanos) == 0 {
		stats.MinRqstDurationNanos = 0
		return
	}
	stats.AvgRqstDurationNanos = stats.TotalRequestDurationNanos / time.Duration(len(stats.TimingResultsNanos))
}

func (rh *ResponseHandler) finalizeResponseStats(start time.Time, totalRunTime *time.Duration,
	runResults *api.RunResults, epRunSummary map[string]*api.EndpointDetail) error {

	runDuration := time.Since(start)
	if runDuration <= 0 {
		return fmt.Errorf("invalid run duration %s", runDuration)
	}

	runResults.RunSummary.RunDurationNanos = runDuration
	runResults.RunSummary.RqstRatePerSec = float64(runResults.RunSummary.RqstStats.TotalRqsts) / runDuration.Seconds()
	finalizeRqstStats(&runResults.RunSummary.RqstStats)

	for _, epDetail := range epRunSummary {
		for _, stats := range epDetail.HTTPMethodRqstStats {
			finalizeRqstStats(stats)
		}
		log.Debug().Msgf("EndpointDetail: %+v", epDetail)
	}
	runResults.EndpointDetails = epRunSummary

	log.Debug().Msgf("Total time spent in requests: %s", *totalRunTime)
	return nil
}

func (rh *ResponseHandler) report(w io.Writer, runResults api.RunResults) error {
	if rh.OutputType == JSON {
		rsjson, err := json.Marshal(runResults)
		if err != nil {
			return fmt.Errorf("error marshaling RunResults: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", rsjson)
		return err
	}
	return printReport(w, runResults)
}
