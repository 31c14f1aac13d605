// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/youngkin/heyswarm/api"
)

// OutputType specifies the output format of the final report. There are
// 2 values, 'text' and 'json'. 'text' will present a human readable form.
// 'json' will present the JSON structures that capture the detailed run
// stats.
type OutputType int

const (
	// Text specifies a human readable report will be produced
	Text OutputType = iota
	// JSON indicates the RunResults will be written as JSON
	JSON
)

// ParseOutputType maps "text" or "json" to an OutputType
func ParseOutputType(s string) (OutputType, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return Text, nil
	case "json":
		return JSON, nil
	default:
		return Text, fmt.Errorf("unknown output type %q, must be 'text' or 'json'", s)
	}
}

var tmpltFuncs = template.FuncMap{
	"formatFloat":      formatFloat,
	"formatSeconds":    formatSeconds,
	"formatPercentile": formatPercentile,
	"formatMethod":     formatMethod,
	"format100Million": format100Million,
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%4.4f", f)
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%04.4f", d.Seconds())
}

func formatPercentile(p int, d []time.Duration) string {
	val := calcPercentiles(p, d)
	return formatSeconds(val)
}

func formatMethod(m string) string {
	if len(m) >= 6 { // length of 'DELETE'
		return m
	}
	return strings.Repeat(" ", 6-len(m)) + m
}

func format100Million(i int64) string {
	return fmt.Sprintf("%9v", i)
}

var reportTmplt = `
Run Summary:
	        Total Rqsts: {{ .RunSummary.RqstStats.TotalRqsts }}
	     Total Failures: {{ .RunSummary.RqstStats.TotalFailures }}
	          Rqsts/sec: {{ formatFloat .RunSummary.RqstRatePerSec }}
	Run Duration (secs): {{ formatSeconds .RunSummary.RunDurationNanos }}
{{ with .RunSummary.RqstStats }}
Request Latency (secs): Min      Median   P75      P90      P95      P99
	                    {{ formatPercentile 0 .TimingResultsNanos }}   {{ formatPercentile 50 .TimingResultsNanos }}   {{ formatPercentile 75 .TimingResultsNanos }}   {{ formatPercentile 90 .TimingResultsNanos }}   {{ formatPercentile 95 .TimingResultsNanos }}   {{ formatPercentile 99 .TimingResultsNanos }}
{{ end }}
Endpoint Details(secs): {{ range $path, $epDetails := .EndpointDetails }}
  {{ $path }}:
	            Requests   Failures   Min        Median     P75        P90        P95        P99 {{ range $method, $stats := .HTTPMethodRqstStats }}
	  {{ formatMethod $method }}:  {{ format100Million .TotalRqsts }}  {{ format100Million .TotalFailures }}   {{ formatPercentile 0 .TimingResultsNanos }}     {{ formatPercentile 50 .TimingResultsNanos }}     {{ formatPercentile 75 .TimingResultsNanos }}     {{ formatPercentile 90 .TimingResultsNanos }}     {{ formatPercentile 95 .TimingResultsNanos }}     {{ formatPercentile 99 .TimingResultsNanos }} {{ end }}
	Status distribution: {{ range $method, $dist := .HTTPMethodStatusDist }}{{ $method }} {{ $dist }} {{ end }}{{ range $msg, $count := .Errors }}
	Error ({{ $count }}): {{ $msg }}{{ end }}
{{ end }}
`

var reportTemplate = template.Must(template.New("report").Funcs(tmpltFuncs).Parse(reportTmplt))

func printReport(w io.Writer, rr api.RunResults) error {
	if err := reportTemplate.Execute(w, rr); err != nil {
		return fmt.Errorf("error executing report template: %w", err)
	}
	return nil
}

func calcPercentiles(percentile int, results []time.Duration) time.Duration {
	if len(results) == 0 {
		return 0
	}

	if percentile == 0 {
		return calcPMin(results)
	}

	if percentile == 50 {
		return calcPMedian(results)
	}

	sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })

	// applying math.Ceil to the results of math.Ceil is required to round up
	// to the next results cell when len(results) is a small number, e.g., like
	// 2. Otherwise Median is greater than P99.
	p := math.Ceil(math.Ceil(float64((len(results)-1)*percentile)) / 100)
	return results[int(p)]
}

func calcPMin(results []time.Duration) time.Duration {
	if len(results) == 0 {
		return 0
	}
	sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })
	return results[0]
}

func calcPMedian(results []time.Duration) time.Duration {
	if len(results) == 0 {
		return 0
	}

	sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })

	isEven := len(results)%2 == 0
	mNumber := len(results) / 2

	if !isEven {
		return results[mNumber]
	}
	return (results[mNumber-1] + results[mNumber]) / time.Duration(2)
}
