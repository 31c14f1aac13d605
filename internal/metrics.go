// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors are the Prometheus metrics updated for every recorded response
type Collectors struct {
	RqstTotal    *prometheus.CounterVec
	RqstDuration *prometheus.HistogramVec
}

// NewCollectors creates the collectors and registers them with reg.
func NewCollectors(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		RqstTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "heyswarm_requests_total", Help: "Total requests attempted"},
			[]string{"scenario", "method", "path", "status"},
		),
		RqstDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "heyswarm_request_duration_seconds", Help: "Request round trip latency"},
			[]string{"scenario", "method", "path"},
		),
	}
	for _, col := range []prometheus.Collector{c.RqstTotal, c.RqstDuration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collectors) observe(resp Response) {
	status := "error"
	if resp.Err == nil {
		status = strconv.Itoa(resp.HTTPStatus)
	}
	c.RqstTotal.WithLabelValues(resp.Scenario, resp.Method, resp.Path, status).Inc()
	if resp.Err == nil {
		c.RqstDuration.WithLabelValues(resp.Scenario, resp.Method, resp.Path).Observe(resp.RequestDuration.Seconds())
	}
}
