// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package api provides the public datastructures that can be used to
// create a runtime configuration file and to consume run results.
package api

// SwarmConfig contains all the information needed to configure
// and execute a swarm run. It can be loaded from a YAML or JSON
// file; any field left empty takes its default.
type SwarmConfig struct {
	// Suite is the name of the set of simulated user types to run,
	// e.g., "assets" or "cargo".
	Suite string `yaml:"suite" json:"suite"`
	// Host is the base URL of the service under test
	// (e.g., http://localhost:8000). Task paths are appended to it.
	Host string `yaml:"host" json:"host"`
	// Users is the total number of concurrently running simulated users.
	Users int `yaml:"users" json:"users"`
	// SpawnRate is the number of simulated users started per second.
	// 0 starts them all at once.
	SpawnRate float64 `yaml:"spawn_rate" json:"spawn_rate"`
	// RunDuration is how long the test will run. It is expressed as
	// a Go duration string (e.g., 10s, 5m). An empty value means
	// the run continues until interrupted or MaxCycles is reached.
	RunDuration string `yaml:"run_duration" json:"run_duration"`
	// MaxCycles is the number of task/wait cycles each simulated user
	// runs before stopping. 0 is unlimited.
	MaxCycles int `yaml:"max_cycles" json:"max_cycles"`
	// RqstTimeout bounds each individual request, as a Go duration string.
	RqstTimeout string `yaml:"rqst_timeout" json:"rqst_timeout"`
	// OutputType specifies if the final report will be written as
	// human readable "text" or as "json".
	OutputType string `yaml:"output_type" json:"output_type"`
	// MetricsAddr, when set, is the listen address of a Prometheus
	// /metrics endpoint exposed for the duration of the run.
	MetricsAddr string `yaml:"metrics_addr" json:"metrics_addr"`
}
