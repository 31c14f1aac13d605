// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/youngkin/heyswarm/api"
	"github.com/youngkin/heyswarm/internal"
	"github.com/youngkin/heyswarm/scenarios"
)

// applyFlagOverrides returns config with every explicitly set flag, keyed by
// flag name, taking precedence over the value from the config file. Flags
// that don't map to a SwarmConfig field are ignored.
func applyFlagOverrides(config api.SwarmConfig, set map[string]string) (api.SwarmConfig, error) {
	for name, val := range set {
		var err error
		switch name {
		case "suite":
			config.Suite = val
		case "host":
			config.Host = val
		case "users":
			config.Users, err = strconv.Atoi(val)
		case "spawnrate":
			config.SpawnRate, err = strconv.ParseFloat(val, 64)
		case "duration":
			config.RunDuration = val
		case "cycles":
			config.MaxCycles, err = strconv.Atoi(val)
		case "timeout":
			config.RqstTimeout = val
		case "output":
			config.OutputType = val
		case "metrics":
			config.MetricsAddr = val
		}
		if err != nil {
			return api.SwarmConfig{}, fmt.Errorf("invalid value %q for -%s: %w", val, name, err)
		}
	}
	return config, nil
}

// validate checks that config describes a runnable swarm without running it.
func validate(config api.SwarmConfig) error {
	if _, _, err := internal.ValidateConfig(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := scenarios.Suite(config.Suite); err != nil {
		return err
	}
	return nil
}
