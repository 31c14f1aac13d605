// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/youngkin/heyswarm/api"
	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the configuration used for anything not set by a
// config file or flag.
func DefaultConfig() api.SwarmConfig {
	return api.SwarmConfig{
		Suite:       "assets",
		Host:        "http://localhost:8000",
		Users:       1,
		SpawnRate:   1,
		RqstTimeout: "15s",
		OutputType:  "text",
	}
}

// LoadConfig reads a YAML (.yaml, .yml) or JSON (.json) config file. Fields
// missing from the file keep their DefaultConfig values. Keys that don't
// match a SwarmConfig field are rejected.
func LoadConfig(fileName string) (api.SwarmConfig, error) {
	contents, err := os.ReadFile(fileName)
	if err != nil {
		return api.SwarmConfig{}, fmt.Errorf("unable to read config file %s: %w", fileName, err)
	}

	log.Debug().Msgf("Raw config file contents: %s", string(contents))

	config := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(contents))
		dec.KnownFields(true)
		// An empty file is io.EOF, leaving the defaults in place
		if err = dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return api.SwarmConfig{}, fmt.Errorf("error parsing YAML config %s: %w", fileName, err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(contents))
		dec.DisallowUnknownFields()
		if err = dec.Decode(&config); err != nil {
			return api.SwarmConfig{}, fmt.Errorf("error parsing JSON config %s: %w", fileName, err)
		}
	default:
		return api.SwarmConfig{}, fmt.Errorf("unsupported config format %q, must be .yaml, .yml, or .json", ext)
	}
	return config, nil
}

// ValidateConfig checks config and returns the HarnessConfig and request
// timeout derived from it.
func ValidateConfig(config api.SwarmConfig) (HarnessConfig, time.Duration, error) {
	if config.Suite == "" {
		return HarnessConfig{}, 0, fmt.Errorf("suite is required")
	}
	if config.Host == "" {
		return HarnessConfig{}, 0, fmt.Errorf("host is required")
	}
	if config.Users <= 0 {
		return HarnessConfig{}, 0, fmt.Errorf("users must be at least 1, got %d", config.Users)
	}
	if config.SpawnRate < 0 {
		return HarnessConfig{}, 0, fmt.Errorf("spawn_rate must not be negative, got %f", config.SpawnRate)
	}
	if config.MaxCycles < 0 {
		return HarnessConfig{}, 0, fmt.Errorf("max_cycles must not be negative, got %d", config.MaxCycles)
	}
	if _, err := ParseOutputType(config.OutputType); err != nil {
		return HarnessConfig{}, 0, err
	}

	var runDur time.Duration
	if config.RunDuration != "" {
		d, err := time.ParseDuration(config.RunDuration)
		if err != nil || d < 0 {
			return HarnessConfig{}, 0, fmt.Errorf("run_duration: %s, must be a non-negative duration such as 30s or 5m",
				config.RunDuration)
		}
		runDur = d
	}

	timeout := 15 * time.Second
	if config.RqstTimeout != "" {
		d, err := time.ParseDuration(config.RqstTimeout)
		if err != nil || d <= 0 {
			return HarnessConfig{}, 0, fmt.Errorf("rqst_timeout: %s, must be a positive duration such as 15s",
				config.RqstTimeout)
		}
		timeout = d
	}

	return HarnessConfig{
		Users:       config.Users,
		SpawnRate:   config.SpawnRate,
		RunDuration: runDur,
		MaxCycles:   config.MaxCycles,
	}, timeout, nil
}
