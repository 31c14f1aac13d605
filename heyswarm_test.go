// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youngkin/heyswarm/api"
	"github.com/youngkin/heyswarm/internal"
)

func TestApplyFlagOverrides(t *testing.T) {
	fromFile, err := internal.LoadConfig("testdata/swarm.yaml")
	require.NoError(t, err)

	tests := []struct {
		name      string
		set       map[string]string
		want      func(c *api.SwarmConfig)
		shouldErr bool
	}{
		{
			name: "NoFlagsKeepsFile",
			set:  map[string]string{},
			want: func(c *api.SwarmConfig) {},
		},
		{
			name: "StringFlags",
			set: map[string]string{
				"suite":    "assets",
				"host":     "http://localhost:9000",
				"duration": "30s",
				"timeout":  "2s",
				"output":   "text",
				"metrics":  ":9090",
			},
			want: func(c *api.SwarmConfig) {
				c.Suite = "assets"
				c.Host = "http://localhost:9000"
				c.RunDuration = "30s"
				c.RqstTimeout = "2s"
				c.OutputType = "text"
				c.MetricsAddr = ":9090"
			},
		},
		{
			name: "NumericFlags",
			set:  map[string]string{"users": "3", "spawnrate": "0.5", "cycles": "7"},
			want: func(c *api.SwarmConfig) {
				c.Users = 3
				c.SpawnRate = 0.5
				c.MaxCycles = 7
			},
		},
		{
			name: "NonConfigFlagsIgnored",
			set:  map[string]string{"config": "other.yaml", "loglevel": "0", "validate": "true"},
			want: func(c *api.SwarmConfig) {},
		},
		{
			name:      "BadUsers",
			set:       map[string]string{"users": "many"},
			shouldErr: true,
		},
		{
			name:      "BadSpawnRate",
			set:       map[string]string{"spawnrate": "fast"},
			shouldErr: true,
		},
		{
			name:      "BadCycles",
			set:       map[string]string{"cycles": "1.5"},
			shouldErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := applyFlagOverrides(fromFile, tc.set)
			if tc.shouldErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			want := fromFile
			tc.want(&want)
			assert.Equal(t, want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	fromFile, err := internal.LoadConfig("testdata/swarm.yaml")
	require.NoError(t, err)

	tests := []struct {
		name      string
		config    func() api.SwarmConfig
		shouldErr bool
	}{
		{
			name:   "Defaults",
			config: internal.DefaultConfig,
		},
		{
			name:   "FromFile",
			config: func() api.SwarmConfig { return fromFile },
		},
		{
			name: "UnknownSuite",
			config: func() api.SwarmConfig {
				c := fromFile
				c.Suite = "passengers"
				return c
			},
			shouldErr: true,
		},
		{
			name: "BadDuration",
			config: func() api.SwarmConfig {
				c := fromFile
				c.RunDuration = "forever"
				return c
			},
			shouldErr: true,
		},
		{
			name: "NoUsers",
			config: func() api.SwarmConfig {
				c := fromFile
				c.Users = 0
				return c
			},
			shouldErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validate(tc.config())
			if tc.shouldErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
