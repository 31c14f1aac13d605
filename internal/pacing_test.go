// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacingSampleRange(t *testing.T) {
	p := Between(0.5, 5)
	require.NoError(t, p.Validate())
	assert.Equal(t, 500*time.Millisecond, p.Min)
	assert.Equal(t, 5*time.Second, p.Max)

	r := rand.New(rand.NewSource(42))
	seen := make(map[time.Duration]bool)
	for i := 0; i < 1000; i++ {
		d := p.Sample(r)
		if d < p.Min || d > p.Max {
			t.Fatalf("sample %s outside [%s, %s]", d, p.Min, p.Max)
		}
		seen[d] = true
	}
	assert.Greater(t, len(seen), 1, "expected samples to vary")
}

func TestPacingConstant(t *testing.T) {
	p := Between(1, 1)
	require.NoError(t, p.Validate())
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		assert.Equal(t, time.Second, p.Sample(r))
	}
}

func TestPacingValidate(t *testing.T) {
	tests := []struct {
		name       string
		pacing     Pacing
		shouldFail bool
	}{
		{name: "HappyPath", pacing: Between(0.5, 5)},
		{name: "Zero", pacing: Pacing{}},
		{name: "MinGreaterThanMax", pacing: Between(5, 0.5), shouldFail: true},
		{name: "Negative", pacing: Pacing{Min: -time.Second, Max: time.Second}, shouldFail: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.pacing.Validate()
			if tc.shouldFail {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
