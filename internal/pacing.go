// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"fmt"
	"math/rand"
	"time"
)

// Pacing is the wait time policy applied between task executions of a
// simulated user. Each wait is drawn uniformly from the closed
// interval [Min, Max].
type Pacing struct {
	Min time.Duration
	Max time.Duration
}

// Between returns a Pacing over [min, max] expressed in seconds.
func Between(min, max float64) Pacing {
	return Pacing{
		Min: time.Duration(min * float64(time.Second)),
		Max: time.Duration(max * float64(time.Second)),
	}
}

// Validate returns an error if the interval is empty or negative.
func (p Pacing) Validate() error {
	if p.Min < 0 || p.Max < 0 {
		return fmt.Errorf("pacing bounds must not be negative, got [%s, %s]", p.Min, p.Max)
	}
	if p.Min > p.Max {
		return fmt.Errorf("pacing min %s is greater than max %s", p.Min, p.Max)
	}
	return nil
}

// Sample draws one wait duration using r. r is owned by the caller and
// must not be shared between goroutines.
func (p Pacing) Sample(r *rand.Rand) time.Duration {
	span := p.Max - p.Min
	if span <= 0 {
		return p.Min
	}
	return p.Min + time.Duration(r.Float64()*float64(span))
}
