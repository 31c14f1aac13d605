// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// SimulatedUser runs a Scenario's select task, execute, wait cycle until it
// is stopped. It expects to be run as a goroutine.
type SimulatedUser struct {
	ID       int
	Scenario *Scenario
	Client   Client
	// MaxCycles is the number of cycles to run before stopping, 0 is unlimited
	MaxCycles int

	rand   *rand.Rand
	cycles int
}

// NewSimulatedUser returns a SimulatedUser with its own random source.
func NewSimulatedUser(id int, s *Scenario, c Client, maxCycles int, seed int64) *SimulatedUser {
	return &SimulatedUser{
		ID:        id,
		Scenario:  s,
		Client:    c,
		MaxCycles: maxCycles,
		rand:      rand.New(rand.NewSource(seed)),
	}
}

// Cycles returns the number of completed cycles. It must only be read after
// Run has returned.
func (u *SimulatedUser) Cycles() int {
	return u.cycles
}

// Run loops until ctx is done or MaxCycles cycles have completed. Stopping
// only takes effect between cycles; a request already in flight is allowed
// to finish.
func (u *SimulatedUser) Run(ctx context.Context) {
	log.Debug().Int("user", u.ID).Str("scenario", u.Scenario.Name).Msg("simulated user starting")
	defer func() {
		log.Debug().Int("user", u.ID).Int("cycles", u.cycles).Msg("simulated user stopped")
	}()

	rqstCtx := WithScenario(context.WithoutCancel(ctx), u.Scenario.Name)
	for u.MaxCycles == 0 || u.cycles < u.MaxCycles {
		if ctx.Err() != nil {
			return
		}

		task := u.Scenario.PickTask(u.rand)
		task.Fn(rqstCtx, u.Client)
		u.cycles++

		if u.MaxCycles != 0 && u.cycles >= u.MaxCycles {
			return
		}

		wait := u.Scenario.Pacing.Sample(u.rand)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
