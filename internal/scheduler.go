// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vbauerster/mpb/v5"
	"github.com/vbauerster/mpb/v5/decor"
)

// HarnessConfig contains the run level settings of a Harness
type HarnessConfig struct {
	// Users is the number of simulated users to spawn
	Users int
	// SpawnRate is the number of users started per second. 0 starts all
	// users at once.
	SpawnRate float64
	// RunDuration is how long the run lasts once started. 0 means until
	// the context passed to Run is cancelled or every user reaches MaxCycles.
	RunDuration time.Duration
	// MaxCycles is the number of cycles each user runs. 0 is unlimited.
	MaxCycles int
	// Seed is the base seed for the users' random sources. 0 uses the
	// current time.
	Seed int64
	// Progress, when not nil, receives a progress bar of spawned users
	Progress io.Writer
}

// Harness spawns and supervises the simulated users of a run.
type Harness struct {
	cfg       HarnessConfig
	client    Client
	scenarios []*Scenario

	mu    sync.Mutex
	users []*SimulatedUser
}

// NewHarness returns a Harness that will run the given scenarios, issuing
// all requests through client.
func NewHarness(cfg HarnessConfig, client Client, scenarios []*Scenario) (*Harness, error) {
	if cfg.Users <= 0 {
		return nil, fmt.Errorf("users must be at least 1, got %d", cfg.Users)
	}
	if cfg.SpawnRate < 0 {
		return nil, fmt.Errorf("spawn rate must not be negative, got %f", cfg.SpawnRate)
	}
	if cfg.RunDuration < 0 {
		return nil, fmt.Errorf("run duration must not be negative, got %s", cfg.RunDuration)
	}
	if cfg.MaxCycles < 0 {
		return nil, fmt.Errorf("max cycles must not be negative, got %d", cfg.MaxCycles)
	}
	if client == nil {
		return nil, fmt.Errorf("a client is required")
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("at least one scenario is required")
	}
	for _, s := range scenarios {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Harness{
		cfg:       cfg,
		client:    client,
		scenarios: scenarios,
	}, nil
}

// Run spawns the configured users and blocks until all of them have stopped.
func (h *Harness) Run(ctx context.Context) {
	if h.cfg.RunDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.RunDuration)
		defer cancel()
	}

	log.Info().Msgf("Harness starting %d users at %.2f users/sec", h.cfg.Users, h.cfg.SpawnRate)

	var progress *mpb.Progress
	var bar *mpb.Bar
	if h.cfg.Progress != nil {
		progress = mpb.New(mpb.WithOutput(h.cfg.Progress))
		bar = progress.AddBar(int64(h.cfg.Users),
			mpb.PrependDecorators(decor.Name("users spawned ")),
			mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
		)
	}

	wg := sync.WaitGroup{}
	h.spawn(ctx, &wg, bar)

	if bar != nil {
		// Mark the bar complete if spawning was cut short
		bar.SetTotal(bar.Current(), true)
		progress.Wait()
	}

	wg.Wait()
	log.Info().Msgf("Harness stopped %d users", len(h.Users()))
}

// Users returns the users spawned so far.
func (h *Harness) Users() []*SimulatedUser {
	h.mu.Lock()
	defer h.mu.Unlock()
	users := make([]*SimulatedUser, len(h.users))
	copy(users, h.users)
	return users
}

func (h *Harness) spawn(ctx context.Context, wg *sync.WaitGroup, bar *mpb.Bar) {
	var tick <-chan time.Time
	if h.cfg.SpawnRate > 0 {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / h.cfg.SpawnRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	assigned := make([]int, len(h.scenarios))
	for i := 0; i < h.cfg.Users; i++ {
		if ctx.Err() != nil {
			log.Debug().Msgf("Harness stopped spawning after %d users", i)
			return
		}

		s := h.scenarios[nextScenario(h.scenarios, assigned)]
		u := NewSimulatedUser(i, s, h.client, h.cfg.MaxCycles, h.cfg.Seed+int64(i))
		h.mu.Lock()
		h.users = append(h.users, u)
		h.mu.Unlock()

		wg.Add(1)
		go func() {
			defer wg.Done()
			u.Run(ctx)
		}()
		if bar != nil {
			bar.Increment()
		}

		if tick != nil && i < h.cfg.Users-1 {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
	}
}

// nextScenario returns the index of the scenario furthest below its weighted
// share of users and records the assignment. Ties go to the lowest index.
func nextScenario(scenarios []*Scenario, assigned []int) int {
	best := 0
	for i := 1; i < len(scenarios); i++ {
		// assigned[i]/weight[i] < assigned[best]/weight[best]
		if assigned[i]*scenarios[best].Weight < assigned[best]*scenarios[i].Weight {
			best = i
		}
	}
	assigned[best]++
	return best
}
