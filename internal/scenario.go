// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"context"
	"fmt"
	"math/rand"
)

// Client is the request execution capability handed to every task. Any HTTP
// client implementation used by the harness must satisfy it. A non-2xx
// response is not an error; err is only set when no response was received.
type Client interface {
	Post(ctx context.Context, path string, body interface{}) (Response, error)
}

type scenarioKey struct{}

// WithScenario returns a copy of ctx naming the scenario its requests are
// issued for.
func WithScenario(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, scenarioKey{}, name)
}

// ScenarioFrom returns the scenario name set by WithScenario, or "".
func ScenarioFrom(ctx context.Context) string {
	name, _ := ctx.Value(scenarioKey{}).(string)
	return name
}

// TaskFunc performs one unit of work for a simulated user. It is expected to
// issue exactly one request through c. Nothing is returned since outcome
// classification belongs to the harness.
type TaskFunc func(ctx context.Context, c Client)

// Task is a weighted unit of work within a Scenario.
type Task struct {
	Name string
	// Weight is the relative likelihood of this task being selected in a
	// cycle compared to the other tasks of the same Scenario.
	Weight int
	Fn     TaskFunc
}

// Scenario describes one simulated user type: the tasks it may run and how
// long it waits between them.
type Scenario struct {
	Name string
	// Weight is the relative share of simulated users running this
	// Scenario when several are run together.
	Weight int
	Tasks  []Task
	Pacing Pacing
}

// NewScenario returns a validated Scenario. Tasks and the scenario itself
// default to a weight of 1 when none is given.
func NewScenario(name string, weight int, pacing Pacing, tasks ...Task) (*Scenario, error) {
	if weight <= 0 {
		weight = 1
	}
	s := &Scenario{
		Name:   name,
		Weight: weight,
		Pacing: pacing,
		Tasks:  make([]Task, 0, len(tasks)),
	}
	for _, t := range tasks {
		if t.Weight <= 0 {
			t.Weight = 1
		}
		s.Tasks = append(s.Tasks, t)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the Scenario can be run.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name must not be empty")
	}
	if s.Weight <= 0 {
		return fmt.Errorf("scenario %s: weight must be positive, got %d", s.Name, s.Weight)
	}
	if len(s.Tasks) == 0 {
		return fmt.Errorf("scenario %s: at least one task is required", s.Name)
	}
	for _, t := range s.Tasks {
		if t.Fn == nil {
			return fmt.Errorf("scenario %s: task %q has no function", s.Name, t.Name)
		}
		if t.Weight <= 0 {
			return fmt.Errorf("scenario %s: task %q weight must be positive, got %d", s.Name, t.Name, t.Weight)
		}
	}
	if err := s.Pacing.Validate(); err != nil {
		return fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return nil
}

// PickTask selects a task at random in proportion to task weights. Tasks
// with a non-positive weight are never picked unless no task has a
// positive weight, in which case the first task is returned.
func (s *Scenario) PickTask(r *rand.Rand) Task {
	total := 0
	for _, t := range s.Tasks {
		if t.Weight > 0 {
			total += t.Weight
		}
	}
	if total == 0 {
		return s.Tasks[0]
	}

	n := r.Intn(total)
	for _, t := range s.Tasks {
		if t.Weight <= 0 {
			continue
		}
		if n < t.Weight {
			return t
		}
		n -= t.Weight
	}
	return s.Tasks[len(s.Tasks)-1]
}
