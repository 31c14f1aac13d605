// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scenarios

import (
	"fmt"
	"sort"

	"github.com/youngkin/heyswarm/internal"
)

type scenarioFactory func() (*internal.Scenario, error)

var suites = map[string][]scenarioFactory{
	"assets": {PlayBoy, Landlord},
	"cargo":  {Basic},
}

// SuiteNames returns the names of all known suites, sorted.
func SuiteNames() []string {
	names := make([]string, 0, len(suites))
	for name := range suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suite builds the scenarios of the named suite.
func Suite(name string) ([]*internal.Scenario, error) {
	factories, ok := suites[name]
	if !ok {
		return nil, fmt.Errorf("unknown suite %q, must be one of %v", name, SuiteNames())
	}
	scenarios := make([]*internal.Scenario, 0, len(factories))
	for _, f := range factories {
		s, err := f()
		if err != nil {
			return nil, fmt.Errorf("suite %s: %w", name, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
