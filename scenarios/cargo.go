// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scenarios

import (
	"context"

	"github.com/youngkin/heyswarm/internal"
)

// VertiportsPath is the svc-cargo vertiport query endpoint
const VertiportsPath = "/cargo/vertiports"

// VertiportsQuery is the request body of POST /cargo/vertiports
type VertiportsQuery struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// QueryVertiports asks svc-cargo for the vertiports near (0, 0).
func QueryVertiports(ctx context.Context, c internal.Client) {
	c.Post(ctx, VertiportsPath, VertiportsQuery{Latitude: 0, Longitude: 0})
}

// Basic is a svc-cargo user that only queries vertiports.
func Basic() (*internal.Scenario, error) {
	return internal.NewScenario("Basic", 1, internal.Between(0.5, 5),
		internal.Task{Name: "query_vertiports", Fn: QueryVertiports},
	)
}
