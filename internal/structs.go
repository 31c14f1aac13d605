// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"time"
)

// Response contains information describing the results
// of a request to a specific endpoint
type Response struct {
	// HTTPStatus is 0 when no response was received
	HTTPStatus      int
	Scenario        string
	Method          string
	Path            string
	RequestDuration time.Duration
	Err             error
}

// Failed reports whether the request should be counted as a failure,
// either because it never got a response or because the response
// status was 400 or above.
func (r Response) Failed() bool {
	return r.Err != nil || r.HTTPStatus >= 400
}
