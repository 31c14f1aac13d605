// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package scenarios defines the simulated user types run against
// svc-assets and svc-cargo, grouped into named suites.
package scenarios
