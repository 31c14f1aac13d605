// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scenarios

import (
	"context"

	"github.com/google/uuid"
	"github.com/youngkin/heyswarm/internal"
)

// AircraftPath is the svc-assets aircraft registration endpoint
const AircraftPath = "/assets/aircraft"

// Aircraft is the registration request body of POST /assets/aircraft
type Aircraft struct {
	Manufacturer       string   `json:"manufacturer"`
	Model              string   `json:"model"`
	RegistrationNumber string   `json:"registration_number"`
	MaxPayloadKg       int      `json:"max_payload_kg"`
	MaxRangeKm         int      `json:"max_range_km"`
	Owner              string   `json:"owner"`
	SerialNumber       string   `json:"serial_number"`
	Status             string   `json:"status"`
	Whitelist          []string `json:"whitelist"`
}

// NewAircraft returns the aircraft registered by PlayBoy users. Every call
// gets a fresh owner; the registration and serial numbers are fixed.
func NewAircraft() Aircraft {
	return Aircraft{
		Manufacturer:       "Boeing",
		Model:              "747",
		RegistrationNumber: "N12345",
		MaxPayloadKg:       100000,
		MaxRangeKm:         10000,
		Owner:              uuid.New().String(),
		SerialNumber:       "12345",
		Status:             "Available",
		Whitelist:          []string{},
	}
}

// RegisterAircraft registers one aircraft with svc-assets.
func RegisterAircraft(ctx context.Context, c internal.Client) {
	c.Post(ctx, AircraftPath, NewAircraft())
}

// PlayBoy is a user who only wants to play around with aircraft.
func PlayBoy() (*internal.Scenario, error) {
	return internal.NewScenario("PlayBoy", 1, internal.Between(0.5, 5),
		internal.Task{Name: "register_aircraft", Fn: RegisterAircraft},
	)
}

// Landlord is a user who only wants to deal with vertiports and vertipads.
func Landlord() (*internal.Scenario, error) {
	return internal.NewScenario("Landlord", 1, internal.Between(0.5, 5),
		internal.Task{Name: "query_vertiports", Fn: QueryVertiports},
	)
}
