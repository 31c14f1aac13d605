// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetMux(t *testing.T) {
	aircraftBody := `{"manufacturer":"Boeing","model":"747","registration_number":"N12345",
		"max_payload_kg":100000,"max_range_km":10000,"owner":"6f1c3a3e-5a4e-4a7e-9c39-0b8f1c1e2d3f",
		"serial_number":"12345","status":"Available","whitelist":[]}`

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{name: "Aircraft", method: http.MethodPost, path: "/assets/aircraft", body: aircraftBody, expectedStatus: http.StatusOK},
		{name: "Vertiports", method: http.MethodPost, path: "/cargo/vertiports", body: `{"latitude":0,"longitude":0}`, expectedStatus: http.StatusOK},
		{name: "UnknownField", method: http.MethodPost, path: "/cargo/vertiports", body: `{"lat":0}`, expectedStatus: http.StatusBadRequest},
		{name: "WrongMethod", method: http.MethodGet, path: "/cargo/vertiports", expectedStatus: http.StatusMethodNotAllowed},
		{name: "UnknownPath", method: http.MethodPost, path: "/nope", body: `{}`, expectedStatus: http.StatusNotFound},
	}

	mux := newTargetMux(0)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			assert.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}

func TestTargetMuxFailEvery(t *testing.T) {
	mux := newTargetMux(2)
	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/cargo/vertiports", strings.NewReader(`{"latitude":0,"longitude":0}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}
	assert.Equal(t, []int{200, 500, 200, 500}, statuses)
}
