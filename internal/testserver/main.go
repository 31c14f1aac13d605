// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

// This is a stand-in for svc-assets and svc-cargo. It accepts the requests
// heyswarm's suites send so a run can be tried locally, optionally over TLS.

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	help := flag.Bool("help", false, "Optional, prints usage info")
	port := flag.String("port", "8000", "The listen port, defaults to 8000")
	serverPEM := flag.String("srvpem", "", "Optional, the name of the server's PEM file, enables TLS")
	privKey := flag.String("key", "", "Optional, the file name of the server's private key file")
	failEvery := flag.Int("failevery", 0, "Optional, respond 500 to every nth request, 0 never fails")
	flag.Parse()

	usage := `usage:

testserver [-port <port> -srvpem <serverPEMFile> -key <serverPrivateKeyFile> -failevery <n> -help]

Options:
  -help       Prints this message
  -port       Optional, the port to listen on, defaults to 8000
  -srvpem     Optional, the name the server's PEM file. Requires -key
  -key        Optional, the name the server's key PEM file. Requires -srvpem
  -failevery  Optional, respond with a 500 to every nth request`

	if *help {
		fmt.Println(usage)
		return
	}
	if (*serverPEM == "") != (*privKey == "") {
		fmt.Printf("-srvpem and -key must be provided together:\n%s", usage)
		os.Exit(1)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.StampMilli})

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      newTargetMux(*failEvery),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	var err error
	if *serverPEM != "" {
		log.Info().Msgf("Starting TLS server on port %s", *port)
		err = server.ListenAndServeTLS(*serverPEM, *privKey)
	} else {
		log.Info().Msgf("Starting server on port %s", *port)
		err = server.ListenAndServe()
	}
	log.Fatal().Err(err).Msg("server stopped")
}

type target struct {
	failEvery int
	count     chan int
}

func newTargetMux(failEvery int) http.Handler {
	t := &target{failEvery: failEvery, count: make(chan int, 1)}
	t.count <- 0

	mux := http.NewServeMux()
	mux.HandleFunc("/assets/aircraft", t.handle(func() interface{} { return &aircraft{} }))
	mux.HandleFunc("/cargo/vertiports", t.handle(func() interface{} { return &vertiportsQuery{} }))
	return mux
}

type aircraft struct {
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

type vertiportsQuery struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (t *target) handle(newBody func() interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		n := <-t.count + 1
		t.count <- n

		body := newBody()
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(body); err != nil {
			log.Warn().Err(err).Msgf("Bad %s request body", r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		log.Debug().Msgf("Received %s %s: %+v", r.Method, r.URL.Path, body)

		if t.failEvery > 0 && n%t.failEvery == 0 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}
