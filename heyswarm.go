// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/youngkin/heyswarm/api"
	"github.com/youngkin/heyswarm/internal"
	"github.com/youngkin/heyswarm/scenarios"
)

func main() {
	usage := `
Usage: heyswarm [-config <ConfigFileLocation>] [options...]

Options:
  -config    Optional YAML (.yaml, .yml) or JSON (.json) file containing the run configuration.
             Any option below that is explicitly provided overrides the file.
  -suite     Set of simulated users to run, 'assets' or 'cargo'. Default is 'assets'
  -host      Base URL of the service under test. Default is 'http://localhost:8000'
  -users     Number of simulated users. Default is 1
  -spawnrate Users started per second, 0 starts them all at once. Default is 1
  -duration  How long to run, e.g., 30s or 5m. Default is until interrupted
  -cycles    Task/wait cycles per user before it stops, 0 is unlimited. Default is 0
  -timeout   Per request timeout. Default is 15s
  -output    Report format, 'text' or 'json'. Default is 'text'
  -metrics   Listen address for a Prometheus /metrics endpoint, e.g., :9090. Default is off
  -validate  Check the configuration, print the result, and exit without running
  -loglevel  Logging level. Default is 'WARN' (2). 0 is DEBUG, 1 INFO, up to 4 FATAL
  -help      This usage message`

	config := internal.DefaultConfig()

	configFile := flag.String("config", "", "path and filename containing the runtime configuration")
	flag.String("suite", config.Suite, "set of simulated users to run")
	flag.String("host", config.Host, "base URL of the service under test")
	flag.Int("users", config.Users, "number of simulated users")
	flag.Float64("spawnrate", config.SpawnRate, "users started per second")
	flag.String("duration", config.RunDuration, "how long to run, e.g., 30s or 5m")
	flag.Int("cycles", config.MaxCycles, "task/wait cycles per user, 0 is unlimited")
	flag.String("timeout", config.RqstTimeout, "per request timeout")
	flag.String("output", config.OutputType, "report format, 'text' or 'json'")
	flag.String("metrics", config.MetricsAddr, "listen address for Prometheus metrics")
	validateOnly := flag.Bool("validate", false, "check the configuration and exit")
	logLevel := flag.Int("loglevel", int(zerolog.WarnLevel), "log level, 0 for debug, 1 info, 2 warn, ...")
	help := flag.Bool("help", false, "help will emit detailed usage instructions and exit")
	flag.Parse()

	if *help {
		fmt.Println(usage)
		return
	}

	zerolog.SetGlobalLevel(zerolog.Level(*logLevel))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.StampMilli})

	if *configFile != "" {
		log.Info().Msgf("heyswarm started with config from %s", *configFile)
		var err error
		config, err = internal.LoadConfig(*configFile)
		if err != nil {
			log.Fatal().Err(err).Msg("error loading configuration")
		}
	}

	set := make(map[string]string)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = f.Value.String()
	})
	config, err := applyFlagOverrides(config, set)
	if err != nil {
		log.Fatal().Err(err).Msg("error applying flags")
	}
	log.Debug().Msgf("Effective config: %+v", config)

	if *validateOnly {
		if err := validate(config); err != nil {
			fmt.Printf("Invalid configuration: %s\n", err)
			os.Exit(1)
		}
		fmt.Println("Valid configuration")
		return
	}

	if err := run(config); err != nil {
		log.Fatal().Err(err).Msg("heyswarm failed")
	}
	log.Info().Msg("heyswarm: DONE")
}

func run(config api.SwarmConfig) error {
	if err := validate(config); err != nil {
		return err
	}
	harnessCfg, timeout, err := internal.ValidateConfig(config)
	if err != nil {
		return err
	}
	outputType, err := internal.ParseOutputType(config.OutputType)
	if err != nil {
		return err
	}
	scens, err := scenarios.Suite(config.Suite)
	if err != nil {
		return err
	}

	runtime.GOMAXPROCS(runtime.NumCPU())

	responseC := make(chan internal.Response, config.Users)
	doneC := make(chan struct{})

	client := internal.NewHTTPClient(config.Host, config.Users, timeout, responseC)
	harnessCfg.Progress = os.Stderr
	harness, err := internal.NewHarness(harnessCfg, client, scens)
	if err != nil {
		return err
	}

	responseHandler := &internal.ResponseHandler{
		OutputType: outputType,
		ResponseC:  responseC,
		DoneC:      doneC,
	}

	if config.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		responseHandler.Collectors, err = internal.NewCollectors(reg)
		if err != nil {
			return fmt.Errorf("error registering metrics: %w", err)
		}
		srv := &http.Server{
			Addr:    config.MetricsAddr,
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msgf("metrics listener on %s failed", config.MetricsAddr)
			}
		}()
		defer srv.Close()
	}
	go responseHandler.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case <-sigs:
			log.Debug().Msg("heyswarm: SIGTERM caught")
			cancel()
		case <-ctx.Done():
		}
	}()

	harness.Run(ctx)

	// All users have stopped, nothing else will be sent
	close(responseC)
	<-doneC
	return nil
}
