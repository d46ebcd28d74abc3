/*
 * Copyright 2024 The Spindle Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package main is the main package for the spindle demo daemon, a small
// JSON key/value store served over the spindle library
package main

import (
	"flag"
	"os"

	"github.com/spindlehttp/spindle/pkg/config"
	"github.com/spindlehttp/spindle/pkg/observability/logging"
	"github.com/spindlehttp/spindle/pkg/observability/logging/level"
	"github.com/spindlehttp/spindle/pkg/observability/metrics"
)

const applicationName = "spindle"

func main() {
	confPath := flag.String("config", "", "path to the yaml config file")
	flag.Parse()

	conf := config.New()
	if *confPath != "" {
		var err error
		conf, err = config.Load(*confPath)
		if err != nil {
			logging.ConsoleLogger(level.Error).Fatal(1, "failed to load config",
				logging.Pairs{"config": *confPath, "error": err})
		}
	}

	logger := logging.New(conf.Logging)
	defer logger.Close()

	if conf.Metrics.ListenAddress != "" {
		go func() {
			logger.Info("metrics listener starting",
				logging.Pairs{"address": conf.Metrics.ListenAddress})
			if err := metrics.ListenAndServe(conf.Metrics.ListenAddress); err != nil {
				logger.Error("metrics listener failed",
					logging.Pairs{"error": err})
			}
		}()
	}

	srv, err := newServer(conf.Frontend.ListenAddress)
	if err != nil {
		logger.Fatal(1, "failed to register routes", logging.Pairs{"error": err})
	}
	srv.SetLogger(logger)

	if err := srv.Serve(); err != nil {
		logger.Fatal(1, "server failed", logging.Pairs{"error": err})
	}
	os.Exit(0)
}
