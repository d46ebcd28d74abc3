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

// Package config provides the spindle daemon configuration, including
// defaults and yaml config file parsing
package config

import (
	"fmt"
	"os"

	lo "github.com/spindlehttp/spindle/pkg/observability/logging/options"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultListenAddress is the default frontend listen address
	DefaultListenAddress = "127.0.0.1:8680"
	// DefaultMetricsListenAddress is the default metrics exposition
	// address; empty disables the metrics listener
	DefaultMetricsListenAddress = ""
)

// Config is the main configuration object
type Config struct {
	// Frontend provides configurations about the listening server
	Frontend *FrontendConfig `yaml:"frontend,omitempty"`
	// Logging provides configurations that affect logging behavior
	Logging *lo.Options `yaml:"logging,omitempty"`
	// Metrics provides configurations for collecting metrics about the
	// running server
	Metrics *MetricsConfig `yaml:"metrics,omitempty"`
}

// FrontendConfig is a collection of configurations for the listening server
type FrontendConfig struct {
	// ListenAddress is the host:port the server binds to
	ListenAddress string `yaml:"listen_address,omitempty"`
}

// MetricsConfig is a collection of configurations for the metrics listener
type MetricsConfig struct {
	// ListenAddress is the host:port the metrics exposition endpoint binds
	// to; empty disables it
	ListenAddress string `yaml:"listen_address,omitempty"`
}

// New returns a Config with default values
func New() *Config {
	return &Config{
		Frontend: &FrontendConfig{ListenAddress: DefaultListenAddress},
		Logging:  lo.New(),
		Metrics:  &MetricsConfig{ListenAddress: DefaultMetricsListenAddress},
	}
}

// Load returns a default Config overlaid with the yaml config file at path
func Load(path string) (*Config, error) {
	c := New()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if c.Frontend == nil {
		c.Frontend = &FrontendConfig{}
	}
	if c.Frontend.ListenAddress == "" {
		c.Frontend.ListenAddress = DefaultListenAddress
	}
	if c.Logging == nil {
		c.Logging = lo.New()
	}
	if c.Logging.LogLevel == "" {
		c.Logging.LogLevel = lo.DefaultLogLevel
	}
	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{}
	}
	return c, nil
}
