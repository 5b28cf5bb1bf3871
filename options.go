// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtsim

import "go.uber.org/zap"

// An Option configures a Simulator at construction.
type Option interface {
	apply(*config)
}

// optionFunc wraps a func so it satisfies the Option interface.
type optionFunc func(*config)

func (f optionFunc) apply(c *config) {
	f(c)
}

// config holds the resolved configuration for a Simulator, built by
// applying Options over defaults.
type config struct {
	oracle               VariationOracle
	genIdleEvents        bool
	assertOnDeadlineMiss bool
	traceEnabled         bool
	logger               *zap.SugaredLogger
}

func defaultConfig() *config {
	return &config{
		oracle:        NoVariation,
		genIdleEvents: true,
		logger:        defaultLogger(),
	}
}

// WithRunTimeVariation routes execution and inter-arrival generation
// through oracle instead of using WCET/period directly. A nil oracle is
// ignored (the simulator keeps NoVariation).
func WithRunTimeVariation(oracle VariationOracle) Option {
	return optionFunc(func(c *config) {
		if oracle == nil {
			return
		}
		c.oracle = oracle
	})
}

// WithIdleEvents controls whether idle-gap intervals are emitted (default
// true).
func WithIdleEvents(enabled bool) Option {
	return optionFunc(func(c *config) {
		c.genIdleEvents = enabled
	})
}

// WithAssertOnDeadlineMiss controls whether a deadline miss aborts the
// simulation (true) or is recorded and truncated (false, the default).
func WithAssertOnDeadlineMiss(enabled bool) Option {
	return optionFunc(func(c *config) {
		c.assertOnDeadlineMiss = enabled
	})
}

// WithTrace enables per-task deadline-miss counters, consecutive-miss
// streaks, and inter-arrival history (default off).
func WithTrace(enabled bool) Option {
	return optionFunc(func(c *config) {
		c.traceEnabled = enabled
	})
}

// WithLogger configures the structured logger used for fatal-error
// reporting; the simulator logs nothing per advance. A nil logger is
// ignored.
func WithLogger(logger *zap.SugaredLogger) Option {
	return optionFunc(func(c *config) {
		if logger == nil {
			return
		}
		c.logger = logger
	})
}

// defaultLogger is used when the caller doesn't configure one of its own.
func defaultLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}
