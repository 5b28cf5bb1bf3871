// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtsim

import "math/rand/v2"

// VariationOracle supplies per-release execution time and sporadic
// inter-arrival time. Both methods must be deterministic given the
// oracle's own seed state; any simulation non-determinism lives entirely
// behind this interface. The oracle is consulted exactly once per
// next-job materialization.
type VariationOracle interface {
	// VariedExecutionTime returns a positive execution time <= task.WCET.
	VariedExecutionTime(task *Task) Tick

	// VariedInterArrivalTime returns a value >= task.Period for a sporadic
	// task. Never called for a periodic task.
	VariedInterArrivalTime(task *Task) Tick
}

// noVariation is the identity oracle: it returns WCET and Period
// unmodified. This is what run_time_variation=false is specified to be
// equivalent to, and is the default oracle when none is configured.
type noVariation struct{}

// NoVariation is the identity VariationOracle.
var NoVariation VariationOracle = noVariation{}

func (noVariation) VariedExecutionTime(task *Task) Tick      { return task.WCET }
func (noVariation) VariedInterArrivalTime(task *Task) Tick { return task.Period }

// UniformVariation draws execution time uniformly from [1, task.WCET] and
// inter-arrival time uniformly from [task.Period, task.Period+JitterBound],
// using math/rand/v2.
type UniformVariation struct {
	// JitterBound is the maximum extra ticks a sporadic release may be
	// delayed beyond Period. Must be >= 0.
	JitterBound Tick

	rng *rand.Rand
}

// NewUniformVariation returns a UniformVariation seeded deterministically
// from seed, so two oracles built with the same seed and jitterBound
// produce identical sequences.
func NewUniformVariation(seed uint64, jitterBound Tick) *UniformVariation {
	return &UniformVariation{
		JitterBound: jitterBound,
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (u *UniformVariation) VariedExecutionTime(task *Task) Tick {
	if task.WCET <= 1 {
		return task.WCET
	}
	return Tick(u.rng.Int64N(int64(task.WCET))) + 1
}

func (u *UniformVariation) VariedInterArrivalTime(task *Task) Tick {
	if u.JitterBound <= 0 {
		return task.Period
	}
	return task.Period + Tick(u.rng.Int64N(int64(u.JitterBound)+1))
}
