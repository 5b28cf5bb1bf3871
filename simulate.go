// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtsim

// Simulate builds a Simulator over tasks and policy, runs it to
// tickLimit, and returns the resulting (already-trimmed) EventContainer.
// A convenience wrapper for callers that don't need the Simulator itself
// (its clock, trace snapshots) after the run completes.
func Simulate(tasks TaskSet, policy Policy, tickLimit Tick, opts ...Option) (*EventContainer, error) {
	sim, err := NewSimulator(tasks, policy, opts...)
	if err != nil {
		return nil, err
	}
	if err := sim.RunSim(tickLimit); err != nil {
		return nil, err
	}
	return sim.Container(), nil
}

// SimulateWithOffset is Simulate's counterpart to RunSimWithOffset: it
// discards the warm-up interval [0, offset) from the returned trace.
func SimulateWithOffset(tasks TaskSet, policy Policy, offset, duration Tick, opts ...Option) (*EventContainer, error) {
	sim, err := NewSimulator(tasks, policy, opts...)
	if err != nil {
		return nil, err
	}
	if err := sim.RunSimWithOffset(offset, duration); err != nil {
		return nil, err
	}
	return sim.Container(), nil
}
