// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtsim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnotch/rtsim"
	"github.com/cnotch/rtsim/fixedpriority"
)

// eventSummary strips an event down to the fields the scenario tests care
// about, so assertions read as plain tuples instead of full structs.
type eventSummary struct {
	begin, end rtsim.Tick
	taskID     string
	begins     rtsim.BeginState
	ends       rtsim.EndState
}

func summarize(events []rtsim.SchedulerIntervalEvent) []eventSummary {
	out := make([]eventSummary, len(events))
	for i, e := range events {
		out[i] = eventSummary{e.Begin, e.End, e.TaskID(), e.BeginState, e.EndState}
	}
	return out
}

const idleID = "__idle__"

func TestScenario_SinglePeriodicTask(t *testing.T) {
	tasks := rtsim.TaskSet{
		{ID: "A", Period: 10, WCET: 3},
	}
	policy := fixedpriority.New(tasks)

	c, err := rtsim.Simulate(tasks, policy, 25)
	require.NoError(t, err)

	want := []eventSummary{
		{0, 3, "A", rtsim.Start, rtsim.End},
		{3, 10, idleID, rtsim.Start, rtsim.End},
		{10, 13, "A", rtsim.Start, rtsim.End},
		{13, 20, idleID, rtsim.Start, rtsim.End},
		{20, 23, "A", rtsim.Start, rtsim.End},
		{23, 25, idleID, rtsim.Start, rtsim.End},
	}
	assert.Equal(t, want, summarize(c.Events()))
}

func TestScenario_TwoTasksNoPreemption(t *testing.T) {
	tasks := rtsim.TaskSet{
		{ID: "A", Period: 10, WCET: 3},
		{ID: "B", Period: 20, WCET: 5},
	}
	policy := fixedpriority.New(tasks)

	c, err := rtsim.Simulate(tasks, policy, 20)
	require.NoError(t, err)

	want := []eventSummary{
		{0, 3, "A", rtsim.Start, rtsim.End},
		{3, 8, "B", rtsim.Start, rtsim.End},
		{8, 10, idleID, rtsim.Start, rtsim.End},
		{10, 13, "A", rtsim.Start, rtsim.End},
		{13, 20, idleID, rtsim.Start, rtsim.End},
	}
	assert.Equal(t, want, summarize(c.Events()))
}

func TestScenario_Preemption(t *testing.T) {
	tasks := rtsim.TaskSet{
		{ID: "A", Period: 10, WCET: 2, InitialOffset: 5},
		{ID: "B", Period: 20, WCET: 8},
	}
	policy := fixedpriority.New(tasks)

	c, err := rtsim.Simulate(tasks, policy, 20)
	require.NoError(t, err)

	want := []eventSummary{
		{0, 5, "B", rtsim.Start, rtsim.Suspend},
		{5, 7, "A", rtsim.Start, rtsim.End},
		{7, 10, "B", rtsim.Resume, rtsim.End},
		{10, 15, idleID, rtsim.Start, rtsim.End},
		{15, 17, "A", rtsim.Start, rtsim.End},
		{17, 20, idleID, rtsim.Start, rtsim.End},
	}
	assert.Equal(t, want, summarize(c.Events()))
}

func TestScenario_DeadlineMissRecorded(t *testing.T) {
	tasks := rtsim.TaskSet{
		{ID: "A", Period: 10, WCET: 12, RelativeDeadline: 10},
	}
	policy := fixedpriority.New(tasks)

	sim, err := rtsim.NewSimulator(tasks, policy, rtsim.WithTrace(true))
	require.NoError(t, err)
	require.NoError(t, sim.RunSim(10))

	want := []eventSummary{
		{0, 10, "A", rtsim.Start, rtsim.EndDeadlineMissed},
	}
	assert.Equal(t, want, summarize(sim.Container().Events()))
	assert.Equal(t, 1, sim.Trace(0).DeadlineMisses)
}

func TestScenario_DeadlineMissAsserts(t *testing.T) {
	tasks := rtsim.TaskSet{
		{ID: "A", Period: 10, WCET: 12, RelativeDeadline: 10},
	}
	policy := fixedpriority.New(tasks)

	_, err := rtsim.Simulate(tasks, policy, 10, rtsim.WithAssertOnDeadlineMiss(true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"A"`)
	assert.Contains(t, err.Error(), "deadline 10")
	assert.Contains(t, err.Error(), "finished at 12")
}

func TestScenario_OffsetTrim(t *testing.T) {
	tasks := rtsim.TaskSet{
		{ID: "A", Period: 5, WCET: 2},
	}
	policy := fixedpriority.New(tasks)

	c, err := rtsim.SimulateWithOffset(tasks, policy, 10, 10)
	require.NoError(t, err)

	for _, e := range c.Events() {
		assert.GreaterOrEqual(t, int64(e.Begin), int64(10))
		assert.LessOrEqual(t, int64(e.End), int64(20))
	}

	want := []eventSummary{
		{10, 12, "A", rtsim.Start, rtsim.End},
		{12, 15, idleID, rtsim.Start, rtsim.End},
		{15, 17, "A", rtsim.Start, rtsim.End},
		{17, 20, idleID, rtsim.Start, rtsim.End},
	}
	assert.Equal(t, want, summarize(c.Events()))
}

func TestSimulate_EmptyTaskSet(t *testing.T) {
	tasks := rtsim.TaskSet{}
	policy := fixedpriority.New(tasks)
	c, err := rtsim.Simulate(tasks, policy, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestSimulate_RejectsInvalidTask(t *testing.T) {
	tasks := rtsim.TaskSet{{ID: "A", Period: 0, WCET: 3}}
	policy := fixedpriority.New(tasks)
	_, err := rtsim.Simulate(tasks, policy, 10)
	assert.Error(t, err)
}

func TestConclude_TrimsTrailingEvent(t *testing.T) {
	tasks := rtsim.TaskSet{{ID: "A", Period: 10, WCET: 3}}
	policy := fixedpriority.New(tasks)
	sim, err := rtsim.NewSimulator(tasks, policy)
	require.NoError(t, err)

	require.NoError(t, sim.Advance()) // run [0,3]
	require.NoError(t, sim.Advance()) // idle [3,10]
	sim.Conclude()

	last, ok := sim.Container().Last()
	require.True(t, ok)
	assert.Equal(t, sim.Tick(), last.End)
}
