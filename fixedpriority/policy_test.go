// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixedpriority

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnotch/rtsim"
)

func TestNewAssignsPrioritiesAndLabel(t *testing.T) {
	tasks := rtsim.TaskSet{
		{ID: "slow", Period: 100, WCET: 1},
		{ID: "fast", Period: 10, WCET: 1},
	}

	p := New(tasks)
	assert.Equal(t, rtsim.FixedPriority, p.Label())

	fast := taskByID(tasks, "fast")
	slow := taskByID(tasks, "slow")
	assert.Greater(t, fast.Priority, slow.Priority)
}

// A lower-priority release arriving while a higher-priority job is running
// must not disturb it. Shorter period means higher RM priority, so "hi"
// here is the short-period task; "lo" releases at tick 2, while "hi" runs.
func TestPolicyIgnoresLowerPriorityRelease(t *testing.T) {
	tasks := rtsim.TaskSet{
		{ID: "hi", Period: 10, WCET: 5},
		{ID: "lo", Period: 100, WCET: 1, InitialOffset: 2},
	}
	policy := New(tasks)

	c, err := rtsim.Simulate(tasks, policy, 5)
	require.NoError(t, err)

	events := c.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "hi", events[0].TaskID())
	assert.EqualValues(t, 0, events[0].Begin)
	assert.EqualValues(t, 5, events[0].End)
	assert.Equal(t, rtsim.End, events[0].EndState)
}

// A higher-priority release strictly within the running job's window must
// preempt it.
func TestPolicyPreemptsOnHigherPriorityRelease(t *testing.T) {
	tasks := rtsim.TaskSet{
		{ID: "hi", Period: 20, WCET: 2, InitialOffset: 3},
		{ID: "lo", Period: 20, WCET: 10},
	}
	policy := New(tasks)

	c, err := rtsim.Simulate(tasks, policy, 6)
	require.NoError(t, err)

	events := c.Events()
	require.GreaterOrEqual(t, len(events), 2)
	assert.Equal(t, "lo", events[0].TaskID())
	assert.Equal(t, rtsim.Suspend, events[0].EndState)
	assert.EqualValues(t, 3, events[0].End)
	assert.Equal(t, "hi", events[1].TaskID())
	assert.Equal(t, rtsim.Start, events[1].BeginState)
}
