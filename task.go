// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtsim

import "github.com/pkg/errors"

// idleTaskID is the identifier reported for the processor-idle sentinel
// task in emitted events.
const idleTaskID = "__idle__"

// Task is the immutable description of a recurring unit of work. Tasks are
// created outside the simulator and handed in as a frozen set; the
// simulator never mutates a Task after construction, except to assign its
// Priority (done once, by the active Policy, before the first advance).
type Task struct {
	// ID identifies the task. Must be unique within a task set.
	ID string

	// Period is the nominal inter-arrival time, in ticks. For a periodic
	// task this is the exact spacing between releases; for a sporadic task
	// it is the minimum spacing (the oracle may return a larger value).
	Period Tick

	// WCET is the worst-case execution time, in ticks.
	WCET Tick

	// RelativeDeadline is the deadline relative to a job's release time, in
	// ticks. Zero means "use Period" (resolved by deadline).
	RelativeDeadline Tick

	// InitialOffset delays the first release of the task, in ticks.
	InitialOffset Tick

	// Sporadic marks the task as sporadic (inter-arrival lower-bounded by
	// Period, actual value supplied by the oracle) rather than strictly
	// periodic.
	Sporadic bool

	// Priority is assigned by the active Policy when the policy is
	// constructed; callers do not set it directly. Higher values mean higher
	// priority.
	Priority int

	// idle marks the reserved sentinel task used to represent processor
	// idleness in the event log. Never true for a caller-supplied task.
	idle bool
}

// idleTask is the sentinel representing the processor doing nothing.
var idleTask = &Task{ID: idleTaskID, idle: true}

// IsIdle reports whether t is the idle-processor sentinel.
func (t *Task) IsIdle() bool {
	return t != nil && t.idle
}

// deadline returns the task's effective relative deadline, defaulting to
// Period when RelativeDeadline is unset.
func (t *Task) deadline() Tick {
	if t.RelativeDeadline > 0 {
		return t.RelativeDeadline
	}
	return t.Period
}

// validate checks the structural invariants a Task must satisfy before it
// can be scheduled.
func (t *Task) validate() error {
	if t.Period <= 0 {
		return errors.Errorf("task %q: period must be positive, got %d", t.ID, t.Period)
	}
	if t.WCET <= 0 {
		return errors.Errorf("task %q: WCET must be positive, got %d", t.ID, t.WCET)
	}
	if t.RelativeDeadline < 0 {
		return errors.Errorf("task %q: relative deadline must be non-negative, got %d", t.ID, t.RelativeDeadline)
	}
	if t.InitialOffset < 0 {
		return errors.Errorf("task %q: initial offset must be non-negative, got %d", t.ID, t.InitialOffset)
	}
	return nil
}

// TaskSet is a frozen collection of tasks handed to a Simulator. Tasks are
// referenced internally by their index in this slice, a stable handle,
// since a Task outlives all of its Jobs but neither owns nor is owned by
// them.
type TaskSet []*Task

// validate checks every task and rejects duplicate identifiers.
func (ts TaskSet) validate() error {
	seen := make(map[string]struct{}, len(ts))
	for _, t := range ts {
		if err := t.validate(); err != nil {
			return err
		}
		if _, dup := seen[t.ID]; dup {
			return errors.Errorf("task set: duplicate task id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
