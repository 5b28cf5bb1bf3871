// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtsim

// Job is the mutable state of one activation (release) of a Task. The
// simulator owns every Job exclusively, with no concurrent readers, so
// its timestamps are plain fields rather than anything lock-free.
type Job struct {
	// index is maintained by releaseQueue's container/heap implementation.
	// -1 when the job is not tracked by a queue.
	index int

	// taskIdx is the stable handle back to the owning Task: an index into
	// the Simulator's TaskSet. A Task outlives all of its Jobs, so this is
	// an index rather than a shared owning pointer.
	taskIdx int
	task    *Task

	// ReleaseTime is the tick at which this job became ready. Preserved
	// across preemption/resumption; this is the job's "initial arrival
	// time" used when emitting events.
	ReleaseTime Tick

	// AbsoluteDeadline is ReleaseTime plus the task's relative deadline.
	AbsoluteDeadline Tick

	// RemainingExecTime is the number of ticks of execution still owed by
	// this job. Zero only immediately before retirement.
	RemainingExecTime Tick

	// HasStarted reports whether this job has ever been dispatched.
	HasStarted bool
}

// Task returns the task this job is an activation of.
func (j *Job) Task() *Task {
	return j.task
}

// TaskIndex returns the job's stable handle into the owning Simulator's
// task set.
func (j *Job) TaskIndex() int {
	return j.taskIdx
}

// newJob materializes a fresh job for task at taskIdx, releasing at
// releaseTime with the given execution budget.
func newJob(taskIdx int, task *Task, releaseTime, execTime Tick) *Job {
	return &Job{
		index:             -1,
		taskIdx:           taskIdx,
		task:              task,
		ReleaseTime:       releaseTime,
		AbsoluteDeadline:  releaseTime + task.deadline(),
		RemainingExecTime: execTime,
		HasStarted:        false,
	}
}

// ready reports whether the job can run at tick (released, not yet
// exhausted).
func (j *Job) ready(tick Tick) bool {
	return j.ReleaseTime <= tick && j.RemainingExecTime > 0
}
