// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtsim

import "fmt"

// BeginState tags how a SchedulerIntervalEvent's interval began. This is a
// closed set with no Unknown sentinel: every emitted event is fully
// annotated, so there's nothing left for Unknown to mean.
type BeginState int

const (
	// Start marks the chronologically first event of a job.
	Start BeginState = iota
	// Resume marks every event of a job after the first.
	Resume
)

func (s BeginState) String() string {
	switch s {
	case Start:
		return "Start"
	case Resume:
		return "Resume"
	default:
		return "BeginState(?)"
	}
}

// EndState tags how a SchedulerIntervalEvent's interval ended.
type EndState int

const (
	// End marks a job's completion within its deadline.
	End EndState = iota
	// Suspend marks a job preempted before completion; it will resume.
	Suspend
	// EndDeadlineMissed marks a job truncated at its absolute deadline.
	EndDeadlineMissed
)

func (s EndState) String() string {
	switch s {
	case End:
		return "End"
	case Suspend:
		return "Suspend"
	case EndDeadlineMissed:
		return "EndDeadlineMissed"
	default:
		return "EndState(?)"
	}
}

// SchedulerIntervalEvent is a single closed interval [Begin, End] during
// which one task (or the idle sentinel) occupied the processor.
type SchedulerIntervalEvent struct {
	Begin Tick
	End   Tick

	// Task is the task that ran (or the idle sentinel).
	Task *Task

	// JobInitialReleaseTime is the release time of the job this interval
	// is attributed to. It stays constant across every event of that job,
	// even across preemption and resumption.
	JobInitialReleaseTime Tick

	BeginState BeginState
	EndState   EndState

	// Note is an optional free-form annotation; empty for ordinary events.
	Note string
}

// TaskID returns the identifier of the event's task (or the idle
// sentinel's identifier for an idle interval).
func (e SchedulerIntervalEvent) TaskID() string {
	return e.Task.ID
}

// Duration returns End - Begin, the number of ticks this interval spans.
func (e SchedulerIntervalEvent) Duration() Tick {
	return e.End - e.Begin
}

func (e SchedulerIntervalEvent) String() string {
	return fmt.Sprintf("[%d,%d] %s (%s,%s)", e.Begin, e.End, e.TaskID(), e.BeginState, e.EndState)
}

func newIdleEvent(begin, end Tick) SchedulerIntervalEvent {
	return SchedulerIntervalEvent{
		Begin:                 begin,
		End:                   end,
		Task:                  idleTask,
		JobInitialReleaseTime: begin,
		BeginState:            Start,
		EndState:              End,
	}
}
