// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtsim

// Policy supplies the two decisions the advanceable core cannot make on
// its own: which job runs next, and when a running job would next be
// disturbed. It is a capability interface, so different scheduling
// disciplines implement it without touching the core; package
// fixedpriority provides the canonical rate-monotonic instantiation.
// Additional policies (EDF, etc.) implement the same interface.
type Policy interface {
	// NextJob selects the job that should run at tick: among released,
	// non-exhausted jobs the one the policy prefers, or, if none is
	// ready, the job with the earliest future release.
	NextJob(tick Tick) *Job

	// PreemptingTick returns the earliest tick strictly greater than tick
	// at which some other job would preempt running, and true; or the
	// zero Tick and false if running can proceed undisturbed to its
	// natural completion.
	PreemptingTick(running *Job, tick Tick) (Tick, bool)

	// Label names the policy for EventContainer tagging.
	Label() PolicyLabel
}

// Hooks are optional extension points a Policy may additionally implement.
// Neither has any observable effect on the emitted event stream; they
// exist purely for instrumentation.
type Hooks interface {
	// OnRunExecuted is called after every job-run event the core emits;
	// it is not called for idle events.
	OnRunExecuted(job *Job, interval SchedulerIntervalEvent)

	// OnDeadlineMissed is called when a job misses its deadline in
	// truncation mode, before bookkeeping is updated.
	OnDeadlineMissed(job *Job, finish Tick)
}

// NopHooks is the empty default Hooks implementation. Policies that don't
// need instrumentation embed it to satisfy Hooks trivially.
type NopHooks struct{}

func (NopHooks) OnRunExecuted(*Job, SchedulerIntervalEvent) {}
func (NopHooks) OnDeadlineMissed(*Job, Tick)                {}

// hooksOf returns p's Hooks implementation, or NopHooks{} if p doesn't
// implement Hooks.
func hooksOf(p Policy) Hooks {
	if h, ok := p.(Hooks); ok {
		return h
	}
	return NopHooks{}
}
