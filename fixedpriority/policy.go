// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixedpriority

import "github.com/cnotch/rtsim"

// FixedPriorityRM is the canonical single-processor preemptive
// fixed-priority policy: priorities are rate-monotonic (shorter period ->
// higher priority, ties broken by ascending task id), NextJob picks the
// highest-priority ready job, and PreemptingTick finds the earliest
// higher-priority release that would disturb the running job.
type FixedPriorityRM struct {
	rtsim.NopHooks

	tasks rtsim.TaskSet
	jobs  []*rtsim.Job
}

// New assigns rate-monotonic priorities to tasks and returns a policy
// ready to be handed to rtsim.NewSimulator. Priorities are written onto
// the Task values in tasks, so tasks must not be shared with another
// policy expecting a different assignment.
func New(tasks rtsim.TaskSet) *FixedPriorityRM {
	assignPriorities(tasks)
	return &FixedPriorityRM{tasks: tasks}
}

// BindJobs implements rtsim.JobBinder: the simulator hands over its
// current next-job-per-task table so NextJob/PreemptingTick can scan it
// directly instead of the core re-deriving it per call.
func (p *FixedPriorityRM) BindJobs(jobs []*rtsim.Job) {
	p.jobs = jobs
}

// Label implements rtsim.Policy.
func (p *FixedPriorityRM) Label() rtsim.PolicyLabel {
	return rtsim.FixedPriority
}

// NextJob implements rtsim.Policy: among all next-jobs with ReleaseTime <=
// tick, returns the one whose task has the greatest priority. If none are
// ready, returns the next-job with the earliest ReleaseTime (ties broken
// by highest priority).
func (p *FixedPriorityRM) NextJob(tick rtsim.Tick) *rtsim.Job {
	var best *rtsim.Job
	var bestReady bool

	for _, j := range p.jobs {
		ready := j.ReleaseTime <= tick && j.RemainingExecTime > 0
		switch {
		case best == nil:
			best, bestReady = j, ready
		case ready && !bestReady:
			best, bestReady = j, true
		case ready == bestReady && higherPriority(j, best, ready):
			best = j
		}
	}
	return best
}

// higherPriority reports whether candidate should replace current given
// both share the same readiness state: ready jobs compare by priority;
// not-ready jobs compare by earliest release, ties broken by priority.
func higherPriority(candidate, current *rtsim.Job, ready bool) bool {
	if ready {
		return candidate.Task().Priority > current.Task().Priority
	}
	if candidate.ReleaseTime != current.ReleaseTime {
		return candidate.ReleaseTime < current.ReleaseTime
	}
	return candidate.Task().Priority > current.Task().Priority
}

// PreemptingTick implements rtsim.Policy: the earliest tick strictly
// greater than tick, and strictly less than running's natural completion,
// at which some other task with strictly greater priority releases.
func (p *FixedPriorityRM) PreemptingTick(running *rtsim.Job, tick rtsim.Tick) (rtsim.Tick, bool) {
	finish := tick + running.RemainingExecTime
	found := false
	var earliest rtsim.Tick

	for _, j := range p.jobs {
		if j == running {
			continue
		}
		if j.ReleaseTime <= tick || j.ReleaseTime >= finish {
			continue
		}
		if j.Task().Priority <= running.Task().Priority {
			continue
		}
		if !found || j.ReleaseTime < earliest {
			earliest = j.ReleaseTime
			found = true
		}
	}
	return earliest, found
}
