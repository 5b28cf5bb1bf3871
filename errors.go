// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtsim

import "github.com/pkg/errors"

// Fatal structural errors are always wrapped with github.com/pkg/errors so
// a caller's logger can report a stack trace.

// errPreemptingTickNotAfterNow reports a Policy.PreemptingTick
// implementation bug: the returned tick must be strictly after the
// current tick.
func errPreemptingTickNotAfterNow(taskID string, p, tick Tick) error {
	return errors.Errorf("policy bug: preempting tick %d for task %q is not after current tick %d", p, taskID, tick)
}

// errNextJobBehindQueue reports that Policy.NextJob's idle-gap fallback
// disagrees with the simulator's independently maintained release queue:
// either it picked a job that isn't the earliest future release, or the
// release queue and the policy's own bound state have diverged.
func errNextJobBehindQueue(chosen, earliest *Job) error {
	return errors.Errorf(
		"policy bug: NextJob selected task %q releasing at %d, but task %q releases earlier at %d",
		chosen.Task().ID, chosen.ReleaseTime, earliest.Task().ID, earliest.ReleaseTime,
	)
}

// errDeadlineMissed reports an assert-mode deadline miss.
func errDeadlineMissed(taskID string, deadline, finish Tick) error {
	return errors.Errorf("deadline miss: task %q had absolute deadline %d but finished at %d", taskID, deadline, finish)
}

// errNoActiveJob reports that advance() was called with no task set bound.
var errNoActiveJob = errors.New("rtsim: advance called with no tasks in the simulator")
