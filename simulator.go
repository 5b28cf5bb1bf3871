// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtsim

import "container/heap"

// Simulator is the advanceable scheduler core. It is single-threaded and
// synchronous: a Simulator value must not be shared across goroutines
// without external synchronization, and Advance is not reentrant. It owns
// the event container, the clock, the per-task job table, the release
// queue, and (when enabled) the per-task trace state exclusively; nothing
// outside a call into the Simulator mutates any of it.
type Simulator struct {
	cfg    *config
	policy Policy
	tasks  TaskSet

	tick Tick

	jobsByTask []*Job
	queue      releaseQueue
	traces     []taskTrace

	container *EventContainer
}

// NewSimulator builds a Simulator over tasks using policy, configured by
// opts. Each task gets its first Job materialized immediately, using the
// task's InitialOffset as the first release.
func NewSimulator(tasks TaskSet, policy Policy, opts ...Option) (*Simulator, error) {
	if err := tasks.validate(); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	s := &Simulator{
		cfg:        cfg,
		policy:     policy,
		tasks:      tasks,
		jobsByTask: make([]*Job, len(tasks)),
		traces:     make([]taskTrace, len(tasks)),
		container:  NewEventContainer(policy.Label()),
	}

	for i, t := range tasks {
		j := newJob(i, t, t.InitialOffset, t.WCET)
		s.jobsByTask[i] = j
		s.queue.replace(nil, j)
	}
	heap.Init(&s.queue)

	if binder, ok := policy.(JobBinder); ok {
		binder.BindJobs(s.jobsByTask)
	}

	return s, nil
}

// JobBinder is implemented by policies that need direct, efficient access
// to the simulator's current next-job-per-task table rather than
// recomputing it. FixedPriorityRM implements this.
type JobBinder interface {
	BindJobs(jobs []*Job)
}

// Tick returns the simulator's current clock value.
func (s *Simulator) Tick() Tick {
	return s.tick
}

// Container returns the event trace accumulated so far.
func (s *Simulator) Container() *EventContainer {
	return s.container
}

// Trace returns a snapshot of task taskIdx's trace state. If tracing was
// not enabled via WithTrace, every field of the snapshot is zero.
func (s *Simulator) Trace(taskIdx int) TraceSnapshot {
	return s.traces[taskIdx].snapshot()
}

// Advance runs the simulation forward by exactly one scheduling interval
// (one emitted event; an idle interval emits none when idle events are
// disabled). It mutates the container and the clock; it returns
// an error only for a fatal condition: a policy-hook bug, or an
// assert-mode deadline miss.
func (s *Simulator) Advance() error {
	if len(s.tasks) == 0 {
		return errNoActiveJob
	}

	tick := s.tick
	j := s.policy.NextJob(tick)

	if j.ReleaseTime > tick {
		// Idle gap: advance() emits at most one event per call, so this
		// call ends here. The run phase for j happens on the *next* call,
		// by which point tick has caught up to j.ReleaseTime and NextJob
		// will find it ready.
		if err := s.checkIdleChoice(j, tick); err != nil {
			return err
		}
		if s.cfg.genIdleEvents {
			s.container.Append(newIdleEvent(tick, j.ReleaseTime))
		}
		s.tick = j.ReleaseTime
		return nil
	}

	naturalFinish := tick + j.RemainingExecTime
	p, ok := s.policy.PreemptingTick(j, tick)

	if !ok {
		return s.runToCompletion(j, tick, naturalFinish)
	}

	if p <= tick {
		s.cfg.logger.Errorw("policy bug: non-advancing preempting tick",
			"task", j.Task().ID, "preemptingTick", p, "tick", tick)
		return errPreemptingTickNotAfterNow(j.Task().ID, p, tick)
	}
	return s.runUntilPreempted(j, tick, p)
}

// checkIdleChoice cross-validates the policy's idle-gap fallback against
// the simulator's independently maintained release queue: a policy hook
// returning a next-job that isn't the true earliest future release is a
// fatal structural error, not a silent inconsistency.
func (s *Simulator) checkIdleChoice(chosen *Job, tick Tick) error {
	earliest := s.queue.peek()
	if earliest == nil {
		return nil
	}
	if earliest.ReleaseTime < chosen.ReleaseTime {
		s.cfg.logger.Errorw("policy bug: next-job behind release queue",
			"chosenTask", chosen.Task().ID, "chosenRelease", chosen.ReleaseTime,
			"earliestTask", earliest.Task().ID, "earliestRelease", earliest.ReleaseTime)
		return errNextJobBehindQueue(chosen, earliest)
	}
	return nil
}

func (s *Simulator) runToCompletion(j *Job, tick, naturalFinish Tick) error {
	begin := beginStateOf(j)
	emittedEnd := naturalFinish
	end := End
	missed := naturalFinish > j.AbsoluteDeadline

	if missed {
		if s.cfg.assertOnDeadlineMiss {
			s.cfg.logger.Errorw("deadline missed (assert mode)",
				"task", j.Task().ID, "deadline", j.AbsoluteDeadline, "finish", naturalFinish)
			return errDeadlineMissed(j.Task().ID, j.AbsoluteDeadline, naturalFinish)
		}
		hooksOf(s.policy).OnDeadlineMissed(j, naturalFinish)
		emittedEnd = j.AbsoluteDeadline
		end = EndDeadlineMissed
		if s.cfg.traceEnabled {
			s.traces[j.taskIdx].recordMiss()
		}
	} else if s.cfg.traceEnabled {
		s.traces[j.taskIdx].recordHit()
	}

	event := SchedulerIntervalEvent{
		Begin:                 tick,
		End:                   emittedEnd,
		Task:                  j.Task(),
		JobInitialReleaseTime: j.ReleaseTime,
		BeginState:            begin,
		EndState:              end,
	}
	s.container.Append(event)
	j.HasStarted = true
	hooksOf(s.policy).OnRunExecuted(j, event)

	j.RemainingExecTime = 0
	s.materializeNextJob(j)
	s.tick = emittedEnd
	return nil
}

func (s *Simulator) runUntilPreempted(j *Job, tick, p Tick) error {
	event := SchedulerIntervalEvent{
		Begin:                 tick,
		End:                   p,
		Task:                  j.Task(),
		JobInitialReleaseTime: j.ReleaseTime,
		BeginState:            beginStateOf(j),
		EndState:              Suspend,
	}
	s.container.Append(event)
	j.HasStarted = true
	j.RemainingExecTime -= p - tick
	hooksOf(s.policy).OnRunExecuted(j, event)
	s.tick = p
	return nil
}

func beginStateOf(j *Job) BeginState {
	if j.HasStarted {
		return Resume
	}
	return Start
}

// materializeNextJob installs a fresh Job for the task retired.Task() and
// records it in the release queue (and, when enabled, trace inter-arrival
// history).
func (s *Simulator) materializeNextJob(retired *Job) {
	task := retired.Task()
	taskIdx := retired.taskIdx

	interArrival := task.Period
	if task.Sporadic {
		interArrival = s.cfg.oracle.VariedInterArrivalTime(task)
	}

	nextRelease := retired.ReleaseTime + interArrival
	exec := s.cfg.oracle.VariedExecutionTime(task)

	next := newJob(taskIdx, task, nextRelease, exec)
	old := s.jobsByTask[taskIdx]
	s.jobsByTask[taskIdx] = next
	s.queue.replace(old, next)

	if s.cfg.traceEnabled {
		s.traces[taskIdx].recordInterArrival(interArrival)
	}

	// s.jobsByTask is a fixed-length slice allocated once in NewSimulator
	// and never re-sliced; a policy bound via JobBinder shares the same
	// backing array, so mutating an element here is already visible to it
	// without re-binding.
}

// RunSim calls Advance repeatedly while the current tick is strictly
// before tickLimit, then trims events past tickLimit. Stopping once the
// clock has reached (not merely passed) tickLimit avoids an extra Advance
// call whose entire output would land outside [0, tickLimit] or be
// trimmed to zero length: any such call can only waste work or, worse,
// surface a fatal error for content the caller never wanted.
func (s *Simulator) RunSim(tickLimit Tick) error {
	if len(s.tasks) == 0 {
		return nil
	}
	for s.tick < tickLimit {
		if err := s.Advance(); err != nil {
			return err
		}
	}
	s.container.TrimTo(tickLimit)
	return nil
}

// RunSimWithOffset calls RunSim(offset+duration) then discards events
// ending at or before offset, avoiding transient warm-up effects.
func (s *Simulator) RunSimWithOffset(offset, duration Tick) error {
	if err := s.RunSim(offset + duration); err != nil {
		return err
	}
	s.container.TrimBefore(offset)
	return nil
}

// Conclude trims the trailing event to the simulator's current tick. Used
// when a host stops calling Advance before reaching any particular limit.
func (s *Simulator) Conclude() {
	s.container.TrimTo(s.tick)
}
