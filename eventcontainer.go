// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtsim

import "strings"

// PolicyLabel identifies which scheduling policy produced an
// EventContainer's trace.
type PolicyLabel string

// FixedPriority is the policy label emitted by the rate-monotonic
// fixed-priority policy (see package fixedpriority).
const FixedPriority PolicyLabel = "FixedPriority"

// EventContainer is an append-only, totally ordered log of scheduling
// interval events. Events are never mutated once appended; the only
// supported post-hoc operations are trimming the head or tail.
type EventContainer struct {
	Policy PolicyLabel
	events []SchedulerIntervalEvent
}

// NewEventContainer returns an empty container tagged with policy.
func NewEventContainer(policy PolicyLabel) *EventContainer {
	return &EventContainer{Policy: policy}
}

// Append adds e to the end of the trace. The container's total order is
// insertion order; append never reorders or coalesces.
func (c *EventContainer) Append(e SchedulerIntervalEvent) {
	c.events = append(c.events, e)
}

// Events returns the trace as a read-only slice snapshot.
func (c *EventContainer) Events() []SchedulerIntervalEvent {
	out := make([]SchedulerIntervalEvent, len(c.events))
	copy(out, c.events)
	return out
}

// Len reports the number of events currently in the trace.
func (c *EventContainer) Len() int {
	return len(c.events)
}

// Last returns the final event and true, or the zero event and false if
// the container is empty.
func (c *EventContainer) Last() (SchedulerIntervalEvent, bool) {
	if len(c.events) == 0 {
		return SchedulerIntervalEvent{}, false
	}
	return c.events[len(c.events)-1], true
}

// TrimTo truncates the trace so no event's End exceeds t: the final event
// is shortened to end at t, or dropped entirely if its Begin already
// exceeds t. Idempotent: calling TrimTo(t) twice in a row is the same as
// calling it once.
func (c *EventContainer) TrimTo(t Tick) {
	for len(c.events) > 0 {
		last := &c.events[len(c.events)-1]
		if last.Begin > t {
			c.events = c.events[:len(c.events)-1]
			continue
		}
		if last.End > t {
			last.End = t
		}
		return
	}
}

// TrimBefore discards (or truncates) events preceding t: any event whose
// End is at or before t is dropped; an event straddling t has its Begin
// raised to t. Idempotent, symmetric to TrimTo.
func (c *EventContainer) TrimBefore(t Tick) {
	i := 0
	for i < len(c.events) && c.events[i].End <= t {
		i++
	}
	if i > 0 {
		c.events = c.events[i:]
	}
	if len(c.events) > 0 && c.events[0].Begin < t {
		c.events[0].Begin = t
	}
}

// RawScheduleString renders the trace as a per-tick textual sequence: for
// each event of duration d = End - Begin, d copies of the event's task id,
// separated by ", " across the whole trace. The interval is treated as
// closed, so an event contributes exactly d copies, never d+1.
func (c *EventContainer) RawScheduleString() string {
	var b strings.Builder
	first := true
	for _, e := range c.events {
		for i := Tick(0); i < e.Duration(); i++ {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(e.TaskID())
		}
	}
	return b.String()
}
