// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtsim

import "container/heap"

// releaseQueue implements heap.Interface over the simulator's current
// next-job-per-task set, ordered by ReleaseTime, so the earliest future
// release can be found without scanning every task on every tick. The
// simulator keeps exactly one entry per task at all times and uses the
// queue's root to cross-check a Policy's idle-gap selection: a policy
// that returns a next-job whose release is later than the true earliest
// release has a bug and the simulator must fail loudly rather than
// silently skip ahead.
type releaseQueue []*Job

func (q releaseQueue) Len() int { return len(q) }

func (q releaseQueue) Less(i, j int) bool {
	return q[i].ReleaseTime < q[j].ReleaseTime
}

func (q releaseQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *releaseQueue) Push(x interface{}) {
	job := x.(*Job)
	job.index = len(*q)
	*q = append(*q, job)
}

func (q *releaseQueue) Pop() interface{} {
	old := *q
	n := len(old)
	job := old[n-1]
	old[n-1] = nil
	job.index = -1
	*q = old[:n-1]
	return job
}

// peek returns the job with the earliest ReleaseTime, or nil if empty.
func (q releaseQueue) peek() *Job {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

// replace swaps old for next in the queue, preserving heap order. old must
// currently be a member of q (or nil, for the initial population).
func (q *releaseQueue) replace(old, next *Job) {
	if old != nil && old.index >= 0 {
		heap.Remove(q, old.index)
	}
	heap.Push(q, next)
}
