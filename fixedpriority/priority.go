// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fixedpriority provides the canonical rate-monotonic
// fixed-priority instantiation of rtsim.Policy.
package fixedpriority

import (
	"sort"

	"github.com/cnotch/rtsim"
)

// assignPriorities orders tasks by rate-monotonic priority: shorter
// period implies higher priority, ties broken by ascending task id. The
// highest-priority task receives the greatest Priority value.
func assignPriorities(tasks rtsim.TaskSet) {
	order := make([]int, len(tasks))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ta, tb := tasks[order[a]], tasks[order[b]]
		if ta.Period != tb.Period {
			return ta.Period < tb.Period
		}
		return ta.ID < tb.ID
	})
	// order[0] is the shortest period (highest priority): give it the
	// largest numeric value so "greater priority" means "greater number"
	// throughout the core.
	n := len(order)
	for rank, taskIdx := range order {
		tasks[taskIdx].Priority = n - rank
	}
}
