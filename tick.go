// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtsim

// Tick is an integer unit of simulated time. It carries no physical
// duration; the simulator never consults a wall clock.
type Tick int64
