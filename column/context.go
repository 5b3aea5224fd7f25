// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"fmt"
	"math"
)

// Context is the immutable integration context shared by all columns of a
// simulation, threaded to every Stage and Finalize call.
type Context struct {
	Dt     float64 `def:"0.1" desc:"integration time step, in ms"`
	SqrtDt float64 `view:"-" desc:"sqrt(Dt) -- scales the incremental-family noise"`
}

// NewContext returns the context for time step dt (ms), which must be
// finite and positive.
func NewContext(dt float64) (Context, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return Context{}, fmt.Errorf("column.NewContext: time step must be finite and positive, got: %g", dt)
	}
	return Context{Dt: dt, SqrtDt: math.Sqrt(dt)}, nil
}

// ContextFmRes returns the context for res integration steps per second:
// Dt = 1000 / res ms.
func ContextFmRes(res int) (Context, error) {
	if res <= 0 {
		return Context{}, fmt.Errorf("column.ContextFmRes: resolution must be positive, got: %d", res)
	}
	return NewContext(1000 / float64(res))
}

// StepsPerSec returns the number of steps per simulated second
func (ctx Context) StepsPerSec() float64 {
	return 1000 / ctx.Dt
}
