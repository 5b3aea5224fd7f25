// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

// Var is one state variable of a column.  Only Val persists across
// integration steps: Stage and Deriv are rewritten by every step before
// they are read.
type Var struct {
	Val   float64    `desc:"value at the start of the current step"`
	Stage [4]float64 `desc:"stage values: Stage[s] is written by stage s and read by stage s+1 (and by Finalize for the staged family)"`
	Deriv [4]float64 `desc:"per-stage increments dt * f of the incremental family"`
}

// Init sets the value and clears the stage scratch
func (vr *Var) Init(val float64) {
	vr.Val = val
	vr.Stage = [4]float64{}
	vr.Deriv = [4]float64{}
}

// At returns the value at which stage s is evaluated:
// Val for stage 0, and the value written by stage s-1 otherwise.
func (vr *Var) At(s int) float64 {
	if s == 0 {
		return vr.Val
	}
	return vr.Stage[s-1]
}

//////////////////////////////////////////////////////////////////////////////////////
//  Tableaus

// sqrt3 is sqrt(3), used in the correlated stage noise
const sqrt3 = 1.7320508075688772

// StagedTableau are the stage weights of the staged family
type StagedTableau struct {
	A [4]float64 `desc:"deterministic stage weights"`
	B [4]float64 `desc:"stage noise shaping weights"`
}

// IncTableau are the stage weights of the incremental family
type IncTableau struct {
	M  [3]float64 `desc:"weights of the increment in the intermediate points of stages 0..2"`
	B1 [4]float64 `desc:"stage weights of the first noise draw of a pair"`
	B2 [4]float64 `desc:"stage weights of the second noise draw of a pair"`
}

// tableauA is the fixed tableau of the Staged family
var tableauA = StagedTableau{
	A: [4]float64{0.5, 0.5, 1, 1},
	B: [4]float64{0.75, 0.75, 0, 0},
}

// tableauB is the fixed tableau of the Incremental family
var tableauB = IncTableau{
	M:  [3]float64{0.5, 0.5, 1},
	B1: [4]float64{0, 0.5, 0.5, 1},
	B2: [4]float64{0, 0.5 / sqrt3, -0.5 / sqrt3, 0},
}

// StagedWeights returns a copy of the tableau of the Staged family
func StagedWeights() StagedTableau { return tableauA }

// IncWeights returns a copy of the tableau of the Incremental family
func IncWeights() IncTableau { return tableauB }
