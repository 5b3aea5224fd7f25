// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"github.com/goki/ki/kit"
)

// Family is the integration scheme family of a column model
type Family int

//go:generate stringer -type=Family

var KiT_Family = kit.Enums.AddEnum(FamilyN, kit.NotBitFlag, nil)

func (ev Family) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Family) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The column families
const (
	// Staged models write each stage value directly as
	// Val + A[s] * dt * f, with stage-shaped noise on the PSP derivatives,
	// and combine them as (-3 Val + 2 S0 + 4 S1 + 2 S2 + S3) / 6.
	Staged Family = iota

	// Incremental models store the stage increments dt * f (noise inside
	// the derivative), build the intermediate points from them, and add
	// (D0 + 2 D1 + 2 D2 + D3) / 6 to Val.
	Incremental

	FamilyN
)

// Kind is the type of neural-mass column model
type Kind int

//go:generate stringer -type=Kind

var KiT_Kind = kit.Enums.AddEnum(KindN, kit.NotBitFlag, nil)

func (ev Kind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Kind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The column kinds
const (
	// Cortical is the cortical column with pyramidal, slow and fast
	// inhibitory populations (Molaee-Ardekani et al, 2010), staged.
	Cortical Kind = iota

	// CA3 is the conductance-based hippocampal CA3 column, staged.
	CA3

	// CorticalInc is the cortical column in the PSP-as-potential
	// formulation, incremental.
	CorticalInc

	// Hippocampal is the conductance-based hippocampal column whose rates
	// are driven by the membrane potentials, incremental.
	Hippocampal

	KindN
)

// Family returns the integration family of the kind
func (ev Kind) Family() Family {
	switch ev {
	case CorticalInc, Hippocampal:
		return Incremental
	}
	return Staged
}
