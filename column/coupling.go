// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

// Coupling is the read-only view a column presents to its siblings:
// the connection-weighted excitatory and inhibitory synaptic aggregates
// at one stage.
type Coupling struct {
	Exc float64 `desc:"weighted excitatory synaptic state"`
	Inh float64 `desc:"weighted inhibitory synaptic state"`
}

// Viewer is anything that provides a stage-indexed coupling view
type Viewer interface {
	// Name returns the name of the source
	Name() string

	// View returns the coupling view at stage s, which reads only the
	// values that stage s of any column evaluates at.
	View(s int) Coupling
}

// Afferent specifies the coupling drive received from one sibling, which
// is added to the pyramidal firing rate argument of the receiving column.
type Afferent struct {
	Src Viewer  `desc:"sending column"`
	Exc float64 `desc:"multiplier on the sender excitatory aggregate"`
	Inh float64 `desc:"multiplier on the sender inhibitory aggregate"`
}

// Drive returns the drive from the sender at stage s
func (af *Afferent) Drive(s int) float64 {
	v := af.Src.View(s)
	return af.Exc*v.Exc - af.Inh*v.Inh
}

// Afferents is a list of afferent couplings
type Afferents []Afferent

// Drive returns the summed drive of all afferents at stage s
func (afs Afferents) Drive(s int) float64 {
	d := 0.0
	for i := range afs {
		d += afs[i].Drive(s)
	}
	return d
}
