// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the reversal potentials and ohmic current
helpers used by conductance-based neural-mass membranes, based on the
standard equivalent RC circuit model (i.e., basic Ohms law equations).
Potentials are in mV, conductances in mS/cm^2.
*/
package chans

// Chans are the reversal potentials of the channels driving a
// neural-mass membrane potential.
type Chans struct {
	E float64 `def:"0" desc:"excitatory AMPA reversal potential, in mV"`
	I float64 `def:"-70" desc:"inhibitory GABA-A reversal potential, in mV"`
	L float64 `def:"-60" desc:"leak reversal potential, in mV -- determines the resting potential"`
}

// Defaults sets the hippocampal reversal potentials
func (ch *Chans) Defaults() {
	ch.SetAll(0, -70, -60)
}

// SetAll sets all the values
func (ch *Chans) SetAll(e, i, l float64) {
	ch.E, ch.I, ch.L = e, i, l
}

// Current returns the ohmic current g * (v - erev), which is positive
// (hyperpolarizing in the membrane equation) when v is above erev.
func Current(g, v, erev float64) float64 {
	return g * (v - erev)
}

// Leak returns the leak current for leak conductance gl at potential v.
func (ch *Chans) Leak(gl, v float64) float64 {
	return Current(gl, v, ch.L)
}

// Exc returns the excitatory synaptic current for synaptic state g at potential v.
func (ch *Chans) Exc(g, v float64) float64 {
	return Current(g, v, ch.E)
}

// Inh returns the inhibitory synaptic current for synaptic state g,
// scaled by connectivity n, at potential v.
func (ch *Chans) Inh(g, n, v float64) float64 {
	return Current(g*n, v, ch.I)
}
