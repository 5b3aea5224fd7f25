// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sigmoid provides the logistic firing-rate transfer function of
neural-mass models, mapping a weighted sum of synaptic (or membrane)
state onto a population firing rate in (0, Qmax).

The exponent argument is clamped to +/- MaxArg so that pathological
inputs saturate instead of overflowing exp.  For all arguments within
that range the function is the plain logistic, so steady states of
in-range models are not affected by the clamp.
*/
package sigmoid

import "math"

// MaxArg is the bound on the magnitude of the exponent argument.
// exp(500) is ~1.4e217, far from overflow, while 1/(1+exp(500)) is
// already far below any meaningful firing rate.
const MaxArg = 500.0

// Params are the logistic firing rate function parameters:
// Q(x) = Qmax / (1 + exp(-Scale * (x - Theta) / Sigma))
type Params struct {
	Qmax  float64 `def:"5e-3" min:"0" desc:"maximum firing rate, in 1/ms"`
	Theta float64 `def:"1" desc:"sigmoid threshold, in mV -- input at which the rate is Qmax / 2"`
	Sigma float64 `def:"0.56" min:"0" desc:"sigmoid gain, in mV -- larger values give a shallower transfer function"`
	Scale float64 `def:"1" desc:"dimensionless scaling of the argument -- pi/sqrt(3) maps Sigma onto the standard deviation of the underlying threshold distribution"`

	Gain float64 `view:"-" json:"-" xml:"-" desc:"Scale / Sigma"`
}

// C1 is the scaling that maps Sigma onto a standard deviation of the
// firing threshold distribution: pi / sqrt(3).
const C1 = 1.8137993642342178

func (sp *Params) Defaults() {
	sp.Qmax = 5e-3
	sp.Theta = 1
	sp.Sigma = 0.56
	sp.Scale = 1
	sp.Update()
}

func (sp *Params) Update() {
	sp.Gain = sp.Scale / sp.Sigma
}

// Set sets the main parameters and updates, with Scale = 1
func (sp *Params) Set(qmax, theta, sigma float64) {
	sp.Qmax, sp.Theta, sp.Sigma, sp.Scale = qmax, theta, sigma, 1
	sp.Update()
}

// Arg returns the clamped exponent argument -Gain * (x - Theta)
func (sp *Params) Arg(x float64) float64 {
	a := -sp.Gain * (x - sp.Theta)
	switch {
	case a > MaxArg:
		return MaxArg
	case a < -MaxArg:
		return -MaxArg
	}
	return a
}

// Q returns the firing rate for given weighted input x
func (sp *Params) Q(x float64) float64 {
	return sp.Qmax / (1 + math.Exp(sp.Arg(x)))
}

// Slope returns dQ/dx at x -- used for linear stability estimates
func (sp *Params) Slope(x float64) float64 {
	q := sp.Q(x)
	return sp.Gain * q * (1 - q/sp.Qmax)
}
