// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"fmt"
	"math"

	"github.com/miscco/NM-HFO/sigmoid"
)

// Model is the parameter set and equations of one column kind.
// The equations read state only through Var.At(s), so that a model
// evaluated at stage s never sees values written during stage s.
type Model interface {
	// Kind returns the kind of column this model implements
	Kind() Kind

	// Defaults sets the reference parameters of the kind
	Defaults()

	// Update recomputes derived parameters after changes
	Update()

	// Validate returns a *ConfigError (with Pop unset) for invalid parameters
	Validate() error

	// Clone returns an independent copy of the parameters
	Clone() Model

	// VarNames returns the names of the state variables, in Var order
	VarNames() []string

	// Init sets the resting initial values of the state variables
	Init(vals []float64)

	// Noisy returns the noise-driven variables, in stream pair order
	Noisy() []NoisyVar

	// NoiseParams returns the noise intensity parameters
	NoiseParams() *NoiseParams

	// RateNames returns the names of the firing rates
	RateNames() []string

	// Rate returns firing rate i at stage s, with coupling drive added to
	// the pyramidal argument
	Rate(i int, vs []Var, s int, drive float64) float64

	// Derivs computes the deterministic time derivatives of all variables
	// at stage s into f
	Derivs(vs []Var, s int, drive float64, f []float64)

	// View returns the coupling view at stage s
	View(vs []Var, s int) Coupling

	// ObsNames returns the names of the observables
	ObsNames() []string

	// Observe computes the observables from the Val of each variable
	Observe(vs []Var, obs []float64)
}

// NoisyVar is a variable driven by one pair of noise streams
type NoisyVar struct {
	Var  int     `desc:"index of the variable"`
	Gain float64 `desc:"gain of the noise, which enters as Gain^2 times the combined draws"`
}

// DefaultParams returns the reference parameters for given kind
func DefaultParams(kind Kind) Model {
	var md Model
	switch kind {
	case Cortical:
		md = &CorticalParams{}
	case CA3:
		md = &CA3Params{}
	case CorticalInc:
		md = &CorticalIncParams{}
	case Hippocampal:
		md = &HippoParams{}
	default:
		return nil
	}
	md.Defaults()
	return md
}

//////////////////////////////////////////////////////////////////////////////////////
//  PSPParams

// PSPParams are the parameters of the second order postsynaptic potential
// kernel of one synapse type.
type PSPParams struct {
	Gamma float64 `min:"0" desc:"rate constant of the PSP kernel, in 1/ms -- inverse synaptic time constant"`
	G     float64 `min:"0" desc:"PSP amplitude gain -- used by the staged models only"`
}

func (pp *PSPParams) Set(gamma, g float64) {
	pp.Gamma, pp.G = gamma, g
}

// Staged returns the staged-family PSP derivative gamma * (G * (q - y) - 2 x).
// The rate constant is passed in: the staged cortical column drives every
// kernel with the pyramidal gamma.
func (pp *PSPParams) Staged(gamma, q, y, x float64) float64 {
	return gamma * (pp.G*(q-y) - 2*x)
}

// Inc returns the incremental-family PSP derivative
// gamma^2 * (in - phi) - 2 gamma x, where in is the connection-weighted rate
func (pp *PSPParams) Inc(in, phi, x float64) float64 {
	return pp.Gamma*pp.Gamma*(in-phi) - 2*pp.Gamma*x
}

//////////////////////////////////////////////////////////////////////////////////////
//  NoiseParams

// NoiseParams are the noise intensity parameters of a column
type NoiseParams struct {
	On   bool    `def:"true" desc:"if false, all noise streams have zero mean and standard deviation, leaving only the external input"`
	Mean float64 `def:"0" desc:"mean of the primary noise streams"`
	Dphi float64 `min:"0" desc:"noise intensity -- sets the standard deviation of the primary streams"`
}

func (np *NoiseParams) Defaults(dphi float64) {
	np.On = true
	np.Mean = 0
	np.Dphi = dphi
}

//////////////////////////////////////////////////////////////////////////////////////
//  validation helpers

func cfgErr(field, msg string) *ConfigError {
	return &ConfigError{Field: field, Msg: msg}
}

func checkPos(field string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return cfgErr(field, fmt.Sprintf("must be finite and positive, is %g", v))
	}
	return nil
}

func checkNonNeg(field string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 0) {
		return cfgErr(field, fmt.Sprintf("must be finite and non-negative, is %g", v))
	}
	return nil
}

func checkSigmoid(field string, sp *sigmoid.Params) error {
	if err := checkPos(field+".Qmax", sp.Qmax); err != nil {
		return err
	}
	if err := checkPos(field+".Sigma", sp.Sigma); err != nil {
		return err
	}
	if err := checkPos(field+".Scale", sp.Scale); err != nil {
		return err
	}
	if math.IsNaN(sp.Theta) || math.IsInf(sp.Theta, 0) {
		return cfgErr(field+".Theta", "must be finite")
	}
	return nil
}

func checkPSP(field string, pp *PSPParams, staged bool) error {
	if err := checkPos(field+".Gamma", pp.Gamma); err != nil {
		return err
	}
	if staged {
		return checkNonNeg(field+".G", pp.G)
	}
	return nil
}

func checkNoise(np *NoiseParams) error {
	if math.IsNaN(np.Mean) || math.IsInf(np.Mean, 0) {
		return cfgErr("Noise.Mean", "must be finite")
	}
	return checkNonNeg("Noise.Dphi", np.Dphi)
}

// firstErr returns the first non-nil error
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
