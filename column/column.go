// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"errors"
	"fmt"
	"math"

	"github.com/miscco/NM-HFO/noise"
)

// Column is one neural-mass column: the state variables of its model,
// the noise streams driving it, and its afferent couplings.
// A step consists of Stage(ctx, s) for s = 0..3 followed by Finalize(ctx).
type Column struct {
	Nm    string      `desc:"name of the column"`
	Typ   Kind        `desc:"kind of column model"`
	Fam   Family      `inactive:"+" desc:"integration family of the model"`
	Ctx   Context     `desc:"integration context the noise streams were scaled for"`
	Pars  Model       `desc:"model parameters -- a private copy, not to be modified after construction"`
	Vars  []Var       `desc:"state variables, in Pars.VarNames order"`
	Noise *noise.Bank `desc:"noise streams, two per noisy variable, and their current draws"`
	Input float64     `desc:"constant external drive added to every fresh noise draw"`
	Affs  Afferents   `desc:"afferent couplings from sibling columns"`

	noisy []NoisyVar // noisy variables, in pair order
	pair  []int      // pair index of each variable, -1 if not noisy
	f     []float64  // derivative scratch, private to this column
	obs   []float64  // observable scratch
}

// New returns a column of given kind, name and parameters, with its noise
// streams seeded from seeder and their first draws taken.  pars may be nil
// for the reference parameters of the kind, and is copied otherwise.
// Errors are *ConfigError.
func New(kind Kind, name string, pars Model, ctx Context, seeder noise.Seeder) (*Column, error) {
	if kind < 0 || kind >= KindN {
		return nil, &ConfigError{Pop: name, Field: "Kind", Msg: fmt.Sprintf("unknown kind %d", int(kind))}
	}
	if pars == nil {
		pars = DefaultParams(kind)
	} else {
		if pars.Kind() != kind {
			return nil, &ConfigError{Pop: name, Field: "Kind", Msg: fmt.Sprintf("parameters are for %v, not %v", pars.Kind(), kind)}
		}
		pars = pars.Clone()
		pars.Update()
	}
	if ctx.Dt <= 0 || ctx.SqrtDt <= 0 {
		return nil, &ConfigError{Pop: name, Field: "Ctx.Dt", Msg: "context not initialized, use NewContext"}
	}
	if err := pars.Validate(); err != nil {
		var cerr *ConfigError
		if errors.As(err, &cerr) {
			cerr.Pop = name
			return nil, cerr
		}
		return nil, &ConfigError{Pop: name, Field: "Pars", Msg: "invalid", Err: err}
	}

	cl := &Column{Nm: name, Typ: kind, Fam: kind.Family(), Ctx: ctx, Pars: pars}
	nv := len(pars.VarNames())
	cl.Vars = make([]Var, nv)
	vals := make([]float64, nv)
	pars.Init(vals)
	for i, v := range vals {
		cl.Vars[i].Init(v)
	}
	cl.noisy = pars.Noisy()
	cl.pair = make([]int, nv)
	for i := range cl.pair {
		cl.pair[i] = -1
	}
	for m, nvr := range cl.noisy {
		cl.pair[nvr.Var] = m
	}
	cl.f = make([]float64, nv)
	cl.obs = make([]float64, len(pars.ObsNames()))

	bk, err := noise.NewBank(cl.NoiseSpecs(), seeder)
	if err != nil {
		return nil, &ConfigError{Pop: name, Field: "Noise.Dphi", Msg: "invalid noise stream", Err: err}
	}
	cl.Noise = bk
	return cl, nil
}

// NoiseSpecs returns the specs of the noise streams, two per noisy
// variable.  Staged: N(Mean, Dphi * dt) and N(0, dt).  Incremental: both
// N(Mean, sqrt(Dphi)).  All streams are constant zero if noise is off.
func (cl *Column) NoiseSpecs() []noise.Spec {
	np := cl.Pars.NoiseParams()
	specs := make([]noise.Spec, 2*len(cl.noisy))
	if !np.On {
		return specs
	}
	for m := range cl.noisy {
		switch cl.Fam {
		case Staged:
			specs[2*m] = noise.Spec{Mean: np.Mean, Sigma: np.Dphi * cl.Ctx.Dt}
			specs[2*m+1] = noise.Spec{Mean: 0, Sigma: cl.Ctx.Dt}
		case Incremental:
			sd := math.Sqrt(np.Dphi)
			specs[2*m] = noise.Spec{Mean: np.Mean, Sigma: sd}
			specs[2*m+1] = noise.Spec{Mean: np.Mean, Sigma: sd}
		}
	}
	return specs
}

// Name returns the name of the column
func (cl *Column) Name() string { return cl.Nm }

// Kind returns the kind of the column
func (cl *Column) Kind() Kind { return cl.Typ }

// Context returns the integration context of the column
func (cl *Column) Context() Context { return cl.Ctx }

// SetInput sets the constant drive added to every fresh noise draw,
// from the next Finalize on.
func (cl *Column) SetInput(in float64) {
	cl.Input = in
}

// AddAfferent adds the coupling drive of src, weighted by exc and inh,
// to the pyramidal firing rate argument of this column.
func (cl *Column) AddAfferent(src Viewer, exc, inh float64) {
	cl.Affs = append(cl.Affs, Afferent{Src: src, Exc: exc, Inh: inh})
}

// View returns the coupling view at stage s
func (cl *Column) View(s int) Coupling {
	return cl.Pars.View(cl.Vars, s)
}

// RateNames returns the names of the firing rates of the column
func (cl *Column) RateNames() []string {
	return cl.Pars.RateNames()
}

// FiringRate returns firing rate i at stage s, including the afferent drive
func (cl *Column) FiringRate(i, s int) float64 {
	return cl.Pars.Rate(i, cl.Vars, s, cl.Affs.Drive(s))
}

//////////////////////////////////////////////////////////////////////////////////////
//  Integration

// Stage computes RK stage s, reading only the values at which stage s is
// evaluated (Var.At) of this column and its afferents.
func (cl *Column) Stage(ctx Context, s int) {
	cl.Pars.Derivs(cl.Vars, s, cl.Affs.Drive(s), cl.f)
	rv := cl.Noise.Vals
	switch cl.Fam {
	case Staged:
		ta := &tableauA
		for i := range cl.Vars {
			vr := &cl.Vars[i]
			v := vr.Val + ta.A[s]*ctx.Dt*cl.f[i]
			if m := cl.pair[i]; m >= 0 {
				g := cl.noisy[m].Gain
				v += ta.B[s] * g * g * (rv[2*m] + rv[2*m+1]/sqrt3)
			}
			vr.Stage[s] = v
		}
	case Incremental:
		tb := &tableauB
		for i := range cl.Vars {
			vr := &cl.Vars[i]
			d := ctx.Dt * cl.f[i]
			if m := cl.pair[i]; m >= 0 {
				g := cl.noisy[m].Gain
				d += ctx.Dt * g * g * (tb.B1[s]*rv[2*m] + tb.B2[s]*rv[2*m+1]) / ctx.SqrtDt
			}
			vr.Deriv[s] = d
			if s < 3 {
				vr.Stage[s] = vr.Val + tb.M[s]*d
			}
		}
	}
}

// Finalize combines the four stages into the new Val of every variable,
// adds the accumulation noise, and then draws the noise for the next step.
func (cl *Column) Finalize(ctx Context) {
	rv := cl.Noise.Vals
	switch cl.Fam {
	case Staged:
		for i := range cl.Vars {
			vr := &cl.Vars[i]
			st := &vr.Stage
			v := (-3*vr.Val + 2*st[0] + 4*st[1] + 2*st[2] + st[3]) / 6
			if m := cl.pair[i]; m >= 0 {
				g := cl.noisy[m].Gain
				v += g * g * (rv[2*m] - sqrt3*rv[2*m+1]) / 4
			}
			vr.Val = v
		}
	case Incremental:
		for i := range cl.Vars {
			vr := &cl.Vars[i]
			dv := &vr.Deriv
			v := vr.Val + (dv[0]+2*dv[1]+2*dv[2]+dv[3])/6
			if m := cl.pair[i]; m >= 0 {
				g := cl.noisy[m].Gain
				v += g * g * ctx.SqrtDt * rv[2*m]
			}
			vr.Val = v
		}
	}
	cl.Noise.Refresh(cl.Input)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Observables and introspection

// Observable returns the primary observable of the column
func (cl *Column) Observable() float64 {
	cl.Pars.Observe(cl.Vars, cl.obs)
	return cl.obs[0]
}

// Observables returns all observables, in ObservableNames order
func (cl *Column) Observables() []float64 {
	obs := make([]float64, len(cl.obs))
	cl.Pars.Observe(cl.Vars, obs)
	return obs
}

// ObservableNames returns the names of the observables
func (cl *Column) ObservableNames() []string {
	return cl.Pars.ObsNames()
}

// VarNames returns the names of the state variables
func (cl *Column) VarNames() []string {
	return cl.Pars.VarNames()
}

// VarVal returns the current value of variable i
func (cl *Column) VarVal(i int) float64 {
	return cl.Vars[i].Val
}

// VarByName returns the current value of the named variable
func (cl *Column) VarByName(varNm string) (float64, error) {
	for i, nm := range cl.Pars.VarNames() {
		if nm == varNm {
			return cl.Vars[i].Val, nil
		}
	}
	return math.NaN(), fmt.Errorf("column %q: variable named: %s not found", cl.Nm, varNm)
}

// NoiseVals returns a copy of the current noise draws
func (cl *Column) NoiseVals() []float64 {
	return cl.Noise.Snapshot()
}

// CheckFinite returns a *DivergenceError (with Step -1) for the first
// variable whose value is NaN or infinite.
func (cl *Column) CheckFinite() error {
	for i := range cl.Vars {
		v := cl.Vars[i].Val
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &DivergenceError{Step: -1, Pop: cl.Nm, Var: cl.Pars.VarNames()[i], Val: v}
		}
	}
	return nil
}
