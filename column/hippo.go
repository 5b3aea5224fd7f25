// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"github.com/miscco/NM-HFO/chans"
	"github.com/miscco/NM-HFO/sigmoid"
)

// variable layout shared by the hippocampal models
const (
	hVP  = iota // pyramidal membrane potential
	hVF         // fast inhibitory membrane potential
	hPP         // pyramidal to pyramidal PSP
	hPF         // pyramidal to fast inhibitory PSP
	hFA         // fast inhibitory GABA-A PSP
	hXPP        // time derivatives of the PSPs
	hXPF
	hXFA
	hipNVars
)

// hippocampal firing rates
const (
	hQp = iota
	hQf
)

var hipRateNames = []string{"Qp", "Qf"}

// HippoConns are the connectivity constants of the hippocampal columns
// (p = pyramidal, f = fast inhibitory).
type HippoConns struct {
	Pp float64 `desc:"pyramidal to pyramidal"`
	Pf float64 `desc:"pyramidal to fast inhibitory"`
	Fp float64 `desc:"fast inhibitory to pyramidal"`
	Ff float64 `desc:"fast inhibitory to fast inhibitory"`
}

func (hc *HippoConns) Set(pp, pf, fp, ff float64) {
	hc.Pp, hc.Pf, hc.Fp, hc.Ff = pp, pf, fp, ff
}

func (hc *HippoConns) validate() error {
	return firstErr(checkNonNeg("N.Pp", hc.Pp), checkNonNeg("N.Pf", hc.Pf),
		checkNonNeg("N.Fp", hc.Fp), checkNonNeg("N.Ff", hc.Ff))
}

// MembParams are the conductance-based membrane parameters of the
// hippocampal columns.
type MembParams struct {
	Tau  float64     `def:"1" min:"0" desc:"membrane time constant, in ms"`
	GL   float64     `def:"1" min:"0" desc:"leak conductance"`
	Erev chans.Chans `view:"inline" desc:"reversal potentials: E = AMPA, I = GABA-A, L = leak (also the resting potential)"`
}

func (mp *MembParams) Defaults() {
	mp.Tau = 1
	mp.GL = 1
	mp.Erev.Defaults()
}

// Deriv returns the membrane derivative for potential v with excitatory
// synaptic state ge and inhibitory synaptic state gi of n synapses
func (mp *MembParams) Deriv(v, ge, gi, n float64) float64 {
	return -(mp.Erev.Leak(mp.GL, v) + mp.Erev.Exc(ge, v) + mp.Erev.Inh(gi, n, v)) / mp.Tau
}

func (mp *MembParams) validate() error {
	return firstErr(checkPos("Memb.Tau", mp.Tau), checkNonNeg("Memb.GL", mp.GL))
}

func hipInit(mp *MembParams, vals []float64) {
	for i := range vals {
		vals[i] = 0
	}
	vals[hVP] = mp.Erev.L
	vals[hVF] = mp.Erev.L
}

//////////////////////////////////////////////////////////////////////////////////////
//  CA3Params

// CA3Params are the parameters of the staged CA3 column: conductance-based
// pyramidal and fast inhibitory membranes, with firing rates driven by the
// weighted PSPs.
type CA3Params struct {
	Memb  MembParams     `view:"inline" desc:"membrane"`
	P     sigmoid.Params `view:"inline" desc:"pyramidal firing rate"`
	F     sigmoid.Params `view:"inline" desc:"fast inhibitory firing rate"`
	PP    PSPParams      `view:"inline" desc:"pyramidal (AMPA) synapses"`
	FA    PSPParams      `view:"inline" desc:"fast inhibitory GABA-A synapses"`
	N     HippoConns     `view:"inline" desc:"connectivity"`
	Noise NoiseParams    `view:"inline" desc:"noise on the pyramidal PSP derivatives"`
}

func (hp *CA3Params) Kind() Kind { return CA3 }

func (hp *CA3Params) Defaults() {
	hp.Memb.Defaults()
	hp.P.Set(30e-3, -58.5, 4)
	hp.P.Scale = sigmoid.C1
	hp.F.Set(60e-3, -58.5, 6)
	hp.F.Scale = sigmoid.C1
	hp.PP.Set(0.18, 18)
	hp.FA.Set(0.22, 30)
	hp.N.Set(280, 600, 280, 400)
	hp.Noise.Defaults(5e-3)
	hp.Update()
}

func (hp *CA3Params) Update() {
	hp.P.Update()
	hp.F.Update()
}

func (hp *CA3Params) Validate() error {
	return firstErr(hp.Memb.validate(),
		checkSigmoid("P", &hp.P), checkSigmoid("F", &hp.F),
		checkPSP("PP", &hp.PP, true), checkPSP("FA", &hp.FA, true),
		hp.N.validate(), checkNoise(&hp.Noise))
}

func (hp *CA3Params) Clone() Model {
	np := *hp
	return &np
}

func (hp *CA3Params) VarNames() []string {
	return []string{"Vp", "Vf", "Ypp", "Ypf", "YfA", "Xpp", "Xpf", "XfA"}
}

func (hp *CA3Params) Init(vals []float64) { hipInit(&hp.Memb, vals) }

func (hp *CA3Params) Noisy() []NoisyVar {
	return []NoisyVar{{hXPP, hp.PP.Gamma}, {hXPF, hp.PP.Gamma}}
}

func (hp *CA3Params) NoiseParams() *NoiseParams { return &hp.Noise }

func (hp *CA3Params) RateNames() []string { return hipRateNames }

func (hp *CA3Params) Rate(i int, vs []Var, s int, drive float64) float64 {
	switch i {
	case hQp:
		return hp.P.Q(hp.N.Pp*vs[hPP].At(s) - hp.N.Fp*vs[hFA].At(s) + drive)
	case hQf:
		return hp.F.Q(hp.N.Pf*vs[hPF].At(s) - hp.N.Ff*vs[hFA].At(s))
	}
	return 0
}

// Derivs: leak, AMPA and GABA-A currents on the membranes, and
// y' = x, x' = gamma * (G * (Q - y) - 2 x) on the PSPs.  Both pyramidal
// PSPs are driven by Qp.
func (hp *CA3Params) Derivs(vs []Var, s int, drive float64, f []float64) {
	qp := hp.Rate(hQp, vs, s, drive)
	qf := hp.Rate(hQf, vs, s, drive)
	vp, vf := vs[hVP].At(s), vs[hVF].At(s)
	ypp, ypf, yfa := vs[hPP].At(s), vs[hPF].At(s), vs[hFA].At(s)
	f[hVP] = hp.Memb.Deriv(vp, ypp, yfa, hp.N.Fp)
	f[hVF] = hp.Memb.Deriv(vf, ypf, yfa, hp.N.Ff)
	f[hPP] = vs[hXPP].At(s)
	f[hPF] = vs[hXPF].At(s)
	f[hFA] = vs[hXFA].At(s)
	f[hXPP] = hp.PP.Staged(hp.PP.Gamma, qp, ypp, vs[hXPP].At(s))
	f[hXPF] = hp.PP.Staged(hp.PP.Gamma, qp, ypf, vs[hXPF].At(s))
	f[hXFA] = hp.FA.Staged(hp.FA.Gamma, qf, yfa, vs[hXFA].At(s))
}

func (hp *CA3Params) View(vs []Var, s int) Coupling {
	return Coupling{Exc: hp.N.Pp * vs[hPP].At(s), Inh: hp.N.Fp * vs[hFA].At(s)}
}

func (hp *CA3Params) ObsNames() []string { return []string{"V", "Y"} }

// Observe: V is the pyramidal membrane potential, Y the weighted PSP sum
func (hp *CA3Params) Observe(vs []Var, obs []float64) {
	obs[0] = vs[hVP].Val
	obs[1] = hp.N.Pp*vs[hPP].Val - hp.N.Fp*vs[hFA].Val
}

//////////////////////////////////////////////////////////////////////////////////////
//  HippoParams

// HippoParams are the parameters of the incremental hippocampal column,
// whose firing rates are sigmoids of the membrane potentials.
type HippoParams struct {
	Memb  MembParams     `view:"inline" desc:"membrane"`
	P     sigmoid.Params `view:"inline" desc:"pyramidal firing rate, of Vp"`
	F     sigmoid.Params `view:"inline" desc:"fast inhibitory firing rate, of Vf"`
	PP    PSPParams      `view:"inline" desc:"pyramidal (AMPA) synapses -- G unused"`
	FA    PSPParams      `view:"inline" desc:"fast inhibitory GABA-A synapses -- G unused"`
	N     HippoConns     `view:"inline" desc:"connectivity"`
	Noise NoiseParams    `view:"inline" desc:"noise on the pyramidal PSP derivatives"`
}

func (hp *HippoParams) Kind() Kind { return Hippocampal }

func (hp *HippoParams) Defaults() {
	hp.Memb.Defaults()
	hp.P.Set(30e-3, -58.5, 4)
	hp.P.Scale = sigmoid.C1
	hp.F.Set(60e-3, -58.5, 6)
	hp.F.Scale = sigmoid.C1
	hp.PP.Set(0.18, 0)
	hp.FA.Set(0.22, 0)
	hp.N.Set(40, 60, 40, 55)
	hp.Noise.Defaults(1e-3)
	hp.Update()
}

func (hp *HippoParams) Update() {
	hp.P.Update()
	hp.F.Update()
}

func (hp *HippoParams) Validate() error {
	return firstErr(hp.Memb.validate(),
		checkSigmoid("P", &hp.P), checkSigmoid("F", &hp.F),
		checkPSP("PP", &hp.PP, false), checkPSP("FA", &hp.FA, false),
		hp.N.validate(), checkNoise(&hp.Noise))
}

func (hp *HippoParams) Clone() Model {
	np := *hp
	return &np
}

func (hp *HippoParams) VarNames() []string {
	return []string{"Vp", "Vf", "Phipp", "Phipf", "PhifA", "Xpp", "Xpf", "XfA"}
}

func (hp *HippoParams) Init(vals []float64) { hipInit(&hp.Memb, vals) }

func (hp *HippoParams) Noisy() []NoisyVar {
	return []NoisyVar{{hXPP, hp.PP.Gamma}, {hXPF, hp.PP.Gamma}}
}

func (hp *HippoParams) NoiseParams() *NoiseParams { return &hp.Noise }

func (hp *HippoParams) RateNames() []string { return hipRateNames }

func (hp *HippoParams) Rate(i int, vs []Var, s int, drive float64) float64 {
	switch i {
	case hQp:
		return hp.P.Q(vs[hVP].At(s) + drive)
	case hQf:
		return hp.F.Q(vs[hVF].At(s))
	}
	return 0
}

// Derivs: membranes as in CA3 with the PSP potentials as conductances,
// Phi' = x and x' = gamma^2 * (N * Q - Phi) - 2 gamma x.
func (hp *HippoParams) Derivs(vs []Var, s int, drive float64, f []float64) {
	qp := hp.Rate(hQp, vs, s, drive)
	qf := hp.Rate(hQf, vs, s, drive)
	vp, vf := vs[hVP].At(s), vs[hVF].At(s)
	ppp, ppf, pfa := vs[hPP].At(s), vs[hPF].At(s), vs[hFA].At(s)
	f[hVP] = hp.Memb.Deriv(vp, ppp, pfa, hp.N.Fp)
	f[hVF] = hp.Memb.Deriv(vf, ppf, pfa, hp.N.Ff)
	f[hPP] = vs[hXPP].At(s)
	f[hPF] = vs[hXPF].At(s)
	f[hFA] = vs[hXFA].At(s)
	f[hXPP] = hp.PP.Inc(hp.N.Pp*qp, ppp, vs[hXPP].At(s))
	f[hXPF] = hp.PP.Inc(hp.N.Pf*qp, ppf, vs[hXPF].At(s))
	f[hXFA] = hp.FA.Inc(qf, pfa, vs[hXFA].At(s))
}

func (hp *HippoParams) View(vs []Var, s int) Coupling {
	return Coupling{Exc: vs[hPP].At(s), Inh: hp.N.Fp * vs[hFA].At(s)}
}

func (hp *HippoParams) ObsNames() []string { return []string{"V"} }

// Observe: V is the weighted difference of the membrane potentials
func (hp *HippoParams) Observe(vs []Var, obs []float64) {
	obs[0] = hp.N.Pp*vs[hVP].Val - hp.N.Fp*vs[hVF].Val
}
