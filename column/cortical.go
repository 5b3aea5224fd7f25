// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"github.com/miscco/NM-HFO/sigmoid"
)

// variable layout shared by the cortical models
const (
	cPP = iota // pyramidal to pyramidal PSP
	cPS        // pyramidal to slow inhibitory PSP
	cPF        // pyramidal to fast inhibitory PSP
	cSA        // slow inhibitory GABA-A PSP
	cSB        // slow inhibitory GABA-B PSP
	cFA        // fast inhibitory GABA-A PSP
	cXPP       // time derivatives of the above
	cXPS
	cXPF
	cXSA
	cXSB
	cXFA
	cortNVars
)

// cortical firing rates
const (
	cQp = iota
	cQs
	cQf
)

var (
	cortRateNames = []string{"Qp", "Qs", "Qf"}
	cortObsNames  = []string{"V"}
)

// CorticalConns are the connectivity constants of the cortical columns:
// average number of synapses from the first to the second population
// (p = pyramidal, s = slow inhibitory, f = fast inhibitory).
type CorticalConns struct {
	Pp float64 `desc:"pyramidal to pyramidal"`
	Ps float64 `desc:"pyramidal to slow inhibitory"`
	Pf float64 `desc:"pyramidal to fast inhibitory"`
	Sp float64 `desc:"slow inhibitory to pyramidal"`
	Ss float64 `desc:"slow inhibitory to slow inhibitory"`
	Sf float64 `desc:"slow inhibitory to fast inhibitory"`
	Fp float64 `desc:"fast inhibitory to pyramidal"`
	Ff float64 `desc:"fast inhibitory to fast inhibitory"`
}

// Set sets all connectivity constants, in field order
func (cc *CorticalConns) Set(pp, ps, pf, sp, ss, sf, fp, ff float64) {
	cc.Pp, cc.Ps, cc.Pf, cc.Sp, cc.Ss, cc.Sf, cc.Fp, cc.Ff = pp, ps, pf, sp, ss, sf, fp, ff
}

func (cc *CorticalConns) validate() error {
	return firstErr(
		checkNonNeg("N.Pp", cc.Pp), checkNonNeg("N.Ps", cc.Ps), checkNonNeg("N.Pf", cc.Pf),
		checkNonNeg("N.Sp", cc.Sp), checkNonNeg("N.Ss", cc.Ss), checkNonNeg("N.Sf", cc.Sf),
		checkNonNeg("N.Fp", cc.Fp), checkNonNeg("N.Ff", cc.Ff))
}

// cortView is the coupling view of both cortical models, which share the layout
func cortView(n *CorticalConns, vs []Var, s int) Coupling {
	return Coupling{
		Exc: n.Pp * vs[cPP].At(s),
		Inh: n.Sp*(vs[cSA].At(s)+vs[cSB].At(s)) + n.Fp*vs[cFA].At(s),
	}
}

// cortObserve computes the pyramidal potential proxy of both cortical models
func cortObserve(n *CorticalConns, vs []Var, obs []float64) {
	obs[0] = n.Pp*vs[cPP].Val - n.Fp*vs[cFA].Val - n.Sp*(vs[cSA].Val+vs[cSB].Val)
}

//////////////////////////////////////////////////////////////////////////////////////
//  CorticalParams

// CorticalParams are the parameters of the staged cortical column, with
// pyramidal, slow inhibitory and fast inhibitory populations interacting
// through second order PSP kernels (Molaee-Ardekani et al, 2010).
type CorticalParams struct {
	P     sigmoid.Params `view:"inline" desc:"pyramidal firing rate"`
	S     sigmoid.Params `view:"inline" desc:"slow inhibitory firing rate"`
	F     sigmoid.Params `view:"inline" desc:"fast inhibitory firing rate"`
	PP    PSPParams      `view:"inline" desc:"pyramidal (AMPA) synapses onto all populations"`
	SA    PSPParams      `view:"inline" desc:"slow inhibitory GABA-A synapses -- Gamma unused, all kernels run at PP.Gamma"`
	SB    PSPParams      `view:"inline" desc:"slow inhibitory GABA-B synapses -- Gamma unused, all kernels run at PP.Gamma"`
	FA    PSPParams      `view:"inline" desc:"fast inhibitory GABA-A synapses -- Gamma unused, all kernels run at PP.Gamma"`
	N     CorticalConns  `view:"inline" desc:"connectivity"`
	Noise NoiseParams    `view:"inline" desc:"noise on the pyramidal PSP derivatives"`
}

func (cp *CorticalParams) Kind() Kind { return Cortical }

func (cp *CorticalParams) Defaults() {
	cp.P.Set(5e-3, 1, 0.56)
	cp.S.Set(5e-3, 6, 0.56)
	cp.F.Set(5e-3, 6, 0.56)
	cp.PP.Set(0.18, 5)
	cp.SA.Set(0.033, 50)
	cp.SB.Set(0.0033, 3)
	cp.FA.Set(0.22, 20)
	cp.N.Set(200, 200, 200, 240, 400, 400, 100, 100)
	cp.Noise.Defaults(5e-3)
	cp.Update()
}

func (cp *CorticalParams) Update() {
	cp.P.Update()
	cp.S.Update()
	cp.F.Update()
}

func (cp *CorticalParams) Validate() error {
	return firstErr(
		checkSigmoid("P", &cp.P), checkSigmoid("S", &cp.S), checkSigmoid("F", &cp.F),
		checkPSP("PP", &cp.PP, true), checkPSP("SA", &cp.SA, true),
		checkPSP("SB", &cp.SB, true), checkPSP("FA", &cp.FA, true),
		cp.N.validate(), checkNoise(&cp.Noise))
}

func (cp *CorticalParams) Clone() Model {
	np := *cp
	return &np
}

func (cp *CorticalParams) VarNames() []string {
	return []string{"Ypp", "Yps", "Ypf", "YsA", "YsB", "YfA", "Xpp", "Xps", "Xpf", "XsA", "XsB", "XfA"}
}

func (cp *CorticalParams) Init(vals []float64) {
	for i := range vals {
		vals[i] = 0
	}
}

func (cp *CorticalParams) Noisy() []NoisyVar {
	return []NoisyVar{{cXPP, cp.PP.Gamma}, {cXPS, cp.PP.Gamma}, {cXPF, cp.PP.Gamma}}
}

func (cp *CorticalParams) NoiseParams() *NoiseParams { return &cp.Noise }

func (cp *CorticalParams) RateNames() []string { return cortRateNames }

func (cp *CorticalParams) Rate(i int, vs []Var, s int, drive float64) float64 {
	switch i {
	case cQp:
		return cp.P.Q(cp.N.Pp*vs[cPP].At(s) - cp.N.Sp*vs[cSA].At(s) - cp.N.Fp*vs[cFA].At(s) + drive)
	case cQs:
		return cp.S.Q(cp.N.Ps*vs[cPS].At(s) - cp.N.Ss*vs[cSA].At(s))
	case cQf:
		return cp.F.Q(cp.N.Pf*vs[cPF].At(s) - cp.N.Sf*vs[cSA].At(s) - cp.N.Ff*vs[cFA].At(s))
	}
	return 0
}

// Derivs: y' = x and x' = gamma_p * (G * (Q - y) - 2 x), with the
// pyramidal rate constant PP.Gamma on every kernel and the gain G of each
// synapse type.  The fast inhibitory PSP is driven by the slow inhibitory
// rate Qs.
func (cp *CorticalParams) Derivs(vs []Var, s int, drive float64, f []float64) {
	qp := cp.Rate(cQp, vs, s, drive)
	qs := cp.Rate(cQs, vs, s, drive)
	gp := cp.PP.Gamma
	for i := cPP; i <= cFA; i++ {
		f[i] = vs[i+cXPP].At(s)
	}
	f[cXPP] = cp.PP.Staged(gp, qp, vs[cPP].At(s), vs[cXPP].At(s))
	f[cXPS] = cp.PP.Staged(gp, qp, vs[cPS].At(s), vs[cXPS].At(s))
	f[cXPF] = cp.PP.Staged(gp, qp, vs[cPF].At(s), vs[cXPF].At(s))
	f[cXSA] = cp.SA.Staged(gp, qs, vs[cSA].At(s), vs[cXSA].At(s))
	f[cXSB] = cp.SB.Staged(gp, qs, vs[cSB].At(s), vs[cXSB].At(s))
	f[cXFA] = cp.FA.Staged(gp, qs, vs[cFA].At(s), vs[cXFA].At(s))
}

func (cp *CorticalParams) View(vs []Var, s int) Coupling { return cortView(&cp.N, vs, s) }

func (cp *CorticalParams) ObsNames() []string { return cortObsNames }

func (cp *CorticalParams) Observe(vs []Var, obs []float64) { cortObserve(&cp.N, vs, obs) }

//////////////////////////////////////////////////////////////////////////////////////
//  CorticalIncParams

// CorticalIncParams are the parameters of the incremental cortical column,
// in which the PSPs are potentials Phi driven by connection-weighted rates
// and the firing rates read the PSP of their own population only.
type CorticalIncParams struct {
	P     sigmoid.Params `view:"inline" desc:"pyramidal firing rate, of Phi_pp"`
	S     sigmoid.Params `view:"inline" desc:"slow inhibitory firing rate, of Phi_sA"`
	F     sigmoid.Params `view:"inline" desc:"fast inhibitory firing rate, of Phi_fA"`
	PP    PSPParams      `view:"inline" desc:"pyramidal (AMPA) synapses onto all populations -- G unused"`
	SA    PSPParams      `view:"inline" desc:"slow inhibitory GABA-A synapses -- G unused"`
	SB    PSPParams      `view:"inline" desc:"slow inhibitory GABA-B synapses -- G unused"`
	FA    PSPParams      `view:"inline" desc:"fast inhibitory GABA-A synapses -- G unused"`
	N     CorticalConns  `view:"inline" desc:"connectivity"`
	Noise NoiseParams    `view:"inline" desc:"noise on the pyramidal PSP derivatives"`
}

func (cp *CorticalIncParams) Kind() Kind { return CorticalInc }

func (cp *CorticalIncParams) Defaults() {
	cp.P.Set(5e-3, 1, 0.56)
	cp.S.Set(5e-3, 6, 0.56)
	cp.F.Set(5e-3, 6, 0.56)
	cp.PP.Set(0.18, 0)
	cp.SA.Set(0.033, 0)
	cp.SB.Set(0.0033, 0)
	cp.FA.Set(0.22, 0)
	cp.N.Set(20, 20, 20, 10, 10, 10, 10, 10)
	cp.Noise.Defaults(10e-3)
	cp.Update()
}

func (cp *CorticalIncParams) Update() {
	cp.P.Update()
	cp.S.Update()
	cp.F.Update()
}

func (cp *CorticalIncParams) Validate() error {
	return firstErr(
		checkSigmoid("P", &cp.P), checkSigmoid("S", &cp.S), checkSigmoid("F", &cp.F),
		checkPSP("PP", &cp.PP, false), checkPSP("SA", &cp.SA, false),
		checkPSP("SB", &cp.SB, false), checkPSP("FA", &cp.FA, false),
		cp.N.validate(), checkNoise(&cp.Noise))
}

func (cp *CorticalIncParams) Clone() Model {
	np := *cp
	return &np
}

func (cp *CorticalIncParams) VarNames() []string {
	return []string{"Phipp", "Phips", "Phipf", "PhisA", "PhisB", "PhifA", "Xpp", "Xps", "Xpf", "XsA", "XsB", "XfA"}
}

func (cp *CorticalIncParams) Init(vals []float64) {
	for i := range vals {
		vals[i] = 0
	}
}

func (cp *CorticalIncParams) Noisy() []NoisyVar {
	return []NoisyVar{{cXPP, cp.PP.Gamma}, {cXPS, cp.PP.Gamma}, {cXPF, cp.PP.Gamma}}
}

func (cp *CorticalIncParams) NoiseParams() *NoiseParams { return &cp.Noise }

func (cp *CorticalIncParams) RateNames() []string { return cortRateNames }

func (cp *CorticalIncParams) Rate(i int, vs []Var, s int, drive float64) float64 {
	switch i {
	case cQp:
		return cp.P.Q(vs[cPP].At(s) + drive)
	case cQs:
		return cp.S.Q(vs[cSA].At(s))
	case cQf:
		return cp.F.Q(vs[cFA].At(s))
	}
	return 0
}

// Derivs: Phi' = x and x' = gamma^2 * (N * Q - Phi) - 2 gamma x, with the
// slow rate Qs driving both slow PSPs and the fast inhibitory PSP.
func (cp *CorticalIncParams) Derivs(vs []Var, s int, drive float64, f []float64) {
	qp := cp.Rate(cQp, vs, s, drive)
	qs := cp.Rate(cQs, vs, s, drive)
	for i := cPP; i <= cFA; i++ {
		f[i] = vs[i+cXPP].At(s)
	}
	f[cXPP] = cp.PP.Inc(cp.N.Pp*qp, vs[cPP].At(s), vs[cXPP].At(s))
	f[cXPS] = cp.PP.Inc(cp.N.Ps*qp, vs[cPS].At(s), vs[cXPS].At(s))
	f[cXPF] = cp.PP.Inc(cp.N.Pf*qp, vs[cPF].At(s), vs[cXPF].At(s))
	f[cXSA] = cp.SA.Inc(qs, vs[cSA].At(s), vs[cXSA].At(s))
	f[cXSB] = cp.SB.Inc(qs, vs[cSB].At(s), vs[cXSB].At(s))
	f[cXFA] = cp.FA.Inc(qs, vs[cFA].At(s), vs[cXFA].At(s))
}

func (cp *CorticalIncParams) View(vs []Var, s int) Coupling { return cortView(&cp.N, vs, s) }

func (cp *CorticalIncParams) ObsNames() []string { return cortObsNames }

func (cp *CorticalIncParams) Observe(vs []Var, obs []float64) { cortObserve(&cp.N, vs, obs) }
