// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sim is the headless simulation driver: it builds the pair of columns
selected by a Config, couples them, runs the integrator through the onset and
the recorded duration while applying the stimulation protocol, and records
the observables with a datatap.Tap.
*/
package sim

import (
	"fmt"
	"log"

	"github.com/emer/emergent/timer"
	"github.com/miscco/NM-HFO/column"
	"github.com/miscco/NM-HFO/datatap"
	"github.com/miscco/NM-HFO/noise"
	"github.com/miscco/NM-HFO/srk"
)

// Sim is one configured simulation
type Sim struct {
	Cfg    Config           `desc:"settings of the run"`
	Ctx    column.Context   `desc:"integration context"`
	Pops   []*column.Column `desc:"populations, cortex first"`
	Ig     *srk.Integrator  `desc:"integrator driving the populations"`
	Tap    *datatap.Tap     `desc:"recorded observables, after the onset"`
	BaseIn []float64        `desc:"input of each population outside of stimuli"`
	Tmr    timer.Time       `view:"-" desc:"wall time of the runs"`
	Silent bool             `desc:"if true, Run does not log"`
}

// New builds the simulation for given config, which is copied
func New(cfg *Config) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim.New: invalid config: %w", err)
	}
	sm := &Sim{Cfg: *cfg}
	ctx, err := column.ContextFmRes(cfg.Res)
	if err != nil {
		return nil, fmt.Errorf("sim.New: %w", err)
	}
	sm.Ctx = ctx
	seeder := noise.SeederFor(cfg.Seed)
	kinds := cfg.Pair.Kinds()
	nms := cfg.Pair.Names()
	for i, kind := range kinds {
		pars := column.DefaultParams(kind)
		if err := ApplyParams(pars, cfg.Params[nms[i]], false); err != nil {
			return nil, fmt.Errorf("sim.New: population %s: %w", nms[i], err)
		}
		cl, err := column.New(kind, nms[i], pars, ctx, seeder)
		if err != nil {
			return nil, fmt.Errorf("sim.New: %w", err)
		}
		sm.Pops = append(sm.Pops, cl)
	}
	for _, cp := range cfg.PopCouplings() {
		sm.Pop(cp.Dst).AddAfferent(sm.Pop(cp.Src), cp.Exc, cp.Inh)
	}
	sm.BaseIn = make([]float64, len(sm.Pops))
	for i, cl := range sm.Pops {
		sm.BaseIn[i] = cfg.Inputs[cl.Nm]
	}

	scfg := srk.Config{}
	scfg.Defaults()
	scfg.Dt = ctx.Dt
	scfg.NThreads = cfg.Threads
	scfg.CheckDiv = cfg.Check
	if cfg.Bound > 0 {
		scfg.BoundOn = true
		scfg.Bound.Set(-cfg.Bound, cfg.Bound)
	}
	pops := make([]srk.Population, len(sm.Pops))
	obs := make([]datatap.Observer, len(sm.Pops))
	for i, cl := range sm.Pops {
		pops[i] = cl
		obs[i] = cl
	}
	sm.Ig, err = srk.New(scfg, pops...)
	if err != nil {
		return nil, fmt.Errorf("sim.New: %w", err)
	}
	_, rec := cfg.Steps()
	sm.Tap, err = datatap.New(rec, obs...)
	if err != nil {
		return nil, fmt.Errorf("sim.New: %w", err)
	}
	sm.ApplyStims(0)
	return sm, nil
}

// Pop returns the population of given name, nil if none
func (sm *Sim) Pop(name string) *column.Column {
	for _, cl := range sm.Pops {
		if cl.Nm == name {
			return cl
		}
	}
	return nil
}

// InputAt returns the input of population pi at time t in s: the Level of
// the last active stimulus of the population, or its base input.
func (sm *Sim) InputAt(pi int, t float64) float64 {
	in := sm.BaseIn[pi]
	nm := sm.Pops[pi].Nm
	for i := range sm.Cfg.Stims {
		st := &sm.Cfg.Stims[i]
		if st.Pop == nm && st.Active(t) {
			in = st.Level
		}
	}
	return in
}

// ApplyStims sets the input of every population for time t in s.  The
// input enters the noise drawn at the end of the step starting at t.
func (sm *Sim) ApplyStims(t float64) {
	for pi, cl := range sm.Pops {
		cl.SetInput(sm.InputAt(pi, t))
	}
}

// Time returns the simulated time in s
func (sm *Sim) Time() float64 {
	return float64(sm.Ig.StepN) / float64(sm.Cfg.Res)
}

// Run simulates the onset and then the recorded duration
func (sm *Sim) Run() error {
	onset, rec := sm.Cfg.Steps()
	start := sm.Ig.StepN
	res := float64(sm.Cfg.Res)
	sm.Tmr.Start()
	err := sm.Ig.Run(onset+rec, func(step int) error {
		t := float64(step+1) / res
		if row := step - start - onset; row >= 0 {
			if err := sm.Tap.Record(row, t); err != nil {
				return err
			}
		}
		sm.ApplyStims(t)
		return nil
	})
	sm.Tmr.Stop()
	if err != nil {
		return fmt.Errorf("sim.Run: %w", err)
	}
	if !sm.Silent {
		log.Printf("simulation done: %v s of %v took %6.4g s\n", sm.Time(), sm.Cfg.Pair, sm.Tmr.TotalSecs())
	}
	return nil
}

// Save writes the recorded observables to Cfg.Out, if set
func (sm *Sim) Save() error {
	if sm.Cfg.Out == "" {
		return nil
	}
	if err := sm.Tap.SaveCSV(sm.Cfg.Out); err != nil {
		return fmt.Errorf("sim.Save: %w", err)
	}
	if !sm.Silent {
		log.Printf("saved %d rows to %s\n", sm.Tap.N, sm.Cfg.Out)
	}
	return nil
}

// Report returns the timing and size report of the run
func (sm *Sim) Report() string {
	s := fmt.Sprintf("Sim: %v\t Res: %d\t Steps: %d\t Secs: %6.4g\n", sm.Cfg.Pair, sm.Cfg.Res, sm.Ig.StepN, sm.Tmr.TotalSecs())
	s += sm.Tap.SizeReport()
	s += sm.Ig.TimerReport()
	return s
}
