// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package srk is the stochastic fourth order Runge-Kutta driver of a set of
coupled neural-mass columns.

A Step runs RK stages 0..3 over all populations in their fixed order,
completing stage s on every population before any population starts stage
s+1, then finalizes all populations, which also draws the noise for the
next step.  The Integrator holds no numeric state of its own: only the
immutable column.Context and a step counter.

With NThreads > 1 the populations of each stage (and of the finalize) are
evaluated concurrently, with a barrier after every stage and after the
finalize.  Stage s of any population only reads values written during
stage s-1, so the results are identical to the serial order.
*/
package srk

import (
	"fmt"
	"math"
	"sort"

	"github.com/emer/emergent/timer"
	"github.com/emer/etable/minmax"
	"github.com/miscco/NM-HFO/column"
	"golang.org/x/sync/errgroup"
)

// Population is one column as driven by the Integrator
type Population interface {
	// Name returns the name of the population
	Name() string

	// Context returns the integration context the population was built for
	Context() column.Context

	// Stage computes RK stage s
	Stage(ctx column.Context, s int)

	// Finalize combines the stages and refreshes the noise
	Finalize(ctx column.Context)

	// CheckFinite returns a *column.DivergenceError for non-finite state
	CheckFinite() error

	// VarNames returns the names of the state variables
	VarNames() []string

	// VarVal returns the current value of state variable i
	VarVal(i int) float64
}

// Tap is called after the finalize of every step, with the index of that step.
// A non-nil error stops the run.
type Tap func(step int) error

// Config are the integrator settings
type Config struct {
	Dt       float64    `def:"0.1" desc:"time step in ms -- if 0, the step of the populations is used, otherwise it must match it"`
	NThreads int        `def:"1" min:"1" desc:"number of goroutines evaluating the populations of a stage -- 1 is serial"`
	CheckDiv bool       `def:"true" desc:"check all state variables for NaN and Inf after every step"`
	BoundOn  bool       `def:"false" desc:"also check every state variable against Bound when CheckDiv is on -- off by default: the default CA3 membranes pass through transients of order 1e5 mV before relaxing to rest"`
	Bound    minmax.F64 `viewif:"BoundOn" desc:"allowed range of every state variable when BoundOn -- not checked if Min > Max"`
}

func (cf *Config) Defaults() {
	cf.Dt = 0.1
	cf.NThreads = 1
	cf.CheckDiv = true
	cf.BoundOn = false
	cf.Bound.Set(-1e6, 1e6)
}

// Integrator is the SRK4 driver of a fixed, ordered set of populations
type Integrator struct {
	Cfg      Config                 `desc:"settings"`
	Ctx      column.Context         `desc:"integration context threaded to every call"`
	Pops     []Population           `desc:"populations, in evaluation order"`
	StepN    int                    `inactive:"+" desc:"number of completed steps"`
	ThrPops  [][]Population         `view:"-" desc:"populations assigned to each thread"`
	FunTimes map[string]*timer.Time `view:"-" desc:"timers for the stage and finalize functions"`
}

var stageNames = [4]string{"Stage0", "Stage1", "Stage2", "Stage3"}

// New returns an integrator for the populations, which must all share the
// same integration context.
func New(cfg Config, pops ...Population) (*Integrator, error) {
	if len(pops) == 0 {
		return nil, fmt.Errorf("srk.New: no populations")
	}
	ctx := pops[0].Context()
	if cfg.Dt != 0 && math.Abs(cfg.Dt-ctx.Dt) > 1e-12*cfg.Dt {
		return nil, fmt.Errorf("srk.New: time step %g does not match population %q step %g", cfg.Dt, pops[0].Name(), ctx.Dt)
	}
	for _, p := range pops[1:] {
		if p.Context() != ctx {
			return nil, fmt.Errorf("srk.New: population %q has time step %g, %q has %g", p.Name(), p.Context().Dt, pops[0].Name(), ctx.Dt)
		}
	}
	cfg.Dt = ctx.Dt
	if cfg.NThreads < 1 {
		cfg.NThreads = 1
	}
	if cfg.NThreads > len(pops) {
		cfg.NThreads = len(pops)
	}
	ig := &Integrator{Cfg: cfg, Ctx: ctx, Pops: pops}
	ig.BuildThreads()
	return ig, nil
}

// BuildThreads assigns the populations to threads round-robin
func (ig *Integrator) BuildThreads() {
	ig.ThrPops = make([][]Population, ig.Cfg.NThreads)
	for i, p := range ig.Pops {
		th := i % ig.Cfg.NThreads
		ig.ThrPops[th] = append(ig.ThrPops[th], p)
	}
	ig.FunTimes = make(map[string]*timer.Time)
}

// ThrPopFun calls the function on every population, concurrently per
// thread if NThreads > 1 and otherwise in order, returning only when all
// calls are done.  It returns the first error: in population order when
// serial, and the first to occur across threads otherwise.  A thread stops
// at its first error.
func (ig *Integrator) ThrPopFun(fun func(p Population) error, funame string) error {
	ig.FunTimerStart(funame)
	defer ig.FunTimerStop(funame)
	if ig.Cfg.NThreads <= 1 {
		for _, p := range ig.Pops {
			if err := fun(p); err != nil {
				return err
			}
		}
		return nil
	}
	var eg errgroup.Group
	for _, thp := range ig.ThrPops {
		eg.Go(func() error {
			for _, p := range thp {
				if err := fun(p); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return eg.Wait()
}

// Step advances all populations by one time step
func (ig *Integrator) Step() error {
	for s := 0; s < 4; s++ {
		err := ig.ThrPopFun(func(p Population) error {
			p.Stage(ig.Ctx, s)
			return nil
		}, stageNames[s])
		if err != nil {
			return err
		}
	}
	err := ig.ThrPopFun(func(p Population) error {
		p.Finalize(ig.Ctx)
		return nil
	}, "Finalize")
	if err != nil {
		return err
	}
	stp := ig.StepN
	ig.StepN++
	if !ig.Cfg.CheckDiv {
		return nil
	}
	return ig.ThrPopFun(func(p Population) error { return ig.CheckPop(p, stp) }, "Check")
}

// Run runs n steps, calling tap (if non-nil) after each.  It stops at the
// first divergence or tap error.
func (ig *Integrator) Run(n int, tap Tap) error {
	for i := 0; i < n; i++ {
		stp := ig.StepN
		if err := ig.Step(); err != nil {
			return err
		}
		if tap != nil {
			if err := tap(stp); err != nil {
				return fmt.Errorf("srk.Run: data tap at step %d: %w", stp, err)
			}
		}
	}
	return nil
}

// CheckPop returns a *column.DivergenceError for the first state variable
// of the population that is NaN, infinite or (if BoundOn) outside Bound,
// recording stp as its step.
func (ig *Integrator) CheckPop(p Population, stp int) error {
	if err := p.CheckFinite(); err != nil {
		if derr, ok := err.(*column.DivergenceError); ok {
			derr.Step = stp
		}
		return err
	}
	bnd := ig.Cfg.Bound
	if !ig.Cfg.BoundOn || bnd.Min > bnd.Max {
		return nil
	}
	for i, nm := range p.VarNames() {
		if v := p.VarVal(i); !bnd.InRange(v) {
			return &column.DivergenceError{Step: stp, Pop: p.Name(), Var: nm, Val: v}
		}
	}
	return nil
}

// Time returns the simulated time in ms
func (ig *Integrator) Time() float64 {
	return float64(ig.StepN) * ig.Ctx.Dt
}

// Reset sets the step counter back to zero and resets the timers.
// The state of the populations is not affected.
func (ig *Integrator) Reset() {
	ig.StepN = 0
	for _, ft := range ig.FunTimes {
		ft.Reset()
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Timing

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (ig *Integrator) FunTimerStart(fun string) {
	ft, ok := ig.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		ig.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (ig *Integrator) FunTimerStop(fun string) {
	ft := ig.FunTimes[fun]
	ft.Stop()
}

// TimerReport returns the amount of time spent in each function
func (ig *Integrator) TimerReport() string {
	s := fmt.Sprintf("TimerReport: steps: %v, NThreads: %v\n", ig.StepN, ig.Cfg.NThreads)
	s += "\tFunction Name\tTotal Secs\tPct\n"
	fnms := make([]string, 0, len(ig.FunTimes))
	for k := range ig.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	tot := 0.0
	for _, fn := range fnms {
		tot += ig.FunTimes[fn].TotalSecs()
	}
	for _, fn := range fnms {
		secs := ig.FunTimes[fn].TotalSecs()
		pct := 0.0
		if tot > 0 {
			pct = 100 * secs / tot
		}
		s += fmt.Sprintf("\t%v \t%6.4g\t%6.4g\n", fn, secs, pct)
	}
	s += fmt.Sprintf("\tTotal   \t%6.4g\n", tot)
	return s
}
