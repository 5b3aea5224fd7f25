// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srk

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/miscco/NM-HFO/column"
	"github.com/miscco/NM-HFO/noise"
)

func testCtx(t *testing.T) column.Context {
	ctx, err := column.NewContext(0.1)
	if err != nil {
		t.Fatal(err)
	}
	return ctx
}

// recPop records the order of the calls it receives
type recPop struct {
	nm  string
	ctx column.Context
	log *[]string
}

func (rp *recPop) Name() string            { return rp.nm }
func (rp *recPop) Context() column.Context { return rp.ctx }
func (rp *recPop) CheckFinite() error      { return nil }
func (rp *recPop) VarNames() []string      { return nil }
func (rp *recPop) VarVal(i int) float64    { return 0 }

func (rp *recPop) Stage(ctx column.Context, s int) {
	*rp.log = append(*rp.log, fmt.Sprintf("%s%d", rp.nm, s))
}

func (rp *recPop) Finalize(ctx column.Context) {
	*rp.log = append(*rp.log, rp.nm+"F")
}

func TestStageOrder(t *testing.T) {
	ctx := testCtx(t)
	var log []string
	a := &recPop{nm: "a", ctx: ctx, log: &log}
	b := &recPop{nm: "b", ctx: ctx, log: &log}
	cfg := Config{}
	cfg.Defaults()
	ig, err := New(cfg, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if err := ig.Step(); err != nil {
		t.Fatal(err)
	}
	cor := []string{"a0", "b0", "a1", "b1", "a2", "b2", "a3", "b3", "aF", "bF"}
	if fmt.Sprint(log) != fmt.Sprint(cor) {
		t.Errorf("call order: %v, want: %v\n", log, cor)
	}
	if ig.StepN != 1 {
		t.Errorf("StepN: %v\n", ig.StepN)
	}
}

func TestNewErrors(t *testing.T) {
	ctx := testCtx(t)
	ctx2, _ := column.NewContext(0.05)
	var log []string
	cfg := Config{}
	cfg.Defaults()
	if _, err := New(cfg); err == nil {
		t.Errorf("expected error for no populations\n")
	}
	if _, err := New(cfg, &recPop{nm: "a", ctx: ctx2, log: &log}); err == nil {
		t.Errorf("expected error for mismatched dt\n")
	}
	if _, err := New(Config{}, &recPop{nm: "a", ctx: ctx, log: &log}, &recPop{nm: "b", ctx: ctx2, log: &log}); err == nil {
		t.Errorf("expected error for mixed dt\n")
	}
	ig, err := New(Config{NThreads: 8}, &recPop{nm: "a", ctx: ctx2, log: &log})
	if err != nil {
		t.Fatal(err)
	}
	if ig.Cfg.Dt != 0.05 || ig.Cfg.NThreads != 1 {
		t.Errorf("config not normalized: %+v\n", ig.Cfg)
	}
}

// buildPops builds two coupled pairs of columns, seeded identically for a given seed
func buildPops(t *testing.T, seed int64) []*column.Column {
	ctx := testCtx(t)
	sd := noise.NewSeqSeeder(seed)
	var cls []*column.Column
	for _, k := range []column.Kind{column.Cortical, column.CA3, column.CorticalInc, column.Hippocampal} {
		cl, err := column.New(k, k.String(), nil, ctx, sd)
		if err != nil {
			t.Fatal(err)
		}
		cls = append(cls, cl)
	}
	cls[1].AddAfferent(cls[0], 0.1, 0)
	cls[3].AddAfferent(cls[2], 0.1, 0)
	cls[0].AddAfferent(cls[3], 0.01, 0.01)
	return cls
}

func asPops(cls []*column.Column) []Population {
	pops := make([]Population, len(cls))
	for i, cl := range cls {
		pops[i] = cl
	}
	return pops
}

func TestParallelSerial(t *testing.T) {
	ser := buildPops(t, 7)
	par := buildPops(t, 7)
	cfg := Config{}
	cfg.Defaults()
	igs, err := New(cfg, asPops(ser)...)
	if err != nil {
		t.Fatal(err)
	}
	cfg.NThreads = 3
	igp, err := New(cfg, asPops(par)...)
	if err != nil {
		t.Fatal(err)
	}
	if len(igp.ThrPops) != 3 {
		t.Fatalf("threads: %d\n", len(igp.ThrPops))
	}
	if err := igs.Run(500, nil); err != nil {
		t.Fatal(err)
	}
	if err := igp.Run(500, nil); err != nil {
		t.Fatal(err)
	}
	for ci := range ser {
		for vi := range ser[ci].Vars {
			if sv, pv := ser[ci].VarVal(vi), par[ci].VarVal(vi); sv != pv {
				t.Errorf("%s var %s: serial %v != parallel %v\n", ser[ci].Nm, ser[ci].VarNames()[vi], sv, pv)
			}
		}
	}
}

func TestRunTap(t *testing.T) {
	cls := buildPops(t, 1)
	cfg := Config{}
	cfg.Defaults()
	ig, err := New(cfg, asPops(cls)...)
	if err != nil {
		t.Fatal(err)
	}
	var steps []int
	err = ig.Run(20, func(step int) error {
		steps = append(steps, step)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(steps) != 20 || steps[0] != 0 || steps[19] != 19 {
		t.Errorf("tap steps: %v\n", steps)
	}
	if ig.Time() != 20*0.1 {
		t.Errorf("time: %v\n", ig.Time())
	}

	stop := errors.New("stop")
	n := 0
	err = ig.Run(10, func(step int) error {
		n++
		if n == 3 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("expected tap error, got: %v\n", err)
	}
	if n != 3 || ig.StepN != 23 {
		t.Errorf("run did not stop at the tap error: n: %v, steps: %v\n", n, ig.StepN)
	}
	if ig.TimerReport() == "" {
		t.Errorf("empty timer report\n")
	}
}

func TestDivergence(t *testing.T) {
	ctx := testCtx(t)
	cl, err := column.New(column.CA3, "ca3", nil, ctx, noise.NewSeqSeeder(1))
	if err != nil {
		t.Fatal(err)
	}
	cfg := Config{}
	cfg.Defaults()
	cfg.BoundOn = true
	cfg.Bound.Set(-100, 100)
	ig, err := New(cfg, cl)
	if err != nil {
		t.Fatal(err)
	}
	if err := ig.Run(5, nil); err != nil {
		t.Fatal(err)
	}
	cl.Vars[0].Val = 5000
	err = ig.Step()
	var derr *column.DivergenceError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DivergenceError, got: %v\n", err)
	}
	if derr.Step != 5 || derr.Pop != "ca3" || derr.Var != "Vp" {
		t.Errorf("wrong divergence: %+v\n", derr)
	}

	cl.Vars[3].Val = math.NaN()
	err = ig.Step()
	if !errors.As(err, &derr) || derr.Step != 6 {
		t.Errorf("expected NaN divergence at step 6, got: %v\n", err)
	}

	// unchecked runs pass the NaN on
	ig.Cfg.CheckDiv = false
	if err := ig.Step(); err != nil {
		t.Errorf("unchecked step returned: %v\n", err)
	}
}

func TestThreadError(t *testing.T) {
	ctx := testCtx(t)
	var log []string
	pops := []Population{
		&recPop{nm: "a", ctx: ctx, log: &log},
		&recPop{nm: "b", ctx: ctx, log: &log},
		&recPop{nm: "c", ctx: ctx, log: &log},
	}
	bad := errors.New("bad")
	fun := func(p Population) error {
		log = append(log, p.Name())
		if p.Name() == "b" {
			return bad
		}
		return nil
	}
	ig, err := New(Config{NThreads: 1}, pops...)
	if err != nil {
		t.Fatal(err)
	}
	if err := ig.ThrPopFun(fun, "Test"); !errors.Is(err, bad) {
		t.Errorf("serial: expected error, got: %v\n", err)
	}
	if fmt.Sprint(log) != fmt.Sprint([]string{"a", "b"}) {
		t.Errorf("serial calls after the error: %v\n", log)
	}

	ig, err = New(Config{NThreads: 3}, pops...)
	if err != nil {
		t.Fatal(err)
	}
	err = ig.ThrPopFun(func(p Population) error {
		if p.Name() == "c" {
			return bad
		}
		return nil
	}, "Test")
	if !errors.Is(err, bad) {
		t.Errorf("threaded: expected error, got: %v\n", err)
	}

	cls := buildPops(t, 3)
	cfg := Config{}
	cfg.Defaults()
	cfg.NThreads = 2
	igc, err := New(cfg, asPops(cls)...)
	if err != nil {
		t.Fatal(err)
	}
	if err := igc.Run(3, nil); err != nil {
		t.Fatal(err)
	}
	cls[3].Vars[0].Val = math.Inf(1)
	err = igc.Step()
	var derr *column.DivergenceError
	if !errors.As(err, &derr) {
		t.Fatalf("threaded step: expected DivergenceError, got: %v\n", err)
	}
	// the infinity reaches the coupled populations within the same step
	if derr.Step != 3 {
		t.Errorf("wrong divergence step: %+v\n", derr)
	}
}

func TestStiffTransient(t *testing.T) {
	ctx := testCtx(t)
	md := column.DefaultParams(column.CA3)
	md.NoiseParams().On = false
	cl, err := column.New(column.CA3, "ca3", md, ctx, noise.NewSeqSeeder(1))
	if err != nil {
		t.Fatal(err)
	}
	cfg := Config{}
	cfg.Defaults()
	ig, err := New(cfg, cl)
	if err != nil {
		t.Fatal(err)
	}
	vmax := 0.0
	err = ig.Run(100, func(step int) error {
		if v, _ := cl.VarByName("Vf"); math.Abs(v) > vmax {
			vmax = math.Abs(v)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("default checks stopped the CA3 transient: %v\n", err)
	}
	if vmax < 1000 {
		t.Errorf("no transient in Vf: max |Vf| %v\n", vmax)
	}
	for _, nm := range []string{"Vp", "Vf"} {
		if v, _ := cl.VarByName(nm); !(v > -100 && v < 100) {
			t.Errorf("%s did not relax: %v\n", nm, v)
		}
	}
}
