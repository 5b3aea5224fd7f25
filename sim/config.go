// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/emer/emergent/params"
	"gopkg.in/yaml.v3"
)

// Stim sets the external input of a population to Level during
// [Start, Stop) seconds of simulated time, including the onset.
type Stim struct {
	Pop   string  `yaml:"pop" desc:"name of the stimulated population"`
	Start float64 `yaml:"start" desc:"start of the stimulus, in s"`
	Stop  float64 `yaml:"stop" desc:"end of the stimulus, in s"`
	Level float64 `yaml:"level" desc:"input during the stimulus, replacing the base input"`
}

// Active returns true if the stimulus is on at time t in s
func (st *Stim) Active(t float64) bool {
	return t >= st.Start && t < st.Stop
}

// Coupling connects the coupling view of population Src to the pyramidal
// firing rate of population Dst.
type Coupling struct {
	Src string  `yaml:"src" desc:"name of the sending population"`
	Dst string  `yaml:"dst" desc:"name of the receiving population"`
	Exc float64 `yaml:"exc" desc:"weight of the excitatory view of Src"`
	Inh float64 `yaml:"inh" desc:"weight of the inhibitory view of Src"`
}

// Config are the settings of one simulation run
type Config struct {
	Pair      Pair                     `yaml:"pair" def:"hfo" desc:"model pair: hfo is Cortical + CA3, mex is CorticalInc + Hippocampal"`
	Duration  float64                  `yaml:"duration" def:"30" desc:"recorded duration in s, after the onset"`
	Onset     float64                  `yaml:"onset" def:"10" desc:"time in s simulated before recording starts"`
	Res       int                      `yaml:"res" def:"10000" desc:"number of steps per s -- the time step is 1000 / Res ms"`
	Seed      int64                    `yaml:"seed" def:"0" desc:"base seed of the noise streams -- 0 seeds from system entropy"`
	Threads   int                      `yaml:"threads" def:"1" min:"1" desc:"number of goroutines per stage"`
	Check     bool                     `yaml:"check" def:"true" desc:"check for NaN and Inf state after every step"`
	Bound     float64                  `yaml:"bound" def:"0" desc:"if > 0 and check is on, also stop when a state variable leaves [-bound, bound]"`
	Inputs    map[string]float64       `yaml:"inputs" desc:"constant external input per population"`
	Stims     []Stim                   `yaml:"stims" desc:"stimulation protocol"`
	Couplings []Coupling               `yaml:"couplings" desc:"inter-population couplings -- if absent, the cortex drives the second population with Exc = DefaultExc"`
	Params    map[string]params.Params `yaml:"params" desc:"parameter overrides per population, by path, e.g., Column.Noise.Dphi"`
	Out       string                   `yaml:"out" desc:"csv file to save the recorded observables to -- none if empty"`
}

// DefaultExc is the excitatory weight of the default cortex coupling
const DefaultExc = 0.1

func (cf *Config) Defaults() {
	cf.Pair = HFO
	cf.Duration = 30
	cf.Onset = 10
	cf.Res = 10000
	cf.Seed = 0
	cf.Threads = 1
	cf.Check = true
	cf.Bound = 0
}

// Steps returns the number of onset steps and of recorded steps
func (cf *Config) Steps() (onset, rec int) {
	res := float64(cf.Res)
	return int(math.Round(cf.Onset * res)), int(math.Round(cf.Duration * res))
}

// PopCouplings returns the couplings, or the default coupling if none are set
func (cf *Config) PopCouplings() []Coupling {
	if cf.Couplings != nil {
		return cf.Couplings
	}
	nms := cf.Pair.Names()
	return []Coupling{{Src: nms[0], Dst: nms[1], Exc: DefaultExc}}
}

func (cf *Config) hasPop(nm string) bool {
	nms := cf.Pair.Names()
	return nm == nms[0] || nm == nms[1]
}

// Validate returns an error describing every invalid setting
func (cf *Config) Validate() error {
	var errs []error
	if cf.Pair < 0 || cf.Pair >= PairN {
		errs = append(errs, fmt.Errorf("pair: invalid %d", int(cf.Pair)))
	}
	if cf.Res <= 0 {
		errs = append(errs, fmt.Errorf("res: must be positive, is %d", cf.Res))
	}
	if !(cf.Duration >= 0) || math.IsInf(cf.Duration, 0) {
		errs = append(errs, fmt.Errorf("duration: must be finite and non-negative, is %g", cf.Duration))
	}
	if !(cf.Onset >= 0) || math.IsInf(cf.Onset, 0) {
		errs = append(errs, fmt.Errorf("onset: must be finite and non-negative, is %g", cf.Onset))
	}
	if !(cf.Bound >= 0) || math.IsInf(cf.Bound, 0) {
		errs = append(errs, fmt.Errorf("bound: must be finite and non-negative, is %g", cf.Bound))
	}
	if cf.Threads < 1 {
		errs = append(errs, fmt.Errorf("threads: must be at least 1, is %d", cf.Threads))
	}
	for nm := range cf.Inputs {
		if !cf.hasPop(nm) {
			errs = append(errs, fmt.Errorf("inputs: unknown population %q for pair %v", nm, cf.Pair))
		}
	}
	for nm := range cf.Params {
		if !cf.hasPop(nm) {
			errs = append(errs, fmt.Errorf("params: unknown population %q for pair %v", nm, cf.Pair))
		}
	}
	for i, st := range cf.Stims {
		if !cf.hasPop(st.Pop) {
			errs = append(errs, fmt.Errorf("stims[%d]: unknown population %q for pair %v", i, st.Pop, cf.Pair))
		}
		if !(st.Start < st.Stop) {
			errs = append(errs, fmt.Errorf("stims[%d]: start %g must be before stop %g", i, st.Start, st.Stop))
		}
	}
	for i, cp := range cf.Couplings {
		if !cf.hasPop(cp.Src) || !cf.hasPop(cp.Dst) {
			errs = append(errs, fmt.Errorf("couplings[%d]: unknown population in %q -> %q for pair %v", i, cp.Src, cp.Dst, cf.Pair))
		}
	}
	return errors.Join(errs...)
}

// ReadConfig reads a yaml config from r on top of the defaults.
// Unknown fields are an error.
func ReadConfig(r io.Reader) (*Config, error) {
	cf := &Config{}
	cf.Defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cf, nil
}

// LoadConfig reads a yaml config file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cf, err := ReadConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cf, nil
}

// SaveConfig writes the config as yaml to given file
func (cf *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(cf)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
