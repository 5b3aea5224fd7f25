// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package noise provides the seeded Gaussian random streams that drive the
stochastic terms of neural-mass columns.

Each Stream owns its own generator (erand.SysRand), seeded from an
injected Seeder: SeqSeeder gives reproducible runs, SysSeeder seeds from
system entropy.  A Bank holds the streams of one column together with the
snapshot of their most recent draws, which is refreshed exactly once per
integration step.
*/
package noise

import (
	"errors"
	"fmt"
	"math"
	randv2 "math/rand/v2"

	"github.com/emer/emergent/erand"
)

// ErrNegSigma is returned when a stream standard deviation is negative or not finite.
var ErrNegSigma = errors.New("noise standard deviation must be finite and non-negative")

// Stream is one independent Gaussian random stream with its own seeded generator.
// Mean and Var of the embedded RndParams are the mean and standard deviation.
type Stream struct {
	erand.RndParams
	Seed int64      `inactive:"+" desc:"seed the generator was initialized with"`
	Rand erand.Rand `view:"-" desc:"the generator owned by this stream"`
}

// NewStream returns a Gaussian stream with given mean and standard deviation,
// seeded with seed.  Returns an error wrapping ErrNegSigma for invalid sigma.
func NewStream(mean, sigma float64, seed int64) (*Stream, error) {
	if sigma < 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("noise.NewStream: sigma %g: %w", sigma, ErrNegSigma)
	}
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, fmt.Errorf("noise.NewStream: mean %g is not finite", mean)
	}
	st := &Stream{Seed: seed}
	st.Dist = erand.Gaussian
	st.Mean = mean
	st.Var = sigma
	st.Rand = erand.NewSysRand(seed)
	return st, nil
}

// Gen draws one sample from the stream.
// A zero standard deviation returns the mean without consuming the generator.
func (st *Stream) Gen() float64 {
	if st.Var == 0 {
		return st.Mean
	}
	return erand.GaussianGen(st.Mean, st.Var, -1, st.Rand)
}

// Sigma returns the standard deviation of the stream
func (st *Stream) Sigma() float64 {
	return st.Var
}

//////////////////////////////////////////////////////////////////////////////////////
//  Seeders

// Seeder provides the seeds for successive streams.
type Seeder interface {
	// NextSeed returns the seed for the next stream to be created.
	NextSeed() int64
}

// SeqSeeder hands out the sequential seeds Base, Base+1, ... -- used for
// reproducible runs and tests.
type SeqSeeder struct {
	Base int64 `desc:"first seed handed out"`
	n    int64
}

// NewSeqSeeder returns a sequential seeder starting at base
func NewSeqSeeder(base int64) *SeqSeeder {
	return &SeqSeeder{Base: base}
}

func (sd *SeqSeeder) NextSeed() int64 {
	s := sd.Base + sd.n
	sd.n++
	return s
}

// Reset starts handing out seeds from Base again
func (sd *SeqSeeder) Reset() {
	sd.n = 0
}

// SysSeeder seeds streams from system entropy.
type SysSeeder struct{}

func (sd SysSeeder) NextSeed() int64 {
	return randv2.Int64()
}

// SeederFor returns a SeqSeeder for a nonzero seed, and a SysSeeder otherwise.
func SeederFor(seed int64) Seeder {
	if seed == 0 {
		return SysSeeder{}
	}
	return NewSeqSeeder(seed)
}
