// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package noise

import "fmt"

// Spec specifies one stream of a Bank
type Spec struct {
	Mean  float64 `desc:"mean of the stream"`
	Sigma float64 `min:"0" desc:"standard deviation of the stream"`
}

// Bank is the set of noise streams owned by one column, together with the
// snapshot Vals of their current draws.  Vals[i] belongs to Streams[i].
type Bank struct {
	Streams []*Stream `desc:"the streams, in the order they were specified"`
	Vals    []float64 `desc:"current draws -- constant for a whole integration step"`
}

// NewBank creates one stream per spec, seeded in order from seeder, and
// takes the first draw of every stream.  Construction order is the seed
// order, so a SeqSeeder makes the whole bank reproducible.
func NewBank(specs []Spec, seeder Seeder) (*Bank, error) {
	bk := &Bank{}
	bk.Streams = make([]*Stream, len(specs))
	bk.Vals = make([]float64, len(specs))
	for i, sp := range specs {
		st, err := NewStream(sp.Mean, sp.Sigma, seeder.NextSeed())
		if err != nil {
			return nil, fmt.Errorf("stream %d: %w", i, err)
		}
		bk.Streams[i] = st
		bk.Vals[i] = st.Gen()
	}
	return bk, nil
}

// Len returns the number of streams
func (bk *Bank) Len() int {
	return len(bk.Streams)
}

// Refresh draws a new value from every stream and adds input to it.
func (bk *Bank) Refresh(input float64) {
	for i, st := range bk.Streams {
		bk.Vals[i] = st.Gen() + input
	}
}

// Snapshot returns a copy of the current draws
func (bk *Bank) Snapshot() []float64 {
	vs := make([]float64, len(bk.Vals))
	copy(vs, bk.Vals)
	return vs
}
