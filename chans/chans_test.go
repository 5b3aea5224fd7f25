// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"math"
	"testing"
)

const difTol = 1.0e-12

func TestCurrents(t *testing.T) {
	ch := Chans{}
	ch.Defaults()

	vs := []float64{-80, -70, -60, -50, 0}
	corL := []float64{-20, -10, 0, 10, 60}
	corE := []float64{-1.6, -1.4, -1.2, -1, 0}
	corI := []float64{-400, 0, 400, 800, 2800}
	for i, v := range vs {
		if dif := math.Abs(ch.Leak(1, v) - corL[i]); dif > difTol {
			t.Errorf("leak err: v: %v, got: %v, cor: %v\n", v, ch.Leak(1, v), corL[i])
		}
		if dif := math.Abs(ch.Exc(0.02, v) - corE[i]); dif > difTol {
			t.Errorf("exc err: v: %v, got: %v, cor: %v\n", v, ch.Exc(0.02, v), corE[i])
		}
		if dif := math.Abs(ch.Inh(1, 40, v) - corI[i]); dif > difTol {
			t.Errorf("inh err: v: %v, got: %v, cor: %v\n", v, ch.Inh(1, 40, v), corI[i])
		}
	}
}
