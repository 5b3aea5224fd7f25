// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hfo is the overall repository for the neural-mass simulation of
high-frequency oscillations (HFOs) in coupled cortical and hippocampal
columns, integrated with a stochastic fourth order Runge-Kutta (SRK4) scheme.

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* column: the population models (Cortical, CA3, CorticalInc, Hippocampal), their
state variables, the two stage families of the SRK4 update, coupling views and
parameter overrides.

* srk: the Integrator that runs the four stages and the finalize of every step
over all populations, optionally in parallel, with a divergence check.

* noise: seeded Gaussian noise streams and the per-population stream bank.

* sigmoid, chans: the firing rate function and the ohmic membrane currents.

* datatap: records the observables of each step into an etable.Table for csv export.

* sim: the headless driver reading a yaml config, with onset, stimulation
protocol and timing.

* cmd/hfo: the command line program.
*/
package hfo
