// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import "fmt"

// ConfigError is an invalid column configuration.  It is fatal: the
// column is not constructed.
type ConfigError struct {
	Pop   string `desc:"name of the column"`
	Field string `desc:"parameter path of the offending value"`
	Msg   string `desc:"what is wrong with it"`
	Err   error  `desc:"underlying error, if any"`
}

func (er *ConfigError) Error() string {
	s := fmt.Sprintf("column %q: invalid %s: %s", er.Pop, er.Field, er.Msg)
	if er.Err != nil {
		s += ": " + er.Err.Error()
	}
	return s
}

func (er *ConfigError) Unwrap() error {
	return er.Err
}

// DivergenceError reports a state variable that became NaN, infinite or
// left its allowed range after a step.  The run cannot continue.
type DivergenceError struct {
	Step int     `desc:"index of the step that produced the value, -1 if unknown"`
	Pop  string  `desc:"name of the column"`
	Var  string  `desc:"name of the variable"`
	Val  float64 `desc:"offending value"`
}

func (er *DivergenceError) Error() string {
	return fmt.Sprintf("column %q: variable %s diverged to %g at step %d", er.Pop, er.Var, er.Val, er.Step)
}
