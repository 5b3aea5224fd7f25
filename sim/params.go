// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"

	"github.com/emer/emergent/params"
	"github.com/miscco/NM-HFO/column"
)

// ApplyParams applies path-based parameter overrides to the model, where
// the first path element is a selector that is ignored, e.g.,
// "Column.P.Qmax": "6e-3".  Derived parameters are updated afterwards.
func ApplyParams(md column.Model, pars params.Params, setMsg bool) error {
	if len(pars) == 0 {
		return nil
	}
	err := pars.Apply(md, setMsg)
	md.Update()
	if err != nil {
		return fmt.Errorf("ApplyParams on %v: %w", md.Kind(), err)
	}
	return nil
}
