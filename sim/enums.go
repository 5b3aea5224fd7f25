// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"strings"

	"github.com/goki/ki/kit"
	"github.com/miscco/NM-HFO/column"
	"gopkg.in/yaml.v3"
)

// Pair selects the cortical and hippocampal column models of a simulation
type Pair int

//go:generate stringer -type=Pair

var KiT_Pair = kit.Enums.AddEnum(PairN, kit.NotBitFlag, nil)

func (ev Pair) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Pair) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The model pairs
const (
	// HFO is the Cortical column with a CA3 column, both staged
	HFO Pair = iota

	// MEX is the CorticalInc column with a Hippocampal column, both incremental
	MEX

	PairN
)

// Kinds returns the column kinds of the pair, cortex first
func (ev Pair) Kinds() [2]column.Kind {
	if ev == MEX {
		return [2]column.Kind{column.CorticalInc, column.Hippocampal}
	}
	return [2]column.Kind{column.Cortical, column.CA3}
}

// Names returns the population names of the pair, cortex first
func (ev Pair) Names() [2]string {
	if ev == MEX {
		return [2]string{"Cortex", "Hippo"}
	}
	return [2]string{"Cortex", "CA3"}
}

// ParsePair returns the pair of given name, ignoring case
func ParsePair(s string) (Pair, error) {
	var ev Pair
	if err := ev.FromString(strings.ToUpper(strings.TrimSpace(s))); err != nil {
		return HFO, fmt.Errorf("unknown pair %q: must be hfo or mex", s)
	}
	if ev == PairN {
		return HFO, fmt.Errorf("unknown pair %q: must be hfo or mex", s)
	}
	return ev, nil
}

func (ev Pair) MarshalYAML() (any, error) {
	return strings.ToLower(ev.String()), nil
}

func (ev *Pair) UnmarshalYAML(nd *yaml.Node) error {
	var s string
	if err := nd.Decode(&s); err != nil {
		return err
	}
	p, err := ParsePair(s)
	if err != nil {
		return err
	}
	*ev = p
	return nil
}
