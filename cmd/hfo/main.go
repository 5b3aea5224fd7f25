// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// hfo runs a cortical column coupled to a hippocampal column with the
// stochastic RK4 integrator, records their observables after an onset
// period, and saves them as csv.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/miscco/NM-HFO/column"
	"github.com/miscco/NM-HFO/sim"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "hfo",
		Short: "Neural-mass simulation of high-frequency oscillations",
		Long: `hfo integrates a cortical and a hippocampal neural-mass column with a
stochastic fourth order Runge-Kutta scheme and records their potentials.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		newRunCmd(),
		newParamsCmd(),
		newVersionCmd(),
	)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := configFmFlags(cmd)
			if err != nil {
				return err
			}
			sm, err := sim.New(cf)
			if err != nil {
				return err
			}
			if err := sm.Run(); err != nil {
				return err
			}
			if err := sm.Save(); err != nil {
				return err
			}
			if rep, _ := cmd.Flags().GetBool("report"); rep {
				fmt.Print(sm.Report())
			}
			return nil
		},
	}
	cmd.Flags().String("config", "", "yaml config file, applied before the other flags")
	cmd.Flags().String("pair", "hfo", "model pair: hfo (Cortical + CA3) or mex (CorticalInc + Hippocampal)")
	cmd.Flags().Float64("duration", 30, "recorded duration in s")
	cmd.Flags().Float64("onset", 10, "time in s simulated before recording")
	cmd.Flags().Int("res", 10000, "steps per s")
	cmd.Flags().Int64("seed", 0, "base seed of the noise, 0 for system entropy")
	cmd.Flags().Int("threads", 1, "goroutines per stage")
	cmd.Flags().Float64("bound", 0, "stop when a state variable leaves [-bound, bound], 0 for no bound")
	cmd.Flags().String("out", "", "csv file for the recorded observables")
	cmd.Flags().Bool("report", false, "print the timing and size report")
	return cmd
}

// configFmFlags loads the config file, if any, and applies the flags that
// were set explicitly on top of it.
func configFmFlags(cmd *cobra.Command) (*sim.Config, error) {
	fl := cmd.Flags()
	var cf *sim.Config
	if fn, _ := fl.GetString("config"); fn != "" {
		lcf, err := sim.LoadConfig(fn)
		if err != nil {
			return nil, err
		}
		cf = lcf
	} else {
		cf = &sim.Config{}
		cf.Defaults()
	}
	if fl.Changed("pair") {
		ps, _ := fl.GetString("pair")
		p, err := sim.ParsePair(ps)
		if err != nil {
			return nil, err
		}
		cf.Pair = p
	}
	if fl.Changed("duration") {
		cf.Duration, _ = fl.GetFloat64("duration")
	}
	if fl.Changed("onset") {
		cf.Onset, _ = fl.GetFloat64("onset")
	}
	if fl.Changed("res") {
		cf.Res, _ = fl.GetInt("res")
	}
	if fl.Changed("seed") {
		cf.Seed, _ = fl.GetInt64("seed")
	}
	if fl.Changed("threads") {
		cf.Threads, _ = fl.GetInt("threads")
	}
	if fl.Changed("bound") {
		cf.Bound, _ = fl.GetFloat64("bound")
	}
	if fl.Changed("out") {
		cf.Out, _ = fl.GetString("out")
	}
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return cf, nil
}

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the default parameters of the column kinds as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := []column.Kind{column.Cortical, column.CA3, column.CorticalInc, column.Hippocampal}
			if ks, _ := cmd.Flags().GetString("kind"); ks != "" {
				var k column.Kind
				if err := k.FromString(ks); err != nil || k == column.KindN {
					return fmt.Errorf("unknown column kind: %s", ks)
				}
				kinds = []column.Kind{k}
			}
			out := make(map[string]column.Model, len(kinds))
			for _, k := range kinds {
				out[k.String()] = column.DefaultParams(k)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().String("kind", "", "column kind: Cortical, CA3, CorticalInc or Hippocampal -- all if empty")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("hfo version %s\n", version)
		},
	}
}

func init() {
	log.SetFlags(log.Ltime)
}
