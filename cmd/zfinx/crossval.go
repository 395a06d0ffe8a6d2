package main

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-zfinx/zfinx"
	"github.com/ajroetker/go-zfinx/zfinx/crossval"
)

type crossvalFlags struct {
	ref, dut      string
	samples       int
	seed          uint64
	ops           []string
	all           bool
	nanAgnostic   bool
	strict        bool
	workers       int
	maxMismatches int
	lang          string
}

func newCrossvalCmd(g *globals) *cobra.Command {
	f := &crossvalFlags{}
	cmd := &cobra.Command{
		Use:   "crossval",
		Short: "Compare two backends on special and random operands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tag, err := language.Parse(f.lang)
			if err != nil {
				return fmt.Errorf("bad --lang: %w", err)
			}
			ref, err := g.unitNamed(f.ref)
			if err != nil {
				return err
			}
			dut, err := g.unitNamed(f.dut)
			if err != nil {
				return err
			}

			cfg := crossval.Config{
				Samples:       f.samples,
				Seed:          f.seed,
				NaNAgnostic:   f.nanAgnostic,
				Workers:       f.workers,
				MaxMismatches: f.maxMismatches,
				Logger:        g.log,
			}
			if !f.strict {
				cfg.Expected = crossval.SaturatedConversion
			}
			switch {
			case len(f.ops) > 0:
				cfg.Ops, err = parseOps(f.ops)
				if err != nil {
					return err
				}
			case f.all:
				cfg.Ops = zfinx.AllOps()
			}

			rep, err := crossval.Compare(cmd.Context(), ref, dut, cfg)
			if err != nil {
				return err
			}
			if err := rep.Write(cmd.OutOrStdout(), tag); err != nil {
				return err
			}
			if !rep.OK() {
				_, n := rep.Totals()
				return fmt.Errorf("%w: %d mismatches", errNotOK, n)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.ref, "ref", zfinx.BackendEmulated, "reference backend")
	fs.StringVar(&f.dut, "dut", zfinx.BackendHardware, "backend under test")
	fs.IntVar(&f.samples, "samples", crossval.DefaultSamples, "random operand tuples per op; negative for specials only")
	fs.Uint64Var(&f.seed, "seed", 1, "random seed")
	fs.StringSliceVar(&f.ops, "ops", nil, "operations to compare (default: those the hardware implements)")
	fs.BoolVar(&f.all, "all", false, "compare every operation, including those the hardware traps")
	fs.BoolVar(&f.nanAgnostic, "nan-agnostic", false, "treat any two NaN results as equal")
	fs.BoolVar(&f.strict, "strict", false, "count saturated fcvt.w.s and fcvt.wu.s results as mismatches")
	fs.IntVar(&f.workers, "workers", 0, "ops compared in parallel (default GOMAXPROCS)")
	fs.IntVar(&f.maxMismatches, "max-mismatches", crossval.DefaultMaxMismatches, "examples kept per op")
	fs.StringVar(&f.lang, "lang", "en", "BCP 47 tag for number formatting")
	cmd.MarkFlagsMutuallyExclusive("ops", "all")
	return cmd
}

func parseOps(names []string) ([]zfinx.Op, error) {
	ops := make([]zfinx.Op, 0, len(names))
	for _, n := range names {
		op, err := zfinx.ParseOp(n)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return lo.Uniq(ops), nil
}
