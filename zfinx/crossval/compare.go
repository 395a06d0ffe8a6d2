// Copyright 2025 go-zfinx Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package crossval runs two zfinx units over the same operands and reports
// where their results differ bit for bit.
package crossval

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-zfinx/internal/log"
	"github.com/ajroetker/go-zfinx/zfinx"
)

// Defaults applied by Compare to zero Config fields.
const (
	DefaultSamples       = 10000
	DefaultMaxMismatches = 16
)

// cancelCheckInterval is how many cases run between context checks.
const cancelCheckInterval = 1024

// Config controls a comparison.
type Config struct {
	// Ops to compare. Empty means zfinx.SupportedOps.
	Ops []zfinx.Op
	// Samples is the number of random tuples per op. Negative means none.
	Samples int
	Seed    uint64
	// MaxMismatches bounds the examples kept per op; all are still counted.
	MaxMismatches int
	// NaNAgnostic treats any two NaN float results as equal.
	NaNAgnostic bool
	// Workers bounds how many ops run at once. Zero means GOMAXPROCS.
	Workers int
	// Expected marks mismatches that are a known difference between the
	// units. They are counted in OpStats.Expected and do not fail the report.
	Expected func(Mismatch) bool
	Logger   *log.Logger
}

func (c Config) withDefaults() Config {
	if len(c.Ops) == 0 {
		c.Ops = zfinx.SupportedOps()
	}
	if c.Samples == 0 {
		c.Samples = DefaultSamples
	}
	if c.MaxMismatches == 0 {
		c.MaxMismatches = DefaultMaxMismatches
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	c.Logger = log.OrDiscard(c.Logger).Module("crossval")
	return c
}

// Mismatch is one tuple on which the units disagree.
type Mismatch struct {
	Op       zfinx.Op
	Operands Case
	Ref, DUT uint32
}

func (m Mismatch) String() string {
	var args string
	switch m.Op.Info().Arity {
	case 1:
		args = fmt.Sprintf("0x%08x", m.Operands.A)
	case 2:
		args = fmt.Sprintf("0x%08x, 0x%08x", m.Operands.A, m.Operands.B)
	default:
		args = fmt.Sprintf("0x%08x, 0x%08x, 0x%08x", m.Operands.A, m.Operands.B, m.Operands.C)
	}
	return fmt.Sprintf("%s(%s): ref 0x%08x, dut 0x%08x", m.Op.Mnemonic(), args, m.Ref, m.DUT)
}

// OpStats is the outcome for one op.
type OpStats struct {
	Op         zfinx.Op
	Cases      int
	Mismatches int
	Expected   int
	Examples   []Mismatch
}

// Report is the outcome of Compare. Stats follow the order of Config.Ops.
type Report struct {
	Ref, DUT string
	Seed     uint64
	Stats    []OpStats
	Elapsed  time.Duration
}

// OK reports whether no op had a mismatch.
func (r *Report) OK() bool {
	return lo.EveryBy(r.Stats, func(s OpStats) bool { return s.Mismatches == 0 })
}

// Totals returns the number of cases and mismatches over all ops.
func (r *Report) Totals() (cases, mismatches int) {
	for _, s := range r.Stats {
		cases += s.Cases
		mismatches += s.Mismatches
	}
	return cases, mismatches
}

// ExpectedTotal returns the number of expected differences over all ops.
func (r *Report) ExpectedTotal() int {
	return lo.SumBy(r.Stats, func(s OpStats) int { return s.Expected })
}

// Mismatches returns the retained examples of every op.
func (r *Report) Mismatches() []Mismatch {
	return lo.FlatMap(r.Stats, func(s OpStats, _ int) []Mismatch { return s.Examples })
}

// Compare evaluates every configured op on ref and dut and records where the
// results differ. Both units must be safe for concurrent use.
//
// A cancelled context stops the run; the error wraps ctx.Err().
func Compare(ctx context.Context, ref, dut zfinx.Unit, cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()
	for _, op := range cfg.Ops {
		if !op.Valid() {
			return nil, fmt.Errorf("crossval: %w: %d", zfinx.ErrUnknownOp, op)
		}
	}
	vec := Generate(cfg.Samples, cfg.Seed)
	rep := &Report{
		Ref:   ref.Name(),
		DUT:   dut.Name(),
		Seed:  cfg.Seed,
		Stats: make([]OpStats, len(cfg.Ops)),
	}
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, op := range cfg.Ops {
		g.Go(func() error {
			st, err := compareOp(ctx, ref, dut, op, vec.Cases(op), cfg)
			rep.Stats[i] = st
			if err != nil {
				return err
			}
			cfg.Logger.Debug("op compared", "op", op.Mnemonic(), "cases", st.Cases,
				"mismatches", st.Mismatches, "expected", st.Expected)
			if st.Mismatches > 0 {
				cfg.Logger.Warn("units disagree", "op", op.Mnemonic(), "mismatches", st.Mismatches)
			}
			if cfg.Logger.Enabled(slog.LevelDebug) {
				for _, m := range st.Examples {
					cfg.Logger.Debug("mismatch", "case", m.String())
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("crossval %s vs %s: %w", rep.Ref, rep.DUT, err)
	}

	rep.Elapsed = time.Since(start)
	cases, mismatches := rep.Totals()
	cfg.Logger.Info("comparison finished", "ref", rep.Ref, "dut", rep.DUT,
		"cases", cases, "mismatches", mismatches, "elapsed", rep.Elapsed)
	return rep, nil
}

func compareOp(ctx context.Context, ref, dut zfinx.Unit, op zfinx.Op, cases []Case, cfg Config) (OpStats, error) {
	st := OpStats{Op: op}
	floatResult := !op.Info().IntResult
	for i, c := range cases {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return st, err
			}
		}
		want := zfinx.Apply(ref, op, c.A, c.B, c.C)
		got := zfinx.Apply(dut, op, c.A, c.B, c.C)
		st.Cases++
		if Equal(want, got, floatResult && cfg.NaNAgnostic) {
			continue
		}
		m := Mismatch{Op: op, Operands: c, Ref: want, DUT: got}
		if cfg.Expected != nil && cfg.Expected(m) {
			st.Expected++
			continue
		}
		st.Mismatches++
		if len(st.Examples) < cfg.MaxMismatches {
			st.Examples = append(st.Examples, m)
		}
	}
	return st, nil
}

// Equal compares two result words. With nanAgnostic, any two NaN patterns are
// equal.
func Equal(a, b uint32, nanAgnostic bool) bool {
	if a == b {
		return true
	}
	return nanAgnostic && zfinx.IsNaN(a) && zfinx.IsNaN(b)
}

// SaturatedConversion is a Config.Expected predicate for fcvt.w.s and
// fcvt.wu.s on operands that raise NV: the emulation wraps the rounded value
// while the FPU saturates it. Either unit may be the saturating one.
func SaturatedConversion(m Mismatch) bool {
	if m.Op != zfinx.OpFCvtWS && m.Op != zfinx.OpFCvtWUS {
		return false
	}
	if zfinx.ToIntFlags(m.Op, zfinx.F32(m.Operands.A)) != zfinx.FlagNV {
		return false
	}
	sat := saturated(m.Op, m.Operands.A)
	return m.DUT == sat || m.Ref == sat
}

// saturated is the RISC-V result of an invalid float-to-int conversion: NaN
// and positive overflow give the maximum, negative overflow the minimum.
func saturated(op zfinx.Op, a uint32) uint32 {
	neg := zfinx.SignBit(a) && !zfinx.IsNaN(a)
	if op == zfinx.OpFCvtWS {
		if neg {
			return 1 << 31
		}
		return math.MaxInt32
	}
	if neg {
		return 0
	}
	return math.MaxUint32
}
