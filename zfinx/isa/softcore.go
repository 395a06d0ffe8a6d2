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

package isa

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ajroetker/go-zfinx/zfinx"
)

// Executor runs a single instruction against a register file.
type Executor interface {
	Execute(insn uint32, x *Regs) error
}

// Trap is the error an Executor returns for an instruction it does not run.
// The register file is left untouched.
type Trap struct {
	Insn uint32
	Err  error
}

func (t *Trap) Error() string {
	return fmt.Sprintf("isa: trap on instruction %#08x: %v", t.Insn, t.Err)
}

func (t *Trap) Unwrap() error { return t.Err }

// SoftCore models the NEORV32 Zfinx FPU.
//
// Results are computed in double precision and rounded once to single
// precision, which is exact for addition, subtraction and multiplication.
// NaN results are canonical, subnormal results are flushed to a signed zero,
// and float-to-integer conversions saturate. fdiv.s, fsqrt.s and the fused
// multiply-add family trap as illegal instructions.
//
// A SoftCore is safe for concurrent use only through Hardware, which
// serializes instructions.
type SoftCore struct {
	fflags  zfinx.Flags
	retired atomic.Uint64
}

// NewSoftCore returns a SoftCore with a clear fflags CSR.
func NewSoftCore() *SoftCore { return &SoftCore{} }

// Execute implements Executor.
func (c *SoftCore) Execute(insn uint32, x *Regs) error {
	in, err := Decode(insn)
	if err != nil {
		return &Trap{Insn: insn, Err: err}
	}
	if in.Op.Info().Unsupported {
		return &Trap{Insn: insn, Err: fmt.Errorf("%w: %s is not implemented", ErrIllegalInstruction, in.Op.Mnemonic())}
	}
	x.Write(in.Rd, c.exec(in.Op, x.Read(in.Rs1), x.Read(in.Rs2)))
	c.retired.Add(1)
	return nil
}

// Flags returns the fflags CSR without clearing it.
func (c *SoftCore) Flags() zfinx.Flag { return c.fflags.Peek() }

// ReadAndClearFlags swaps the fflags CSR with zero.
func (c *SoftCore) ReadAndClearFlags() zfinx.Flag { return c.fflags.ReadAndClear() }

// Retired returns the number of instructions executed without a trap.
func (c *SoftCore) Retired() uint64 { return c.retired.Load() }

func (c *SoftCore) exec(op zfinx.Op, a, b uint32) uint32 {
	fa, fb := zfinx.F32(a), zfinx.F32(b)
	switch op {
	case zfinx.OpFAddS, zfinx.OpFSubS, zfinx.OpFMulS:
		x, y := float64(fa), float64(fb)
		var wide float64
		switch op {
		case zfinx.OpFAddS:
			wide = x + y
		case zfinx.OpFSubS:
			wide = x - y
		default:
			wide = x * y
		}
		r := float32(wide)
		c.fflags.Raise(zfinx.ArithFlags(op, fa, fb, r))
		return normalize(zfinx.Bits(r))

	case zfinx.OpFMinS, zfinx.OpFMaxS:
		c.fflags.Raise(zfinx.CompareFlags(op, fa, fb))
		return minMax(op, a, b)

	case zfinx.OpFEqS, zfinx.OpFLtS, zfinx.OpFLeS:
		c.fflags.Raise(zfinx.CompareFlags(op, fa, fb))
		var ok bool
		switch op {
		case zfinx.OpFEqS:
			ok = fa == fb
		case zfinx.OpFLtS:
			ok = fa < fb
		default:
			ok = fa <= fb
		}
		return boolWord(ok)

	case zfinx.OpFCvtWS, zfinx.OpFCvtWUS:
		c.fflags.Raise(zfinx.ToIntFlags(op, fa))
		return saturate(op, fa)

	case zfinx.OpFCvtSW:
		c.fflags.Raise(zfinx.FromIntFlags(op, a))
		return zfinx.Bits(float32(int32(a)))

	case zfinx.OpFCvtSWU:
		c.fflags.Raise(zfinx.FromIntFlags(op, a))
		return zfinx.Bits(float32(a))

	case zfinx.OpFSgnjS:
		return flush(a&zfinx.MagMask | b&zfinx.SignMask)
	case zfinx.OpFSgnjnS:
		return flush(a&zfinx.MagMask | ^b&zfinx.SignMask)
	case zfinx.OpFSgnjxS:
		return flush(a ^ b&zfinx.SignMask)

	case zfinx.OpFClassS:
		return uint32(zfinx.Classify(a))
	}
	panic("isa: unreachable op " + op.String())
}

func flush(b uint32) uint32 {
	if zfinx.IsSubnormal(b) {
		return b & zfinx.SignMask
	}
	return b
}

// normalize applies the result rules of the arithmetic unit.
func normalize(b uint32) uint32 {
	if zfinx.IsNaN(b) {
		return zfinx.CanonicalNaN
	}
	return flush(b)
}

func minMax(op zfinx.Op, a, b uint32) uint32 {
	an, bn := zfinx.IsNaN(a), zfinx.IsNaN(b)
	switch {
	case an && bn:
		return zfinx.CanonicalNaN
	case an:
		return b
	case bn:
		return a
	}

	fa, fb := zfinx.F32(a), zfinx.F32(b)
	var pickB bool
	switch {
	case fa == fb:
		// Equal values differ at most in the sign of zero.
		pickB = zfinx.SignBit(b) == (op == zfinx.OpFMinS)
	case op == zfinx.OpFMinS:
		pickB = fb < fa
	default:
		pickB = fb > fa
	}
	if pickB {
		return flush(b)
	}
	return flush(a)
}

func saturate(op zfinx.Op, x float32) uint32 {
	signed := op == zfinx.OpFCvtWS
	if zfinx.IsNaN(zfinx.Bits(x)) {
		if signed {
			return math.MaxInt32
		}
		return math.MaxUint32
	}
	r := math.RoundToEven(float64(x))
	if signed {
		r = max(math.MinInt32, min(r, math.MaxInt32))
		return uint32(int32(r))
	}
	r = max(0, min(r, math.MaxUint32))
	return uint32(r)
}

func boolWord(ok bool) uint32 {
	if ok {
		return 1
	}
	return 0
}
