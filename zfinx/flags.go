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

package zfinx

import (
	"math"
	"math/big"
	"strings"
	"sync/atomic"
)

// Flag is a set of accrued exception bits in the RISC-V fflags layout.
type Flag uint32

const (
	FlagNX Flag = 1 << iota // inexact
	FlagUF                  // underflow
	FlagOF                  // overflow
	FlagDZ                  // divide by zero
	FlagNV                  // invalid operation

	FlagsAll = FlagNX | FlagUF | FlagOF | FlagDZ | FlagNV
)

// String lists the raised flags from most to least severe, e.g. "NV|NX".
func (f Flag) String() string {
	if f == 0 {
		return "-"
	}
	var parts []string
	for _, e := range [...]struct {
		bit  Flag
		name string
	}{{FlagNV, "NV"}, {FlagDZ, "DZ"}, {FlagOF, "OF"}, {FlagUF, "UF"}, {FlagNX, "NX"}} {
		if f&e.bit != 0 {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "|")
}

// Flags accumulates exception flags. The zero value is empty and ready to use;
// a nil *Flags silently discards everything raised on it.
//
// Flags is safe for concurrent use.
type Flags struct {
	raised atomic.Uint32
}

// Raise ORs f into the accumulator.
func (fl *Flags) Raise(f Flag) {
	if fl == nil || f == 0 {
		return
	}
	fl.raised.Or(uint32(f & FlagsAll))
}

// Peek returns the accrued flags without clearing them.
func (fl *Flags) Peek() Flag {
	if fl == nil {
		return 0
	}
	return Flag(fl.raised.Load())
}

// ReadAndClear returns the accrued flags and resets the accumulator.
func (fl *Flags) ReadAndClear() Flag {
	if fl == nil {
		return 0
	}
	return Flag(fl.raised.Swap(0))
}

// exactPrec covers the full binary32 exponent range, so sums and products of
// two binary32 values are exact at this precision.
const exactPrec = 512

func exactOf(x float32) *big.Float {
	return new(big.Float).SetPrec(exactPrec).SetFloat64(float64(x))
}

func isExact(op Op, a, b, raw float32) bool {
	want := new(big.Float).SetPrec(exactPrec)
	switch op {
	case OpFAddS:
		return want.Add(exactOf(a), exactOf(b)).Cmp(exactOf(raw)) == 0
	case OpFSubS:
		return want.Sub(exactOf(a), exactOf(b)).Cmp(exactOf(raw)) == 0
	case OpFMulS:
		return want.Mul(exactOf(a), exactOf(b)).Cmp(exactOf(raw)) == 0
	case OpFDivS:
		if IsInf(Bits(b)) {
			return true
		}
		return want.Mul(exactOf(raw), exactOf(b)).Cmp(exactOf(a)) == 0
	case OpFSqrtS:
		return want.Mul(exactOf(raw), exactOf(raw)).Cmp(exactOf(a)) == 0
	}
	return true
}

// ArithFlags derives the exception flags of fadd.s, fsub.s, fmul.s, fdiv.s
// and fsqrt.s (b is ignored) from the operands and the correctly rounded
// result before canonicalization and flushing.
func ArithFlags(op Op, a, b, raw float32) Flag {
	ab, bb, rb := Bits(a), Bits(b), Bits(raw)
	if op == OpFSqrtS {
		bb = PosZero
	}
	if IsSignalingNaN(ab) || IsSignalingNaN(bb) {
		return FlagNV
	}
	if IsNaN(ab) || IsNaN(bb) {
		return 0
	}
	if IsNaN(rb) {
		return FlagNV
	}
	if op == OpFDivS && IsZero(bb) {
		if IsInf(ab) {
			return 0
		}
		return FlagDZ
	}
	if IsInf(rb) {
		if IsInf(ab) || IsInf(bb) {
			return 0
		}
		return FlagOF | FlagNX
	}

	var f Flag
	exact := isExact(op, a, b, raw)
	if !exact {
		f |= FlagNX
	}
	if IsSubnormal(rb) || (IsZero(rb) && !exact) {
		f |= FlagUF | FlagNX
	}
	return f
}

// CompareFlags derives the flags of feq.s, flt.s, fle.s, fmin.s and fmax.s.
// The ordered comparisons signal on any NaN, the rest on signaling NaNs only.
func CompareFlags(op Op, a, b float32) Flag {
	ab, bb := Bits(a), Bits(b)
	switch op {
	case OpFLtS, OpFLeS:
		if IsNaN(ab) || IsNaN(bb) {
			return FlagNV
		}
	default:
		if IsSignalingNaN(ab) || IsSignalingNaN(bb) {
			return FlagNV
		}
	}
	return 0
}

// ToIntFlags derives the flags of fcvt.w.s and fcvt.wu.s: NV for a NaN or a
// rounded value outside the destination range, NX if rounding changed x.
func ToIntFlags(op Op, x float32) Flag {
	if isNaN32(x) {
		return FlagNV
	}
	r := math.RoundToEven(float64(x))
	lo, hi := float64(math.MinInt32), float64(math.MaxInt32)
	if op == OpFCvtWUS {
		lo, hi = 0, math.MaxUint32
	}
	if r < lo || r > hi {
		return FlagNV
	}
	if r != float64(x) {
		return FlagNX
	}
	return 0
}

// FromIntFlags derives the flags of fcvt.s.w and fcvt.s.wu.
func FromIntFlags(op Op, x uint32) Flag {
	var want int64
	var got float32
	if op == OpFCvtSW {
		want = int64(int32(x))
		got = float32(int32(x))
	} else {
		want = int64(x)
		got = float32(x)
	}
	// Every float32 produced from a 32-bit integer is below 2^32 in
	// magnitude, so the int64 round trip is exact.
	if int64(got) != want {
		return FlagNX
	}
	return 0
}
