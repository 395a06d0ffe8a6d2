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

import "math"

// This file holds the emulation of every operation on float32 values. The
// exported functions are pure; the lower-case variants additionally accrue
// exception flags into fl, which may be nil.

// FAddS returns a+b.
func FAddS(a, b float32) float32 { return faddS(a, b, nil) }

// FSubS returns a-b.
func FSubS(a, b float32) float32 { return fsubS(a, b, nil) }

// FMulS returns a*b.
func FMulS(a, b float32) float32 { return fmulS(a, b, nil) }

// FDivS returns a/b. Reference only: the hardware traps on fdiv.s.
func FDivS(a, b float32) float32 { return fdivS(a, b, nil) }

// FSqrtS returns the square root of a. Reference only: the hardware traps on
// fsqrt.s.
func FSqrtS(a float32) float32 { return fsqrtS(a, nil) }

func faddS(a, b float32, fl *Flags) float32 {
	r := a + b
	if fl != nil {
		fl.Raise(ArithFlags(OpFAddS, a, b, r))
	}
	return finish(r)
}

func fsubS(a, b float32, fl *Flags) float32 {
	r := a - b
	if fl != nil {
		fl.Raise(ArithFlags(OpFSubS, a, b, r))
	}
	return finish(r)
}

func fmulS(a, b float32, fl *Flags) float32 {
	r := a * b
	if fl != nil {
		fl.Raise(ArithFlags(OpFMulS, a, b, r))
	}
	return finish(r)
}

func fdivS(a, b float32, fl *Flags) float32 {
	r := a / b
	if fl != nil {
		fl.Raise(ArithFlags(OpFDivS, a, b, r))
	}
	return finish(r)
}

func fsqrtS(a float32, fl *Flags) float32 {
	// Rounding the double-precision root to single precision is correctly
	// rounded: 53 >= 2*24+2.
	r := float32(math.Sqrt(float64(a)))
	if fl != nil {
		fl.Raise(ArithFlags(OpFSqrtS, a, 0, r))
	}
	return finish(r)
}

// FMinS returns the smaller of a and b.
//
// A NaN operand loses to a number, two NaNs give the canonical NaN, and -0 is
// ordered below +0.
func FMinS(a, b float32) float32 { return fminmaxS(OpFMinS, a, b, nil) }

// FMaxS returns the larger of a and b, with the NaN and signed zero rules of
// FMinS.
func FMaxS(a, b float32) float32 { return fminmaxS(OpFMaxS, a, b, nil) }

func fminmaxS(op Op, a, b float32, fl *Flags) float32 {
	if fl != nil {
		fl.Raise(CompareFlags(op, a, b))
	}

	ab, bb := Bits(a), Bits(b)
	switch {
	case IsNaN(ab) && IsNaN(bb):
		return F32(CanonicalNaN)
	case IsNaN(ab):
		return b
	case IsNaN(bb):
		return a
	}

	if IsZero(ab) && IsZero(bb) && ab != bb {
		if op == OpFMinS {
			return F32(NegZero)
		}
		return F32(PosZero)
	}

	r := a
	if (op == OpFMinS && b < a) || (op == OpFMaxS && b > a) {
		r = b
	}
	return FlushSubnormal(r)
}

// FEqS returns 1 if a equals b and 0 otherwise. NaNs compare unequal to
// everything; -0 equals +0.
func FEqS(a, b float32) uint32 { return fcmpS(OpFEqS, a, b, nil) }

// FLtS returns 1 if a < b and 0 otherwise, including for NaN operands.
func FLtS(a, b float32) uint32 { return fcmpS(OpFLtS, a, b, nil) }

// FLeS returns 1 if a <= b and 0 otherwise, including for NaN operands.
func FLeS(a, b float32) uint32 { return fcmpS(OpFLeS, a, b, nil) }

func fcmpS(op Op, a, b float32, fl *Flags) uint32 {
	if fl != nil {
		fl.Raise(CompareFlags(op, a, b))
	}
	if isNaN32(a) || isNaN32(b) {
		return 0
	}
	var ok bool
	switch op {
	case OpFEqS:
		ok = !(a < b) && !(a > b)
	case OpFLtS:
		ok = a < b
	case OpFLeS:
		ok = a <= b
	}
	if ok {
		return 1
	}
	return 0
}

// FCvtWUS converts x to an unsigned integer, rounding to nearest with ties to
// even.
//
// Values outside the uint32 range are not clamped: the rounded value is
// narrowed through int64 and truncated to 32 bits. NaN, infinities and
// magnitudes of 2^63 and above take whatever the host conversion yields.
func FCvtWUS(x float32) uint32 { return fcvtToInt(OpFCvtWUS, x, nil) }

// FCvtWS converts x to a signed integer returned as its two's complement
// word, with the rounding and range caveats of FCvtWUS.
func FCvtWS(x float32) uint32 { return fcvtToInt(OpFCvtWS, x, nil) }

func fcvtToInt(op Op, x float32, fl *Flags) uint32 {
	if fl != nil {
		fl.Raise(ToIntFlags(op, x))
	}
	r := math.RoundToEven(float64(x))
	if op == OpFCvtWS {
		return uint32(int32(int64(r)))
	}
	return uint32(int64(r))
}

// FCvtSWU converts the unsigned integer x to float32.
func FCvtSWU(x uint32) float32 { return fcvtFromInt(OpFCvtSWU, x, nil) }

// FCvtSW converts x, read as a signed two's complement integer, to float32.
func FCvtSW(x uint32) float32 { return fcvtFromInt(OpFCvtSW, x, nil) }

func fcvtFromInt(op Op, x uint32, fl *Flags) float32 {
	if fl != nil {
		fl.Raise(FromIntFlags(op, x))
	}
	if op == OpFCvtSW {
		return FlushSubnormal(float32(int32(x)))
	}
	return FlushSubnormal(float32(x))
}

// FSgnjS returns the magnitude of a with the sign of b.
func FSgnjS(a, b float32) float32 {
	return FlushSubnormal(F32(Bits(a)&MagMask | Bits(b)&SignMask))
}

// FSgnjnS returns the magnitude of a with the inverted sign of b.
func FSgnjnS(a, b float32) float32 {
	return FlushSubnormal(F32(Bits(a)&MagMask | ^Bits(b)&SignMask))
}

// FSgnjxS returns a with its sign flipped when b is negative.
func FSgnjxS(a, b float32) float32 {
	return FlushSubnormal(F32(Bits(a) ^ Bits(b)&SignMask))
}

// FClassS returns the fclass.s mask of x, computed from its raw bits.
func FClassS(x float32) uint32 { return uint32(Classify(Bits(x))) }

// FMAddS returns (a*b)+c.
//
// The product is rounded before the addition. This is a two-step reference,
// not a fused multiply-add.
func FMAddS(a, b, c float32) float32 { return fmaS(OpFMAddS, a, b, c, nil) }

// FMSubS returns (a*b)-c, rounding twice like FMAddS.
func FMSubS(a, b, c float32) float32 { return fmaS(OpFMSubS, a, b, c, nil) }

// FNMSubS returns -(a*b)+c, rounding twice like FMAddS.
func FNMSubS(a, b, c float32) float32 { return fmaS(OpFNMSubS, a, b, c, nil) }

// FNMAddS returns -(a*b)-c, rounding twice like FMAddS.
func FNMAddS(a, b, c float32) float32 { return fmaS(OpFNMAddS, a, b, c, nil) }

func fmaS(op Op, a, b, c float32, fl *Flags) float32 {
	// The explicit conversion keeps the compiler from contracting the
	// expression into a hardware FMA.
	p := float32(a * b)
	if fl != nil {
		fl.Raise(ArithFlags(OpFMulS, a, b, p))
	}
	if op == OpFNMSubS || op == OpFNMAddS {
		p = -p
	}

	var r float32
	switch op {
	case OpFMAddS, OpFNMSubS:
		r = float32(p + c)
		if fl != nil {
			fl.Raise(ArithFlags(OpFAddS, p, c, r))
		}
	default:
		r = float32(p - c)
		if fl != nil {
			fl.Raise(ArithFlags(OpFSubS, p, c, r))
		}
	}
	return finish(r)
}
