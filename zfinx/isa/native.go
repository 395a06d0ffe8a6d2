package isa

import (
	"math"

	"github.com/ajroetker/go-zfinx/zfinx"
)

// Native executes every instruction, including division, square root and
// the fused multiply-add family, with the host's IEEE-754 arithmetic. It
// neither flushes subnormals nor canonicalizes NaNs, and min/max propagate
// NaN as Go's built-in min and max do.
//
// The fused family is evaluated with math.FMA in double precision and then
// narrowed, which differs from a single-precision fused result only in rare
// double rounding cases.
//
// Float-to-integer conversions round to nearest even and then use Go's
// conversion, whose result for NaN and out-of-range values is host specific.
type Native struct{}

// Execute implements Executor.
func (Native) Execute(insn uint32, x *Regs) error {
	in, err := Decode(insn)
	if err != nil {
		return &Trap{Insn: insn, Err: err}
	}
	a, b, c := x.Read(in.Rs1), x.Read(in.Rs2), x.Read(in.Rs3)
	fa, fb, fc := zfinx.F32(a), zfinx.F32(b), zfinx.F32(c)
	wa, wb, wc := float64(fa), float64(fb), float64(fc)

	var r uint32
	switch in.Op {
	case zfinx.OpFAddS:
		r = zfinx.Bits(fa + fb)
	case zfinx.OpFSubS:
		r = zfinx.Bits(fa - fb)
	case zfinx.OpFMulS:
		r = zfinx.Bits(fa * fb)
	case zfinx.OpFDivS:
		r = zfinx.Bits(fa / fb)
	case zfinx.OpFSqrtS:
		r = zfinx.Bits(float32(math.Sqrt(wa)))
	case zfinx.OpFMinS:
		r = zfinx.Bits(min(fa, fb))
	case zfinx.OpFMaxS:
		r = zfinx.Bits(max(fa, fb))
	case zfinx.OpFEqS:
		r = boolWord(fa == fb)
	case zfinx.OpFLtS:
		r = boolWord(fa < fb)
	case zfinx.OpFLeS:
		r = boolWord(fa <= fb)
	case zfinx.OpFCvtWS:
		r = uint32(int32(math.RoundToEven(wa)))
	case zfinx.OpFCvtWUS:
		r = uint32(math.RoundToEven(wa))
	case zfinx.OpFCvtSW:
		r = zfinx.Bits(float32(int32(a)))
	case zfinx.OpFCvtSWU:
		r = zfinx.Bits(float32(a))
	case zfinx.OpFSgnjS:
		r = a&zfinx.MagMask | b&zfinx.SignMask
	case zfinx.OpFSgnjnS:
		r = a&zfinx.MagMask | ^b&zfinx.SignMask
	case zfinx.OpFSgnjxS:
		r = a ^ b&zfinx.SignMask
	case zfinx.OpFClassS:
		r = uint32(zfinx.Classify(a))
	case zfinx.OpFMAddS:
		r = zfinx.Bits(float32(math.FMA(wa, wb, wc)))
	case zfinx.OpFMSubS:
		r = zfinx.Bits(float32(math.FMA(wa, wb, -wc)))
	case zfinx.OpFNMSubS:
		r = zfinx.Bits(float32(math.FMA(-wa, wb, wc)))
	case zfinx.OpFNMAddS:
		r = zfinx.Bits(float32(math.FMA(-wa, wb, -wc)))
	}
	x.Write(in.Rd, r)
	return nil
}
