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

package crossval

import (
	"math"
	"math/rand/v2"

	"github.com/ajroetker/go-zfinx/zfinx"
)

// SpecialFloats are the float operands every comparison covers exhaustively:
// signed zeros, infinities, both NaN kinds, the subnormal and normal
// extremes, and values where rounding and integer conversion change
// behaviour.
var SpecialFloats = []uint32{
	zfinx.PosZero, zfinx.NegZero,
	zfinx.PosInf, zfinx.NegInf,
	zfinx.CanonicalNaN, zfinx.SignalingNaNBits,
	zfinx.MinSubnormal, zfinx.MinSubnormal | zfinx.SignMask,
	zfinx.MaxSubnormal, zfinx.MaxSubnormal | zfinx.SignMask,
	zfinx.MinNormal, zfinx.MinNormal | zfinx.SignMask,
	zfinx.MaxNormal, zfinx.MaxNormal | zfinx.SignMask,
	zfinx.One, zfinx.One | zfinx.SignMask,
	0x3F000000, // 0.5
	0x3FC00000, // 1.5
	0x40200000, // 2.5
	0x4F000000, // 2^31
	0x4F800000, // 2^32
	0xCF000000, // -2^31
}

// SpecialInts are the integer operands of fcvt.s.w and fcvt.s.wu.
var SpecialInts = []uint32{
	0, 1, math.MaxUint32, // -1 when signed
	math.MaxInt32, 1 << 31,
	1 << 24, 1<<24 + 1,
	math.MaxUint32 - 1<<24,
}

// Case is one operand tuple. Unused operands are zero.
type Case struct {
	A, B, C uint32
}

// Vectors is a reproducible operand set.
type Vectors struct {
	Floats []uint32
	Ints   []uint32
	Random []Case
}

// Generate returns the special operands plus samples random tuples drawn
// from a PCG source seeded with seed. Random operands are uniform over all
// bit patterns, so every class is reached.
func Generate(samples int, seed uint64) Vectors {
	r := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	v := Vectors{
		Floats: SpecialFloats,
		Ints:   SpecialInts,
		Random: make([]Case, max(samples, 0)),
	}
	for i := range v.Random {
		v.Random[i] = Case{A: r.Uint32(), B: r.Uint32(), C: r.Uint32()}
	}
	return v
}

// Cases returns the tuples to evaluate op on: every combination of the
// special operands followed by the random tuples. The third operand of the
// fused ops is a special picked by position, which keeps the count quadratic.
func (v Vectors) Cases(op zfinx.Op) []Case {
	info := op.Info()
	var out []Case
	switch {
	case info.IntOperand:
		for _, a := range v.Ints {
			out = append(out, Case{A: a})
		}
	case info.Arity == 1:
		for _, a := range v.Floats {
			out = append(out, Case{A: a})
		}
	default:
		for i, a := range v.Floats {
			for j, b := range v.Floats {
				c := Case{A: a, B: b}
				if info.Arity == 3 {
					c.C = v.Floats[(i+j)%len(v.Floats)]
				}
				out = append(out, c)
			}
		}
	}
	for _, c := range v.Random {
		switch info.Arity {
		case 1:
			c.B, c.C = 0, 0
		case 2:
			c.C = 0
		}
		out = append(out, c)
	}
	return out
}
