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

// IEEE-754 binary32 field masks.
const (
	ExpShift = 23

	SignMask uint32 = 1 << 31
	ExpMask  uint32 = 0xFF << ExpShift
	FracMask uint32 = 1<<ExpShift - 1
	QuietBit uint32 = 1 << (ExpShift - 1) // mantissa MSB, set for quiet NaNs
	MagMask  uint32 = SignMask - 1
)

// Well-known bit patterns.
const (
	CanonicalNaN     uint32 = 0x7FC00000
	PosZero          uint32 = 0x00000000
	NegZero          uint32 = 0x80000000
	PosInf           uint32 = 0x7F800000
	NegInf           uint32 = 0xFF800000
	MinSubnormal     uint32 = 0x00000001
	MaxSubnormal     uint32 = 0x007FFFFF
	MinNormal        uint32 = 0x00800000
	MaxNormal        uint32 = 0x7F7FFFFF
	One              uint32 = 0x3F800000
	SignalingNaNBits uint32 = 0x7FA00000
)

// F32 reinterprets a register word as a float32. The bits are not converted.
func F32(bits uint32) float32 { return math.Float32frombits(bits) }

// Bits reinterprets a float32 as a register word. The value is not converted.
func Bits(f float32) uint32 { return math.Float32bits(f) }

// IsNaN reports whether bits encodes a NaN of either kind.
func IsNaN(bits uint32) bool { return bits&ExpMask == ExpMask && bits&FracMask != 0 }

// IsSignalingNaN reports whether bits encodes a NaN with the quiet bit clear.
func IsSignalingNaN(bits uint32) bool { return IsNaN(bits) && bits&QuietBit == 0 }

// IsQuietNaN reports whether bits encodes a NaN with the quiet bit set.
func IsQuietNaN(bits uint32) bool { return IsNaN(bits) && bits&QuietBit != 0 }

// IsInf reports whether bits encodes an infinity of either sign.
func IsInf(bits uint32) bool { return bits&MagMask == ExpMask }

// IsZero reports whether bits encodes +0 or -0.
func IsZero(bits uint32) bool { return bits&MagMask == 0 }

// IsSubnormal reports whether bits encodes a non-zero value below the smallest
// normal magnitude.
func IsSubnormal(bits uint32) bool { return bits&ExpMask == 0 && bits&FracMask != 0 }

// SignBit reports whether the sign bit of bits is set.
func SignBit(bits uint32) bool { return bits&SignMask != 0 }

func isNaN32(f float32) bool { return IsNaN(Bits(f)) }
