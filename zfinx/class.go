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
	"math/bits"
	"strings"
)

// Class is the fclass.s result mask. Exactly one bit is set.
type Class uint32

const (
	ClassNegInf       Class = 1 << 0
	ClassNegNormal    Class = 1 << 1
	ClassNegSubnormal Class = 1 << 2
	ClassNegZero      Class = 1 << 3
	ClassPosZero      Class = 1 << 4
	ClassPosSubnormal Class = 1 << 5
	ClassPosNormal    Class = 1 << 6
	ClassPosInf       Class = 1 << 7
	ClassSNaN         Class = 1 << 8
	ClassQNaN         Class = 1 << 9

	classMask Class = 1<<10 - 1
)

var classNames = [...]string{
	"-inf", "-normal", "-subnormal", "-zero",
	"+zero", "+subnormal", "+normal", "+inf",
	"snan", "qnan",
}

// Classify returns the class of a raw binary32 pattern.
func Classify(b uint32) Class {
	neg := SignBit(b)
	exp := b & ExpMask
	frac := b & FracMask

	switch {
	case exp == ExpMask && frac != 0:
		if frac&QuietBit != 0 {
			return ClassQNaN
		}
		return ClassSNaN
	case exp == ExpMask:
		if neg {
			return ClassNegInf
		}
		return ClassPosInf
	case exp == 0 && frac == 0:
		if neg {
			return ClassNegZero
		}
		return ClassPosZero
	case exp == 0:
		if neg {
			return ClassNegSubnormal
		}
		return ClassPosSubnormal
	}
	if neg {
		return ClassNegNormal
	}
	return ClassPosNormal
}

// String names the set bits, e.g. "+zero" or "-inf|qnan" for a (malformed)
// multi-bit mask.
func (c Class) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for m := uint32(c & classMask); m != 0; m &= m - 1 {
		parts = append(parts, classNames[bits.TrailingZeros32(m)])
	}
	if c&^classMask != 0 {
		parts = append(parts, "invalid")
	}
	return strings.Join(parts, "|")
}

// IsNaN reports whether the class is either NaN kind.
func (c Class) IsNaN() bool { return c&(ClassSNaN|ClassQNaN) != 0 }
