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
	"testing"
)

var (
	posInf  = F32(PosInf)
	negInf  = F32(NegInf)
	qNaN    = F32(CanonicalNaN)
	sNaN    = F32(SignalingNaNBits)
	negZero = F32(NegZero)
	minSub  = F32(MinSubnormal)
	maxSub  = F32(MaxSubnormal)
	minNorm = F32(MinNormal)
	maxNorm = F32(MaxNormal)
)

func TestArithmeticScenarios(t *testing.T) {
	tests := []struct {
		name string
		got  float32
		want uint32
	}{
		{"fadds(1,2)", FAddS(1, 2), Bits(3)},
		{"fsubs(1,2)", FSubS(1, 2), Bits(-1)},
		{"fmuls(1.5,-4)", FMulS(1.5, -4), Bits(-6)},
		{"fdivs(1,4)", FDivS(1, 4), Bits(0.25)},
		{"fsqrts(2.25)", FSqrtS(2.25), Bits(1.5)},
		{"fsqrts(-0)", FSqrtS(negZero), NegZero},
		{"fadds(-0,-0)", FAddS(negZero, negZero), NegZero},
		{"fadds(max,max)", FAddS(maxNorm, maxNorm), PosInf},
		{"fdivs(1,0)", FDivS(1, 0), PosInf},
		{"fdivs(-1,0)", FDivS(-1, 0), NegInf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bits(tt.got); got != tt.want {
				t.Errorf("%s = %#08x, want %#08x", tt.name, got, tt.want)
			}
		})
	}
}

func TestArithmeticCanonicalNaN(t *testing.T) {
	tests := []struct {
		name string
		got  float32
	}{
		{"inf-inf", FAddS(posInf, negInf)},
		{"inf-inf sub", FSubS(posInf, posInf)},
		{"0*inf", FMulS(0, posInf)},
		{"0/0", FDivS(0, 0)},
		{"sqrt(-1)", FSqrtS(-1)},
		{"snan+1", FAddS(sNaN, 1)},
		{"-qnan*1", FMulS(F32(CanonicalNaN|SignMask), 1)},
		{"payload+1", FAddS(F32(0x7FC00001), 1)},
		{"fmsub(payload)", FMSubS(1, 1, F32(0x7FC12345))},
		{"fma(0,inf,1)", FMAddS(0, posInf, 1)},
	}
	for _, tt := range tests {
		if got := Bits(tt.got); got != CanonicalNaN {
			t.Errorf("%s = %#08x, want canonical NaN %#08x", tt.name, got, CanonicalNaN)
		}
	}
}

func TestSmallestSubnormalFlushesOnEveryArithmeticPath(t *testing.T) {
	results := map[string]float32{
		"fadds":   FAddS(minSub, 0),
		"fsubs":   FSubS(minSub, 0),
		"fmuls":   FMulS(minSub, 1),
		"fdivs":   FDivS(minSub, 1),
		"fmins":   FMinS(minSub, 1),
		"fmaxs":   FMaxS(minSub, -1),
		"fsgnjs":  FSgnjS(minSub, 1),
		"fsgnjns": FSgnjnS(minSub, -1),
		"fsgnjxs": FSgnjxS(minSub, 1),
		"fmadds":  FMAddS(minSub, 1, 0),
		"fmsubs":  FMSubS(minSub, 1, 0),
		"fnmsubs": FNMSubS(minSub, -1, 0),
		"fnmadds": FNMAddS(minSub, -1, negZero),
	}
	for name, got := range results {
		if Bits(got) != PosZero {
			t.Errorf("%s with smallest subnormal = %#08x, want +0", name, Bits(got))
		}
	}

	if got := Bits(FMulS(-minNorm, 0.5)); got != NegZero {
		t.Errorf("fmuls(-minNormal, 0.5) = %#08x, want -0", got)
	}
}

func TestMinMaxSignedZero(t *testing.T) {
	pairs := [][2]float32{{0, negZero}, {negZero, 0}}
	for _, p := range pairs {
		if got := Bits(FMinS(p[0], p[1])); got != NegZero {
			t.Errorf("FMinS(%#08x, %#08x) = %#08x, want -0", Bits(p[0]), Bits(p[1]), got)
		}
		if got := Bits(FMaxS(p[0], p[1])); got != PosZero {
			t.Errorf("FMaxS(%#08x, %#08x) = %#08x, want +0", Bits(p[0]), Bits(p[1]), got)
		}
	}
}

func TestMinMaxNaN(t *testing.T) {
	finite := []float32{0, negZero, 1, -1, 3.25, maxNorm, -maxNorm, minNorm, posInf, negInf}
	for _, n := range []float32{qNaN, sNaN, F32(0xFFC00001)} {
		for _, x := range finite {
			if got := FMinS(n, x); Bits(got) != Bits(x) {
				t.Errorf("FMinS(NaN, %v) = %#08x, want %#08x", x, Bits(got), Bits(x))
			}
			if got := FMinS(x, n); Bits(got) != Bits(x) {
				t.Errorf("FMinS(%v, NaN) = %#08x, want %#08x", x, Bits(got), Bits(x))
			}
			if got := FMaxS(n, x); Bits(got) != Bits(x) {
				t.Errorf("FMaxS(NaN, %v) = %#08x, want %#08x", x, Bits(got), Bits(x))
			}
			if got := FMaxS(x, n); Bits(got) != Bits(x) {
				t.Errorf("FMaxS(%v, NaN) = %#08x, want %#08x", x, Bits(got), Bits(x))
			}
		}
	}

	if got := Bits(FMinS(sNaN, qNaN)); got != CanonicalNaN {
		t.Errorf("FMinS(sNaN, qNaN) = %#08x, want %#08x", got, CanonicalNaN)
	}
	if got := Bits(FMaxS(F32(0xFFFFFFFF), sNaN)); got != CanonicalNaN {
		t.Errorf("FMaxS(NaN, sNaN) = %#08x, want %#08x", got, CanonicalNaN)
	}
}

func TestMinMaxCommutative(t *testing.T) {
	values := []float32{1, -1, 0.5, -2.75, 1e30, -1e-30, maxNorm, -maxNorm, minNorm, minSub, -maxSub, posInf, negInf}
	for _, a := range values {
		for _, b := range values {
			if x, y := Bits(FMinS(a, b)), Bits(FMinS(b, a)); x != y {
				t.Errorf("FMinS(%g, %g) = %#08x but FMinS(%g, %g) = %#08x", a, b, x, b, a, y)
			}
			if x, y := Bits(FMaxS(a, b)), Bits(FMaxS(b, a)); x != y {
				t.Errorf("FMaxS(%g, %g) = %#08x but FMaxS(%g, %g) = %#08x", a, b, x, b, a, y)
			}
		}
	}
	if got := FMinS(-3, 2); got != -3 {
		t.Errorf("FMinS(-3, 2) = %v, want -3", got)
	}
	if got := FMaxS(-3, 2); got != 2 {
		t.Errorf("FMaxS(-3, 2) = %v, want 2", got)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b       float32
		eq, lt, le uint32
	}{
		{1, 2, 0, 1, 1},
		{2, 1, 0, 0, 0},
		{2, 2, 1, 0, 1},
		{0, negZero, 1, 0, 1},
		{negZero, 0, 1, 0, 1},
		{negInf, posInf, 0, 1, 1},
		{posInf, posInf, 1, 0, 1},
		{minSub, 0, 0, 0, 0},
		{qNaN, 1, 0, 0, 0},
		{1, qNaN, 0, 0, 0},
		{sNaN, sNaN, 0, 0, 0},
		{qNaN, qNaN, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := FEqS(tt.a, tt.b); got != tt.eq {
			t.Errorf("FEqS(%#08x, %#08x) = %d, want %d", Bits(tt.a), Bits(tt.b), got, tt.eq)
		}
		if got := FLtS(tt.a, tt.b); got != tt.lt {
			t.Errorf("FLtS(%#08x, %#08x) = %d, want %d", Bits(tt.a), Bits(tt.b), got, tt.lt)
		}
		if got := FLeS(tt.a, tt.b); got != tt.le {
			t.Errorf("FLeS(%#08x, %#08x) = %d, want %d", Bits(tt.a), Bits(tt.b), got, tt.le)
		}
	}
}

func TestConvertToInt(t *testing.T) {
	tests := []struct {
		x      float32
		signed uint32
		uns    uint32
	}{
		{0, 0, 0},
		{negZero, 0, 0},
		{1, 1, 1},
		{0.5, 0, 0},
		{1.5, 2, 2},
		{2.5, 2, 2},
		{3.5, 4, 4},
		{-0.4, 0, 0},
		{-2.5, 0xFFFFFFFE, 0xFFFFFFFE},
		{-1, 0xFFFFFFFF, 0xFFFFFFFF},
		{123456.7, 123457, 123457},
		{2147483520, 2147483520, 2147483520},
		{-2147483648, 0x80000000, 0x80000000},
		{3e9, 3000000000, 3000000000},
		{4294967296, 0, 0},
	}
	for _, tt := range tests {
		if got := FCvtWS(tt.x); got != tt.signed {
			t.Errorf("FCvtWS(%g) = %#08x, want %#08x", tt.x, got, tt.signed)
		}
		if got := FCvtWUS(tt.x); got != tt.uns {
			t.Errorf("FCvtWUS(%g) = %#08x, want %#08x", tt.x, got, tt.uns)
		}
	}
}

func TestConvertFromInt(t *testing.T) {
	tests := []struct {
		x      uint32
		signed float32
		uns    float32
	}{
		{0, 0, 0},
		{1, 1, 1},
		{0xFFFFFFFF, -1, 4294967296},
		{0x80000000, -2147483648, 2147483648},
		{16777217, 16777216, 16777216},
		{16777219, 16777220, 16777220},
	}
	for _, tt := range tests {
		if got := FCvtSW(tt.x); got != tt.signed {
			t.Errorf("FCvtSW(%#08x) = %v, want %v", tt.x, got, tt.signed)
		}
		if got := FCvtSWU(tt.x); got != tt.uns {
			t.Errorf("FCvtSWU(%#08x) = %v, want %v", tt.x, got, tt.uns)
		}
	}
	if got := Bits(FCvtSW(0)); got != PosZero {
		t.Errorf("FCvtSW(0) = %#08x, want +0", got)
	}
}

func TestSignedConversionRoundTrip(t *testing.T) {
	for n := int32(-1 << 24); n <= 1<<24; n += 4099 {
		first := FCvtSW(uint32(n))
		again := FCvtSW(FCvtWS(first))
		if Bits(first) != Bits(again) {
			t.Fatalf("round trip of %d: %v then %v", n, first, again)
		}
	}
	for _, n := range []int32{math.MinInt32, -16777216, 16777216, 1 << 30, 0x7FFFFF80} {
		first := FCvtSW(uint32(n))
		second := FCvtSW(FCvtWS(first))
		third := FCvtSW(FCvtWS(second))
		if Bits(first) != Bits(second) || Bits(second) != Bits(third) {
			t.Errorf("round trip of %d: %v, %v, %v", n, first, second, third)
		}
	}
}

func TestSignInjection(t *testing.T) {
	tests := []struct {
		name string
		got  float32
		want uint32
	}{
		{"fsgnjs(5,-1)", FSgnjS(5, -1), Bits(-5)},
		{"fsgnjs(-5,1)", FSgnjS(-5, 1), Bits(5)},
		{"fsgnjs(-5,-1)", FSgnjS(-5, -1), Bits(-5)},
		{"fsgnjns(5,-1)", FSgnjnS(5, -1), Bits(5)},
		{"fsgnjns(5,1)", FSgnjnS(5, 1), Bits(-5)},
		{"fsgnjxs(-5,-1)", FSgnjxS(-5, -1), Bits(5)},
		{"fsgnjxs(-5,1)", FSgnjxS(-5, 1), Bits(-5)},
		{"fsgnjxs(5,-1)", FSgnjxS(5, -1), Bits(-5)},
		{"fsgnjs(0,-0)", FSgnjS(0, negZero), NegZero},
		{"fsgnjs(inf,-1e-40)", FSgnjS(posInf, -1e-40), NegInf},
		{"fsgnjns(snan,1)", FSgnjnS(sNaN, 1), SignalingNaNBits | SignMask},
		{"fsgnjs(-subnormal,1)", FSgnjS(-maxSub, 1), PosZero},
		{"fsgnjns(subnormal,1)", FSgnjnS(maxSub, 1), NegZero},
		{"fsgnjxs(-subnormal,-1)", FSgnjxS(-maxSub, -1), PosZero},
	}
	for _, tt := range tests {
		if got := Bits(tt.got); got != tt.want {
			t.Errorf("%s = %#08x, want %#08x", tt.name, got, tt.want)
		}
	}
}

func TestFMAFamilyRoundsTwice(t *testing.T) {
	tests := []struct {
		name string
		got  float32
		want float32
	}{
		{"fmadds(2,3,1)", FMAddS(2, 3, 1), 7},
		{"fmsubs(2,3,1)", FMSubS(2, 3, 1), 5},
		{"fnmsubs(2,3,1)", FNMSubS(2, 3, 1), -5},
		{"fnmadds(2,3,1)", FNMAddS(2, 3, 1), -7},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	// (1+2^-12)^2 = 1 + 2^-11 + 2^-24: the product rounds to 1+2^-11, so the
	// two-step result cancels to zero where a fused one would give 2^-24.
	a := F32(0x3F800800)
	c := F32(0xBF801000)
	if got := Bits(FMAddS(a, a, c)); got != PosZero {
		t.Errorf("FMAddS(1+2^-12, 1+2^-12, -(1+2^-11)) = %#08x, want +0", got)
	}
	fused := float32(math.FMA(float64(a), float64(a), float64(c)))
	if fused == 0 {
		t.Fatalf("fused reference unexpectedly zero")
	}
}
