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

import "fmt"

// Unit is a Zfinx floating-point unit working on raw register words.
//
// Every method has the shape of the corresponding instruction: rs1, rs2 and
// rs3 are x-register contents and the return value is what lands in rd. Float
// operands and results are binary32 bit patterns; integer ones are plain
// 32-bit words.
type Unit interface {
	// Name identifies the backend, e.g. "emulated" or "hardware".
	Name() string

	FAddS(rs1, rs2 uint32) uint32
	FSubS(rs1, rs2 uint32) uint32
	FMulS(rs1, rs2 uint32) uint32
	FMinS(rs1, rs2 uint32) uint32
	FMaxS(rs1, rs2 uint32) uint32
	FCvtWUS(rs1 uint32) uint32
	FCvtWS(rs1 uint32) uint32
	FCvtSWU(rs1 uint32) uint32
	FCvtSW(rs1 uint32) uint32
	FEqS(rs1, rs2 uint32) uint32
	FLtS(rs1, rs2 uint32) uint32
	FLeS(rs1, rs2 uint32) uint32
	FSgnjS(rs1, rs2 uint32) uint32
	FSgnjnS(rs1, rs2 uint32) uint32
	FSgnjxS(rs1, rs2 uint32) uint32
	FClassS(rs1 uint32) uint32
	FDivS(rs1, rs2 uint32) uint32
	FSqrtS(rs1 uint32) uint32
	FMAddS(rs1, rs2, rs3 uint32) uint32
	FMSubS(rs1, rs2, rs3 uint32) uint32
	FNMSubS(rs1, rs2, rs3 uint32) uint32
	FNMAddS(rs1, rs2, rs3 uint32) uint32
}

// FlagReader is implemented by units that accrue exception flags.
type FlagReader interface {
	// ReadAndClearFlags returns the flags raised since the last call.
	ReadAndClearFlags() Flag
}

// Apply runs op on u. Operands beyond the op's arity are ignored.
func Apply(u Unit, op Op, rs1, rs2, rs3 uint32) uint32 {
	switch op {
	case OpFAddS:
		return u.FAddS(rs1, rs2)
	case OpFSubS:
		return u.FSubS(rs1, rs2)
	case OpFMulS:
		return u.FMulS(rs1, rs2)
	case OpFMinS:
		return u.FMinS(rs1, rs2)
	case OpFMaxS:
		return u.FMaxS(rs1, rs2)
	case OpFCvtWUS:
		return u.FCvtWUS(rs1)
	case OpFCvtWS:
		return u.FCvtWS(rs1)
	case OpFCvtSWU:
		return u.FCvtSWU(rs1)
	case OpFCvtSW:
		return u.FCvtSW(rs1)
	case OpFEqS:
		return u.FEqS(rs1, rs2)
	case OpFLtS:
		return u.FLtS(rs1, rs2)
	case OpFLeS:
		return u.FLeS(rs1, rs2)
	case OpFSgnjS:
		return u.FSgnjS(rs1, rs2)
	case OpFSgnjnS:
		return u.FSgnjnS(rs1, rs2)
	case OpFSgnjxS:
		return u.FSgnjxS(rs1, rs2)
	case OpFClassS:
		return u.FClassS(rs1)
	case OpFDivS:
		return u.FDivS(rs1, rs2)
	case OpFSqrtS:
		return u.FSqrtS(rs1)
	case OpFMAddS:
		return u.FMAddS(rs1, rs2, rs3)
	case OpFMSubS:
		return u.FMSubS(rs1, rs2, rs3)
	case OpFNMSubS:
		return u.FNMSubS(rs1, rs2, rs3)
	case OpFNMAddS:
		return u.FNMAddS(rs1, rs2, rs3)
	}
	panic(fmt.Sprintf("zfinx: Apply of invalid op %d", op))
}

// Emulated is the software Unit. It never traps: the reference-only
// operations compute a value like every other one.
//
// When Flags is non-nil every operation accrues its exception flags there,
// the software counterpart of the fflags CSR.
type Emulated struct {
	Flags *Flags
}

var (
	_ Unit       = Emulated{}
	_ FlagReader = Emulated{}
)

// Name implements Unit.
func (Emulated) Name() string { return BackendEmulated }

// ReadAndClearFlags implements FlagReader. It returns 0 when Flags is nil.
func (e Emulated) ReadAndClearFlags() Flag { return e.Flags.ReadAndClear() }

func (e Emulated) FAddS(rs1, rs2 uint32) uint32 { return Bits(faddS(F32(rs1), F32(rs2), e.Flags)) }
func (e Emulated) FSubS(rs1, rs2 uint32) uint32 { return Bits(fsubS(F32(rs1), F32(rs2), e.Flags)) }
func (e Emulated) FMulS(rs1, rs2 uint32) uint32 { return Bits(fmulS(F32(rs1), F32(rs2), e.Flags)) }
func (e Emulated) FDivS(rs1, rs2 uint32) uint32 { return Bits(fdivS(F32(rs1), F32(rs2), e.Flags)) }
func (e Emulated) FSqrtS(rs1 uint32) uint32     { return Bits(fsqrtS(F32(rs1), e.Flags)) }

func (e Emulated) FMinS(rs1, rs2 uint32) uint32 {
	return Bits(fminmaxS(OpFMinS, F32(rs1), F32(rs2), e.Flags))
}

func (e Emulated) FMaxS(rs1, rs2 uint32) uint32 {
	return Bits(fminmaxS(OpFMaxS, F32(rs1), F32(rs2), e.Flags))
}

func (e Emulated) FCvtWUS(rs1 uint32) uint32 { return fcvtToInt(OpFCvtWUS, F32(rs1), e.Flags) }
func (e Emulated) FCvtWS(rs1 uint32) uint32  { return fcvtToInt(OpFCvtWS, F32(rs1), e.Flags) }
func (e Emulated) FCvtSWU(rs1 uint32) uint32 { return Bits(fcvtFromInt(OpFCvtSWU, rs1, e.Flags)) }
func (e Emulated) FCvtSW(rs1 uint32) uint32  { return Bits(fcvtFromInt(OpFCvtSW, rs1, e.Flags)) }

func (e Emulated) FEqS(rs1, rs2 uint32) uint32 { return fcmpS(OpFEqS, F32(rs1), F32(rs2), e.Flags) }
func (e Emulated) FLtS(rs1, rs2 uint32) uint32 { return fcmpS(OpFLtS, F32(rs1), F32(rs2), e.Flags) }
func (e Emulated) FLeS(rs1, rs2 uint32) uint32 { return fcmpS(OpFLeS, F32(rs1), F32(rs2), e.Flags) }

func (Emulated) FSgnjS(rs1, rs2 uint32) uint32  { return Bits(FSgnjS(F32(rs1), F32(rs2))) }
func (Emulated) FSgnjnS(rs1, rs2 uint32) uint32 { return Bits(FSgnjnS(F32(rs1), F32(rs2))) }
func (Emulated) FSgnjxS(rs1, rs2 uint32) uint32 { return Bits(FSgnjxS(F32(rs1), F32(rs2))) }
func (Emulated) FClassS(rs1 uint32) uint32      { return uint32(Classify(rs1)) }

func (e Emulated) FMAddS(rs1, rs2, rs3 uint32) uint32 {
	return Bits(fmaS(OpFMAddS, F32(rs1), F32(rs2), F32(rs3), e.Flags))
}

func (e Emulated) FMSubS(rs1, rs2, rs3 uint32) uint32 {
	return Bits(fmaS(OpFMSubS, F32(rs1), F32(rs2), F32(rs3), e.Flags))
}

func (e Emulated) FNMSubS(rs1, rs2, rs3 uint32) uint32 {
	return Bits(fmaS(OpFNMSubS, F32(rs1), F32(rs2), F32(rs3), e.Flags))
}

func (e Emulated) FNMAddS(rs1, rs2, rs3 uint32) uint32 {
	return Bits(fmaS(OpFNMAddS, F32(rs1), F32(rs2), F32(rs3), e.Flags))
}
