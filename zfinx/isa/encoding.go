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
	"errors"
	"fmt"

	"github.com/ajroetker/go-zfinx/zfinx"
)

// ErrIllegalInstruction reports an instruction word that is not a supported
// Zfinx single-precision instruction.
var ErrIllegalInstruction = errors.New("isa: illegal instruction")

// Reg is an integer register number, x0 through x31.
type Reg uint8

// Registers used by the intrinsic calling convention.
const (
	RegZero Reg = 0
	RegA0   Reg = 10
	RegA1   Reg = 11
	RegA2   Reg = 12

	NumRegs = 32
)

var abiNames = [NumRegs]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// String returns the ABI name, e.g. "a0".
func (r Reg) String() string {
	if int(r) < NumRegs {
		return abiNames[r]
	}
	return fmt.Sprintf("x%d", r)
}

// Major opcodes.
const (
	OpcodeOpFP  = 0b1010011
	OpcodeMAdd  = 0b1000011
	OpcodeMSub  = 0b1000111
	OpcodeNMSub = 0b1001011
	OpcodeNMAdd = 0b1001111
)

// Rounding modes accepted in the rm field.
const (
	RMNearestEven uint8 = 0b000
	RMDynamic     uint8 = 0b111
)

// Field extraction.
func rd(insn uint32) Reg       { return Reg(insn >> 7 & 0x1F) }
func funct3(insn uint32) uint8 { return uint8(insn >> 12 & 0x7) }
func rs1(insn uint32) Reg      { return Reg(insn >> 15 & 0x1F) }
func rs2(insn uint32) Reg      { return Reg(insn >> 20 & 0x1F) }
func rs3(insn uint32) Reg      { return Reg(insn >> 27 & 0x1F) }

const (
	maskOpcode = 0x7F
	maskFunct3 = 0x7 << 12
	maskRs2    = 0x1F << 20
	maskFunct7 = 0x7F << 25
	maskFmt    = 0x3 << 25
)

// form is the fixed part of an instruction: insn&mask == match. Fields not
// covered by mask are register operands, plus funct3 when it carries a
// rounding mode.
type form struct {
	match, mask uint32
	rm          bool
}

func opFP(funct7 uint32) form {
	return form{match: funct7<<25 | OpcodeOpFP, mask: maskFunct7 | maskOpcode, rm: true}
}

func opFPUnary(funct7, rs2 uint32) form {
	return form{match: funct7<<25 | rs2<<20 | OpcodeOpFP, mask: maskFunct7 | maskRs2 | maskOpcode, rm: true}
}

func opFPSel(funct7, funct3 uint32) form {
	return form{match: funct7<<25 | funct3<<12 | OpcodeOpFP, mask: maskFunct7 | maskFunct3 | maskOpcode}
}

func opFPUnarySel(funct7, rs2, funct3 uint32) form {
	return form{
		match: funct7<<25 | rs2<<20 | funct3<<12 | OpcodeOpFP,
		mask:  maskFunct7 | maskRs2 | maskFunct3 | maskOpcode,
	}
}

func r4(major uint32) form {
	return form{match: major, mask: maskFmt | maskOpcode, rm: true}
}

var forms = map[zfinx.Op]form{
	zfinx.OpFAddS:   opFP(0b0000000),
	zfinx.OpFSubS:   opFP(0b0000100),
	zfinx.OpFMulS:   opFP(0b0001000),
	zfinx.OpFDivS:   opFP(0b0001100),
	zfinx.OpFSqrtS:  opFPUnary(0b0101100, 0),
	zfinx.OpFSgnjS:  opFPSel(0b0010000, 0b000),
	zfinx.OpFSgnjnS: opFPSel(0b0010000, 0b001),
	zfinx.OpFSgnjxS: opFPSel(0b0010000, 0b010),
	zfinx.OpFMinS:   opFPSel(0b0010100, 0b000),
	zfinx.OpFMaxS:   opFPSel(0b0010100, 0b001),
	zfinx.OpFCvtWS:  opFPUnary(0b1100000, 0),
	zfinx.OpFCvtWUS: opFPUnary(0b1100000, 1),
	zfinx.OpFEqS:    opFPSel(0b1010000, 0b010),
	zfinx.OpFLtS:    opFPSel(0b1010000, 0b001),
	zfinx.OpFLeS:    opFPSel(0b1010000, 0b000),
	zfinx.OpFClassS: opFPUnarySel(0b1110000, 0, 0b001),
	zfinx.OpFCvtSW:  opFPUnary(0b1101000, 0),
	zfinx.OpFCvtSWU: opFPUnary(0b1101000, 1),
	zfinx.OpFMAddS:  r4(OpcodeMAdd),
	zfinx.OpFMSubS:  r4(OpcodeMSub),
	zfinx.OpFNMSubS: r4(OpcodeNMSub),
	zfinx.OpFNMAddS: r4(OpcodeNMAdd),
}

// Inst is a decoded instruction. Operand fields the instruction does not use
// are zero.
type Inst struct {
	Op  zfinx.Op
	Rd  Reg
	Rs1 Reg
	Rs2 Reg
	Rs3 Reg
	RM  uint8 // rounding mode, for instructions that carry one
}

func validRM(rm uint8) bool { return rm == RMNearestEven || rm == RMDynamic }

// Encode assembles in into an instruction word. Register fields beyond the
// op's arity are ignored.
func Encode(in Inst) (uint32, error) {
	f, ok := forms[in.Op]
	if !ok {
		return 0, fmt.Errorf("isa: encode %v: %w", in.Op, zfinx.ErrUnknownOp)
	}
	for _, r := range []Reg{in.Rd, in.Rs1, in.Rs2, in.Rs3} {
		if r >= NumRegs {
			return 0, fmt.Errorf("isa: encode %s: register x%d out of range", in.Op.Mnemonic(), r)
		}
	}
	if f.rm && !validRM(in.RM) {
		return 0, fmt.Errorf("isa: encode %s: unsupported rounding mode %03b", in.Op.Mnemonic(), in.RM)
	}

	arity := in.Op.Info().Arity
	insn := f.match | uint32(in.Rd)<<7 | uint32(in.Rs1)<<15
	if f.mask&maskRs2 == 0 && arity >= 2 {
		insn |= uint32(in.Rs2) << 20
	}
	if arity == 3 {
		insn |= uint32(in.Rs3) << 27
	}
	if f.rm {
		insn |= uint32(in.RM) << 12
	}
	return insn, nil
}

// MustEncode is like Encode but panics on error. It is intended for
// instruction tables built at init time.
func MustEncode(in Inst) uint32 {
	insn, err := Encode(in)
	if err != nil {
		panic(err)
	}
	return insn
}

// Decode disassembles an instruction word.
func Decode(insn uint32) (Inst, error) {
	for _, op := range zfinx.AllOps() {
		f := forms[op]
		if insn&f.mask != f.match {
			continue
		}
		if f.rm && !validRM(funct3(insn)) {
			break
		}
		in := Inst{Op: op, Rd: rd(insn), Rs1: rs1(insn)}
		arity := op.Info().Arity
		if f.mask&maskRs2 == 0 && arity >= 2 {
			in.Rs2 = rs2(insn)
		}
		if arity == 3 {
			in.Rs3 = rs3(insn)
		}
		if f.rm {
			in.RM = funct3(insn)
		}
		return in, nil
	}
	return Inst{}, fmt.Errorf("%w %#08x", ErrIllegalInstruction, insn)
}

// String formats in in assembler syntax, e.g. "fadd.s a0,a0,a1".
func (in Inst) String() string {
	if !in.Op.Valid() {
		return in.Op.String()
	}
	s := fmt.Sprintf("%s %s,%s", in.Op.Mnemonic(), in.Rd, in.Rs1)
	switch in.Op.Info().Arity {
	case 2:
		s += "," + in.Rs2.String()
	case 3:
		s += "," + in.Rs2.String() + "," + in.Rs3.String()
	}
	if in.RM == RMDynamic {
		s += ",dyn"
	}
	return s
}

// Intrinsic returns the instruction the intrinsic library issues for op:
// rd and rs1 are a0, rs2 is a1, rs3 is a2, and the rounding mode is RNE.
func Intrinsic(op zfinx.Op) Inst {
	return Inst{Op: op, Rd: RegA0, Rs1: RegA0, Rs2: RegA1, Rs3: RegA2}
}
