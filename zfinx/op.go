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

//go:generate go tool stringer -type=Op -trimprefix=Op

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Op identifies one Zfinx single-precision operation.
type Op uint8

const (
	OpFAddS Op = iota
	OpFSubS
	OpFMulS
	OpFMinS
	OpFMaxS
	OpFCvtWUS
	OpFCvtWS
	OpFCvtSWU
	OpFCvtSW
	OpFEqS
	OpFLtS
	OpFLeS
	OpFSgnjS
	OpFSgnjnS
	OpFSgnjxS
	OpFClassS
	OpFDivS
	OpFSqrtS
	OpFMAddS
	OpFMSubS
	OpFNMSubS
	OpFNMAddS
)

const numOps = int(OpFNMAddS) + 1

// ErrUnknownOp is returned by ParseOp for names that match no operation.
var ErrUnknownOp = errors.New("zfinx: unknown operation")

// Info describes an operation.
type Info struct {
	Mnemonic    string // assembler mnemonic, e.g. "fcvt.wu.s"
	Func        string // function-style name, e.g. "fcvt_wus"
	Arity       int    // number of register operands (1..3)
	IntOperand  bool   // rs1 holds an integer (fcvt.s.w, fcvt.s.wu)
	IntResult   bool   // rd receives an integer (compares, fclass, fcvt.w*)
	Unsupported bool   // no hardware support; reference emulation only
}

var opInfo = [numOps]Info{
	OpFAddS:   {Mnemonic: "fadd.s", Func: "fadds", Arity: 2},
	OpFSubS:   {Mnemonic: "fsub.s", Func: "fsubs", Arity: 2},
	OpFMulS:   {Mnemonic: "fmul.s", Func: "fmuls", Arity: 2},
	OpFMinS:   {Mnemonic: "fmin.s", Func: "fmins", Arity: 2},
	OpFMaxS:   {Mnemonic: "fmax.s", Func: "fmaxs", Arity: 2},
	OpFCvtWUS: {Mnemonic: "fcvt.wu.s", Func: "fcvt_wus", Arity: 1, IntResult: true},
	OpFCvtWS:  {Mnemonic: "fcvt.w.s", Func: "fcvt_ws", Arity: 1, IntResult: true},
	OpFCvtSWU: {Mnemonic: "fcvt.s.wu", Func: "fcvt_swu", Arity: 1, IntOperand: true},
	OpFCvtSW:  {Mnemonic: "fcvt.s.w", Func: "fcvt_sw", Arity: 1, IntOperand: true},
	OpFEqS:    {Mnemonic: "feq.s", Func: "feqs", Arity: 2, IntResult: true},
	OpFLtS:    {Mnemonic: "flt.s", Func: "flts", Arity: 2, IntResult: true},
	OpFLeS:    {Mnemonic: "fle.s", Func: "fles", Arity: 2, IntResult: true},
	OpFSgnjS:  {Mnemonic: "fsgnj.s", Func: "fsgnjs", Arity: 2},
	OpFSgnjnS: {Mnemonic: "fsgnjn.s", Func: "fsgnjns", Arity: 2},
	OpFSgnjxS: {Mnemonic: "fsgnjx.s", Func: "fsgnjxs", Arity: 2},
	OpFClassS: {Mnemonic: "fclass.s", Func: "fclasss", Arity: 1, IntResult: true},
	OpFDivS:   {Mnemonic: "fdiv.s", Func: "fdivs", Arity: 2, Unsupported: true},
	OpFSqrtS:  {Mnemonic: "fsqrt.s", Func: "fsqrts", Arity: 1, Unsupported: true},
	OpFMAddS:  {Mnemonic: "fmadd.s", Func: "fmadds", Arity: 3, Unsupported: true},
	OpFMSubS:  {Mnemonic: "fmsub.s", Func: "fmsubs", Arity: 3, Unsupported: true},
	OpFNMSubS: {Mnemonic: "fnmsub.s", Func: "fnmsubs", Arity: 3, Unsupported: true},
	OpFNMAddS: {Mnemonic: "fnmadd.s", Func: "fnmadds", Arity: 3, Unsupported: true},
}

// Valid reports whether op is a defined operation.
func (op Op) Valid() bool { return int(op) < numOps }

// Info returns the operation's metadata. It panics for an invalid op.
func (op Op) Info() Info {
	if !op.Valid() {
		panic(fmt.Sprintf("zfinx: invalid op %d", op))
	}
	return opInfo[op]
}

// Mnemonic returns the assembler mnemonic, or String() for an invalid op.
func (op Op) Mnemonic() string {
	if !op.Valid() {
		return op.String()
	}
	return opInfo[op].Mnemonic
}

// AllOps returns every operation in encoding-table order.
func AllOps() []Op {
	return lo.Times(numOps, func(i int) Op { return Op(i) })
}

// SupportedOps returns the operations implemented by the hardware.
func SupportedOps() []Op {
	return lo.Filter(AllOps(), func(op Op, _ int) bool { return !opInfo[op].Unsupported })
}

var opsByName = func() map[string]Op {
	m := make(map[string]Op, 3*numOps)
	for _, op := range AllOps() {
		info := opInfo[op]
		m[strings.ToLower(op.String())] = op
		m[info.Mnemonic] = op
		m[info.Func] = op
	}
	return m
}()

// ParseOp looks an operation up by mnemonic ("fcvt.w.s"), function name
// ("fcvt_ws") or Go name ("FCvtWS"), ignoring case.
func ParseOp(name string) (Op, error) {
	if op, ok := opsByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOp, name)
}
