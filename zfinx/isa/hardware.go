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
	"sync"
	"sync/atomic"

	"github.com/ajroetker/go-zfinx/internal/log"
	"github.com/ajroetker/go-zfinx/zfinx"
)

// Hardware is a zfinx.Unit that issues each operation as one instruction on
// an Executor, following the intrinsic calling convention: rs1, rs2 and rs3
// are loaded into a0, a1 and a2, and the result is read back from a0.
//
// When the executor traps, a0 keeps the rs1 operand, so the call returns rs1.
// The first trap is retained for Err and every trap increments Faults.
//
// Hardware serializes instructions and is safe for concurrent use.
type Hardware struct {
	name  string
	exec  Executor
	insns []uint32
	log   *log.Logger

	mu   sync.Mutex
	regs Regs
	err  error

	faults atomic.Uint64
}

var (
	_ zfinx.Unit       = (*Hardware)(nil)
	_ zfinx.FlagReader = (*Hardware)(nil)
)

// Option configures a Hardware unit.
type Option func(*Hardware)

// WithLogger reports traps on l at debug level.
func WithLogger(l *log.Logger) Option {
	return func(h *Hardware) { h.log = log.OrDiscard(l).Module("isa") }
}

// WithName overrides the name returned by Name.
func WithName(name string) Option {
	return func(h *Hardware) { h.name = name }
}

// NewHardware returns a unit named "hardware" backed by exec.
func NewHardware(exec Executor, opts ...Option) *Hardware {
	h := &Hardware{
		name: zfinx.BackendHardware,
		exec: exec,
		log:  log.Discard(),
	}
	h.insns = make([]uint32, len(zfinx.AllOps()))
	for _, op := range zfinx.AllOps() {
		h.insns[op] = MustEncode(Intrinsic(op))
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewNative returns a unit named "native" backed by a Native executor.
func NewNative(opts ...Option) *Hardware {
	return NewHardware(Native{}, append([]Option{WithName(zfinx.BackendNative)}, opts...)...)
}

// Name implements zfinx.Unit.
func (h *Hardware) Name() string { return h.name }

// Executor returns the executor the unit issues to.
func (h *Hardware) Executor() Executor { return h.exec }

// Err returns the first trap raised since the unit was created or last
// cleared, or nil.
func (h *Hardware) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// ClearErr forgets the retained trap.
func (h *Hardware) ClearErr() {
	h.mu.Lock()
	h.err = nil
	h.mu.Unlock()
}

// Faults returns the number of trapped instructions.
func (h *Hardware) Faults() uint64 { return h.faults.Load() }

// ReadAndClearFlags implements zfinx.FlagReader. It returns 0 when the
// executor keeps no flags.
func (h *Hardware) ReadAndClearFlags() zfinx.Flag {
	if fr, ok := h.exec.(zfinx.FlagReader); ok {
		return fr.ReadAndClearFlags()
	}
	return 0
}

func (h *Hardware) issue(op zfinx.Op, rs1, rs2, rs3 uint32) uint32 {
	insn := h.insns[op]

	h.mu.Lock()
	defer h.mu.Unlock()
	h.regs.Write(RegA0, rs1)
	h.regs.Write(RegA1, rs2)
	h.regs.Write(RegA2, rs3)
	if err := h.exec.Execute(insn, &h.regs); err != nil {
		h.faults.Add(1)
		if h.err == nil {
			h.err = err
			h.log.Warn("trap", "op", op.Mnemonic(), "insn", insn, "err", err)
		} else {
			h.log.Debug("trap", "op", op.Mnemonic(), "insn", insn, "err", err)
		}
	}
	return h.regs.Read(RegA0)
}

func (h *Hardware) FAddS(rs1, rs2 uint32) uint32   { return h.issue(zfinx.OpFAddS, rs1, rs2, 0) }
func (h *Hardware) FSubS(rs1, rs2 uint32) uint32   { return h.issue(zfinx.OpFSubS, rs1, rs2, 0) }
func (h *Hardware) FMulS(rs1, rs2 uint32) uint32   { return h.issue(zfinx.OpFMulS, rs1, rs2, 0) }
func (h *Hardware) FMinS(rs1, rs2 uint32) uint32   { return h.issue(zfinx.OpFMinS, rs1, rs2, 0) }
func (h *Hardware) FMaxS(rs1, rs2 uint32) uint32   { return h.issue(zfinx.OpFMaxS, rs1, rs2, 0) }
func (h *Hardware) FCvtWUS(rs1 uint32) uint32      { return h.issue(zfinx.OpFCvtWUS, rs1, 0, 0) }
func (h *Hardware) FCvtWS(rs1 uint32) uint32       { return h.issue(zfinx.OpFCvtWS, rs1, 0, 0) }
func (h *Hardware) FCvtSWU(rs1 uint32) uint32      { return h.issue(zfinx.OpFCvtSWU, rs1, 0, 0) }
func (h *Hardware) FCvtSW(rs1 uint32) uint32       { return h.issue(zfinx.OpFCvtSW, rs1, 0, 0) }
func (h *Hardware) FEqS(rs1, rs2 uint32) uint32    { return h.issue(zfinx.OpFEqS, rs1, rs2, 0) }
func (h *Hardware) FLtS(rs1, rs2 uint32) uint32    { return h.issue(zfinx.OpFLtS, rs1, rs2, 0) }
func (h *Hardware) FLeS(rs1, rs2 uint32) uint32    { return h.issue(zfinx.OpFLeS, rs1, rs2, 0) }
func (h *Hardware) FSgnjS(rs1, rs2 uint32) uint32  { return h.issue(zfinx.OpFSgnjS, rs1, rs2, 0) }
func (h *Hardware) FSgnjnS(rs1, rs2 uint32) uint32 { return h.issue(zfinx.OpFSgnjnS, rs1, rs2, 0) }
func (h *Hardware) FSgnjxS(rs1, rs2 uint32) uint32 { return h.issue(zfinx.OpFSgnjxS, rs1, rs2, 0) }
func (h *Hardware) FClassS(rs1 uint32) uint32      { return h.issue(zfinx.OpFClassS, rs1, 0, 0) }
func (h *Hardware) FDivS(rs1, rs2 uint32) uint32   { return h.issue(zfinx.OpFDivS, rs1, rs2, 0) }
func (h *Hardware) FSqrtS(rs1 uint32) uint32       { return h.issue(zfinx.OpFSqrtS, rs1, 0, 0) }

func (h *Hardware) FMAddS(rs1, rs2, rs3 uint32) uint32 {
	return h.issue(zfinx.OpFMAddS, rs1, rs2, rs3)
}

func (h *Hardware) FMSubS(rs1, rs2, rs3 uint32) uint32 {
	return h.issue(zfinx.OpFMSubS, rs1, rs2, rs3)
}

func (h *Hardware) FNMSubS(rs1, rs2, rs3 uint32) uint32 {
	return h.issue(zfinx.OpFNMSubS, rs1, rs2, rs3)
}

func (h *Hardware) FNMAddS(rs1, rs2, rs3 uint32) uint32 {
	return h.issue(zfinx.OpFNMAddS, rs1, rs2, rs3)
}
