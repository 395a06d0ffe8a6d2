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

// Package isa models the instruction-level side of a Zfinx FPU.
//
// It encodes and decodes the single-precision OP-FP and fused multiply-add
// instructions, holds an integer register file, and provides two executors:
//
//   - SoftCore behaves like the NEORV32 FPU. Subnormal results are flushed,
//     NaN results are canonical, float-to-integer conversions saturate, and
//     fdiv.s, fsqrt.s and the fused multiply-add family raise an illegal
//     instruction trap.
//   - Native runs every instruction with the host's IEEE-754 arithmetic and
//     no flushing.
//
// Hardware adapts an executor to zfinx.Unit by issuing one instruction per
// call with the operands in a0, a1 and a2 and reading the result from a0,
// the calling convention of the NEORV32 intrinsic library.
//
// Importing the package registers the "hardware" and "native" backends with
// zfinx.
package isa
