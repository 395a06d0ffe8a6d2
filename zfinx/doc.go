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

// Package zfinx emulates the RISC-V Zfinx single-precision floating-point
// extension in software, bit for bit.
//
// Zfinx keeps float32 operands in the integer register file, so every
// operation here is available in two shapes:
//   - float32 functions (FAddS, FMinS, FClassS, ...) that compute the
//     result the extension mandates, and
//   - word-level methods on a Unit, taking and returning raw uint32 register
//     contents, so that an emulated unit and a hardware-backed one
//     (see package zfinx/isa) are interchangeable at the call site.
//
// # Deviations from native float32 semantics
//
// The extension differs from what Go's float32 operators produce:
//   - subnormal results are flushed to a zero of the same sign (FlushSubnormal),
//   - NaN results of arithmetic are the canonical quiet NaN 0x7fc00000,
//   - min/max prefer the number over a NaN and order -0 below +0,
//   - float-to-int conversions round to nearest, ties to even.
//
// Classification (FClassS) still reports subnormal operands accurately.
//
// # Reference-only operations
//
// Division, square root and the multiply-add family are not implemented by the
// hardware this package models. Their emulations are bit accurate for what
// they compute, but the multiply-add family rounds twice (product, then sum):
//
//	FMAddS(a, b, c) == FAddS(float32(a*b), c) // not a fused operation
//
// # Backends
//
// Default returns the Unit selected by the ZFINX_BACKEND environment variable
// ("emulated" unless configured otherwise). ZFINX_NO_HW=1 forces emulation.
// Importing zfinx/isa registers the "hardware" and "native" backends.
package zfinx
