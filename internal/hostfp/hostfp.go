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

// Package hostfp reports the host floating-point features that decide how
// the native backend behaves.
package hostfp

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// Processor identifies the host CPU. Fields are empty where the
// architecture does not expose them.
type Processor struct {
	Brand         string
	Vendor        string
	PhysicalCores int
}

// HostProcessor reads the processor identity from CPUID.
func HostProcessor() Processor {
	return Processor{
		Brand:         cpuid.CPU.BrandName,
		Vendor:        cpuid.CPU.VendorString,
		PhysicalCores: cpuid.CPU.PhysicalCores,
	}
}

// Feature is one detected capability.
type Feature struct {
	Name    string
	Present bool
	Note    string
}

// Features lists the floating-point features of the host CPU. It is empty on
// architectures without a feature table.
func Features() []Feature {
	switch runtime.GOARCH {
	case "arm64":
		return []Feature{
			{"FP", cpu.ARM64.HasFP, "scalar floating point"},
			{"ASIMD", cpu.ARM64.HasASIMD, "NEON baseline"},
			{"FPHP", cpu.ARM64.HasFPHP, "FP16 scalar, ARMv8.2-A"},
			{"ASIMDHP", cpu.ARM64.HasASIMDHP, "FP16 NEON, ARMv8.2-A"},
			{"ASIMDFHM", cpu.ARM64.HasASIMDFHM, "FP16 FMA, ARMv8.4-A"},
			{"SVE", cpu.ARM64.HasSVE, "scalable vectors"},
		}
	case "amd64", "386":
		return []Feature{
			{"SSE2", cpu.X86.HasSSE2, "scalar binary32 arithmetic"},
			{"SSE41", cpu.X86.HasSSE41, "ROUNDSS"},
			{"AVX", cpu.X86.HasAVX, ""},
			{"FMA", cpu.X86.HasFMA, "fused multiply-add"},
			{"AVX512F", cpu.X86.HasAVX512F, ""},
		}
	}
	return nil
}

// HasFusedMultiplyAdd reports whether math.FMA is backed by a hardware
// instruction rather than the software fallback.
func HasFusedMultiplyAdd() bool {
	switch runtime.GOARCH {
	case "arm64", "riscv64", "s390x", "ppc64", "ppc64le", "loong64":
		return true
	case "amd64":
		return cpu.X86.HasFMA
	}
	return false
}

// NaNSignBit reports the sign of the NaN the host produces for an invalid
// operation such as Inf - Inf: true on x86 (0xFFC00000), false on ARM and
// RISC-V (0x7FC00000).
func NaNSignBit() bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return true
	}
	return false
}
