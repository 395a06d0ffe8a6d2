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

// Package main provides a diagnostic tool to print the zfinx backend
// selection and the host floating-point features detected by Go.
package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/ajroetker/go-zfinx/internal/hostfp"
	"github.com/ajroetker/go-zfinx/zfinx"
	_ "github.com/ajroetker/go-zfinx/zfinx/isa"
)

func main() {
	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	if p := hostfp.HostProcessor(); p.Brand != "" {
		fmt.Printf("CPU: %s (%s, %d cores)\n", p.Brand, p.Vendor, p.PhysicalCores)
	}
	fmt.Println()

	fmt.Printf("zfinx backends: %s\n", strings.Join(zfinx.Backends(), ", "))
	fmt.Printf("zfinx backend: %s\n", zfinx.CurrentBackend())
	fmt.Printf("%s disables hardware: %v\n", zfinx.EnvNoHW, zfinx.NoHardwareEnv())
	fmt.Println()

	features := hostfp.Features()
	if len(features) > 0 {
		fmt.Printf("=== golang.org/x/sys/cpu (%s) ===\n", runtime.GOARCH)
		for _, f := range features {
			note := ""
			if f.Note != "" {
				note = " (" + f.Note + ")"
			}
			fmt.Printf("  Has%-9s %v%s\n", f.Name+":", f.Present, note)
		}
		fmt.Println()
	}

	fmt.Printf("Hardware math.FMA: %v\n", hostfp.HasFusedMultiplyAdd())
	nan := "0x7fc00000"
	if hostfp.NaNSignBit() {
		nan = "0xffc00000"
	}
	fmt.Printf("Host default NaN: %s (emulation returns 0x%08x)\n", nan, zfinx.CanonicalNaN)
}
