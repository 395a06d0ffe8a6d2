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

// Command zfinx evaluates, classifies and cross-validates RISC-V Zfinx
// single-precision operations.
//
// Usage:
//
//	zfinx ops
//	zfinx eval fadd.s 1.5 0x40000000
//	zfinx classify -0 snan 0x00000001
//	zfinx eval fcvt.s.w -3
//	zfinx disasm 0x00b50553
//	zfinx crossval --ref emulated --dut hardware --samples 100000
//	zfinx run vectors.lua
//	zfinx info
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"unicode"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code. It takes
// the arguments without the program name so tests can drive it directly.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	root.SetArgs(protectOperands(args))
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "zfinx: %v\n", err)
		return 1
	}
	return 0
}

// operandCommands take float operands that may start with a minus sign.
var operandCommands = []string{"eval", "classify"}

// valueFlags are the flags of those commands that consume the next argument.
var valueFlags = []string{"--backend", "--log-level", "--log-format"}

// protectOperands moves the operands of eval and classify behind "--" so
// that negative literals such as -0, -inf or -3 are not parsed as shorthand
// flags. Flags stay in front and keep working in any position.
func protectOperands(args []string) []string {
	cmd := -1
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return args
		}
		if slices.Contains(valueFlags, a) {
			i++
			continue
		}
		if slices.Contains(operandCommands, a) {
			cmd = i
			break
		}
		if !strings.HasPrefix(a, "-") {
			return args
		}
	}
	if cmd < 0 {
		return args
	}

	out := slices.Clone(args[:cmd+1])
	var operands []string
	rest := args[cmd+1:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		switch {
		case a == "--":
			operands = append(operands, rest[i+1:]...)
			i = len(rest)
		case strings.HasPrefix(a, "-") && !isNegativeOperand(a):
			out = append(out, a)
			if slices.Contains(valueFlags, a) && i+1 < len(rest) {
				i++
				out = append(out, rest[i])
			}
		default:
			operands = append(operands, a)
		}
	}
	if len(operands) == 0 {
		return out
	}
	out = append(out, "--")
	return append(out, operands...)
}

// isNegativeOperand reports whether a is a negative number or a negative
// named float rather than a flag.
func isNegativeOperand(a string) bool {
	if len(a) < 2 || a[0] != '-' {
		return false
	}
	if _, ok := namedFloats[strings.ToLower(a)]; ok {
		return true
	}
	return unicode.IsDigit(rune(a[1])) || a[1] == '.'
}
