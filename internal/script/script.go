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

// Package script runs Lua test-vector scripts against a zfinx.Unit.
//
// Every operation is bound under its function-style name and works on 32-bit
// words, e.g. fadds(0x3F800000, 0x40000000). Helpers:
//
//	f2b(x)                  bit pattern of the float32 nearest to x
//	b2f(w)                  float value of a bit pattern
//	hex(w)                  "0x%08x" rendering of w
//	classname(w)            fclass.s class name of w, e.g. "+zero"
//	flags()                 accrued exception flags, read and cleared: number, name
//	backend()               name of the unit under test
//	check(name, got, want)  records a check; a mismatch is reported and counted
//
// print writes to the configured output.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/ajroetker/go-zfinx/internal/log"
	"github.com/ajroetker/go-zfinx/zfinx"
)

// ErrChecksFailed is returned by Run when a script completes with failed
// checks.
var ErrChecksFailed = errors.New("script: checks failed")

// Result summarizes a script run.
type Result struct {
	Checks   int
	Failures int
}

type runner struct {
	unit   zfinx.Unit
	out    io.Writer
	log    *log.Logger
	result Result
}

// Run executes src with the operations bound to u. Output from print and
// failed checks goes to out. A script that raises a Lua error returns that
// error; one that finishes with failed checks returns ErrChecksFailed along
// with the counts.
func Run(ctx context.Context, name, src string, u zfinx.Unit, out io.Writer, logger *log.Logger) (Result, error) {
	r := &runner{unit: u, out: out, log: log.OrDiscard(logger).Module("script").With("script", name)}

	L := lua.NewState(lua.Options{SkipOpenLibs: false})
	defer L.Close()
	L.SetContext(ctx)
	r.bind(L)

	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		r.log.Error("script does not compile", "err", err)
		return r.result, fmt.Errorf("script: %w", err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		r.log.Error("script failed", "err", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return r.result, fmt.Errorf("script %s: %w", name, ctxErr)
		}
		return r.result, fmt.Errorf("script %s: %w", name, err)
	}

	r.log.Debug("script finished", "checks", r.result.Checks, "failures", r.result.Failures)
	if r.result.Failures > 0 {
		return r.result, fmt.Errorf("%w: %d of %d", ErrChecksFailed, r.result.Failures, r.result.Checks)
	}
	return r.result, nil
}

func (r *runner) bind(L *lua.LState) {
	for _, op := range zfinx.AllOps() {
		L.SetGlobal(op.Info().Func, L.NewFunction(r.opFunc(op)))
	}
	L.SetGlobal("f2b", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(zfinx.Bits(float32(L.CheckNumber(1)))))
		return 1
	}))
	L.SetGlobal("b2f", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(zfinx.F32(checkWord(L, 1))))
		return 1
	}))
	L.SetGlobal("hex", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(fmt.Sprintf("0x%08x", checkWord(L, 1))))
		return 1
	}))
	L.SetGlobal("classname", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(zfinx.Classify(checkWord(L, 1)).String()))
		return 1
	}))
	L.SetGlobal("flags", L.NewFunction(func(L *lua.LState) int {
		var f zfinx.Flag
		if fr, ok := r.unit.(zfinx.FlagReader); ok {
			f = fr.ReadAndClearFlags()
		}
		L.Push(lua.LNumber(f))
		L.Push(lua.LString(f.String()))
		return 2
	}))
	L.SetGlobal("backend", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(r.unit.Name()))
		return 1
	}))
	L.SetGlobal("check", L.NewFunction(r.check))
	L.SetGlobal("print", L.NewFunction(r.print))
}

func (r *runner) opFunc(op zfinx.Op) lua.LGFunction {
	arity := op.Info().Arity
	return func(L *lua.LState) int {
		var args [3]uint32
		for i := range arity {
			args[i] = checkWord(L, i+1)
		}
		L.Push(lua.LNumber(zfinx.Apply(r.unit, op, args[0], args[1], args[2])))
		return 1
	}
}

// checkWord reads argument n as a 32-bit word. Negative integers are taken
// as two's complement.
func checkWord(L *lua.LState, n int) uint32 {
	v := float64(L.CheckNumber(n))
	if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxUint32 {
		L.ArgError(n, "32-bit word expected")
		return 0
	}
	if v < 0 {
		return uint32(int32(v))
	}
	return uint32(v)
}

func (r *runner) check(L *lua.LState) int {
	name := L.CheckString(1)
	got, want := L.CheckAny(2), L.CheckAny(3)
	r.result.Checks++

	ok := L.Equal(got, want) || got.String() == want.String()
	if !ok {
		r.result.Failures++
		fmt.Fprintf(r.out, "FAIL %s: got %s, want %s\n", name, render(got), render(want))
		r.log.Debug("check failed", "check", name, "got", got.String(), "want", want.String())
	}
	L.Push(lua.LBool(ok))
	return 1
}

func render(v lua.LValue) string {
	if n, ok := v.(lua.LNumber); ok {
		f := float64(n)
		if f == math.Trunc(f) && f >= 0 && f <= math.MaxUint32 {
			return fmt.Sprintf("0x%08x", uint32(f))
		}
	}
	return v.String()
}

func (r *runner) print(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, top)
	for i := 1; i <= top; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}
