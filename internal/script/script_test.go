package script

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-zfinx/internal/log"
	"github.com/ajroetker/go-zfinx/zfinx"
	"github.com/ajroetker/go-zfinx/zfinx/isa"
)

func TestVectorsScript(t *testing.T) {
	src, err := os.ReadFile("testdata/vectors.lua")
	require.NoError(t, err)

	units := []zfinx.Unit{zfinx.Emulated{}, isa.NewHardware(isa.NewSoftCore())}
	for _, u := range units {
		t.Run(u.Name(), func(t *testing.T) {
			var out bytes.Buffer
			res, err := Run(context.Background(), "vectors.lua", string(src), u, &out, nil)
			require.NoError(t, err, out.String())
			assert.Zero(t, res.Failures)
			assert.Equal(t, 23, res.Checks)
			assert.Contains(t, out.String(), u.Name()+"\tdone")
		})
	}
}

func TestFailedChecks(t *testing.T) {
	var out bytes.Buffer
	res, err := Run(context.Background(), "fail", `
		check("wrong", fadds(0x3F800000, 0x3F800000), 0x3F800000)
		check("right", fadds(0x3F800000, 0x3F800000), 0x40000000)
	`, zfinx.Emulated{}, &out, nil)
	assert.ErrorIs(t, err, ErrChecksFailed)
	assert.Equal(t, Result{Checks: 2, Failures: 1}, res)
	assert.Contains(t, out.String(), "FAIL wrong: got 0x40000000, want 0x3f800000")
}

func TestFlagsBuiltin(t *testing.T) {
	var acc zfinx.Flags
	var out bytes.Buffer
	_, err := Run(context.Background(), "flags", `
		fdivs(0x3F800000, 0)
		local n, s = flags()
		check("dz bits", n, 8)
		check("dz name", s, "DZ")
		local n2 = flags()
		check("cleared", n2, 0)
	`, zfinx.Emulated{Flags: &acc}, &out, nil)
	require.NoError(t, err, out.String())
}

func TestBadArguments(t *testing.T) {
	for _, src := range []string{
		`fadds(1.5, 0)`,
		`fadds(2^33, 0)`,
		`fadds("x", 0)`,
		`this is not lua`,
	} {
		_, err := Run(context.Background(), "bad", src, zfinx.Emulated{}, &bytes.Buffer{}, nil)
		assert.Error(t, err, src)
	}
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := Run(ctx, "spin", `while true do fadds(0, 0) end`, zfinx.Emulated{}, &bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestScriptErrorsAreLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := log.NewWithHandler(slog.NewJSONHandler(&logs, nil))

	_, err := Run(context.Background(), "raise.lua", `error("boom")`, zfinx.Emulated{}, &bytes.Buffer{}, logger)
	require.Error(t, err)
	assert.Contains(t, logs.String(), `"level":"ERROR"`)
	assert.Contains(t, logs.String(), `"script":"raise.lua"`)
	assert.Contains(t, logs.String(), "boom")

	logs.Reset()
	_, err = Run(context.Background(), "syntax.lua", `check(`, zfinx.Emulated{}, &bytes.Buffer{}, logger)
	require.Error(t, err)
	assert.Contains(t, logs.String(), `"msg":"script does not compile"`)

	logs.Reset()
	_, err = Run(context.Background(), "ok.lua", `check("one", fadds(0, 0x3F800000), 0x3F800000)`, zfinx.Emulated{}, &bytes.Buffer{}, logger)
	require.NoError(t, err)
	assert.Empty(t, logs.String())
}
