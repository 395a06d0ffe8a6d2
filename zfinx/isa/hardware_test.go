package isa

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-zfinx/internal/log"
	"github.com/ajroetker/go-zfinx/zfinx"
)

func TestRegisteredBackends(t *testing.T) {
	assert.Subset(t, zfinx.Backends(), []string{zfinx.BackendEmulated, zfinx.BackendHardware, zfinx.BackendNative})

	u, err := zfinx.Backend(zfinx.BackendHardware)
	require.NoError(t, err)
	assert.Equal(t, zfinx.BackendHardware, u.Name())
	hw, ok := u.(*Hardware)
	require.True(t, ok, "hardware backend is %T", u)
	assert.IsType(t, &SoftCore{}, hw.Executor())

	u, err = zfinx.Backend(zfinx.BackendNative)
	require.NoError(t, err)
	assert.Equal(t, zfinx.BackendNative, u.Name())
}

func TestBackendLookupIgnoresCase(t *testing.T) {
	u, err := zfinx.Backend(strings.ToUpper(zfinx.BackendHardware))
	require.NoError(t, err)
	assert.Equal(t, zfinx.BackendHardware, u.Name())
}

func TestNativeSemantics(t *testing.T) {
	u := NewNative()
	tests := []struct {
		name    string
		op      zfinx.Op
		a, b, c uint32
		want    uint32
	}{
		{"subnormal kept", zfinx.OpFAddS, zfinx.MinSubnormal, zfinx.PosZero, 0, zfinx.MinSubnormal},
		{"divide", zfinx.OpFDivS, zfinx.Bits(1), zfinx.Bits(4), 0, zfinx.Bits(0.25)},
		{"divide by zero", zfinx.OpFDivS, zfinx.One, zfinx.PosZero, 0, zfinx.PosInf},
		{"sqrt", zfinx.OpFSqrtS, zfinx.Bits(2.25), 0, 0, zfinx.Bits(1.5)},
		{"sign injection keeps subnormal", zfinx.OpFSgnjnS, zfinx.MinSubnormal, zfinx.PosZero, 0, zfinx.MinSubnormal | zfinx.SignMask},
		{"fused", zfinx.OpFMAddS, 0x3F800800, 0x3F800800, 0xBF801000, 0x33800000},
		{"fused negated", zfinx.OpFNMAddS, zfinx.Bits(2), zfinx.Bits(3), zfinx.Bits(1), zfinx.Bits(-7)},
		{"fmsub", zfinx.OpFMSubS, zfinx.Bits(2), zfinx.Bits(3), zfinx.Bits(1), zfinx.Bits(5)},
		{"fnmsub", zfinx.OpFNMSubS, zfinx.Bits(2), zfinx.Bits(3), zfinx.Bits(1), zfinx.Bits(-5)},
		{"convert", zfinx.OpFCvtWS, zfinx.Bits(-2.5), 0, 0, 0xFFFFFFFE},
		{"classify", zfinx.OpFClassS, zfinx.NegZero, 0, 0, uint32(zfinx.ClassNegZero)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, zfinx.Apply(u, tt.op, tt.a, tt.b, tt.c))
		})
	}

	// Go's min propagates NaN instead of returning the number.
	assert.True(t, zfinx.IsNaN(u.FMinS(zfinx.CanonicalNaN, zfinx.One)))
	assert.NoError(t, u.Err())
	assert.Zero(t, u.ReadAndClearFlags())
}

func TestHardwareLogsTraps(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hw := NewHardware(NewSoftCore(), WithLogger(l))

	hw.FSqrtS(zfinx.One)
	assert.Contains(t, buf.String(), `"module":"isa"`)
	assert.Contains(t, buf.String(), `"op":"fsqrt.s"`)

	hw.FDivS(zfinx.One, zfinx.One)
	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `"level":"WARN"`), out)
	assert.Equal(t, 1, strings.Count(out, `"level":"DEBUG"`), out)

	hw.ClearErr()
	buf.Reset()
	hw.FDivS(zfinx.One, zfinx.One)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestHardwareConcurrent(t *testing.T) {
	hw := NewHardware(NewSoftCore())
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := zfinx.Bits(float32(i))
			for range 500 {
				if got := hw.FAddS(a, a); got != zfinx.Bits(float32(2*i)) {
					t.Errorf("FAddS(%d, %d) = %#08x", i, i, got)
					return
				}
			}
		}()
	}
	wg.Wait()
	assert.Zero(t, hw.Faults())
}
