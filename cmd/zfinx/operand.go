package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ajroetker/go-zfinx/zfinx"
)

var namedFloats = map[string]uint32{
	"inf":   zfinx.PosInf,
	"+inf":  zfinx.PosInf,
	"-inf":  zfinx.NegInf,
	"nan":   zfinx.CanonicalNaN,
	"+nan":  zfinx.CanonicalNaN,
	"-nan":  zfinx.CanonicalNaN | zfinx.SignMask,
	"snan":  zfinx.SignalingNaNBits,
	"+snan": zfinx.SignalingNaNBits,
	"-snan": zfinx.SignalingNaNBits | zfinx.SignMask,
}

// parseOperand reads a register word. 0x-prefixed values are taken as raw
// bits. Otherwise integer operands parse as int32 or uint32 and float
// operands as a float32 literal or one of the names in namedFloats. Literals
// out of range round to infinity or zero.
func parseOperand(s string, intOperand bool) (uint32, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := strings.CutPrefix(s, "0x"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("bad bit pattern %q", s)
		}
		return uint32(v), nil
	}
	if intOperand {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < math.MinInt32 || v > math.MaxUint32 {
			return 0, fmt.Errorf("bad integer operand %q", s)
		}
		return uint32(v), nil
	}
	if w, ok := namedFloats[s]; ok {
		return w, nil
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("bad float operand %q", s)
	}
	return zfinx.Bits(float32(f)), nil
}

// formatFloat renders a word as bits followed by its float value.
func formatFloat(w uint32) string {
	f := zfinx.F32(w)
	var v string
	switch {
	case zfinx.IsSignalingNaN(w):
		v = "sNaN"
	case zfinx.IsNaN(w):
		v = "NaN"
	default:
		v = strconv.FormatFloat(float64(f), 'g', -1, 32)
	}
	if zfinx.IsNaN(w) && zfinx.SignBit(w) {
		v = "-" + v
	}
	return fmt.Sprintf("0x%08x (%s)", w, v)
}

// formatResult renders rd according to what op writes there.
func formatResult(op zfinx.Op, w uint32) string {
	info := op.Info()
	if !info.IntResult {
		return formatFloat(w)
	}
	switch op {
	case zfinx.OpFClassS:
		return fmt.Sprintf("0x%08x (%s)", w, zfinx.Class(w))
	case zfinx.OpFCvtWS:
		return fmt.Sprintf("0x%08x (%d)", w, int32(w))
	case zfinx.OpFCvtWUS:
		return fmt.Sprintf("0x%08x (%d)", w, w)
	}
	return strconv.FormatUint(uint64(w), 10)
}
