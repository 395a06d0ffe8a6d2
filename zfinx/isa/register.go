package isa

import "github.com/ajroetker/go-zfinx/zfinx"

func init() {
	zfinx.Register(zfinx.BackendHardware, func() zfinx.Unit { return NewHardware(NewSoftCore()) })
	zfinx.Register(zfinx.BackendNative, func() zfinx.Unit { return NewNative() })
}
