package zfinx

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Backend names understood by Backend and the ZFINX_BACKEND variable.
const (
	BackendEmulated = "emulated"
	BackendHardware = "hardware"
	BackendNative   = "native"
)

// Environment variables consulted by Default.
const (
	EnvBackend = "ZFINX_BACKEND"
	EnvNoHW    = "ZFINX_NO_HW"
)

// ErrUnknownBackend is returned for backend names nobody registered.
var ErrUnknownBackend = errors.New("zfinx: unknown backend")

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Unit{
		BackendEmulated: func() Unit { return Emulated{} },
	}

	defaultOnce sync.Once
	defaultUnit Unit
)

// Register makes a backend available under name. Hardware-backed
// implementations call it from init; registering a name twice replaces the
// earlier factory.
func Register(name string, factory func() Unit) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = factory
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := lo.Keys(registry)
	slices.Sort(names)
	return names
}

// Backend returns a fresh Unit for the named backend.
func Backend(name string) (Unit, error) {
	registryMu.RLock()
	factory, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownBackend, name, strings.Join(Backends(), ", "))
	}
	return factory(), nil
}

// NoHardwareEnv reports whether ZFINX_NO_HW asks for emulation only.
func NoHardwareEnv() bool {
	v, err := strconv.ParseBool(os.Getenv(EnvNoHW))
	return err == nil && v
}

// selectBackend resolves the configured backend name. Unknown names fall back
// to emulation so a bad environment never leaves callers without a unit.
func selectBackend() Unit {
	if NoHardwareEnv() {
		return Emulated{}
	}
	name := os.Getenv(EnvBackend)
	if name == "" {
		return Emulated{}
	}
	u, err := Backend(name)
	if err != nil {
		return Emulated{}
	}
	return u
}

// Default returns the process-wide Unit chosen from the environment on first
// use. Backends registered after the first call are not considered.
func Default() Unit {
	defaultOnce.Do(func() { defaultUnit = selectBackend() })
	return defaultUnit
}

// CurrentBackend returns the name of the Default unit.
func CurrentBackend() string {
	return Default().Name()
}
