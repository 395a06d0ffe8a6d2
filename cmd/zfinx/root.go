package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/go-zfinx/internal/log"
	"github.com/ajroetker/go-zfinx/zfinx"
	"github.com/ajroetker/go-zfinx/zfinx/isa"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	backend   string
	logLevel  string
	logFormat string

	log *log.Logger
}

func (g *globals) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&g.backend, "backend", "",
		"unit to evaluate on ("+strings.Join(zfinx.Backends(), ", ")+"); default from "+zfinx.EnvBackend)
	fs.StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fs.StringVar(&g.logFormat, "log-format", string(log.FormatAuto), "log format: auto, text, json")
}

// setup configures logging once flags are parsed.
func (g *globals) setup(cmd *cobra.Command) error {
	level, err := log.ParseLevel(g.logLevel)
	if err != nil {
		return err
	}
	format, err := log.ParseFormat(g.logFormat)
	if err != nil {
		return err
	}
	g.log = log.New(cmd.ErrOrStderr(), level, format)
	log.SetDefault(g.log)
	g.log.Debug("configured", "backend", g.backend, "level", level.String(), "format", string(format))
	return nil
}

// unit resolves the --backend flag, falling back to the environment.
func (g *globals) unit() (zfinx.Unit, error) {
	name := g.backend
	if name == "" {
		name = zfinx.CurrentBackend()
	}
	return g.unitNamed(name)
}

// unitNamed returns a fresh unit. The emulation accrues flags and
// hardware-backed units log traps to the command logger.
func (g *globals) unitNamed(name string) (zfinx.Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case zfinx.BackendEmulated:
		return zfinx.Emulated{Flags: new(zfinx.Flags)}, nil
	case zfinx.BackendHardware:
		return isa.NewHardware(isa.NewSoftCore(), isa.WithLogger(g.log)), nil
	case zfinx.BackendNative:
		return isa.NewNative(isa.WithLogger(g.log)), nil
	}
	return zfinx.Backend(name)
}

// errNotOK marks a command that ran but found a problem it already reported.
var errNotOK = errors.New("failed")

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "zfinx",
		Short:         "Bit-exact RISC-V Zfinx single-precision arithmetic",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setup(cmd)
		},
	}
	g.addFlags(root.PersistentFlags())

	root.AddCommand(
		newOpsCmd(),
		newEvalCmd(g),
		newClassifyCmd(),
		newDisasmCmd(),
		newCrossvalCmd(g),
		newRunCmd(g),
		newInfoCmd(),
	)
	return root
}
