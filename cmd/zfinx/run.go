package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-zfinx/internal/hostfp"
	"github.com/ajroetker/go-zfinx/internal/script"
	"github.com/ajroetker/go-zfinx/zfinx"
)

func newRunCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script.lua>",
		Short: "Run a Lua test-vector script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			u, err := g.unit()
			if err != nil {
				return err
			}
			res, err := script.Run(cmd.Context(), filepath.Base(args[0]), string(src), u, cmd.OutOrStdout(), g.log)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d checks, %d failed\n", u.Name(), res.Checks, res.Failures)
			return err
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show backends and host floating-point features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			if p := hostfp.HostProcessor(); p.Brand != "" {
				fmt.Fprintf(out, "cpu:      %s\n", p.Brand)
			}
			fmt.Fprintf(out, "backends: %s\n", strings.Join(zfinx.Backends(), ", "))
			fmt.Fprintf(out, "default:  %s\n", zfinx.CurrentBackend())
			fmt.Fprintf(out, "hardware fma: %v\n", hostfp.HasFusedMultiplyAdd())
			for _, f := range hostfp.Features() {
				fmt.Fprintf(out, "  %-9s %v\n", f.Name, f.Present)
			}
			return nil
		},
	}
}
