package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-zfinx/internal/log"
	"github.com/ajroetker/go-zfinx/zfinx"
	"github.com/ajroetker/go-zfinx/zfinx/isa"
)

func newOpsCmd() *cobra.Command {
	var supportedOnly bool
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List the operations with their intrinsic encodings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops := zfinx.AllOps()
			if supportedOnly {
				ops = zfinx.SupportedOps()
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MNEMONIC\tFUNC\tARITY\tENCODING\tHARDWARE")
			for _, op := range ops {
				info := op.Info()
				hw := "yes"
				if info.Unsupported {
					hw = "trap"
				}
				in := isa.Intrinsic(op)
				fmt.Fprintf(tw, "%s\t%s\t%d\t0x%08x\t%s\n",
					info.Mnemonic, info.Func, info.Arity, isa.MustEncode(in), hw)
			}
			log.Default().Debug("listed ops", "count", len(ops))
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&supportedOnly, "supported", false, "only list operations the hardware implements")
	return cmd
}

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <word>...",
		Short: "Decode instruction words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bad := 0
			for _, a := range args {
				word, err := parseOperand(a, true)
				if err != nil {
					return err
				}
				in, err := isa.Decode(word)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "0x%08x\t(illegal)\n", word)
					bad++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "0x%08x\t%s\n", word, in)
			}
			if bad > 0 {
				return fmt.Errorf("%w: %d illegal instructions", errNotOK, bad)
			}
			return nil
		},
	}
}
