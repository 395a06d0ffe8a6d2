package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-zfinx/zfinx"
	"github.com/ajroetker/go-zfinx/zfinx/isa"
)

func newEvalCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <op> <operand>...",
		Short: "Evaluate one operation",
		Long: `Evaluate one operation on the selected backend and print rd and the
accrued exception flags.

Operands are 0x-prefixed bit patterns, float literals, inf, -inf, nan,
-nan, snan or -snan. fcvt.s.w and fcvt.s.wu take decimal integers.
Negative operands need no quoting; everything after "--" is an operand.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := zfinx.ParseOp(args[0])
			if err != nil {
				return err
			}
			info := op.Info()
			if got := len(args) - 1; got != info.Arity {
				return fmt.Errorf("%s takes %d operands, got %d", info.Mnemonic, info.Arity, got)
			}
			var rs [3]uint32
			for i, a := range args[1:] {
				if rs[i], err = parseOperand(a, info.IntOperand); err != nil {
					return err
				}
			}

			u, err := g.unit()
			if err != nil {
				return err
			}
			if fr, ok := u.(zfinx.FlagReader); ok {
				fr.ReadAndClearFlags()
			}
			rd := zfinx.Apply(u, op, rs[0], rs[1], rs[2])

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s = %s\n", info.Mnemonic, formatResult(op, rd))
			if fr, ok := u.(zfinx.FlagReader); ok {
				fmt.Fprintf(out, "flags = %s\n", fr.ReadAndClearFlags())
			}
			if h, ok := u.(*isa.Hardware); ok && h.Err() != nil {
				fmt.Fprintf(out, "trap = %v\n", h.Err())
			}
			return nil
		},
	}
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <value>...",
		Short: "Print the fclass.s class of each value",
		Long: `Print the fclass.s mask and class name of each value. Values use the
operand syntax of eval, so -0 and -inf are accepted as they are.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				w, err := parseOperand(a, false)
				if err != nil {
					return err
				}
				c := zfinx.Classify(w)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t0x%03x\t%s\n", formatFloat(w), uint32(c), c)
			}
			return nil
		},
	}
}
