package crossval

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns a one-line result, with numbers formatted for tag.
func (r *Report) Summary(tag language.Tag) string {
	p := message.NewPrinter(tag)
	total, bad := r.Totals()
	known := r.ExpectedTotal()
	line := p.Sprintf("%s vs %s: %d of %d cases agree, %d mismatches in %d ops (seed %s)",
		r.Ref, r.DUT, total-bad-known, total, bad, len(r.Stats), fmt.Sprint(r.Seed))
	if known > 0 {
		line += p.Sprintf(", %d expected differences", known)
	}
	return line
}

// Write prints a per-op table followed by the retained mismatches.
func (r *Report) Write(w io.Writer, tag language.Tag) error {
	p := message.NewPrinter(tag)
	title := cases.Title(tag)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	p.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
		title.String("op"), title.String("cases"), title.String("mismatches"), title.String("expected"))
	for _, s := range r.Stats {
		p.Fprintf(tw, "%s\t%d\t%d\t%d\t\n", s.Op.Mnemonic(), s.Cases, s.Mismatches, s.Expected)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if ms := r.Mismatches(); len(ms) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		for _, m := range ms {
			if _, err := fmt.Fprintln(w, m); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, r.Summary(tag))
	return err
}
