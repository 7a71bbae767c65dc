package export

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// WriteText renders a result the way the CLI prints it: one header line,
// the quote lines, then the option breakdown.
func WriteText(w io.Writer, r Result) error {
	color := r.Scenario.Color
	if color == "" {
		color = "-"
	}
	if _, err := fmt.Fprintf(w, "\n=== %s / %s / color=%s ===\n", r.Scenario.Model, r.Scenario.Trim, color); err != nil {
		return err
	}
	for _, l := range r.Quote.Lines {
		if _, err := fmt.Fprintf(w, "%-22s : %s\n", l.Label, Money(l.Amount)); err != nil {
			return err
		}
	}
	if len(r.Quote.SelectedOptions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "  options:"); err != nil {
		return err
	}
	for _, it := range r.Quote.SelectedOptions {
		detail := "(+" + Money(it.Price) + ")"
		if it.Included {
			detail = "(standard)"
		}
		name := it.Name
		if name == "" {
			name = it.Code
		}
		if _, err := fmt.Fprintf(w, "    - %s  %s\n", name, detail); err != nil {
			return err
		}
	}
	return nil
}

// Money formats an amount with thousands separators and a KRW suffix.
func Money(amount int64) string {
	return humanize.Comma(amount) + " KRW"
}
