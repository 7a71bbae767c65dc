package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// Header is the fixed first row of the CSV export.
var Header = []string{"model", "trim", "color", "options", "base", "optTotal", "exciseCut", "ecoCut", "total"}

// Row flattens a result into CSV fields. Options are the scenario's codes,
// pipe joined, in request order.
func Row(r Result) []string {
	q := r.Quote
	return []string{
		r.Scenario.Model,
		r.Scenario.Trim,
		r.Scenario.Color,
		strings.Join(r.Scenario.Options, "|"),
		strconv.FormatInt(q.BasePrice, 10),
		strconv.FormatInt(q.OptionsTotal, 10),
		strconv.FormatInt(q.DiscountInha, 10),
		strconv.FormatInt(q.EcoCombined, 10),
		strconv.FormatInt(q.Total, 10),
	}
}

// WriteCSV writes the header and one row per result.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write(Row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
