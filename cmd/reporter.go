package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/memlat/experiment"
)

// tableReporter reprints the accumulated results as an aligned text table
// after every sweep stage.
type tableReporter struct {
	w io.Writer
}

func (r tableReporter) Report(results []experiment.Result) {
	tw := tabwriter.NewWriter(r.w, 0, 8, 2, ' ', 0)

	fmt.Fprintf(tw, "Stride\tPenalty per access\n")
	for _, result := range results {
		fmt.Fprintf(tw, "%d\t%g\n", result.Stride, result.PenaltyPerAccess)
	}
	fmt.Fprintln(tw)

	tw.Flush()
}
