// internal/app/filt.go
package app

import (
	"github.com/spf13/cobra"

	"github.com/rsajulga-nmdp/metaquantome/core/analysis"
	"github.com/rsajulga-nmdp/metaquantome/internal/cli"
	"github.com/rsajulga-nmdp/metaquantome/internal/output"
)

func (a *app) filtCmd() *cobra.Command {
	var o cli.FiltOptions
	cmd := &cobra.Command{
		Use:   "filt",
		Short: "keep only informative nodes of an expanded table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return usageError{err}
			}
			return a.runFilt(&o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.Input, "input", "", "expanded table (TSV) [*]")
	f.IntVar(&o.MinPeptides, "min-peptides", 0, "minimum observations per node")
	f.IntVar(&o.MinChildrenNonLeaf, "min-children-non-leaf", 0, "minimum sample children for non-leaf nodes")
	f.IntVar(&o.MinSamples, "min-samples", 1, "samples in which the thresholds must hold")
	f.StringVar(&o.Output, "output", "-", "output path ('-' = stdout)")
	f.StringVar(&o.Format, "format", cli.FormatTSV, "output format: tsv | json")
	noHeader := false
	f.BoolVar(&noHeader, "no-header", false, "suppress the TSV header line")
	cmd.PreRun = func(*cobra.Command, []string) { o.Header = !noHeader }
	return cmd
}

func (a *app) runFilt(o *cli.FiltOptions) error {
	res, err := output.ReadTSVFile(o.Input)
	if err != nil {
		return err
	}
	kept := analysis.Filter(res, analysis.FilterOptions{
		MinPeptides:        o.MinPeptides,
		MinChildrenNonLeaf: o.MinChildrenNonLeaf,
		MinSamples:         o.MinSamples,
	})
	a.logger.Info("filtered expanded table",
		"rows_in", len(res.Rows), "rows_out", len(kept.Rows))

	out, closeOut, err := a.openOutput(o.Output)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	idString := func(s string) string { return s }
	if o.Format == cli.FormatJSON {
		return output.WriteJSON(out, kept, idString)
	}
	return output.WriteTSV(out, kept, idString, o.Header)
}
