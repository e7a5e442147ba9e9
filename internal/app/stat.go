// internal/app/stat.go
package app

import (
	"github.com/spf13/cobra"

	"github.com/rsajulga-nmdp/metaquantome/core/analysis"
	"github.com/rsajulga-nmdp/metaquantome/internal/cli"
	"github.com/rsajulga-nmdp/metaquantome/internal/output"
)

func (a *app) statCmd() *cobra.Command {
	var o cli.StatOptions
	cmd := &cobra.Command{
		Use:   "stat",
		Short: "summarise an expanded table into per-group means",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return usageError{err}
			}
			return a.runStat(&o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.Input, "input", "", "expanded (optionally filtered) table (TSV) [*]")
	f.StringVar(&o.SampsFile, "samps", "", "sample-groups YAML file")
	f.StringVar(&o.SampsJSON, "samps-json", "", `inline sample groups, e.g. {"s1":["int1","int2"]}`)
	f.BoolVar(&o.Log2, "log2", true, "report means on a log2 scale")
	f.StringVar(&o.Output, "output", "-", "output path ('-' = stdout)")
	f.StringVar(&o.Format, "format", cli.FormatTSV, "output format: tsv | json")
	noHeader := false
	f.BoolVar(&noHeader, "no-header", false, "suppress the TSV header line")
	cmd.PreRun = func(*cobra.Command, []string) { o.Header = !noHeader }
	return cmd
}

func (a *app) runStat(o *cli.StatOptions) error {
	groups, err := loadGroups(o.SampsFile, o.SampsJSON)
	if err != nil {
		return err
	}
	res, err := output.ReadTSVFile(o.Input)
	if err != nil {
		return err
	}
	means := analysis.GroupMeans(res, groups, o.Log2)
	a.logger.Info("computed group means",
		"groups", len(means.Groups), "rows", len(means.Rows))

	out, closeOut, err := a.openOutput(o.Output)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	idString := func(s string) string { return s }
	if o.Format == cli.FormatJSON {
		return output.WriteMeansJSON(out, means, idString)
	}
	return output.WriteMeansTSV(out, means, idString, o.Header)
}
