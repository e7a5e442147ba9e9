// internal/app/ft.go
package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rsajulga-nmdp/metaquantome/core/analysis"
	"github.com/rsajulga-nmdp/metaquantome/core/peptide"
	"github.com/rsajulga-nmdp/metaquantome/internal/cli"
	"github.com/rsajulga-nmdp/metaquantome/internal/output"
)

func (a *app) ftCmd() *cobra.Command {
	var o cli.FTOptions
	cmd := &cobra.Command{
		Use:   "ft",
		Short: "function-taxonomy interaction analysis (GO terms × taxa)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return usageError{err}
			}
			return a.runFT(cmd.Context(), &o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.Input, "input", "", "joined peptide table with GO and LCA columns (TSV) [*]")
	f.StringVar(&o.PepCol, "pep-col", "peptide", "peptide column name")
	f.StringVar(&o.FuncCol, "func-col", "go", "GO annotation column name")
	f.StringVar(&o.LCACol, "lca-col", "lca", "lowest-common-ancestor taxid column name")
	f.StringVar(&o.QueryRank, "query-rank", "", "taxonomic rank to report at, e.g. genus [*]")
	f.StringVar(&o.SampsFile, "samps", "", "sample-groups YAML file")
	f.StringVar(&o.SampsJSON, "samps-json", "", `inline sample groups, e.g. {"s1":["int1","int2"]}`)
	f.StringVar(&o.Output, "output", "-", "output path ('-' = stdout)")
	f.StringVar(&o.Format, "format", cli.FormatTSV, "output format: tsv | json")
	f.BoolVar(&o.Strict, "strict", false, "abort on unknown GO terms instead of skipping")
	noHeader := false
	f.BoolVar(&noHeader, "no-header", false, "suppress the TSV header line")
	registerSourceFlags(f, &o.Source)
	cmd.PreRun = func(*cobra.Command, []string) { o.Header = !noHeader }
	return cmd
}

func (a *app) runFT(ctx context.Context, o *cli.FTOptions) error {
	groups, err := loadGroups(o.SampsFile, o.SampsJSON)
	if err != nil {
		return err
	}
	recs, err := peptide.Load(o.Input, peptide.Columns{
		Peptide:    o.PepCol,
		Annotation: o.FuncCol,
		Taxon:      o.LCACol,
		Intensity:  groups.AllColumns(),
	})
	if err != nil {
		return err
	}

	src := newSources(o.Source, a.logger)
	defer src.Close()
	godb, err := src.GO()
	if err != nil {
		return err
	}
	taxdb, err := src.Taxonomy()
	if err != nil {
		return err
	}

	rows, err := analysis.FunctionTaxonomy(ctx, godb, taxdb, recs, groups,
		analysis.FTOptions{QueryRank: o.QueryRank, Strict: o.Strict}, a.logger)
	if err != nil {
		return err
	}
	a.logger.Info("function-taxonomy analysis done", "pairs", len(rows))

	out, closeOut, err := a.openOutput(o.Output)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	if o.Format == cli.FormatJSON {
		return output.WriteFTJSON(out, rows)
	}
	return output.WriteFTTSV(out, rows, groups.GroupNames(), o.Header)
}
