// internal/app/expand.go
package app

import (
	"context"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rsajulga-nmdp/metaquantome/core/analysis"
	"github.com/rsajulga-nmdp/metaquantome/core/annotation"
	"github.com/rsajulga-nmdp/metaquantome/core/peptide"
	"github.com/rsajulga-nmdp/metaquantome/core/stats"
	"github.com/rsajulga-nmdp/metaquantome/internal/cli"
	"github.com/rsajulga-nmdp/metaquantome/internal/output"
)

func (a *app) expandCmd() *cobra.Command {
	var o cli.ExpandOptions
	cmd := &cobra.Command{
		Use:   "expand",
		Short: "aggregate peptide intensities up an annotation hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return usageError{err}
			}
			return a.runExpand(cmd.Context(), &o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.Input, "input", "", "joined peptide table (TSV) [*]")
	f.StringVar(&o.Ontology, "ontology", "", "annotation namespace: go | ec | tax [*]")
	f.StringVar(&o.PepCol, "pep-col", "peptide", "peptide column name")
	f.StringVar(&o.AnnotCol, "annot-col", "", "annotation column name (default: go, ec, or lca per ontology)")
	f.StringVar(&o.SampsFile, "samps", "", "sample-groups YAML file")
	f.StringVar(&o.SampsJSON, "samps-json", "", `inline sample groups, e.g. {"s1":["int1","int2"]}`)
	f.StringVar(&o.Output, "output", "-", "output path ('-' = stdout)")
	f.StringVar(&o.Format, "format", cli.FormatTSV, "output format: tsv | json")
	f.BoolVar(&o.Strict, "strict", false, "abort on unknown annotation ids instead of skipping")
	noHeader := false
	f.BoolVar(&noHeader, "no-header", false, "suppress the TSV header line")
	registerSourceFlags(f, &o.Source)
	cmd.PreRun = func(*cobra.Command, []string) { o.Header = !noHeader }
	return cmd
}

func (a *app) runExpand(ctx context.Context, o *cli.ExpandOptions) error {
	groups, err := loadGroups(o.SampsFile, o.SampsJSON)
	if err != nil {
		return err
	}
	cols := groups.AllColumns()
	recs, err := peptide.Load(o.Input, peptide.Columns{
		Peptide:    o.PepCol,
		Annotation: o.AnnotColumn(),
		Intensity:  cols,
	})
	if err != nil {
		return err
	}
	a.logger.Info("loaded peptide table",
		"path", o.Input, "records", len(recs), "samples", len(cols))

	src := newSources(o.Source, a.logger)
	defer src.Close()

	out, closeOut, err := a.openOutput(o.Output)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	opts := analysis.Options{Strict: o.Strict}
	if o.Ontology == cli.OntologyTax {
		db, err := src.Taxonomy()
		if err != nil {
			return err
		}
		return expandAndWrite(ctx, a, db, recs, cols, opts, o, out, strconv.Atoi, strconv.Itoa)
	}
	var db annotation.Database[string]
	if o.Ontology == cli.OntologyEC {
		db, err = src.Enzyme()
	} else {
		db, err = src.GO()
	}
	if err != nil {
		return err
	}
	ident := func(s string) (string, error) { return s, nil }
	return expandAndWrite(ctx, a, db, recs, cols, opts, o, out, ident, func(s string) string { return s })
}

func expandAndWrite[K comparable](
	ctx context.Context,
	a *app,
	db annotation.Database[K],
	recs []peptide.Record,
	cols []string,
	opts analysis.Options,
	o *cli.ExpandOptions,
	out io.Writer,
	parse func(string) (K, error),
	idString func(K) string,
) error {
	samples, err := analysis.ObservationsFromRecords(recs, cols, parse)
	if err != nil {
		return err
	}
	res, err := analysis.Expand(ctx, db, samples, opts, a.logger)
	if err != nil {
		return err
	}
	a.logger.Info("expanded hierarchy", "rows", len(res.Rows))
	if o.Format == cli.FormatJSON {
		return output.WriteJSON(out, res, idString)
	}
	return output.WriteTSV(out, res, idString, o.Header)
}

// loadGroups resolves the two sample-group flag forms.
func loadGroups(file, inline string) (*stats.SampleGroups, error) {
	if file != "" {
		return stats.GroupsFromFile(file)
	}
	return stats.GroupsFromJSON(inline)
}
