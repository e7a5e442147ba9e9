// core/analysis/functaxonomy.go
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/rsajulga-nmdp/metaquantome/core/annotation"
	"github.com/rsajulga-nmdp/metaquantome/core/peptide"
	"github.com/rsajulga-nmdp/metaquantome/core/stats"
	"github.com/rsajulga-nmdp/metaquantome/core/taxonomy"
)

// FTRow is one (GO term, taxon-at-query-rank) pair with its per-group mean
// intensity on a log2 scale.
type FTRow struct {
	GOID      string
	GOName    string
	Namespace string
	TaxID     int
	TaxName   string
	TaxRank   string
	Mean      map[string]float64
}

// FTOptions controls the function-taxonomy interaction analysis.
type FTOptions struct {
	QueryRank string // taxonomic rank to report at, e.g. "genus"
	Strict    bool   // abort on unknown GO terms instead of skipping
}

// FunctionTaxonomy crosses GO annotations with lowest-common-ancestor
// taxa: each peptide's LCA is mapped to the query rank (peptides resolved
// above that rank are dropped), intensities are summed per (GO term,
// ranked taxon) pair per sample column, then averaged per group. Rows come
// back sorted by GO id, then taxid.
func FunctionTaxonomy(ctx context.Context, godb annotation.Database[string], taxdb *taxonomy.DB, recs []peptide.Record, groups *stats.SampleGroups, opts FTOptions, logger *slog.Logger) ([]FTRow, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.QueryRank == "" {
		return nil, fmt.Errorf("function-taxonomy analysis requires a query rank")
	}

	type key struct {
		goID  string
		taxID int
	}
	sums := make(map[key]map[string]float64)
	cols := groups.AllColumns()
	warned := make(map[string]struct{})

	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if rec.Taxon == "" {
			continue
		}
		lca, err := strconv.Atoi(rec.Taxon)
		if err != nil {
			return nil, fmt.Errorf("peptide %s: bad taxid %q", rec.Peptide, rec.Taxon)
		}
		ranked, ok, err := taxdb.MapToRank(lca, opts.QueryRank)
		if err != nil {
			return nil, err
		}
		if !ok {
			// LCA above the query rank carries no information at it.
			continue
		}
		for _, goID := range rec.Annotations {
			if _, err := godb.Name(goID); err != nil {
				if opts.Strict || !errors.Is(err, annotation.ErrUnknownID) {
					return nil, err
				}
				if _, dup := warned[goID]; !dup {
					warned[goID] = struct{}{}
					logger.Warn("skipping unknown go term", slog.String("id", goID))
				}
				continue
			}
			k := key{goID: goID, taxID: ranked}
			row, ok := sums[k]
			if !ok {
				row = make(map[string]float64, len(cols))
				sums[k] = row
			}
			for _, c := range cols {
				if v := rec.Intensity[c]; v > 0 {
					row[c] += v
				}
			}
		}
	}

	out := make([]FTRow, 0, len(sums))
	for k, row := range sums {
		goName, err := godb.Name(k.goID)
		if err != nil {
			return nil, err
		}
		ns, err := godb.Rank(k.goID)
		if err != nil {
			return nil, err
		}
		taxName, err := taxdb.Name(k.taxID)
		if err != nil {
			return nil, err
		}
		ft := FTRow{
			GOID: k.goID, GOName: goName, Namespace: ns,
			TaxID: k.taxID, TaxName: taxName, TaxRank: opts.QueryRank,
			Mean: make(map[string]float64),
		}
		for _, g := range groups.GroupNames() {
			if m, ok := stats.Mean(row, groups.Groups[g]); ok {
				ft.Mean[g] = stats.Log2(m)
			}
		}
		out = append(out, ft)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GOID != out[j].GOID {
			return out[i].GOID < out[j].GOID
		}
		return out[i].TaxID < out[j].TaxID
	})
	return out, nil
}
