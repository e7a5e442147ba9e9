// internal/output/tsv.go
package output

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/rsajulga-nmdp/metaquantome/core/analysis"
)

// missing is how absent or NaN values are written, matching the NA
// convention of the original tool's tables.
const missing = "NA"

// WriteTSV writes a wide expand result: id, name, rank, then per sample
// the intensity, observation-count, and sample-children columns
// ("<samp>", "<samp>_n_peptide", "<samp>_n_samp_children"). Rows are
// sorted by id for stable files.
func WriteTSV[K comparable](w io.Writer, res *analysis.Result[K], idString func(K) string, header bool) error {
	if header {
		if _, err := fmt.Fprint(w, "id\tname\trank"); err != nil {
			return err
		}
		for _, s := range res.Samples {
			if _, err := fmt.Fprintf(w, "\t%s\t%s_n_peptide\t%s_n_samp_children", s, s, s); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	rows := append([]analysis.WideRow[K](nil), res.Rows...)
	sort.Slice(rows, func(i, j int) bool { return idString(rows[i].ID) < idString(rows[j].ID) })
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s", idString(r.ID), r.Name, r.Rank); err != nil {
			return err
		}
		for _, s := range res.Samples {
			v, ok := r.Intensity[s]
			if _, err := fmt.Fprintf(w, "\t%s", formatFloat(v, ok)); err != nil {
				return err
			}
			np, ok := r.NPeptide[s]
			if _, err := fmt.Fprintf(w, "\t%s", formatInt(np, ok)); err != nil {
				return err
			}
			nc, ok := r.NSampleChildren[s]
			if _, err := fmt.Fprintf(w, "\t%s", formatInt(nc, ok)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteMeansTSV writes the stat output: id, name, rank, one mean column
// per group ("<group>_mean").
func WriteMeansTSV[K comparable](w io.Writer, res *analysis.MeanResult[K], idString func(K) string, header bool) error {
	if header {
		if _, err := fmt.Fprint(w, "id\tname\trank"); err != nil {
			return err
		}
		for _, g := range res.Groups {
			if _, err := fmt.Fprintf(w, "\t%s_mean", g); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	rows := append([]analysis.MeanRow[K](nil), res.Rows...)
	sort.Slice(rows, func(i, j int) bool { return idString(rows[i].ID) < idString(rows[j].ID) })
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s", idString(r.ID), r.Name, r.Rank); err != nil {
			return err
		}
		for _, g := range res.Groups {
			v, ok := r.Mean[g]
			if _, err := fmt.Fprintf(w, "\t%s", formatFloat(v, ok)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteFTTSV writes function-taxonomy rows, already sorted by the
// analysis.
func WriteFTTSV(w io.Writer, rows []analysis.FTRow, groups []string, header bool) error {
	if header {
		if _, err := fmt.Fprint(w, "go_id\tgo_name\tnamespace\ttax_id\ttaxon_name\trank"); err != nil {
			return err
		}
		for _, g := range groups {
			if _, err := fmt.Fprintf(w, "\t%s_mean", g); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s", r.GOID, r.GOName, r.Namespace, r.TaxID, r.TaxName, r.TaxRank); err != nil {
			return err
		}
		for _, g := range groups {
			v, ok := r.Mean[g]
			if _, err := fmt.Fprintf(w, "\t%s", formatFloat(v, ok)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64, ok bool) string {
	if !ok || math.IsNaN(v) {
		return missing
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatInt(v int, ok bool) string {
	if !ok {
		return missing
	}
	return strconv.Itoa(v)
}
