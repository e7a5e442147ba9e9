// internal/output/json.go
package output

import (
	"io"
	"math"
	"sort"

	"github.com/rsajulga-nmdp/metaquantome/core/analysis"
	"github.com/rsajulga-nmdp/metaquantome/internal/jsonutil"
	"github.com/rsajulga-nmdp/metaquantome/pkg/api"
)

// ToAPIRow converts a wide row to the stable wire schema (v1).
func ToAPIRow[K comparable](r analysis.WideRow[K], idString func(K) string) api.RowV1 {
	return api.RowV1{
		ID:              idString(r.ID),
		Name:            r.Name,
		Rank:            r.Rank,
		Intensity:       copyFloats(r.Intensity),
		NPeptide:        copyInts(r.NPeptide),
		NSampleChildren: copyInts(r.NSampleChildren),
	}
}

// WriteJSON writes a single JSON array of v1 rows, sorted by id.
func WriteJSON[K comparable](w io.Writer, res *analysis.Result[K], idString func(K) string) error {
	rows := make([]api.RowV1, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, ToAPIRow(r, idString))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return jsonutil.EncodePretty(w, rows)
}

// WriteMeansJSON writes mean rows as a JSON array sorted by id.
func WriteMeansJSON[K comparable](w io.Writer, res *analysis.MeanResult[K], idString func(K) string) error {
	rows := make([]api.MeanRowV1, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, api.MeanRowV1{
			ID:   idString(r.ID),
			Name: r.Name,
			Rank: r.Rank,
			Mean: copyFloats(r.Mean),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return jsonutil.EncodePretty(w, rows)
}

// WriteFTJSON writes function-taxonomy rows as a JSON array.
func WriteFTJSON(w io.Writer, ftRows []analysis.FTRow) error {
	rows := make([]api.FTRowV1, 0, len(ftRows))
	for _, r := range ftRows {
		rows = append(rows, api.FTRowV1{
			GOID:      r.GOID,
			GOName:    r.GOName,
			Namespace: r.Namespace,
			TaxID:     r.TaxID,
			TaxName:   r.TaxName,
			TaxRank:   r.TaxRank,
			Mean:      copyFloats(r.Mean),
		})
	}
	return jsonutil.EncodePretty(w, rows)
}

// copyFloats copies a float map, dropping NaN entries: encoding/json
// rejects NaN, and an absent key already means "missing" on the wire.
func copyFloats(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if math.IsNaN(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func copyInts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
