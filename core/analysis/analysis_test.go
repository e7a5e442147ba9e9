// core/analysis/analysis_test.go
package analysis_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsajulga-nmdp/metaquantome/core/analysis"
	"github.com/rsajulga-nmdp/metaquantome/core/enzyme"
	"github.com/rsajulga-nmdp/metaquantome/core/goterm"
	"github.com/rsajulga-nmdp/metaquantome/core/peptide"
	"github.com/rsajulga-nmdp/metaquantome/core/stats"
	"github.com/rsajulga-nmdp/metaquantome/core/taxonomy"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func identity(s string) (string, error) { return s, nil }

func ecDB(t *testing.T) *enzyme.DB {
	t.Helper()
	db, err := enzyme.New(map[string]string{
		"1.-.-.-": "Oxidoreductases",
		"1.1.4.1": "Vitamin-K-epoxide reductase (warfarin-sensitive)",
		"1.1.4.2": "Vitamin-K-epoxide reductase (warfarin-insensitive)",
		"6.5.-.-": "Forming phosphoric-ester bonds",
	})
	require.NoError(t, err)
	return db
}

func TestObservationsFromRecords(t *testing.T) {
	recs := []peptide.Record{
		{Peptide: "AAA", Annotations: []string{"1.1.4.1"}, Intensity: map[string]float64{"int1": 100, "int2": 0}},
		{Peptide: "BBB", Annotations: []string{"1.1.4.1", "6.5.-.-"}, Intensity: map[string]float64{"int1": 50, "int2": 30}},
	}
	samples, err := analysis.ObservationsFromRecords(recs, []string{"int1", "int2"}, identity)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, "int1", samples[0].Sample)
	assert.Equal(t, []analysis.Observation[string]{
		{ID: "1.1.4.1", Intensity: 100},
		{ID: "1.1.4.1", Intensity: 50},
		{ID: "6.5.-.-", Intensity: 50},
	}, samples[0].Obs)

	// zero intensity is not an observation
	assert.Equal(t, []analysis.Observation[string]{
		{ID: "1.1.4.1", Intensity: 30},
		{ID: "6.5.-.-", Intensity: 30},
	}, samples[1].Obs)
}

func TestExpand(t *testing.T) {
	samples := []analysis.SampleObservations[string]{
		{Sample: "int1", Obs: []analysis.Observation[string]{
			{ID: "1.1.4.1", Intensity: 2},
			{ID: "1.1.4.2", Intensity: 4},
		}},
		{Sample: "int2", Obs: []analysis.Observation[string]{
			{ID: "6.5.-.-", Intensity: 10},
		}},
	}
	res, err := analysis.Expand(context.Background(), ecDB(t), samples, analysis.Options{}, discard())
	require.NoError(t, err)
	assert.Equal(t, []string{"int1", "int2"}, res.Samples)

	byID := make(map[string]analysis.WideRow[string], len(res.Rows))
	for _, r := range res.Rows {
		byID[r.ID] = r
	}
	require.Contains(t, byID, "1.1.4.-")
	require.Contains(t, byID, "6.5.-.-")

	sub := byID["1.1.4.-"]
	assert.Equal(t, "sub-subclass", sub.Rank)
	assert.Equal(t, map[string]float64{"int1": 6}, sub.Intensity)
	assert.Equal(t, map[string]int{"int1": 2}, sub.NPeptide)
	assert.Equal(t, map[string]int{"int1": 2}, sub.NSampleChildren)

	lig := byID["6.5.-.-"]
	assert.Equal(t, map[string]float64{"int2": 10}, lig.Intensity)
	_, present := lig.Intensity["int1"]
	assert.False(t, present, "outer join leaves unobserved samples absent")

	class := byID["1.-.-.-"]
	assert.Equal(t, "Oxidoreductases", class.Name)
	assert.Equal(t, map[string]float64{"int1": 6}, class.Intensity)
}

func TestExpandUnknownID(t *testing.T) {
	samples := []analysis.SampleObservations[string]{
		{Sample: "int1", Obs: []analysis.Observation[string]{
			{ID: "1.1.4.1", Intensity: 2},
			{ID: "9.9.9.9", Intensity: 5},
		}},
	}

	res, err := analysis.Expand(context.Background(), ecDB(t), samples, analysis.Options{}, discard())
	require.NoError(t, err)
	byID := make(map[string]analysis.WideRow[string], len(res.Rows))
	for _, r := range res.Rows {
		assert.NotEqual(t, "9.9.9.9", r.ID)
		byID[r.ID] = r
	}
	// the valid observation still expands, and the skipped id is gone
	// from the sample set too: only 1.1.4.1 counts as a child
	require.Contains(t, byID, "1.1.4.-")
	assert.Equal(t, map[string]float64{"int1": 2}, byID["1.1.4.-"].Intensity)
	assert.Equal(t, map[string]int{"int1": 1}, byID["1.1.4.-"].NSampleChildren)

	_, err = analysis.Expand(context.Background(), ecDB(t), samples, analysis.Options{Strict: true}, discard())
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	res := &analysis.Result[string]{
		Samples: []string{"int1", "int2"},
		Rows: []analysis.WideRow[string]{
			{ID: "leaf", NPeptide: map[string]int{"int1": 3}, NSampleChildren: map[string]int{"int1": 0}, Intensity: map[string]float64{}},
			{ID: "thin", NPeptide: map[string]int{"int1": 3}, NSampleChildren: map[string]int{"int1": 1}, Intensity: map[string]float64{}},
			{ID: "wide", NPeptide: map[string]int{"int1": 3, "int2": 3}, NSampleChildren: map[string]int{"int1": 2, "int2": 2}, Intensity: map[string]float64{}},
			{ID: "rare", NPeptide: map[string]int{"int1": 1}, NSampleChildren: map[string]int{"int1": 0}, Intensity: map[string]float64{}},
		},
	}
	ids := func(r *analysis.Result[string]) []string {
		var out []string
		for _, row := range r.Rows {
			out = append(out, row.ID)
		}
		return out
	}

	got := analysis.Filter(res, analysis.FilterOptions{MinPeptides: 2, MinChildrenNonLeaf: 2})
	assert.Equal(t, []string{"leaf", "wide"}, ids(got), "leaves pass regardless of the child threshold")

	got = analysis.Filter(res, analysis.FilterOptions{MinPeptides: 2, MinChildrenNonLeaf: 2, MinSamples: 2})
	assert.Equal(t, []string{"wide"}, ids(got))

	// raising a threshold never grows the output
	loose := len(analysis.Filter(res, analysis.FilterOptions{MinPeptides: 1, MinChildrenNonLeaf: 1}).Rows)
	tight := len(analysis.Filter(res, analysis.FilterOptions{MinPeptides: 3, MinChildrenNonLeaf: 3}).Rows)
	assert.GreaterOrEqual(t, loose, tight)

	got = analysis.Filter(res, analysis.FilterOptions{MinPeptides: 100})
	assert.Empty(t, got.Rows, "empty result is valid")
}

func TestGroupMeans(t *testing.T) {
	groups, err := stats.GroupsFromJSON(`{"s1": ["int1","int2"], "s2": ["int3"]}`)
	require.NoError(t, err)
	res := &analysis.Result[string]{
		Samples: []string{"int1", "int2", "int3"},
		Rows: []analysis.WideRow[string]{
			{ID: "a", Intensity: map[string]float64{"int1": 2, "int2": 6, "int3": 8}},
			{ID: "b", Intensity: map[string]float64{"int2": 4}},
		},
	}

	got := analysis.GroupMeans(res, groups, false)
	assert.Equal(t, []string{"s1", "s2"}, got.Groups)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, map[string]float64{"s1": 4, "s2": 8}, got.Rows[0].Mean)
	assert.Equal(t, map[string]float64{"s1": 4}, got.Rows[1].Mean, "groups with no data are absent")

	got = analysis.GroupMeans(res, groups, true)
	assert.Equal(t, 2.0, got.Rows[0].Mean["s1"])
	assert.Equal(t, 3.0, got.Rows[0].Mean["s2"])
}

func TestFunctionTaxonomy(t *testing.T) {
	godb := goterm.New([]*goterm.Term{
		{ID: "GO:0008150", Name: "biological_process", Namespace: "biological_process"},
		{ID: "GO:0022414", Name: "reproductive process", Namespace: "biological_process", IsA: []string{"GO:0008150"}},
	})
	taxdb := taxonomy.New(map[int]taxonomy.Taxon{
		1:    {Parent: 1, Rank: "no rank", Name: "root"},
		9604: {Parent: 1, Rank: "family", Name: "Hominidae"},
		9605: {Parent: 9604, Rank: "genus", Name: "Homo"},
		9606: {Parent: 9605, Rank: "species", Name: "Homo sapiens"},
	})
	groups, err := stats.GroupsFromJSON(`{"s1": ["int1","int2"]}`)
	require.NoError(t, err)

	recs := []peptide.Record{
		{Peptide: "AAA", Annotations: []string{"GO:0008150"}, Taxon: "9606", Intensity: map[string]float64{"int1": 4, "int2": 4}},
		{Peptide: "BBB", Annotations: []string{"GO:0008150", "GO:0022414"}, Taxon: "9605", Intensity: map[string]float64{"int1": 4}},
		// LCA above the query rank: dropped
		{Peptide: "CCC", Annotations: []string{"GO:0008150"}, Taxon: "9604", Intensity: map[string]float64{"int1": 100}},
	}

	rows, err := analysis.FunctionTaxonomy(context.Background(), godb, taxdb, recs, groups,
		analysis.FTOptions{QueryRank: "genus"}, discard())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// sorted by GO id then taxid; both LCAs resolve to Homo (9605)
	assert.Equal(t, "GO:0008150", rows[0].GOID)
	assert.Equal(t, 9605, rows[0].TaxID)
	assert.Equal(t, "Homo", rows[0].TaxName)
	assert.Equal(t, "genus", rows[0].TaxRank)
	// int1 sums to 8, int2 to 4: mean 6, log2 = 2.585...
	assert.InDelta(t, math.Log2(6), rows[0].Mean["s1"], 1e-12)

	assert.Equal(t, "GO:0022414", rows[1].GOID)
	assert.InDelta(t, math.Log2(4), rows[1].Mean["s1"], 1e-12, "int1=4, int2 absent: mean over present columns only")
}

func TestFunctionTaxonomyUnknownGO(t *testing.T) {
	godb := goterm.New([]*goterm.Term{
		{ID: "GO:0008150", Name: "biological_process", Namespace: "biological_process"},
	})
	taxdb := taxonomy.New(map[int]taxonomy.Taxon{
		1:    {Parent: 1, Rank: "no rank"},
		9605: {Parent: 1, Rank: "genus", Name: "Homo"},
	})
	groups, err := stats.GroupsFromJSON(`{"s1": ["int1"]}`)
	require.NoError(t, err)
	recs := []peptide.Record{
		{Peptide: "AAA", Annotations: []string{"GO:9999999"}, Taxon: "9605", Intensity: map[string]float64{"int1": 4}},
	}

	rows, err := analysis.FunctionTaxonomy(context.Background(), godb, taxdb, recs, groups,
		analysis.FTOptions{QueryRank: "genus"}, discard())
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = analysis.FunctionTaxonomy(context.Background(), godb, taxdb, recs, groups,
		analysis.FTOptions{QueryRank: "genus", Strict: true}, discard())
	assert.Error(t, err)
}
