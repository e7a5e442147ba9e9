// internal/output/output_test.go
package output

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsajulga-nmdp/metaquantome/core/analysis"
	"github.com/rsajulga-nmdp/metaquantome/pkg/api"
)

func ident(s string) string { return s }

func sampleResult() *analysis.Result[string] {
	return &analysis.Result[string]{
		Samples: []string{"int1", "int2"},
		Rows: []analysis.WideRow[string]{
			{
				ID: "1.1.4.-", Name: "With a disulfide as acceptor", Rank: "sub-subclass",
				Intensity:       map[string]float64{"int1": 6},
				NPeptide:        map[string]int{"int1": 6},
				NSampleChildren: map[string]int{"int1": 2},
			},
			{
				ID: "1.-.-.-", Name: "Oxidoreductases", Rank: "class",
				Intensity:       map[string]float64{"int1": 6, "int2": 3},
				NPeptide:        map[string]int{"int1": 6, "int2": 2},
				NSampleChildren: map[string]int{"int1": 1, "int2": 1},
			},
		},
	}
}

func TestWriteTSV(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteTSV(&sb, sampleResult(), ident, true))

	want := "id\tname\trank\tint1\tint1_n_peptide\tint1_n_samp_children\tint2\tint2_n_peptide\tint2_n_samp_children\n" +
		"1.-.-.-\tOxidoreductases\tclass\t6\t6\t1\t3\t2\t1\n" +
		"1.1.4.-\tWith a disulfide as acceptor\tsub-subclass\t6\t6\t2\tNA\tNA\tNA\n"
	assert.Equal(t, want, sb.String())
}

func TestWriteTSVNoHeader(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteTSV(&sb, sampleResult(), ident, false))
	assert.False(t, strings.HasPrefix(sb.String(), "id\t"))
	assert.Equal(t, 2, strings.Count(sb.String(), "\n"))
}

func TestRoundTrip(t *testing.T) {
	res := sampleResult()
	var sb strings.Builder
	require.NoError(t, WriteTSV(&sb, res, ident, true))

	got, err := ReadTSV(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, res.Samples, got.Samples)
	require.Len(t, got.Rows, 2)

	byID := make(map[string]analysis.WideRow[string])
	for _, r := range got.Rows {
		byID[r.ID] = r
	}
	for _, orig := range res.Rows {
		r, ok := byID[orig.ID]
		require.True(t, ok, orig.ID)
		assert.Equal(t, orig.Intensity, r.Intensity)
		assert.Equal(t, orig.NPeptide, r.NPeptide)
		assert.Equal(t, orig.NSampleChildren, r.NSampleChildren)
	}
}

func TestReadTSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"wrong header", "peptide\tgo\tint1\n"},
		{"broken triple", "id\tname\trank\tint1\tint1_n_peptide\twrong\n"},
		{"short row", "id\tname\trank\tint1\tint1_n_peptide\tint1_n_samp_children\nx\ty\tz\t1\t1\n"},
		{"bad count", "id\tname\trank\tint1\tint1_n_peptide\tint1_n_samp_children\nx\ty\tz\t1\tq\t1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTSV(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteJSON(&sb, sampleResult(), ident))

	var rows []api.RowV1
	require.NoError(t, json.Unmarshal([]byte(sb.String()), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "1.-.-.-", rows[0].ID, "sorted by id")
	assert.Equal(t, map[string]float64{"int1": 6, "int2": 3}, rows[0].Intensity)
	assert.Equal(t, map[string]int{"int1": 6}, rows[1].NPeptide)
}

func TestWriteMeansTSV(t *testing.T) {
	res := &analysis.MeanResult[string]{
		Groups: []string{"s1", "s2"},
		Rows: []analysis.MeanRow[string]{
			{ID: "1.-.-.-", Name: "Oxidoreductases", Rank: "class",
				Mean: map[string]float64{"s1": 2.5, "s2": math.NaN()}},
		},
	}
	var sb strings.Builder
	require.NoError(t, WriteMeansTSV(&sb, res, ident, true))
	want := "id\tname\trank\ts1_mean\ts2_mean\n" +
		"1.-.-.-\tOxidoreductases\tclass\t2.5\tNA\n"
	assert.Equal(t, want, sb.String())
}

func TestWriteMeansJSONDropsNaN(t *testing.T) {
	res := &analysis.MeanResult[string]{
		Groups: []string{"s1", "s2"},
		Rows: []analysis.MeanRow[string]{
			{ID: "x", Mean: map[string]float64{"s1": 1, "s2": math.NaN()}},
		},
	}
	var sb strings.Builder
	require.NoError(t, WriteMeansJSON(&sb, res, ident))
	var rows []api.MeanRowV1
	require.NoError(t, json.Unmarshal([]byte(sb.String()), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]float64{"s1": 1}, rows[0].Mean)
}

func TestWriteFTTSV(t *testing.T) {
	rows := []analysis.FTRow{
		{GOID: "GO:0008150", GOName: "biological_process", Namespace: "biological_process",
			TaxID: 9605, TaxName: "Homo", TaxRank: "genus",
			Mean: map[string]float64{"s1": 2}},
	}
	var sb strings.Builder
	require.NoError(t, WriteFTTSV(&sb, rows, []string{"s1"}, true))
	want := "go_id\tgo_name\tnamespace\ttax_id\ttaxon_name\trank\ts1_mean\n" +
		"GO:0008150\tbiological_process\tbiological_process\t9605\tHomo\tgenus\t2\n"
	assert.Equal(t, want, sb.String())
}
