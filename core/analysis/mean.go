// core/analysis/mean.go
package analysis

import (
	"github.com/rsajulga-nmdp/metaquantome/core/stats"
)

// MeanRow is one annotation id with its per-group mean intensity.
type MeanRow[K comparable] struct {
	ID   K
	Name string
	Rank string
	Mean map[string]float64
}

// MeanResult is the stat output: group means over replicate columns.
type MeanResult[K comparable] struct {
	Groups []string
	Rows   []MeanRow[K]
}

// GroupMeans averages each row's intensity over the replicate columns of
// every sample group, skipping columns where the id was never reached.
// With logTransform the means are reported on a log2 scale (zeros become
// NaN, written as NA downstream).
func GroupMeans[K comparable](res *Result[K], groups *stats.SampleGroups, logTransform bool) *MeanResult[K] {
	out := &MeanResult[K]{Groups: groups.GroupNames()}
	for _, row := range res.Rows {
		mr := MeanRow[K]{ID: row.ID, Name: row.Name, Rank: row.Rank, Mean: make(map[string]float64, len(out.Groups))}
		any := false
		for _, g := range out.Groups {
			m, ok := stats.Mean(row.Intensity, groups.Groups[g])
			if !ok {
				continue
			}
			if logTransform {
				m = stats.Log2(m)
			}
			mr.Mean[g] = m
			any = true
		}
		if any {
			out.Rows = append(out.Rows, mr)
		}
	}
	return out
}
