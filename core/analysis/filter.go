// core/analysis/filter.go
package analysis

// FilterOptions are the informative-node thresholds applied to an expanded
// result.
type FilterOptions struct {
	MinPeptides        int
	MinChildrenNonLeaf int
	// MinSamples is the number of samples in which a row must satisfy the
	// thresholds to survive. Zero means one.
	MinSamples int
}

// Filter keeps the rows that are informative in at least
// opts.MinSamples samples: enough observations, and either no sample
// children (an observed leaf) or enough distinct ones. An empty result is
// valid. Raising any threshold can only shrink the output.
func Filter[K comparable](res *Result[K], opts FilterOptions) *Result[K] {
	need := opts.MinSamples
	if need < 1 {
		need = 1
	}
	out := &Result[K]{Samples: res.Samples}
	for _, row := range res.Rows {
		ok := 0
		for _, s := range res.Samples {
			np, present := row.NPeptide[s]
			if !present || np < opts.MinPeptides {
				continue
			}
			if nc := row.NSampleChildren[s]; nc != 0 && nc < opts.MinChildrenNonLeaf {
				continue
			}
			ok++
		}
		if ok >= need {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
