// core/annotation/table.go
package annotation

// Row is one exported node. No ordering is implied; callers that need a
// stable order sort explicitly.
type Row[K comparable] struct {
	ID              K
	Intensity       float64
	NPeptide        int
	NSampleChildren int
}

// Table is the per-sample export: one row per node. An empty table is a
// valid outcome (e.g. nothing survived filtering).
type Table[K comparable] struct {
	SampleName string
	Rows       []Row[K]
}

// Table exports every node, or only the informative subset under the given
// thresholds when informativeOnly is set.
func (h *Hierarchy[K]) Table(informativeOnly bool, minPeptides, minChildrenNonLeaf int) Table[K] {
	src := h.nodes
	if informativeOnly {
		src = h.Informative(minPeptides, minChildrenNonLeaf)
	}
	t := Table[K]{SampleName: h.sampleName, Rows: make([]Row[K], 0, len(src))}
	for id, n := range src {
		t.Rows = append(t.Rows, Row[K]{
			ID:              id,
			Intensity:       n.Intensity,
			NPeptide:        n.NPeptide,
			NSampleChildren: n.NSampleChildren,
		})
	}
	return t
}
