// core/annotation/node.go
package annotation

// Node accumulates the signal attributed to one annotation id: summed
// intensity plus a parallel observation counter, and the number of
// immediate children seen in the sample set (filled in by
// Hierarchy.ComputeSampleChildren, zero until then).
type Node[K comparable] struct {
	ID              K
	Intensity       float64
	NPeptide        int
	NSampleChildren int
}

// AddIntensity adds one observation's worth of signal. Purely additive:
// call order never matters.
func (n *Node[K]) AddIntensity(x float64) {
	n.Intensity += x
	n.NPeptide++
}
