// core/annotation/hierarchy.go
package annotation

import "fmt"

// Hierarchy aggregates observed intensities upward through one ontology
// for one sample. The backend is shared and read-only; the sample set is
// fixed at construction; nodes are owned exclusively by this hierarchy.
type Hierarchy[K comparable] struct {
	db         Database[K]
	sampleName string
	sampleSet  map[K]struct{}
	nodes      map[K]*Node[K]
}

// New builds an empty hierarchy for one sample. sampleSet is the complete
// set of directly observed ids for that sample (not ids reached only via
// propagation); it is copied, so the caller may reuse its map.
func New[K comparable](db Database[K], sampleSet map[K]struct{}, sampleName string) *Hierarchy[K] {
	ss := make(map[K]struct{}, len(sampleSet))
	for id := range sampleSet {
		ss[id] = struct{}{}
	}
	return &Hierarchy[K]{
		db:         db,
		sampleName: sampleName,
		sampleSet:  ss,
		nodes:      make(map[K]*Node[K]),
	}
}

// SampleName returns the sample this hierarchy was built for.
func (h *Hierarchy[K]) SampleName() string { return h.sampleName }

// Len returns the number of nodes created so far.
func (h *Hierarchy[K]) Len() int { return len(h.nodes) }

// Node returns the node for id, or nil if id never received any direct or
// propagated intensity.
func (h *Hierarchy[K]) Node(id K) *Node[K] { return h.nodes[id] }

// Observe records one (id, intensity) observation: the id's own node and
// the node of every ancestor each gain exactly intensity, creating nodes
// as needed. The ancestor closure is resolved before anything is mutated,
// so an unknown id leaves the hierarchy untouched. Repeated observations
// of the same id accumulate; the hierarchy never deduplicates.
func (h *Hierarchy[K]) Observe(id K, intensity float64) error {
	anc, err := h.db.Ancestors(id)
	if err != nil {
		return fmt.Errorf("observe %v: %w", id, err)
	}
	h.node(id).AddIntensity(intensity)
	for a := range anc {
		h.node(a).AddIntensity(intensity)
	}
	return nil
}

func (h *Hierarchy[K]) node(id K) *Node[K] {
	n, ok := h.nodes[id]
	if !ok {
		n = &Node[K]{ID: id}
		h.nodes[id] = n
	}
	return n
}

// ComputeSampleChildren sets NSampleChildren on every node to the count of
// its immediate children that are members of the sample set. Children that
// exist structurally in the ontology but were never observed do not count.
// The parent relation is inverted over the sample set, so only Parents is
// needed. Safe to call repeatedly: counts are recomputed from scratch.
func (h *Hierarchy[K]) ComputeSampleChildren() error {
	for _, n := range h.nodes {
		n.NSampleChildren = 0
	}
	for id := range h.sampleSet {
		parents, err := h.db.Parents(id)
		if err != nil {
			return fmt.Errorf("sample children of %v: %w", id, err)
		}
		for _, p := range parents {
			if n, ok := h.nodes[p]; ok {
				n.NSampleChildren++
			}
		}
	}
	return nil
}

// Informative selects the nodes worth reporting: at least minPeptides
// observations, and either no sample children (a true leaf in the observed
// set) or at least minChildrenNonLeaf of them. A non-leaf backed by a
// single child restates that child's value and is suppressed. Raising
// either threshold can only shrink the result.
func (h *Hierarchy[K]) Informative(minPeptides, minChildrenNonLeaf int) map[K]*Node[K] {
	out := make(map[K]*Node[K])
	for id, n := range h.nodes {
		if n.NPeptide < minPeptides {
			continue
		}
		if n.NSampleChildren != 0 && n.NSampleChildren < minChildrenNonLeaf {
			continue
		}
		out[id] = n
	}
	return out
}
