// core/annotation/database.go
package annotation

import "errors"

// ErrUnknownID reports an identifier the ontology backend cannot resolve
// (stale term, malformed code, wrong namespace). Backends wrap it with the
// offending id so callers can match with errors.Is.
var ErrUnknownID = errors.New("unknown annotation id")

// Database is the capability contract an ontology backend must satisfy.
// Identifiers are opaque comparable tokens: int for NCBI taxa, string for
// GO terms and EC codes. Implementations may be shared across hierarchies
// without locking; any internal caching must tolerate unsynchronized
// concurrent reads.
type Database[K comparable] interface {
	// Parents returns the immediate parent ids of id. A root returns an
	// empty (possibly nil) slice, never an error; only an unresolvable id
	// is an error.
	Parents(id K) ([]K, error)

	// Ancestors returns every id reachable by repeated Parents application,
	// excluding id itself. The result is a true set: an ancestor reachable
	// along multiple paths appears exactly once. This is a hard
	// precondition of Hierarchy.Observe — a duplicated ancestor would be
	// over-counted.
	Ancestors(id K) (map[K]struct{}, error)

	// Rank returns the level label for id (taxonomic rank, GO namespace,
	// EC depth). Reporting only; the aggregation algorithm never calls it.
	Rank(id K) (string, error)

	// Name returns the human-readable name for id. Reporting only.
	Name(id K) (string, error)
}

// Names batch-converts ids to names via db.Name.
func Names[K comparable](db Database[K], ids []K) (map[K]string, error) {
	out := make(map[K]string, len(ids))
	for _, id := range ids {
		n, err := db.Name(id)
		if err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, nil
}
