// core/goterm/db.go
package goterm

import (
	"fmt"
	"sync"

	"github.com/rsajulga-nmdp/metaquantome/core/annotation"
)

// Term is one Gene Ontology term. IsA lists immediate parents; a term may
// have several (the GO graph is a DAG, not a tree).
type Term struct {
	ID        string
	Name      string
	Namespace string
	IsA       []string
	AltIDs    []string
	Obsolete  bool
}

// DB answers structural queries over an in-memory GO DAG. Ancestor
// closures are memoized; the cache is a sync.Map so a DB shared across
// concurrently processed samples needs no external locking.
type DB struct {
	terms    map[string]*Term
	alt      map[string]string // alt_id -> primary id
	closures sync.Map          // primary id -> map[string]struct{}
}

// New indexes terms by primary and alternate id.
func New(terms []*Term) *DB {
	db := &DB{
		terms: make(map[string]*Term, len(terms)),
		alt:   make(map[string]string),
	}
	for _, t := range terms {
		db.terms[t.ID] = t
		for _, a := range t.AltIDs {
			db.alt[a] = t.ID
		}
	}
	return db
}

// Terms returns every term, for persisting a parsed ontology.
func (db *DB) Terms() []*Term {
	terms := make([]*Term, 0, len(db.terms))
	for _, t := range db.terms {
		terms = append(terms, t)
	}
	return terms
}

// Parents returns the is_a parents of id; empty at a namespace root.
func (db *DB) Parents(id string) ([]string, error) {
	t, err := db.term(id)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), t.IsA...), nil
}

// Ancestors returns the full is_a closure of id as a set. Converging
// parent paths contribute each ancestor once.
func (db *DB) Ancestors(id string) (map[string]struct{}, error) {
	t, err := db.term(id)
	if err != nil {
		return nil, err
	}
	if c, ok := db.closures.Load(t.ID); ok {
		return c.(map[string]struct{}), nil
	}
	anc := make(map[string]struct{})
	queue := append([]string(nil), t.IsA...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, seen := anc[cur]; seen {
			continue
		}
		p, err := db.term(cur)
		if err != nil {
			return nil, fmt.Errorf("closure of %s: %w", id, err)
		}
		anc[p.ID] = struct{}{}
		queue = append(queue, p.IsA...)
	}
	// Callers must not mutate the returned set; it is shared via the cache.
	db.closures.Store(t.ID, anc)
	return anc, nil
}

// Rank returns the term's namespace (biological_process etc.).
func (db *DB) Rank(id string) (string, error) {
	t, err := db.term(id)
	if err != nil {
		return "", err
	}
	return t.Namespace, nil
}

// Name returns the term's name.
func (db *DB) Name(id string) (string, error) {
	t, err := db.term(id)
	if err != nil {
		return "", err
	}
	return t.Name, nil
}

// term resolves id through alt_id indirection and rejects obsolete terms:
// a retired id in sample data is an ontology-version mismatch, not
// something to silently aggregate.
func (db *DB) term(id string) (*Term, error) {
	if primary, ok := db.alt[id]; ok {
		id = primary
	}
	t, ok := db.terms[id]
	if !ok {
		return nil, fmt.Errorf("go term %q: %w", id, annotation.ErrUnknownID)
	}
	if t.Obsolete {
		return nil, fmt.Errorf("go term %q is obsolete: %w", id, annotation.ErrUnknownID)
	}
	return t, nil
}
