// core/taxonomy/db.go
package taxonomy

import (
	"fmt"

	"github.com/rsajulga-nmdp/metaquantome/core/annotation"
)

// Taxon is one node of the NCBI taxonomy: a strict single-parent tree.
type Taxon struct {
	Parent int // root taxa point at themselves (NCBI convention for taxid 1)
	Rank   string
	Name   string
}

// DB answers structural queries over an in-memory NCBI taxonomy.
type DB struct {
	taxa map[int]Taxon
}

// New builds a DB from taxid→Taxon entries.
func New(taxa map[int]Taxon) *DB {
	cp := make(map[int]Taxon, len(taxa))
	for id, t := range taxa {
		cp[id] = t
	}
	return &DB{taxa: cp}
}

// Parents returns the single parent of id, or an empty slice at the root.
func (db *DB) Parents(id int) ([]int, error) {
	t, err := db.taxon(id)
	if err != nil {
		return nil, err
	}
	if t.Parent == id || t.Parent == 0 {
		return nil, nil
	}
	return []int{t.Parent}, nil
}

// Ancestors walks the parent chain to the root.
func (db *DB) Ancestors(id int) (map[int]struct{}, error) {
	if _, err := db.taxon(id); err != nil {
		return nil, err
	}
	anc := make(map[int]struct{})
	cur := id
	for {
		t := db.taxa[cur]
		if t.Parent == cur || t.Parent == 0 {
			return anc, nil
		}
		if _, seen := anc[t.Parent]; seen {
			return nil, fmt.Errorf("taxid %d: parent chain loops at %d", id, t.Parent)
		}
		anc[t.Parent] = struct{}{}
		cur = t.Parent
		if _, ok := db.taxa[cur]; !ok {
			return nil, fmt.Errorf("taxid %d: broken parent chain at %d: %w", id, cur, annotation.ErrUnknownID)
		}
	}
}

// Rank returns the taxonomic rank of id ("species", "genus", ...).
func (db *DB) Rank(id int) (string, error) {
	t, err := db.taxon(id)
	if err != nil {
		return "", err
	}
	return t.Rank, nil
}

// Name returns the scientific name of id.
func (db *DB) Name(id int) (string, error) {
	t, err := db.taxon(id)
	if err != nil {
		return "", err
	}
	return t.Name, nil
}

// MapToRank resolves id to itself or its nearest ancestor at the query
// rank. ok is false when no taxon at that rank lies on the path to the
// root — in particular when id is already above the query rank.
func (db *DB) MapToRank(id int, rank string) (int, bool, error) {
	t, err := db.taxon(id)
	if err != nil {
		return 0, false, err
	}
	if t.Rank == rank {
		return id, true, nil
	}
	anc, err := db.Ancestors(id)
	if err != nil {
		return 0, false, err
	}
	for a := range anc {
		if db.taxa[a].Rank == rank {
			return a, true, nil
		}
	}
	return 0, false, nil
}

// Taxa returns a copy of every entry, for persisting a parsed taxonomy.
func (db *DB) Taxa() map[int]Taxon {
	cp := make(map[int]Taxon, len(db.taxa))
	for id, t := range db.taxa {
		cp[id] = t
	}
	return cp
}

func (db *DB) taxon(id int) (Taxon, error) {
	t, ok := db.taxa[id]
	if !ok {
		return Taxon{}, fmt.Errorf("taxid %d: %w", id, annotation.ErrUnknownID)
	}
	return t, nil
}
