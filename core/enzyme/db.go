// core/enzyme/db.go
package enzyme

import (
	"fmt"
	"strings"

	"github.com/rsajulga-nmdp/metaquantome/core/annotation"
)

// Wildcard marks an unspecified level in an EC code ("1.1.4.-").
const Wildcard = "-"

const levels = 4

// rank labels by number of specified levels.
var rankNames = [levels + 1]string{"", "class", "subclass", "sub-subclass", "enzyme"}

// DB answers structural queries over the Enzyme Commission classification.
// The hierarchy is syntactic — the parent of a code blanks its deepest
// specified level — but only codes registered at construction (plus their
// implied ancestors) resolve; anything else is an unknown id.
type DB struct {
	names map[string]string
}

// New builds a DB from code→name entries. Intermediate codes implied by an
// entry ("1.1.4.1" implies "1.1.4.-", "1.1.-.-", "1.-.-.-") are
// materialized with empty names unless the caller provides their own.
func New(entries map[string]string) (*DB, error) {
	db := &DB{names: make(map[string]string, len(entries)*2)}
	for code, name := range entries {
		if _, err := split(code); err != nil {
			return nil, err
		}
		db.names[code] = name
	}
	for code := range entries {
		cur := code
		for {
			parent, ok, err := parentOf(cur)
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			if _, exists := db.names[parent]; !exists {
				db.names[parent] = ""
			}
			cur = parent
		}
	}
	return db, nil
}

// Parents returns the single parent of code, or an empty slice for a
// top-level class.
func (db *DB) Parents(code string) ([]string, error) {
	if err := db.check(code); err != nil {
		return nil, err
	}
	parent, ok, err := parentOf(code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return []string{parent}, nil
}

// Ancestors returns every code above code, as a set.
func (db *DB) Ancestors(code string) (map[string]struct{}, error) {
	if err := db.check(code); err != nil {
		return nil, err
	}
	anc := make(map[string]struct{}, levels-1)
	cur := code
	for {
		parent, ok, err := parentOf(cur)
		if err != nil {
			return nil, err
		}
		if !ok {
			return anc, nil
		}
		anc[parent] = struct{}{}
		cur = parent
	}
}

// Rank reports the classification depth of code: class, subclass,
// sub-subclass, or enzyme.
func (db *DB) Rank(code string) (string, error) {
	if err := db.check(code); err != nil {
		return "", err
	}
	parts, err := split(code)
	if err != nil {
		return "", err
	}
	return rankNames[depth(parts)], nil
}

// Name returns the registered description for code; empty for implied
// intermediates never named by the source data.
func (db *DB) Name(code string) (string, error) {
	if err := db.check(code); err != nil {
		return "", err
	}
	return db.names[code], nil
}

// Entries returns a copy of every code→name pair, including materialized
// intermediates, for persisting a parsed classification.
func (db *DB) Entries() map[string]string {
	cp := make(map[string]string, len(db.names))
	for code, name := range db.names {
		cp[code] = name
	}
	return cp
}

func (db *DB) check(code string) error {
	if _, ok := db.names[code]; !ok {
		return fmt.Errorf("ec code %q: %w", code, annotation.ErrUnknownID)
	}
	return nil
}

func split(code string) ([]string, error) {
	parts := strings.Split(code, ".")
	if len(parts) != levels {
		return nil, fmt.Errorf("ec code %q: want %d dot-separated levels", code, levels)
	}
	blanked := false
	for i, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("ec code %q: empty level %d", code, i+1)
		}
		if p == Wildcard {
			blanked = true
		} else if blanked {
			return nil, fmt.Errorf("ec code %q: specified level %d below a wildcard", code, i+1)
		}
	}
	if parts[0] == Wildcard {
		return nil, fmt.Errorf("ec code %q: class level cannot be a wildcard", code)
	}
	return parts, nil
}

// depth counts specified (non-wildcard) levels from the left.
func depth(parts []string) int {
	d := 0
	for _, p := range parts {
		if p == Wildcard {
			break
		}
		d++
	}
	return d
}

// parentOf blanks the deepest specified level. ok is false at a top-level
// class, which has no parent.
func parentOf(code string) (string, bool, error) {
	parts, err := split(code)
	if err != nil {
		return "", false, err
	}
	d := depth(parts)
	if d <= 1 {
		return "", false, nil
	}
	parts[d-1] = Wildcard
	return strings.Join(parts, "."), true, nil
}
