// core/goterm/obo.go
package goterm

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// LoadOBO parses a GO release in OBO flat-file format (go-basic.obo).
func LoadOBO(path string) (*DB, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	terms, err := ParseOBO(fh)
	if err != nil {
		return nil, err
	}
	return New(terms), nil
}

// ParseOBO reads [Term] stanzas, keeping the tags the DAG needs: id, name,
// namespace, is_a, alt_id, is_obsolete. Other stanza types ([Typedef])
// and tags are skipped.
func ParseOBO(r io.Reader) ([]*Term, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var terms []*Term
	var cur *Term
	inTerm := false

	flush := func() {
		if inTerm && cur != nil && cur.ID != "" {
			terms = append(terms, cur)
		}
		cur = nil
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "[") {
			flush()
			inTerm = line == "[Term]"
			if inTerm {
				cur = &Term{}
			}
			continue
		}
		if !inTerm || cur == nil || line == "" {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		// strip trailing "! comment"
		if i := strings.Index(val, " ! "); i >= 0 {
			val = strings.TrimSpace(val[:i])
		}
		switch key {
		case "id":
			cur.ID = val
		case "name":
			cur.Name = val
		case "namespace":
			cur.Namespace = val
		case "is_a":
			cur.IsA = append(cur.IsA, val)
		case "alt_id":
			cur.AltIDs = append(cur.AltIDs, val)
		case "is_obsolete":
			cur.Obsolete = val == "true"
		}
	}
	flush()
	return terms, sc.Err()
}
