// core/taxonomy/loader.go
package taxonomy

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const dmpSep = "\t|\t"

// Load parses an NCBI taxdump (nodes.dmp + names.dmp) into a DB. Only
// "scientific name" rows of names.dmp are kept.
func Load(nodesPath, namesPath string) (*DB, error) {
	taxa := make(map[int]Taxon)

	fh, err := os.Open(nodesPath)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		f := strings.Split(strings.TrimSuffix(sc.Text(), "\t|"), dmpSep)
		if len(f) < 3 {
			_ = fh.Close()
			return nil, fmt.Errorf("%s:%d bad field count", nodesPath, ln)
		}
		id, err := strconv.Atoi(strings.TrimSpace(f[0]))
		if err != nil {
			_ = fh.Close()
			return nil, fmt.Errorf("%s:%d bad taxid: %v", nodesPath, ln, err)
		}
		parent, err := strconv.Atoi(strings.TrimSpace(f[1]))
		if err != nil {
			_ = fh.Close()
			return nil, fmt.Errorf("%s:%d bad parent taxid: %v", nodesPath, ln, err)
		}
		taxa[id] = Taxon{Parent: parent, Rank: strings.TrimSpace(f[2])}
	}
	if err := sc.Err(); err != nil {
		_ = fh.Close()
		return nil, err
	}
	_ = fh.Close()

	if namesPath != "" {
		fh, err = os.Open(namesPath)
		if err != nil {
			return nil, err
		}
		defer func() { _ = fh.Close() }()
		sc = bufio.NewScanner(fh)
		sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		ln = 0
		for sc.Scan() {
			ln++
			f := strings.Split(strings.TrimSuffix(sc.Text(), "\t|"), dmpSep)
			if len(f) < 4 || strings.TrimSpace(f[3]) != "scientific name" {
				continue
			}
			id, err := strconv.Atoi(strings.TrimSpace(f[0]))
			if err != nil {
				return nil, fmt.Errorf("%s:%d bad taxid: %v", namesPath, ln, err)
			}
			t, ok := taxa[id]
			if !ok {
				continue
			}
			t.Name = strings.TrimSpace(f[1])
			taxa[id] = t
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
	}
	return New(taxa), nil
}
