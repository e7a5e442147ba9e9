// core/enzyme/loader.go
package enzyme

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// enzclass.txt class lines look like "1. 1. 3.-   With oxygen as acceptor."
// with spaces padding the code columns.
var classLine = regexp.MustCompile(`^(\d+)\.\s*([\d-]+)\.\s*([\d-]+)\.([\d-]+)\s+(.+)$`)

// Load parses ExPASy enzclass.txt (class/subclass/sub-subclass names) and
// enzyme.dat (fully specified enzymes) into a DB. Either path may be empty
// to skip that file.
func Load(enzclassPath, enzymeDatPath string) (*DB, error) {
	entries := make(map[string]string)
	if enzclassPath != "" {
		fh, err := os.Open(enzclassPath)
		if err != nil {
			return nil, err
		}
		err = parseClasses(fh, entries)
		_ = fh.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", enzclassPath, err)
		}
	}
	if enzymeDatPath != "" {
		fh, err := os.Open(enzymeDatPath)
		if err != nil {
			return nil, err
		}
		err = parseDat(fh, entries)
		_ = fh.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", enzymeDatPath, err)
		}
	}
	return New(entries)
}

func parseClasses(r io.Reader, entries map[string]string) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " ")
		m := classLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		code := strings.Join(m[1:5], ".")
		entries[code] = strings.TrimSuffix(strings.TrimSpace(m[5]), ".")
	}
	return sc.Err()
}

// parseDat reads the ID/DE record pairs of enzyme.dat. DE lines may span
// records until the "//" terminator; continuations are joined with spaces.
func parseDat(r io.Reader, entries map[string]string) error {
	sc := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, 4*1024*1024)

	var id string
	var desc []string
	flush := func() {
		if id != "" {
			entries[id] = strings.TrimSuffix(strings.Join(desc, " "), ".")
		}
		id, desc = "", nil
	}
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "ID   "):
			flush()
			id = strings.TrimSpace(line[5:])
		case strings.HasPrefix(line, "DE   "):
			desc = append(desc, strings.TrimSpace(line[5:]))
		case strings.HasPrefix(line, "//"):
			flush()
		}
	}
	flush()
	return sc.Err()
}
