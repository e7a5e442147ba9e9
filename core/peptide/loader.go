// core/peptide/loader.go
package peptide

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Record is one peptide row of the joined input table: the annotation ids
// assigned to the peptide and its measured intensity per sample column.
// Multi-valued annotation cells ("GO:0008150,GO:0022414") are split; the
// loader drops duplicate peptide/annotation pairs so one measurement never
// counts twice toward the same id.
type Record struct {
	Peptide     string
	Annotations []string
	Taxon       string // raw LCA cell, only when Columns.Taxon was set
	Intensity   map[string]float64
}

// Columns names the columns of interest in the input table. Taxon is
// optional; it is only read by the function-taxonomy analysis.
type Columns struct {
	Peptide    string
	Annotation string
	Taxon      string
	Intensity  []string
}

// Load reads a tab-separated peptide table.
func Load(path string, cols Columns) ([]Record, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	recs, err := Parse(fh, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Parse reads the header line, locates the requested columns, and scans
// the remaining rows. Empty annotation cells are skipped; a row's
// intensity cell may be empty or "NA" (treated as absent).
func Parse(r io.Reader, cols Columns) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty table")
	}
	header := strings.Split(sc.Text(), "\t")
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	pepIdx, ok := idx[cols.Peptide]
	if !ok {
		return nil, fmt.Errorf("missing peptide column %q", cols.Peptide)
	}
	annIdx, ok := idx[cols.Annotation]
	if !ok {
		return nil, fmt.Errorf("missing annotation column %q", cols.Annotation)
	}
	taxIdx := -1
	if cols.Taxon != "" {
		j, ok := idx[cols.Taxon]
		if !ok {
			return nil, fmt.Errorf("missing taxon column %q", cols.Taxon)
		}
		taxIdx = j
	}
	intIdx := make([]int, len(cols.Intensity))
	for i, c := range cols.Intensity {
		j, ok := idx[c]
		if !ok {
			return nil, fmt.Errorf("missing intensity column %q", c)
		}
		intIdx[i] = j
	}

	var recs []Record
	seen := make(map[string]struct{})
	ln := 1
	for sc.Scan() {
		ln++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) < len(header) {
			return nil, fmt.Errorf("line %d: %d fields, header has %d", ln, len(f), len(header))
		}
		pep := strings.TrimSpace(f[pepIdx])
		rec := Record{Peptide: pep, Intensity: make(map[string]float64, len(intIdx))}
		if taxIdx >= 0 {
			rec.Taxon = strings.TrimSpace(f[taxIdx])
		}
		for _, a := range strings.Split(f[annIdx], ",") {
			a = strings.TrimSpace(a)
			if a == "" {
				continue
			}
			key := pep + "\x00" + a
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			rec.Annotations = append(rec.Annotations, a)
		}
		if len(rec.Annotations) == 0 {
			continue
		}
		for i, c := range cols.Intensity {
			cell := strings.TrimSpace(f[intIdx[i]])
			if cell == "" || cell == "NA" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad intensity %q: %v", ln, cell, err)
			}
			if v < 0 {
				return nil, fmt.Errorf("line %d: negative intensity %q", ln, cell)
			}
			rec.Intensity[c] = v
		}
		recs = append(recs, rec)
	}
	return recs, sc.Err()
}
