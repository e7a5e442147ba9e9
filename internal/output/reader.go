// internal/output/reader.go
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rsajulga-nmdp/metaquantome/core/analysis"
)

// ReadTSVFile parses an expanded table previously written by WriteTSV.
// Ids come back as strings regardless of the ontology that produced them;
// filt and stat never need the structural backend.
func ReadTSVFile(path string) (*analysis.Result[string], error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	res, err := ReadTSV(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// ReadTSV parses the header to recover the sample columns (each sample
// contributes "<s>", "<s>_n_peptide", "<s>_n_samp_children") and then the
// rows, with NA meaning absent.
func ReadTSV(r io.Reader) (*analysis.Result[string], error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty table")
	}
	header := strings.Split(sc.Text(), "\t")
	if len(header) < 3 || header[0] != "id" {
		return nil, fmt.Errorf("not an expanded table: header starts %q", header[0])
	}
	res := &analysis.Result[string]{}
	type cols struct{ intensity, npep, nchild int }
	sampleCols := make(map[string]cols)
	for i := 3; i+2 < len(header); i += 3 {
		s := header[i]
		if header[i+1] != s+"_n_peptide" || header[i+2] != s+"_n_samp_children" {
			return nil, fmt.Errorf("unexpected column triple at %q", header[i])
		}
		res.Samples = append(res.Samples, s)
		sampleCols[s] = cols{intensity: i, npep: i + 1, nchild: i + 2}
	}

	ln := 1
	for sc.Scan() {
		ln++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) != len(header) {
			return nil, fmt.Errorf("line %d: %d fields, header has %d", ln, len(f), len(header))
		}
		row := analysis.WideRow[string]{
			ID: f[0], Name: f[1], Rank: f[2],
			Intensity:       make(map[string]float64),
			NPeptide:        make(map[string]int),
			NSampleChildren: make(map[string]int),
		}
		for _, s := range res.Samples {
			c := sampleCols[s]
			if f[c.intensity] != missing {
				v, err := strconv.ParseFloat(f[c.intensity], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad intensity %q", ln, f[c.intensity])
				}
				row.Intensity[s] = v
			}
			if f[c.npep] != missing {
				v, err := strconv.Atoi(f[c.npep])
				if err != nil {
					return nil, fmt.Errorf("line %d: bad count %q", ln, f[c.npep])
				}
				row.NPeptide[s] = v
			}
			if f[c.nchild] != missing {
				v, err := strconv.Atoi(f[c.nchild])
				if err != nil {
					return nil, fmt.Errorf("line %d: bad count %q", ln, f[c.nchild])
				}
				row.NSampleChildren[s] = v
			}
		}
		res.Rows = append(res.Rows, row)
	}
	return res, sc.Err()
}
