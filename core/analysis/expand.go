// core/analysis/expand.go
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rsajulga-nmdp/metaquantome/core/annotation"
	"github.com/rsajulga-nmdp/metaquantome/core/peptide"
)

// Observation is one (id, intensity) pair attributed to a sample.
type Observation[K comparable] struct {
	ID        K
	Intensity float64
}

// SampleObservations is the complete observed input for one sample column.
type SampleObservations[K comparable] struct {
	Sample string
	Obs    []Observation[K]
}

// WideRow is one annotation id across every sample: intensity, observation
// count, and sample-children count per sample column, plus the backend's
// name and rank for reporting. Absent map entries mean the id was never
// reached in that sample.
type WideRow[K comparable] struct {
	ID              K
	Name            string
	Rank            string
	Intensity       map[string]float64
	NPeptide        map[string]int
	NSampleChildren map[string]int
}

// Result is the joined expand output.
type Result[K comparable] struct {
	Samples []string
	Rows    []WideRow[K]
}

// Options controls expansion policy.
type Options struct {
	// Strict aborts on the first unknown annotation id. When false,
	// unknown ids are logged once each and skipped.
	Strict bool
}

// ObservationsFromRecords turns loaded peptide records into per-sample
// observations. parse converts the raw annotation token into the
// backend's id type; zero and absent intensities are dropped.
func ObservationsFromRecords[K comparable](recs []peptide.Record, cols []string, parse func(string) (K, error)) ([]SampleObservations[K], error) {
	byCol := make(map[string][]Observation[K], len(cols))
	for _, rec := range recs {
		for _, raw := range rec.Annotations {
			id, err := parse(raw)
			if err != nil {
				return nil, fmt.Errorf("peptide %s: %w", rec.Peptide, err)
			}
			for _, c := range cols {
				if v := rec.Intensity[c]; v > 0 {
					byCol[c] = append(byCol[c], Observation[K]{ID: id, Intensity: v})
				}
			}
		}
	}
	out := make([]SampleObservations[K], 0, len(cols))
	for _, c := range cols {
		out = append(out, SampleObservations[K]{Sample: c, Obs: byCol[c]})
	}
	return out, nil
}

// Expand builds one annotation hierarchy per sample and joins the exported
// tables into a wide result. Samples are processed concurrently; the
// backend is shared read-only across the workers.
func Expand[K comparable](ctx context.Context, db annotation.Database[K], samples []SampleObservations[K], opts Options, logger *slog.Logger) (*Result[K], error) {
	if logger == nil {
		logger = slog.Default()
	}

	tables := make([]annotation.Table[K], len(samples))
	var warnMu sync.Mutex
	warned := make(map[K]struct{})

	g, _ := errgroup.WithContext(ctx)
	for i, s := range samples {
		i, s := i, s
		g.Go(func() error {
			// Resolve each distinct id before building the sample set: a
			// skipped id must not reach ComputeSampleChildren, which would
			// fail on it after Observe already let it go.
			known := make(map[K]bool, len(s.Obs))
			sampleSet := make(map[K]struct{}, len(s.Obs))
			obs := make([]Observation[K], 0, len(s.Obs))
			for _, o := range s.Obs {
				ok, checked := known[o.ID]
				if !checked {
					if _, err := db.Ancestors(o.ID); err != nil {
						if opts.Strict || !errors.Is(err, annotation.ErrUnknownID) {
							return fmt.Errorf("observe %v: %w", o.ID, err)
						}
						warnMu.Lock()
						if _, dup := warned[o.ID]; !dup {
							warned[o.ID] = struct{}{}
							logger.Warn("skipping unknown annotation id",
								slog.Any("id", o.ID), slog.String("sample", s.Sample))
						}
						warnMu.Unlock()
					} else {
						ok = true
					}
					known[o.ID] = ok
				}
				if !ok {
					continue
				}
				sampleSet[o.ID] = struct{}{}
				obs = append(obs, o)
			}
			h := annotation.New(db, sampleSet, s.Sample)
			for _, o := range obs {
				if err := h.Observe(o.ID, o.Intensity); err != nil {
					return err
				}
			}
			if err := h.ComputeSampleChildren(); err != nil {
				return err
			}
			tables[i] = h.Table(false, 0, 0)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return join(db, tables)
}

// join outer-joins per-sample tables on annotation id and attaches names
// and ranks.
func join[K comparable](db annotation.Database[K], tables []annotation.Table[K]) (*Result[K], error) {
	res := &Result[K]{Samples: make([]string, len(tables))}
	byID := make(map[K]*WideRow[K])
	for i, t := range tables {
		res.Samples[i] = t.SampleName
		for _, r := range t.Rows {
			w, ok := byID[r.ID]
			if !ok {
				name, err := db.Name(r.ID)
				if err != nil {
					return nil, err
				}
				rank, err := db.Rank(r.ID)
				if err != nil {
					return nil, err
				}
				w = &WideRow[K]{
					ID: r.ID, Name: name, Rank: rank,
					Intensity:       make(map[string]float64, len(tables)),
					NPeptide:        make(map[string]int, len(tables)),
					NSampleChildren: make(map[string]int, len(tables)),
				}
				byID[r.ID] = w
			}
			w.Intensity[t.SampleName] = r.Intensity
			w.NPeptide[t.SampleName] = r.NPeptide
			w.NSampleChildren[t.SampleName] = r.NSampleChildren
		}
	}
	res.Rows = make([]WideRow[K], 0, len(byID))
	for _, w := range byID {
		res.Rows = append(res.Rows, *w)
	}
	return res, nil
}
