// internal/app/sources.go
package app

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/rsajulga-nmdp/metaquantome/core/enzyme"
	"github.com/rsajulga-nmdp/metaquantome/core/goterm"
	"github.com/rsajulga-nmdp/metaquantome/core/taxonomy"
	"github.com/rsajulga-nmdp/metaquantome/internal/cli"
	"github.com/rsajulga-nmdp/metaquantome/internal/ontostore"
)

// sources loads ontology backends from raw files or a store directory,
// opening the store lazily and at most once.
type sources struct {
	opts   cli.SourceOptions
	logger *slog.Logger
	store  *ontostore.Store
}

func newSources(opts cli.SourceOptions, logger *slog.Logger) *sources {
	return &sources{opts: opts, logger: logger}
}

func (s *sources) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("closing ontology store", slog.String("error", err.Error()))
		}
		s.store = nil
	}
}

func (s *sources) openStore() (*ontostore.Store, error) {
	if s.store != nil {
		return s.store, nil
	}
	if s.opts.DataDir == "" {
		return nil, fmt.Errorf("no ontology source configured")
	}
	store, err := ontostore.Open(ontostore.Config{Path: s.opts.DataDir, Logger: s.logger})
	if err != nil {
		return nil, err
	}
	s.store = store
	return store, nil
}

// fromStore opens the store and checks it actually holds the requested
// ontology before anything is loaded from it.
func (s *sources) fromStore(ontology, what string) (*ontostore.Store, error) {
	store, err := s.openStore()
	if err != nil {
		return nil, err
	}
	ok, err := store.Has(ontology)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("ontology store %s holds no %s (run `metaquantome db` first)", s.opts.DataDir, what)
	}
	return store, nil
}

// GO loads the Gene Ontology backend.
func (s *sources) GO() (*goterm.DB, error) {
	if s.opts.OBO != "" {
		s.logger.Debug("parsing gene ontology", slog.String("path", s.opts.OBO))
		return goterm.LoadOBO(s.opts.OBO)
	}
	store, err := s.fromStore(cli.OntologyGO, "go terms")
	if err != nil {
		return nil, err
	}
	terms, err := store.GOTerms()
	if err != nil {
		return nil, err
	}
	return goterm.New(terms), nil
}

// Enzyme loads the EC classification backend.
func (s *sources) Enzyme() (*enzyme.DB, error) {
	if s.opts.Enzclass != "" || s.opts.EnzymeDat != "" {
		s.logger.Debug("parsing enzyme classification",
			slog.String("enzclass", s.opts.Enzclass), slog.String("enzyme_dat", s.opts.EnzymeDat))
		return enzyme.Load(s.opts.Enzclass, s.opts.EnzymeDat)
	}
	store, err := s.fromStore(cli.OntologyEC, "ec entries")
	if err != nil {
		return nil, err
	}
	entries, err := store.Enzymes()
	if err != nil {
		return nil, err
	}
	return enzyme.New(entries)
}

// Taxonomy loads the NCBI taxonomy backend.
func (s *sources) Taxonomy() (*taxonomy.DB, error) {
	if s.opts.NodesDmp != "" {
		s.logger.Debug("parsing taxdump",
			slog.String("nodes", s.opts.NodesDmp), slog.String("names", s.opts.NamesDmp))
		return taxonomy.Load(s.opts.NodesDmp, s.opts.NamesDmp)
	}
	store, err := s.fromStore(cli.OntologyTax, "taxa")
	if err != nil {
		return nil, err
	}
	taxa, err := store.Taxa()
	if err != nil {
		return nil, err
	}
	return taxonomy.New(taxa), nil
}

// registerSourceFlags wires the shared ontology-source flags.
func registerSourceFlags(f *pflag.FlagSet, s *cli.SourceOptions) {
	f.StringVar(&s.DataDir, "data-dir", "", "ontology store directory built by `metaquantome db`")
	f.StringVar(&s.OBO, "obo", "", "gene ontology source (go-basic.obo)")
	f.StringVar(&s.Enzclass, "enzclass", "", "ExPASy enzclass.txt")
	f.StringVar(&s.EnzymeDat, "enzyme-dat", "", "ExPASy enzyme.dat")
	f.StringVar(&s.NodesDmp, "nodes", "", "NCBI taxdump nodes.dmp")
	f.StringVar(&s.NamesDmp, "names", "", "NCBI taxdump names.dmp")
}
