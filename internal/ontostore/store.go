// internal/ontostore/store.go

// Package ontostore persists parsed ontologies in an embedded BadgerDB so
// large source files (taxdump, go-basic.obo, enzyme.dat) are parsed once
// by `metaquantome db` and reloaded quickly by later runs. It stores
// ontology records only — never hierarchy state.
package ontostore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/rsajulga-nmdp/metaquantome/core/goterm"
	"github.com/rsajulga-nmdp/metaquantome/core/taxonomy"
)

// Key prefixes per ontology namespace.
const (
	prefixTax = "tax:"
	prefixGO  = "go:"
	prefixEC  = "ec:"
)

// Config holds store settings.
type Config struct {
	// Path is the badger directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps everything off disk; used by tests.
	InMemory bool
	// Logger receives badger's internal logging; nil disables it.
	Logger *slog.Logger
}

// Store is an open ontology store.
type Store struct {
	db *badger.DB
}

// Open opens (creating if needed) the store at cfg.Path.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open ontology store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// PutTaxa stores NCBI taxa under tax: keys.
func (s *Store) PutTaxa(taxa map[int]taxonomy.Taxon) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for id, t := range taxa {
		raw, err := json.Marshal(t)
		if err != nil {
			return err
		}
		if err := wb.Set([]byte(prefixTax+strconv.Itoa(id)), raw); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// Taxa loads every stored taxon.
func (s *Store) Taxa() (map[int]taxonomy.Taxon, error) {
	taxa := make(map[int]taxonomy.Taxon)
	err := s.iterate(prefixTax, func(key string, raw []byte) error {
		id, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("corrupt taxon key %q", key)
		}
		var t taxonomy.Taxon
		if err := json.Unmarshal(raw, &t); err != nil {
			return err
		}
		taxa[id] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return taxa, nil
}

// PutGOTerms stores GO terms under go: keys.
func (s *Store) PutGOTerms(terms []*goterm.Term) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, t := range terms {
		raw, err := json.Marshal(t)
		if err != nil {
			return err
		}
		if err := wb.Set([]byte(prefixGO+t.ID), raw); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// GOTerms loads every stored GO term.
func (s *Store) GOTerms() ([]*goterm.Term, error) {
	var terms []*goterm.Term
	err := s.iterate(prefixGO, func(_ string, raw []byte) error {
		var t goterm.Term
		if err := json.Unmarshal(raw, &t); err != nil {
			return err
		}
		terms = append(terms, &t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return terms, nil
}

// PutEnzymes stores EC code→name entries under ec: keys.
func (s *Store) PutEnzymes(entries map[string]string) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for code, name := range entries {
		raw, err := json.Marshal(name)
		if err != nil {
			return err
		}
		if err := wb.Set([]byte(prefixEC+code), raw); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// Enzymes loads every stored EC entry.
func (s *Store) Enzymes() (map[string]string, error) {
	entries := make(map[string]string)
	err := s.iterate(prefixEC, func(key string, raw []byte) error {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return err
		}
		entries[key] = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Has reports whether any key with the given ontology prefix exists; used
// to decide whether a store can serve a requested ontology.
func (s *Store) Has(ontology string) (bool, error) {
	prefix := ""
	switch ontology {
	case "tax":
		prefix = prefixTax
	case "go":
		prefix = prefixGO
	case "ec":
		prefix = prefixEC
	default:
		return false, fmt.Errorf("unknown ontology %q", ontology)
	}
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(prefix)})
		defer it.Close()
		it.Rewind()
		found = it.Valid()
		return nil
	})
	return found, err
}

func (s *Store) iterate(prefix string, fn func(key string, raw []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := strings.TrimPrefix(string(item.Key()), prefix)
			if err := item.Value(func(raw []byte) error { return fn(key, raw) }); err != nil {
				return err
			}
		}
		return nil
	})
}

// badgerLogger adapts slog to badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
