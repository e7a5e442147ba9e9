// internal/app/db.go
package app

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rsajulga-nmdp/metaquantome/core/enzyme"
	"github.com/rsajulga-nmdp/metaquantome/core/goterm"
	"github.com/rsajulga-nmdp/metaquantome/core/taxonomy"
	"github.com/rsajulga-nmdp/metaquantome/internal/cli"
	"github.com/rsajulga-nmdp/metaquantome/internal/ontostore"
)

func (a *app) dbCmd() *cobra.Command {
	var o cli.DBOptions
	cmd := &cobra.Command{
		Use:   "db",
		Short: "parse ontology source files into a reusable store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return usageError{err}
			}
			return a.runDB(&o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.DataDir, "data-dir", "", "directory for the ontology store [*]")
	f.StringVar(&o.OBO, "obo", "", "gene ontology source (go-basic.obo)")
	f.StringVar(&o.Enzclass, "enzclass", "", "ExPASy enzclass.txt")
	f.StringVar(&o.EnzymeDat, "enzyme-dat", "", "ExPASy enzyme.dat")
	f.StringVar(&o.NodesDmp, "nodes", "", "NCBI taxdump nodes.dmp")
	f.StringVar(&o.NamesDmp, "names", "", "NCBI taxdump names.dmp")
	return cmd
}

func (a *app) runDB(o *cli.DBOptions) error {
	store, err := ontostore.Open(ontostore.Config{Path: o.DataDir, Logger: a.logger})
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if o.OBO != "" {
		db, err := goterm.LoadOBO(o.OBO)
		if err != nil {
			return err
		}
		terms := db.Terms()
		if err := store.PutGOTerms(terms); err != nil {
			return err
		}
		a.logger.Info("stored gene ontology", slog.Int("terms", len(terms)))
	}
	if o.Enzclass != "" || o.EnzymeDat != "" {
		db, err := enzyme.Load(o.Enzclass, o.EnzymeDat)
		if err != nil {
			return err
		}
		entries := db.Entries()
		if err := store.PutEnzymes(entries); err != nil {
			return err
		}
		a.logger.Info("stored enzyme classification", slog.Int("codes", len(entries)))
	}
	if o.NodesDmp != "" {
		db, err := taxonomy.Load(o.NodesDmp, o.NamesDmp)
		if err != nil {
			return err
		}
		taxa := db.Taxa()
		if err := store.PutTaxa(taxa); err != nil {
			return err
		}
		a.logger.Info("stored taxonomy", slog.Int("taxa", len(taxa)))
	}
	return nil
}
