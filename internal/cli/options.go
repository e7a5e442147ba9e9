// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
)

// Ontology selectors accepted by --ontology.
const (
	OntologyGO  = "go"
	OntologyEC  = "ec"
	OntologyTax = "tax"
)

// Output formats accepted by --format.
const (
	FormatTSV  = "tsv"
	FormatJSON = "json"
)

// SourceOptions point at ontology inputs: either raw source files or a
// previously built store directory (--data-dir).
type SourceOptions struct {
	DataDir    string
	OBO        string
	Enzclass   string
	EnzymeDat  string
	NodesDmp   string
	NamesDmp   string
}

// ExpandOptions holds flags for the expand subcommand.
type ExpandOptions struct {
	Input    string
	Ontology string
	PepCol   string
	AnnotCol string

	SampsFile string
	SampsJSON string

	Source SourceOptions

	Output string
	Format string
	Strict bool
	Header bool
}

// Validate checks flag consistency; errors are usage errors (exit 2).
func (o *ExpandOptions) Validate() error {
	if o.Input == "" {
		return errors.New("--input is required")
	}
	switch o.Ontology {
	case OntologyGO, OntologyEC, OntologyTax:
	default:
		return fmt.Errorf("invalid --ontology %q (go | ec | tax)", o.Ontology)
	}
	if err := validateGroups(o.SampsFile, o.SampsJSON); err != nil {
		return err
	}
	if err := validateFormat(o.Format); err != nil {
		return err
	}
	return validateSource(o.Ontology, o.Source)
}

// AnnotColumn resolves the annotation column, defaulting per ontology to
// the original tool's column names.
func (o *ExpandOptions) AnnotColumn() string {
	if o.AnnotCol != "" {
		return o.AnnotCol
	}
	switch o.Ontology {
	case OntologyEC:
		return "ec"
	case OntologyTax:
		return "lca"
	default:
		return "go"
	}
}

// FiltOptions holds flags for the filt subcommand.
type FiltOptions struct {
	Input              string
	MinPeptides        int
	MinChildrenNonLeaf int
	MinSamples         int
	Output             string
	Format             string
	Header             bool
}

func (o *FiltOptions) Validate() error {
	if o.Input == "" {
		return errors.New("--input is required")
	}
	if o.MinPeptides < 0 || o.MinChildrenNonLeaf < 0 || o.MinSamples < 0 {
		return errors.New("thresholds must be ≥ 0")
	}
	return validateFormat(o.Format)
}

// StatOptions holds flags for the stat subcommand.
type StatOptions struct {
	Input     string
	SampsFile string
	SampsJSON string
	Log2      bool
	Output    string
	Format    string
	Header    bool
}

func (o *StatOptions) Validate() error {
	if o.Input == "" {
		return errors.New("--input is required")
	}
	if err := validateGroups(o.SampsFile, o.SampsJSON); err != nil {
		return err
	}
	return validateFormat(o.Format)
}

// FTOptions holds flags for the function-taxonomy subcommand.
type FTOptions struct {
	Input     string
	PepCol    string
	FuncCol   string
	LCACol    string
	QueryRank string

	SampsFile string
	SampsJSON string

	Source SourceOptions

	Output string
	Format string
	Strict bool
	Header bool
}

func (o *FTOptions) Validate() error {
	if o.Input == "" {
		return errors.New("--input is required")
	}
	if o.QueryRank == "" {
		return errors.New("--query-rank is required")
	}
	if err := validateGroups(o.SampsFile, o.SampsJSON); err != nil {
		return err
	}
	if err := validateFormat(o.Format); err != nil {
		return err
	}
	if err := validateSource(OntologyGO, o.Source); err != nil {
		return err
	}
	return validateSource(OntologyTax, o.Source)
}

// DBOptions holds flags for the db subcommand (build the ontology store).
type DBOptions struct {
	DataDir   string
	OBO       string
	Enzclass  string
	EnzymeDat string
	NodesDmp  string
	NamesDmp  string
}

func (o *DBOptions) Validate() error {
	if o.DataDir == "" {
		return errors.New("--data-dir is required")
	}
	if o.OBO == "" && o.Enzclass == "" && o.EnzymeDat == "" && o.NodesDmp == "" {
		return errors.New("provide at least one ontology source (--obo, --enzclass/--enzyme-dat, --nodes)")
	}
	if o.NamesDmp != "" && o.NodesDmp == "" {
		return errors.New("--names requires --nodes")
	}
	return nil
}

func validateGroups(file, inline string) error {
	switch {
	case file != "" && inline != "":
		return errors.New("--samps conflicts with --samps-json")
	case file == "" && inline == "":
		return errors.New("provide --samps or --samps-json")
	}
	return nil
}

func validateFormat(f string) error {
	if f != FormatTSV && f != FormatJSON {
		return fmt.Errorf("invalid --format %q (tsv | json)", f)
	}
	return nil
}

// validateSource checks that the requested ontology can be loaded from
// either raw files or a store directory.
func validateSource(ontology string, s SourceOptions) error {
	if s.DataDir != "" {
		return nil
	}
	switch ontology {
	case OntologyGO:
		if s.OBO == "" {
			return errors.New("provide --obo or --data-dir")
		}
	case OntologyEC:
		if s.Enzclass == "" && s.EnzymeDat == "" {
			return errors.New("provide --enzclass/--enzyme-dat or --data-dir")
		}
	case OntologyTax:
		if s.NodesDmp == "" {
			return errors.New("provide --nodes or --data-dir")
		}
	}
	return nil
}
