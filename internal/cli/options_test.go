// internal/cli/options_test.go
package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validExpand() ExpandOptions {
	return ExpandOptions{
		Input:     "pep.tab",
		Ontology:  OntologyEC,
		SampsJSON: `{"s1": ["int1"]}`,
		Source:    SourceOptions{Enzclass: "enzclass.txt"},
		Format:    FormatTSV,
	}
}

func TestExpandValidate(t *testing.T) {
	o := validExpand()
	assert.NoError(t, o.Validate())

	tests := []struct {
		name   string
		mutate func(*ExpandOptions)
	}{
		{"missing input", func(o *ExpandOptions) { o.Input = "" }},
		{"bad ontology", func(o *ExpandOptions) { o.Ontology = "kegg" }},
		{"bad format", func(o *ExpandOptions) { o.Format = "xml" }},
		{"no groups", func(o *ExpandOptions) { o.SampsJSON = "" }},
		{"both group flags", func(o *ExpandOptions) { o.SampsFile = "g.yaml" }},
		{"no ontology source", func(o *ExpandOptions) { o.Source = SourceOptions{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validExpand()
			tt.mutate(&o)
			assert.Error(t, o.Validate())
		})
	}
}

func TestExpandValidateDataDir(t *testing.T) {
	o := validExpand()
	o.Source = SourceOptions{DataDir: "/tmp/store"}
	assert.NoError(t, o.Validate(), "a store directory replaces raw files")
}

func TestAnnotColumnDefaults(t *testing.T) {
	for ontology, want := range map[string]string{
		OntologyGO:  "go",
		OntologyEC:  "ec",
		OntologyTax: "lca",
	} {
		o := ExpandOptions{Ontology: ontology}
		assert.Equal(t, want, o.AnnotColumn(), ontology)
	}
	o := ExpandOptions{Ontology: OntologyGO, AnnotCol: "custom"}
	assert.Equal(t, "custom", o.AnnotColumn())
}

func TestFiltValidate(t *testing.T) {
	o := FiltOptions{Input: "expanded.tab", Format: FormatJSON}
	assert.NoError(t, o.Validate())

	o.MinPeptides = -1
	assert.Error(t, o.Validate())

	o = FiltOptions{Format: FormatTSV}
	assert.Error(t, o.Validate(), "missing input")
}

func TestStatValidate(t *testing.T) {
	o := StatOptions{Input: "expanded.tab", SampsFile: "g.yaml", Format: FormatTSV}
	assert.NoError(t, o.Validate())

	o.SampsFile = ""
	assert.Error(t, o.Validate())
}

func TestFTValidate(t *testing.T) {
	o := FTOptions{
		Input:     "pep.tab",
		QueryRank: "genus",
		SampsJSON: `{"s1": ["int1"]}`,
		Source:    SourceOptions{OBO: "go.obo", NodesDmp: "nodes.dmp"},
		Format:    FormatTSV,
	}
	assert.NoError(t, o.Validate())

	o.QueryRank = ""
	assert.Error(t, o.Validate())

	o.QueryRank = "genus"
	o.Source.NodesDmp = ""
	assert.Error(t, o.Validate(), "needs a taxonomy source")
}

func TestDBValidate(t *testing.T) {
	o := DBOptions{DataDir: "/tmp/store", OBO: "go.obo"}
	assert.NoError(t, o.Validate())

	o = DBOptions{OBO: "go.obo"}
	assert.Error(t, o.Validate(), "missing data dir")

	o = DBOptions{DataDir: "/tmp/store"}
	assert.Error(t, o.Validate(), "no sources")

	o = DBOptions{DataDir: "/tmp/store", NamesDmp: "names.dmp"}
	assert.Error(t, o.Validate(), "names without nodes")
}
