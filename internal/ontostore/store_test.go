// internal/ontostore/store_test.go
package ontostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsajulga-nmdp/metaquantome/core/goterm"
	"github.com/rsajulga-nmdp/metaquantome/core/taxonomy"
)

func openMem(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestTaxaRoundTrip(t *testing.T) {
	s := openMem(t)
	taxa := map[int]taxonomy.Taxon{
		1:    {Parent: 1, Rank: "no rank", Name: "root"},
		9606: {Parent: 9605, Rank: "species", Name: "Homo sapiens"},
	}
	require.NoError(t, s.PutTaxa(taxa))

	got, err := s.Taxa()
	require.NoError(t, err)
	assert.Equal(t, taxa, got)
}

func TestGOTermsRoundTrip(t *testing.T) {
	s := openMem(t)
	terms := []*goterm.Term{
		{ID: "GO:0008150", Name: "biological_process", Namespace: "biological_process"},
		{ID: "GO:0022414", Name: "reproductive process", Namespace: "biological_process",
			IsA: []string{"GO:0008150"}, AltIDs: []string{"GO:0000003"}},
	}
	require.NoError(t, s.PutGOTerms(terms))

	got, err := s.GOTerms()
	require.NoError(t, err)
	require.Len(t, got, 2)
	byID := map[string]*goterm.Term{got[0].ID: got[0], got[1].ID: got[1]}
	assert.Equal(t, terms[0], byID["GO:0008150"])
	assert.Equal(t, terms[1], byID["GO:0022414"])
}

func TestEnzymesRoundTrip(t *testing.T) {
	s := openMem(t)
	entries := map[string]string{
		"1.-.-.-": "Oxidoreductases",
		"1.1.4.1": "Vitamin-K-epoxide reductase (warfarin-sensitive)",
	}
	require.NoError(t, s.PutEnzymes(entries))

	got, err := s.Enzymes()
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestHas(t *testing.T) {
	s := openMem(t)
	for _, ont := range []string{"tax", "go", "ec"} {
		ok, err := s.Has(ont)
		require.NoError(t, err)
		assert.False(t, ok, ont)
	}

	require.NoError(t, s.PutEnzymes(map[string]string{"1.-.-.-": "Oxidoreductases"}))
	ok, err := s.Has("ec")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Has("go")
	require.NoError(t, err)
	assert.False(t, ok, "prefixes do not bleed across ontologies")

	_, err = s.Has("nope")
	assert.Error(t, err)
}

func TestOnDiskPersistence(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Config{Path: dir})
	require.NoError(t, err)
	require.NoError(t, s.PutEnzymes(map[string]string{"6.-.-.-": "Ligases"}))
	require.NoError(t, s.Close())

	s, err = Open(Config{Path: dir})
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	got, err := s.Enzymes()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"6.-.-.-": "Ligases"}, got)
}
