// pkg/api/rows_v1.go
package api

// RowV1 is the stable JSON schema for one expanded annotation row.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
// Ids are strings on the wire regardless of ontology (taxids are decimal).
type RowV1 struct {
	ID              string             `json:"id"`
	Name            string             `json:"name,omitempty"`
	Rank            string             `json:"rank,omitempty"`
	Intensity       map[string]float64 `json:"intensity"`
	NPeptide        map[string]int     `json:"n_peptide"`
	NSampleChildren map[string]int     `json:"n_samp_children"`
}

// MeanRowV1 is the stable schema for per-group mean rows (stat output).
type MeanRowV1 struct {
	ID   string             `json:"id"`
	Name string             `json:"name,omitempty"`
	Rank string             `json:"rank,omitempty"`
	Mean map[string]float64 `json:"mean"`
}

// FTRowV1 is the stable schema for function-taxonomy interaction rows.
type FTRowV1 struct {
	GOID      string             `json:"go_id"`
	GOName    string             `json:"go_name,omitempty"`
	Namespace string             `json:"namespace,omitempty"`
	TaxID     int                `json:"tax_id"`
	TaxName   string             `json:"taxon_name,omitempty"`
	TaxRank   string             `json:"rank"`
	Mean      map[string]float64 `json:"mean"`
}
