// Package dataset loads and summarizes H3-indexed CSV datasets.
package dataset

// CellRecord is one row of the source CSV: a value attached to a single
// hexagonal grid cell. Records are immutable once parsed.
type CellRecord struct {
	City     string  `json:"city"`
	Locality string  `json:"locality"`
	CellID   string  `json:"cell_id"`
	POICode  string  `json:"poi_code"`
	Value    float64 `json:"value"`
}
