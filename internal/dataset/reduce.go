package dataset

// ValueRange is the min/max of the numeric field over a dataset.
type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ComputeRange scans the records once and returns their value range.
// An empty slice yields (0, 0).
func ComputeRange(records []CellRecord) ValueRange {
	if len(records) == 0 {
		return ValueRange{}
	}

	r := ValueRange{Min: records[0].Value, Max: records[0].Value}
	for _, rec := range records[1:] {
		if rec.Value < r.Min {
			r.Min = rec.Value
		}
		if rec.Value > r.Max {
			r.Max = rec.Value
		}
	}
	return r
}

// Normalize maps v into [0,1] relative to the range, clamping at both ends.
// A degenerate range (Min == Max) maps every value to 0, so a single-valued
// dataset renders uniformly in the ramp's first color.
func (r ValueRange) Normalize(v float64) float64 {
	span := r.Max - r.Min
	if span <= 0 {
		return 0
	}
	t := (v - r.Min) / span
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
