package domain

// RunSummary carries the quality-control counters of one pipeline run. It is
// returned by the pipeline as a value so callers decide what to do with it;
// nothing in the engine keeps global state.
type RunSummary struct {
	// Ingestion.
	EncodingUsed string `json:"encoding_used,omitempty"`
	RawLineCount int    `json:"raw_line_count"`

	// Reassembly.
	RebuiltRecordCount int `json:"rebuilt_record_count"`
	ExpectedColumns    int `json:"expected_columns"`

	// Extraction.
	AlignedCount   int `json:"aligned_count"`
	HeuristicCount int `json:"heuristic_count"`
	MalformedCount int `json:"malformed_count"`

	// Classification.
	KeptCount    int `json:"kept_count"`
	SkippedCount int `json:"skipped_count"`
	AnomalyCount int `json:"anomaly_count"`

	// EmptyFieldCounts tallies, per canonical field name, how many kept
	// records ended up without a value for it.
	EmptyFieldCounts map[string]int `json:"empty_field_counts,omitempty"`
}

// TotalRecords is the number of reconstructed records that entered
// extraction, including those later dropped as malformed.
func (s *RunSummary) TotalRecords() int {
	return s.AlignedCount + s.HeuristicCount + s.MalformedCount
}
