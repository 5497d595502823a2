package repair

import (
	"slices"

	"bsplan/pkg/contracts/domain"
)

// Classifier decides target-year membership and derives anomaly entries for
// kept records. It does not sort; output order is the caller's insertion
// order.
type Classifier struct {
	year int
}

// NewClassifier creates a classifier for the target year.
func NewClassifier(year int) *Classifier {
	return &Classifier{year: year}
}

// Keep reports whether the intervention belongs to the target year. Records
// with at least one parsed planning bound are judged on start or corrected
// end; records without planning fall back to their creation date. A record
// with neither is excluded.
func (c *Classifier) Keep(iv *domain.Intervention) bool {
	if iv.Start != nil || iv.End != nil {
		return (iv.Start != nil && iv.Start.Year() == c.year) ||
			(iv.End != nil && iv.End.Year() == c.year)
	}
	return iv.Created != nil && iv.Created.Year() == c.year
}

// Anomaly derives the anomaly entry for a kept intervention, or nil when
// the record carries no quality notes. Every note kind is a trigger: parse
// failures, missing planning bounds, missing agents, an applied 12-hour
// shift, a still-negative duration.
func (c *Classifier) Anomaly(iv *domain.Intervention) *domain.Anomaly {
	if !iv.HasNotes() {
		return nil
	}
	return &domain.Anomaly{
		ID:           iv.ID,
		RawStart:     iv.RawStart,
		RawEnd:       iv.RawEnd,
		CorrectedEnd: iv.End,
		Duration:     iv.Duration,
		Notes:        slices.Clone(iv.Notes),
	}
}
