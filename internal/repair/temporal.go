package repair

import (
	"strings"
	"time"
)

// Accepted layouts, tried in order with first match winning. The day-first
// forms cover manual entry; the ISO forms cover values BetterStreet emits
// itself. Seconds only ever appear with 4-digit years.
var dateTimeLayouts = []string{
	"02-01-06 15:04",
	"02-01-2006 15:04",
	"02/01/06 15:04",
	"02/01/2006 15:04",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"02-01-2006 15:04:05",
	"02/01/2006 15:04:05",
}

var dateOnlyLayouts = []string{
	"02-01-06",
	"02-01-2006",
	"02/01/06",
	"02/01/2006",
}

// DateParseError reports a temporal token that matched no accepted layout.
// It carries the offending value so the note on the record names it. The
// message is French because it flows verbatim into the anomaly report.
type DateParseError struct {
	Value string
}

// Error implements the error interface
func (e *DateParseError) Error() string {
	return "Date/heure non reconnue: " + e.Value
}

// ParseDateTime parses a planning timestamp against the accepted layouts.
// Failure returns a *DateParseError; callers record it as a note rather
// than failing the record.
func ParseDateTime(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &DateParseError{Value: s}
}

// ParseDate parses a bare date permissively: an unparseable value reports
// ok=false instead of an error. Used for the "created" field, which is
// informational only.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateOnlyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CorrectionPolicy controls the 12-hour ambiguity fix. An end time earlier
// than its start usually means the end was entered on a 12-hour clock
// without the PM part; shifting it once by 12 hours recovers the intended
// window. The shift can over-correct genuinely multi-day interventions, so
// it stays switchable.
type CorrectionPolicy struct {
	// ShiftAmbiguousEnd enables the correction.
	ShiftAmbiguousEnd bool `json:"shift_ambiguous_end"`

	// Shift is the amount added to an ambiguous end, applied at most once.
	Shift time.Duration `json:"shift"`
}

// DefaultCorrectionPolicy returns the production policy: one +12h shift.
func DefaultCorrectionPolicy() CorrectionPolicy {
	return CorrectionPolicy{
		ShiftAmbiguousEnd: true,
		Shift:             12 * time.Hour,
	}
}

// IsValid checks if the policy is usable.
func (p CorrectionPolicy) IsValid() bool {
	return !p.ShiftAmbiguousEnd || p.Shift > 0
}

// Apply returns the corrected end and whether the shift was applied.
func (p CorrectionPolicy) Apply(start, end time.Time) (time.Time, bool) {
	if !p.ShiftAmbiguousEnd || !end.Before(start) {
		return end, false
	}
	return end.Add(p.Shift), true
}
