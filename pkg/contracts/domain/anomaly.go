package domain

import (
	"strings"
	"time"
)

// Quality notes attached to interventions during normalization. The exact
// strings are a stable contract: the anomaly sheet and its consumers match
// on them.
const (
	NoteStartMissing     = "Start missing"
	NoteEndMissing       = "End missing"
	NoteAgentsMissing    = "Agents/Équipes missing"
	NoteEndShifted       = "End time shifted +12h (12h ambiguity forced)"
	NoteNegativeDuration = "Duration still negative after correction"
)

// NoteStartParseError builds the note for an unparseable start value.
func NoteStartParseError(detail string) string {
	return "Start parse error: " + detail
}

// NoteEndParseError builds the note for an unparseable end value.
func NoteEndParseError(detail string) string {
	return "End parse error: " + detail
}

// NoteSeparator joins the notes of one record in the anomaly report.
const NoteSeparator = " | "

// Anomaly is one entry of the anomaly report. Every anomaly refers to an
// intervention that was kept for the target year.
type Anomaly struct {
	ID           string         `json:"id" validate:"required"`
	RawStart     string         `json:"raw_start,omitempty"`
	RawEnd       string         `json:"raw_end,omitempty"`
	CorrectedEnd *time.Time     `json:"corrected_end,omitempty"`
	Duration     *time.Duration `json:"duration,omitempty"`
	Notes        []string       `json:"notes"`
}

// JoinedNotes renders the notes column of the anomaly sheet.
func (a *Anomaly) JoinedNotes() string {
	return strings.Join(a.Notes, NoteSeparator)
}
