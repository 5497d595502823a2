package domain

import (
	"strings"
	"time"
)

// Canonical field names used across the pipeline. These match the column
// headers of the BetterStreet export and are a stable contract: extractor
// output, normalizer input and empty-field statistics are all keyed by them.
const (
	FieldID          = "ID"
	FieldDescription = "Description"
	FieldCategory    = "Catégorie"
	FieldBuilding    = "Bâtiment/Équipement"
	FieldAddress     = "Adresse"
	FieldCreated     = "Créé le"
	FieldDue         = "Échéance"
	FieldStart       = "Début planification"
	FieldEnd         = "Fin planification"
	FieldAgents      = "Agents/Équipes"
	FieldInstruction = "Consigne"
)

// CanonicalFields lists every canonical field name in the column order the
// export lays them out. The heuristic anchor offsets encode this order.
func CanonicalFields() []string {
	return []string{
		FieldID,
		FieldDescription,
		FieldCategory,
		FieldCreated,
		FieldBuilding,
		FieldAddress,
		FieldDue,
		FieldStart,
		FieldEnd,
		FieldAgents,
		FieldInstruction,
	}
}

// RecordIDPrefix is the marker that opens every logical record in the
// export. Matching is case-insensitive.
const RecordIDPrefix = "BE-"

// HasRecordIDPrefix reports whether s begins a BetterStreet record ID.
func HasRecordIDPrefix(s string) bool {
	return len(s) >= len(RecordIDPrefix) &&
		strings.EqualFold(s[:len(RecordIDPrefix)], RecordIDPrefix)
}

// FieldMap holds the extracted fields of one record, keyed by canonical
// field name. A missing key means the field is absent; empty strings are
// never stored.
type FieldMap map[string]string

// Get returns the field value and whether it is present.
func (m FieldMap) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Set stores a field value, dropping empty and whitespace-only values so
// that absence stays observable as a missing key.
func (m FieldMap) Set(name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	m[name] = value
}

// MappingMode tells how a record's fields were recovered.
type MappingMode string

const (
	// MappingAligned means the record had exactly as many tokens as the
	// header has columns and was mapped positionally. Trusted.
	MappingAligned MappingMode = "aligned"

	// MappingHeuristic means the record was broken and its fields were
	// recovered from structural anchors. Best effort.
	MappingHeuristic MappingMode = "heuristic"
)

// Extraction is the output of the field extractor for one logical record.
type Extraction struct {
	Fields FieldMap    `json:"fields"`
	Mode   MappingMode `json:"mode" validate:"required,oneof=aligned heuristic"`
}

// Intervention is a fully normalized planning record.
type Intervention struct {
	ID          string `json:"id" validate:"required"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Building    string `json:"building,omitempty"`
	Address     string `json:"address,omitempty"`
	Instruction string `json:"instruction,omitempty"`
	Agents      string `json:"agents,omitempty"`

	// Raw planning strings as found in the export, kept for the anomaly
	// report even when parsing fails.
	RawStart string `json:"raw_start,omitempty"`
	RawEnd   string `json:"raw_end,omitempty"`

	// Created is the creation date (date only). Due stays raw: it is an
	// anchor, not a reporting field.
	Created *time.Time `json:"created,omitempty"`
	Due     string     `json:"due,omitempty"`

	// Start and End are the parsed planning bounds. End is post-correction
	// when the 12-hour shift applied. Nil means absent or unparseable.
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`

	// Duration is End minus Start once both are known. It can be negative
	// when correction was not enough.
	Duration *time.Duration `json:"duration,omitempty"`

	Mapping MappingMode `json:"mapping"`

	// Notes records every quality incident hit while normalizing, in the
	// order it was detected.
	Notes []string `json:"notes,omitempty"`
}

// HasNotes reports whether the record carries at least one quality note.
func (iv *Intervention) HasNotes() bool {
	return len(iv.Notes) > 0
}
