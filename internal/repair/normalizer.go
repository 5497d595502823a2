package repair

import (
	"bsplan/pkg/contracts/domain"
)

// Normalizer turns an extracted field map into a normalized intervention,
// parsing the temporal fields and collecting quality notes along the way.
type Normalizer struct {
	policy CorrectionPolicy
}

// NewNormalizer creates a normalizer. An invalid policy falls back to the
// default one.
func NewNormalizer(policy CorrectionPolicy) *Normalizer {
	if !policy.IsValid() {
		policy = DefaultCorrectionPolicy()
	}
	return &Normalizer{policy: policy}
}

// Normalize builds the intervention for one extraction. It never fails:
// parse errors and absent fields degrade to notes on the record.
func (n *Normalizer) Normalize(ex domain.Extraction) domain.Intervention {
	fields := ex.Fields

	iv := domain.Intervention{
		ID:          fields[domain.FieldID],
		Description: fields[domain.FieldDescription],
		Category:    fields[domain.FieldCategory],
		Building:    fields[domain.FieldBuilding],
		Address:     fields[domain.FieldAddress],
		Instruction: fields[domain.FieldInstruction],
		Agents:      fields[domain.FieldAgents],
		RawStart:    fields[domain.FieldStart],
		RawEnd:      fields[domain.FieldEnd],
		Due:         fields[domain.FieldDue],
		Mapping:     ex.Mode,
	}

	var notes []string

	if iv.RawStart != "" {
		if t, err := ParseDateTime(iv.RawStart); err != nil {
			notes = append(notes, domain.NoteStartParseError(err.Error()))
		} else {
			iv.Start = &t
		}
	}
	if iv.RawEnd != "" {
		if t, err := ParseDateTime(iv.RawEnd); err != nil {
			notes = append(notes, domain.NoteEndParseError(err.Error()))
		} else {
			iv.End = &t
		}
	}
	if raw, ok := fields.Get(domain.FieldCreated); ok {
		if t, ok := ParseDate(raw); ok {
			iv.Created = &t
		}
	}

	if iv.Start == nil {
		notes = append(notes, domain.NoteStartMissing)
	}
	if iv.End == nil {
		notes = append(notes, domain.NoteEndMissing)
	}
	if iv.Agents == "" {
		notes = append(notes, domain.NoteAgentsMissing)
	}

	if iv.Start != nil && iv.End != nil {
		if corrected, shifted := n.policy.Apply(*iv.Start, *iv.End); shifted {
			iv.End = &corrected
			notes = append(notes, domain.NoteEndShifted)
		}

		d := iv.End.Sub(*iv.Start)
		iv.Duration = &d
		if d < 0 {
			notes = append(notes, domain.NoteNegativeDuration)
		}
	}

	iv.Notes = notes
	return iv
}
