package repair

import (
	"errors"
	"fmt"
	"strings"

	"bsplan/pkg/contracts/domain"
)

// ErrMalformedRecord marks a logical record whose first token carries no
// valid record id. Such records are dropped from output and only counted;
// they never become anomalies.
var ErrMalformedRecord = errors.New("malformed record: first token is not a record id")

// AnchorOffsets fixes the empirical distances between the date anchors and
// the fields positioned around them. The values encode the export's fixed
// column order; changing the export shape means recalibrating these, not
// touching the extraction logic.
type AnchorOffsets struct {
	// AgentsAfterDue is the agents column's distance after the due date in
	// the un-planned record shape, used when no end timestamp exists.
	AgentsAfterDue int `json:"agents_after_due"`

	// AddressBeforeDue and BuildingBeforeDue locate the address and
	// building columns counting back from the due date.
	AddressBeforeDue  int `json:"address_before_due"`
	BuildingBeforeDue int `json:"building_before_due"`

	// BuildingScanWindow bounds the backward scan from the address token
	// when the fixed building offset yielded nothing.
	BuildingScanWindow int `json:"building_scan_window"`
}

// DefaultAnchorOffsets returns the offsets calibrated against the
// BetterStreet planning export.
func DefaultAnchorOffsets() AnchorOffsets {
	return AnchorOffsets{
		AgentsAfterDue:     3,
		AddressBeforeDue:   1,
		BuildingBeforeDue:  2,
		BuildingScanWindow: 7,
	}
}

// IsValid checks if the offsets are usable.
func (o AnchorOffsets) IsValid() bool {
	return o.AgentsAfterDue > 0 && o.AddressBeforeDue > 0 &&
		o.BuildingBeforeDue > 0 && o.BuildingScanWindow > 0
}

// Extractor converts one logical record into a field mapping. Records whose
// token count equals the header's column count are mapped positionally and
// trusted; everything else goes through the anchor heuristics.
type Extractor struct {
	header    []string
	delimiter string
	offsets   AnchorOffsets
}

// NewExtractor creates an extractor for one run's header. Invalid offsets
// fall back to the defaults.
func NewExtractor(header []string, delimiter string, offsets AnchorOffsets) *Extractor {
	if !offsets.IsValid() {
		offsets = DefaultAnchorOffsets()
	}
	return &Extractor{
		header:    header,
		delimiter: delimiter,
		offsets:   offsets,
	}
}

// Extract returns the field mapping for record, tagged with how it was
// recovered. It fails with ErrMalformedRecord when the first token is not
// a record id.
func (e *Extractor) Extract(record string) (domain.Extraction, error) {
	toks := tokenize(record, e.delimiter)
	rid := normalizeToken(toks[0])
	if !isRecordID(rid) {
		return domain.Extraction{}, fmt.Errorf("%w: %q", ErrMalformedRecord, rid)
	}

	if len(toks) == len(e.header) {
		return e.extractAligned(rid, toks), nil
	}
	return e.extractHeuristic(rid, toks), nil
}

// extractAligned zips tokens positionally against the header. Equal column
// count is strong evidence the row was never broken, so nothing here is
// validated or overwritten afterwards.
func (e *Extractor) extractAligned(rid string, toks []string) domain.Extraction {
	fields := make(domain.FieldMap, len(toks))
	for i, col := range e.header {
		fields.Set(col, toks[i])
	}
	fields.Set(domain.FieldID, rid)
	return domain.Extraction{Fields: fields, Mode: domain.MappingAligned}
}

// extractHeuristic recovers fields from a broken row using the date and id
// anchors. Every miss leaves the field absent; nothing below fails.
func (e *Extractor) extractHeuristic(rid string, toks []string) domain.Extraction {
	fields := make(domain.FieldMap, len(e.header))
	fields.Set(domain.FieldID, rid)

	// The last two timestamps are the planning window. Earlier ones are
	// administrative dates.
	var dtIdxs []int
	for i, t := range toks {
		if isDateTime(t) {
			dtIdxs = append(dtIdxs, i)
		}
	}
	startIdx, endIdx := -1, -1
	if len(dtIdxs) >= 2 {
		startIdx, endIdx = dtIdxs[len(dtIdxs)-2], dtIdxs[len(dtIdxs)-1]
	}

	var dateIdxs []int
	for i, t := range toks {
		if isDateOnly(t) {
			dateIdxs = append(dateIdxs, i)
		}
	}
	createdIdx, dueIdx := -1, -1
	if startIdx >= 0 {
		var prev []int
		for _, idx := range dateIdxs {
			if idx < startIdx {
				prev = append(prev, idx)
			}
		}
		if len(prev) >= 2 {
			createdIdx, dueIdx = prev[len(prev)-2], prev[len(prev)-1]
		}
	} else if len(dateIdxs) >= 2 {
		createdIdx, dueIdx = dateIdxs[0], dateIdxs[1]
	}

	if createdIdx >= 0 {
		fields.Set(domain.FieldCreated, toks[createdIdx])

		// Category sits just before the created date unless that slot is
		// itself a date.
		if createdIdx-1 >= 1 {
			cand := toks[createdIdx-1]
			if cand != "" && !isDateOnly(cand) && !isDateTime(cand) {
				fields.Set(domain.FieldCategory, cand)
			}
		}

		// Description spans from after the id up to the category slot,
		// rejoined with the delimiter to restore embedded separators.
		if createdIdx > 2 {
			fields.Set(domain.FieldDescription, strings.Join(toks[1:createdIdx-1], e.delimiter))
		} else if len(toks) > 1 {
			fields.Set(domain.FieldDescription, toks[1])
		}
	} else if len(toks) > 1 {
		fields.Set(domain.FieldDescription, toks[1])
	}

	if dueIdx >= 0 {
		fields.Set(domain.FieldDue, toks[dueIdx])
	}
	if startIdx >= 0 {
		fields.Set(domain.FieldStart, toks[startIdx])
	}
	if endIdx >= 0 {
		fields.Set(domain.FieldEnd, toks[endIdx])
	}

	// Agents follow the end timestamp directly; without one they sit a
	// fixed distance after the due date.
	agentsIdx := -1
	switch {
	case endIdx >= 0 && endIdx+1 < len(toks):
		agentsIdx = endIdx + 1
	case dueIdx >= 0 && dueIdx+e.offsets.AgentsAfterDue < len(toks):
		agentsIdx = dueIdx + e.offsets.AgentsAfterDue
	}
	if agentsIdx >= 0 {
		fields.Set(domain.FieldAgents, toks[agentsIdx])
	}

	// Address and building sit just before the due date when the row kept
	// its shape there.
	if dueIdx >= 0 {
		if i := dueIdx - e.offsets.AddressBeforeDue; i >= 0 && i < len(toks) {
			if cand := toks[i]; cand != "" && looksLikeAddress(cand) {
				fields.Set(domain.FieldAddress, cand)
			}
		}
		if i := dueIdx - e.offsets.BuildingBeforeDue; i >= 0 && i < len(toks) {
			cand := toks[i]
			if cand != "" && !isRecordID(cand) && !looksLikeAddress(cand) &&
				!isDateOnly(cand) && !isDateTime(cand) {
				fields.Set(domain.FieldBuilding, cand)
			}
		}
	}

	if _, ok := fields.Get(domain.FieldAddress); !ok {
		for _, tok := range toks {
			if looksLikeAddress(tok) {
				fields.Set(domain.FieldAddress, tok)
				break
			}
		}
	}

	// Building fallback: the nearest plain-text token before the address.
	if _, ok := fields.Get(domain.FieldBuilding); !ok {
		if addr, ok := fields.Get(domain.FieldAddress); ok {
			if pos := indexOfToken(toks, addr); pos >= 0 {
				desc, _ := fields.Get(domain.FieldDescription)
				for j := pos - 1; j >= 0 && j >= pos-e.offsets.BuildingScanWindow; j-- {
					cand := toks[j]
					if cand == "" || isRecordID(cand) || looksLikeAddress(cand) ||
						isDateOnly(cand) || isDateTime(cand) {
						continue
					}
					if desc != "" && cand == desc {
						continue
					}
					fields.Set(domain.FieldBuilding, cand)
					break
				}
			}
		}
	}

	// Instruction: the last qualifying text token after the agents slot.
	if agentsIdx >= 0 && agentsIdx+1 < len(toks) {
		desc, _ := fields.Get(domain.FieldDescription)
		for j := len(toks) - 1; j > agentsIdx; j-- {
			cand := toks[j]
			if cand == "" || isRecordID(cand) || looksLikeAddress(cand) ||
				isDateOnly(cand) || isDateTime(cand) {
				continue
			}
			if desc != "" && cand == desc {
				continue
			}
			fields.Set(domain.FieldInstruction, cand)
			break
		}
	}

	return domain.Extraction{Fields: fields, Mode: domain.MappingHeuristic}
}

// indexOfToken returns the first index of want among toks, or -1.
func indexOfToken(toks []string, want string) int {
	for i, t := range toks {
		if t == want {
			return i
		}
	}
	return -1
}
