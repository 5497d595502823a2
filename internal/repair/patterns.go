package repair

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"bsplan/pkg/contracts/domain"
)

// Token classifiers for the anchor heuristics. Date and id tokens are the
// only reliably shaped fields in a broken row; everything else is located
// relative to them.
var (
	// dateTimePattern accepts day-first dates with 2 or 4 digit years and
	// ISO year-first dates, followed by a clock time with optional seconds.
	dateTimePattern = regexp.MustCompile(`^(?:\d{2}[-/]\d{2}[-/]\d{2,4}|\d{4}[-/]\d{2}[-/]\d{2})\s+\d{2}:\d{2}(?::\d{2})?$`)

	// dateOnlyPattern accepts day-first dates only. Created and due dates
	// are entered day-first in every observed export.
	dateOnlyPattern = regexp.MustCompile(`^\d{2}[-/]\d{2}[-/]\d{2,4}$`)

	// streetPattern matches the street-type keywords of Belgian French
	// addresses as whole words.
	streetPattern = regexp.MustCompile(`(?i)\b(?:rue|avenue|av\.?|chaussée|ch\.?|place|impasse|allée|chemin|route|sentier|clos|quai|boulevard|bd\.?)\b`)
)

// isDateTime reports whether tok is shaped like a full planning timestamp.
func isDateTime(tok string) bool {
	return tok != "" && dateTimePattern.MatchString(tok)
}

// isDateOnly reports whether tok is shaped like a bare date.
func isDateOnly(tok string) bool {
	return tok != "" && dateOnlyPattern.MatchString(tok)
}

// isRecordID reports whether tok opens a BetterStreet record. The check is
// a case-insensitive prefix test, deliberately broader than the strict
// BE-NNN- shape so that near-miss ids still anchor instead of leaking into
// text fields.
func isRecordID(tok string) bool {
	return domain.HasRecordIDPrefix(strings.TrimSpace(tok))
}

// looksLikeAddress applies a strict shape test meant to avoid false
// positives: a street-type keyword plus at least one letter and one digit,
// at least 10 characters, and not a record id.
func looksLikeAddress(tok string) bool {
	t := strings.TrimSpace(tok)
	if utf8.RuneCountInString(t) < 10 {
		return false
	}
	if isRecordID(t) {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range t {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	return hasLetter && hasDigit && streetPattern.MatchString(t)
}

// normalizeToken strips BOM artifacts, surrounding whitespace and stray
// quoting from a token before id detection. Exports opened and re-saved in
// spreadsheet tools grow these around the first field.
func normalizeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "\uFEFF", "")
	tok = strings.TrimSpace(tok)
	tok = strings.Trim(tok, `"`)
	tok = strings.Trim(tok, "'")
	return tok
}

// tokenize splits a logical record on the delimiter and trims each token.
func tokenize(record, delimiter string) []string {
	parts := strings.Split(record, delimiter)
	toks := make([]string, len(parts))
	for i, p := range parts {
		toks[i] = strings.TrimSpace(p)
	}
	return toks
}
