package repair

import (
	"strings"
)

// Reassemble merges broken physical lines back into logical records. The
// first non-blank line is the header and is never merged. Every later line
// whose first token carries the record id prefix opens a new record; any
// other non-blank line is glued to the currently open record with a single
// space, restoring text that was torn by a literal newline. Lines arriving
// before the first record open are discarded.
//
// The returned slice starts with the header. Empty input yields nil.
func Reassemble(lines []string, delimiter string) []string {
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i >= len(lines) {
		return nil
	}

	header := strings.TrimRight(lines[i], "\r\n")
	rebuilt := []string{header}

	var current string
	open := false
	for _, raw := range lines[i+1:] {
		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) == "" {
			// Whitespace-only lines are never continuations.
			continue
		}

		first := line
		if idx := strings.Index(line, delimiter); idx >= 0 {
			first = line[:idx]
		}

		if isRecordID(normalizeToken(first)) {
			if open {
				rebuilt = append(rebuilt, current)
			}
			current = line
			open = true
			continue
		}

		if open {
			current += " " + line
		}
	}
	if open {
		rebuilt = append(rebuilt, current)
	}

	return rebuilt
}
