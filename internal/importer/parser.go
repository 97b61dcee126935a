// Package importer parses pipe-delimited bulk payloads into candidate pairs.
package importer

import "strings"

// Candidate is one parsed line of an import payload.
type Candidate struct {
	French string
	Wolof  string
}

// Parse splits a newline-delimited payload into candidates. The first line
// is a header and is always discarded. Each remaining line is split on "|":
// field 0 is the Wolof text, field 1 the French text, both trimmed. Lines
// with fewer than two fields or with an empty field are skipped silently.
func Parse(raw string) []Candidate {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var out []Candidate
	for i, line := range strings.Split(raw, "\n") {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			continue
		}
		wolof := strings.TrimSpace(parts[0])
		french := strings.TrimSpace(parts[1])
		if wolof == "" || french == "" {
			continue
		}
		out = append(out, Candidate{French: french, Wolof: wolof})
	}
	return out
}
