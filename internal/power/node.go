// Package power parses `powercfg /query` output into a scheme tree,
// tracks value changes against a committed baseline, and re-applies only
// the changed values through the powercfg utility.
//
// The text format is indentation-delimited: the scheme header sits at
// column 0, subgroup headers at 2 spaces, setting headers and the
// current AC/DC index rows at 4 spaces, and the descriptive option rows
// at 6 spaces. Header rows carry a GUID and, usually, a parenthesized
// display name.
package power

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Fixed indentation levels used by powercfg output.
const (
	indentSubGroup = 2
	indentSetting  = 4
	indentDoc      = 6
)

var (
	guidPattern = regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`)
	namePattern = regexp.MustCompile(`\(([^)]+)\)`)
)

// Node is the shared capability of the three tree levels.
type Node interface {
	GUID() string
	Name() string
}

// extractGUID returns the first canonical GUID found in line, normalized
// to its lowercase hyphenated form.
func extractGUID(line string) (string, bool) {
	m := guidPattern.FindString(line)
	if m == "" {
		return "", false
	}
	id, err := uuid.Parse(m)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// extractName returns the content of the first parenthesis group in line.
func extractName(line string) (string, bool) {
	m := namePattern.FindStringSubmatch(line)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// matchIndent reports whether line starts with exactly `spaces` leading
// spaces followed by a non-space character.
func matchIndent(line string, spaces int) bool {
	if len(line) <= spaces {
		return false
	}
	for i := 0; i < spaces; i++ {
		if line[i] != ' ' {
			return false
		}
	}
	return line[spaces] != ' '
}

// header holds the GUID and display name parsed from a block's first row.
// It is embedded by Scheme, SubGroup and Setting.
type header struct {
	guid string
	name string
}

func (h *header) parseHeader(line string) {
	h.guid, _ = extractGUID(line)
	h.name, _ = extractName(line)
}

// GUID returns the entity's GUID, or "" if the header carried none.
func (h *header) GUID() string { return h.guid }

// Name returns the entity's display name, or "" if the header carried none.
func (h *header) Name() string { return h.name }

// namePtr returns the display name as a nullable for persistence.
func (h *header) namePtr() *string {
	if h.name == "" {
		return nil
	}
	n := h.name
	return &n
}

// splitBlocks splits rows into one block per child entity. A row is a
// delimiter iff it sits at exactly indent spaces and carries a GUID; each
// delimiter closes the open block (if any) and opens the next one. The
// final open block runs to the end of rows.
func splitBlocks(rows []string, indent int) [][]string {
	var blocks [][]string
	start := -1
	for i, row := range rows {
		if !matchIndent(row, indent) || !guidPattern.MatchString(row) {
			continue
		}
		if start >= 0 {
			blocks = append(blocks, rows[start:i])
		}
		start = i
	}
	if start >= 0 {
		blocks = append(blocks, rows[start:])
	}
	return blocks
}

// joinBlock reassembles a block's rows for error reporting.
func joinBlock(rows []string) string {
	return strings.Join(rows, "\n")
}

// splitRows splits raw command output into rows, tolerating CRLF line
// endings (powercfg emits them).
func splitRows(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
