package power

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/the-hwk/powercfg/internal/logging"
)

// OptionsType classifies a setting's option domain.
type OptionsType int

const (
	// RangeOptions means the setting accepts any value inside the
	// inclusive interval [options[0], options[1]].
	RangeOptions OptionsType = 0
	// ListOptions means the setting accepts only the discrete values
	// listed in options.
	ListOptions OptionsType = 1
)

func (t OptionsType) String() string {
	if t == RangeOptions {
		return "RANGE"
	}
	return "LIST"
}

// DocEntry is one descriptive sub-row of a setting, e.g.
// "Possible Setting Friendly Name: Yes". Hexadecimal values are
// normalized to their decimal string form at parse time.
type DocEntry struct {
	Description string `json:"description"`
	Value       string `json:"value"`
}

// Setting is the leaf of the scheme tree. It owns the option-domain
// inference and the validating mutation API; only its AC/DC values ever
// change after parsing.
type Setting struct {
	header
	doc []DocEntry

	acValue    int64
	oldACValue int64
	dcValue    int64
	oldDCValue int64

	optionsType OptionsType
	options     []int64
}

// newSetting parses one setting block: the header row followed by option
// documentation rows (6-space indent) and the two current AC/DC index
// rows (4-space indent).
func newSetting(block string) (*Setting, error) {
	s := &Setting{}
	rows := strings.Split(block, "\n")
	s.parseHeader(rows[0])
	if err := s.parseBody(rows[1:]); err != nil {
		return nil, err
	}
	if err := s.parseOptions(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Setting) parseBody(rows []string) error {
	valueRows := 0
	for _, row := range rows {
		switch {
		// Documentation row: 6-space indent, no GUID of its own.
		case matchIndent(row, indentDoc) && !guidPattern.MatchString(row):
			desc, raw, ok := strings.Cut(strings.TrimSpace(row), ":")
			if !ok {
				return s.parseErr(rows, fmt.Sprintf("option row %q has no colon", strings.TrimSpace(row)))
			}
			value, err := normalizeDocValue(strings.TrimSpace(raw))
			if err != nil {
				return s.parseErr(rows, err.Error())
			}
			s.doc = append(s.doc, DocEntry{
				Description: strings.TrimSpace(desc),
				Value:       value,
			})

		// Current AC/DC index row: 4-space indent. First one is AC,
		// second is DC, extras are ignored.
		case matchIndent(row, indentSetting):
			_, raw, ok := strings.Cut(row, ":")
			if !ok {
				return s.parseErr(rows, fmt.Sprintf("value row %q has no colon", strings.TrimSpace(row)))
			}
			value, err := parseHex(strings.TrimSpace(raw))
			if err != nil {
				return s.parseErr(rows, fmt.Sprintf("value row %q: %v", strings.TrimSpace(row), err))
			}
			switch valueRows {
			case 0:
				s.acValue, s.oldACValue = value, value
			case 1:
				s.dcValue, s.oldDCValue = value, value
			default:
				logging.Debug("ignoring extra value row", "setting", s.guid, "row", strings.TrimSpace(row))
			}
			valueRows++
		}
	}

	if valueRows < 2 {
		return s.parseErr(rows, fmt.Sprintf("expected AC and DC value rows, found %d", valueRows))
	}
	return nil
}

// parseOptions infers the option domain from the first two documentation
// rows: two purely numeric values mean an inclusive range (bounds kept in
// encounter order), anything else means a discrete list of every numeric
// documentation value.
func (s *Setting) parseOptions() error {
	if len(s.doc) < 2 {
		return s.parseErr(nil, fmt.Sprintf("expected at least two option rows, found %d", len(s.doc)))
	}

	if isNumeric(s.doc[0].Value) && isNumeric(s.doc[1].Value) {
		s.optionsType = RangeOptions
		lo, err := strconv.ParseInt(s.doc[0].Value, 10, 64)
		if err != nil {
			return s.parseErr(nil, fmt.Sprintf("range bound %q: %v", s.doc[0].Value, err))
		}
		hi, err := strconv.ParseInt(s.doc[1].Value, 10, 64)
		if err != nil {
			return s.parseErr(nil, fmt.Sprintf("range bound %q: %v", s.doc[1].Value, err))
		}
		s.options = []int64{lo, hi}
		return nil
	}

	s.optionsType = ListOptions
	s.options = []int64{}
	for _, entry := range s.doc {
		if isNumeric(entry.Value) {
			v, err := strconv.ParseInt(entry.Value, 10, 64)
			if err != nil {
				return s.parseErr(nil, fmt.Sprintf("option value %q: %v", entry.Value, err))
			}
			s.options = append(s.options, v)
		}
	}
	return nil
}

func (s *Setting) parseErr(rows []string, reason string) *ParseError {
	return &ParseError{
		Entity: "setting",
		GUID:   s.guid,
		Reason: reason,
		Block:  joinBlock(rows),
	}
}

// checkValue reports whether v is inside the setting's option domain.
func (s *Setting) checkValue(v int64) bool {
	if s.optionsType == RangeOptions {
		return v >= s.options[0] && v <= s.options[1]
	}
	for _, opt := range s.options {
		if opt == v {
			return true
		}
	}
	return false
}

func (s *Setting) setValue(v int64, ac bool) error {
	if !s.checkValue(v) {
		return &WrongSettingValueError{
			Setting: s.name,
			GUID:    s.guid,
			Value:   v,
			Options: s.Options(),
			Type:    s.optionsType,
		}
	}
	if ac {
		s.acValue = v
	} else {
		s.dcValue = v
	}
	return nil
}

// SetACValue validates v against the option domain and updates the AC
// value. The baseline is left untouched so the change stays detectable.
func (s *Setting) SetACValue(v int64) error {
	return s.setValue(v, true)
}

// SetDCValue validates v against the option domain and updates the DC
// value. The baseline is left untouched so the change stays detectable.
func (s *Setting) SetDCValue(v int64) error {
	return s.setValue(v, false)
}

// ACValue returns the current AC value.
func (s *Setting) ACValue() int64 { return s.acValue }

// DCValue returns the current DC value.
func (s *Setting) DCValue() int64 { return s.dcValue }

// ACValueHex returns the current AC value as a 0x-prefixed hex string,
// the form powercfg expects on the command line.
func (s *Setting) ACValueHex() string { return fmt.Sprintf("%#x", s.acValue) }

// DCValueHex returns the current DC value as a 0x-prefixed hex string.
func (s *Setting) DCValueHex() string { return fmt.Sprintf("%#x", s.dcValue) }

// Doc returns the setting's documentation rows in encounter order.
func (s *Setting) Doc() []DocEntry { return s.doc }

// OptionsType returns the inferred option domain kind.
func (s *Setting) OptionsType() OptionsType { return s.optionsType }

// Options returns a copy of the option domain values: [min, max] for a
// range, the allowed set for a list.
func (s *Setting) Options() []int64 {
	out := make([]int64, len(s.options))
	copy(out, s.options)
	return out
}

// IsACChanged reports whether the AC value differs from the baseline.
func (s *Setting) IsACChanged() bool { return s.acValue != s.oldACValue }

// IsDCChanged reports whether the DC value differs from the baseline.
func (s *Setting) IsDCChanged() bool { return s.dcValue != s.oldDCValue }

// UpdateOldValues commits the current values as the new baseline. Call
// after the values have been applied externally.
func (s *Setting) UpdateOldValues() {
	s.oldACValue = s.acValue
	s.oldDCValue = s.dcValue
}

func (s *Setting) toRecord() SettingRecord {
	return SettingRecord{
		Name:        s.namePtr(),
		OptionsType: s.optionsType,
		Options:     s.Options(),
		ACValue:     s.acValue,
		DCValue:     s.dcValue,
		Doc:         s.doc,
	}
}

// loadRecord applies persisted AC/DC values through the validating
// setters, so a corrupted record is rejected the same way a bad live
// mutation would be.
func (s *Setting) loadRecord(rec SettingRecord) error {
	if err := s.SetACValue(rec.ACValue); err != nil {
		return err
	}
	return s.SetDCValue(rec.DCValue)
}

// normalizeDocValue converts a 0x-prefixed hexadecimal value to its
// decimal string form; anything else passes through unchanged.
func normalizeDocValue(v string) (string, error) {
	if !strings.HasPrefix(v, "0x") {
		return v, nil
	}
	n, err := strconv.ParseUint(v[2:], 16, 64)
	if err != nil {
		return "", fmt.Errorf("bad hexadecimal value %q: %w", v, err)
	}
	return strconv.FormatUint(n, 10), nil
}

// parseHex parses a base-16 integer with or without a 0x prefix.
func parseHex(v string) (int64, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(v), "0x")
	n, err := strconv.ParseUint(trimmed, 16, 64)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

// isNumeric reports whether s is a non-empty string of ASCII digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
