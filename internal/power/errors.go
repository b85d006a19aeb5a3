package power

import (
	"errors"
	"fmt"
)

// ErrSchemeMismatch is returned when a persisted profile names a scheme
// GUID different from the live scheme it is being restored into.
var ErrSchemeMismatch = errors.New("persisted scheme GUID does not match live scheme")

// WrongSettingValueError reports a value that falls outside a setting's
// option domain. The value is never applied.
type WrongSettingValueError struct {
	Setting string
	GUID    string
	Value   int64
	Options []int64
	Type    OptionsType
}

func (e *WrongSettingValueError) Error() string {
	return fmt.Sprintf("setting: %s; GUID: %s; value to set: %d; available options: %v; options type: %s",
		e.Setting, e.GUID, e.Value, e.Options, e.Type)
}

// ParseError reports a raw text block that could not be parsed into an
// entity.
type ParseError struct {
	Entity string // "scheme", "subgroup" or "setting"
	GUID   string
	Reason string
	Block  string
}

func (e *ParseError) Error() string {
	if e.GUID != "" {
		return fmt.Sprintf("failed to parse %s %s: %s", e.Entity, e.GUID, e.Reason)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Entity, e.Reason)
}
