package power

// Persisted profile schema. Each level keys its children by GUID; the
// restore path only consumes ac_value/dc_value, everything else is
// informational.

// SettingRecord is the persisted form of a Setting.
type SettingRecord struct {
	Name        *string     `json:"name"`
	OptionsType OptionsType `json:"options_type"`
	Options     []int64     `json:"options"`
	ACValue     int64       `json:"ac_value"`
	DCValue     int64       `json:"dc_value"`
	Doc         []DocEntry  `json:"doc"`
}

// SubGroupRecord is the persisted form of a SubGroup.
type SubGroupRecord struct {
	Name     *string                  `json:"name"`
	Settings map[string]SettingRecord `json:"settings"`
}

// SchemeRecord is the persisted form of a Scheme, the root of a profile
// document.
type SchemeRecord struct {
	GUID      string                    `json:"guid"`
	Name      *string                   `json:"name"`
	SubGroups map[string]SubGroupRecord `json:"subgroups"`
}
