package power

import (
	"errors"
	"testing"
)

const rangeSettingBlock = `    Power Setting GUID: 29f6c1db-86da-48c5-9fdb-f2b67b1f44da  (Sleep after)
      Minimum Possible Setting: 0x00000000
      Maximum Possible Setting: 0x00000e10
      Possible Settings increment: 0x00000001
      Possible Settings units: Seconds
    Current AC Power Setting Index: 0x00000384
    Current DC Power Setting Index: 0x0000012c`

const listSettingBlock = `    Power Setting GUID: 0e796bdb-100d-47d6-a2d5-f7d2daa51f51  (Require a password on wakeup)
      Possible Setting Index: 000
      Possible Setting Friendly Name: No
      Possible Setting Index: 001
      Possible Setting Friendly Name: Yes
    Current AC Power Setting Index: 0x00000001
    Current DC Power Setting Index: 0x00000001`

func TestSettingParseRange(t *testing.T) {
	s, err := newSetting(rangeSettingBlock)
	if err != nil {
		t.Fatalf("newSetting failed: %v", err)
	}

	if s.GUID() != "29f6c1db-86da-48c5-9fdb-f2b67b1f44da" {
		t.Errorf("unexpected GUID %q", s.GUID())
	}
	if s.Name() != "Sleep after" {
		t.Errorf("unexpected name %q", s.Name())
	}
	if s.OptionsType() != RangeOptions {
		t.Fatalf("expected RANGE options, got %s", s.OptionsType())
	}
	opts := s.Options()
	if len(opts) != 2 || opts[0] != 0 || opts[1] != 3600 {
		t.Errorf("expected options [0 3600], got %v", opts)
	}
	if s.ACValue() != 900 || s.DCValue() != 300 {
		t.Errorf("expected AC 900 / DC 300, got %d / %d", s.ACValue(), s.DCValue())
	}

	// Hex doc values are normalized to decimal strings at parse time.
	doc := s.Doc()
	if len(doc) != 4 {
		t.Fatalf("expected 4 doc entries, got %d", len(doc))
	}
	if doc[0].Value != "0" || doc[1].Value != "3600" || doc[2].Value != "1" {
		t.Errorf("doc values not normalized: %v", doc)
	}
	if doc[3].Value != "Seconds" {
		t.Errorf("non-hex doc value should pass through, got %q", doc[3].Value)
	}
	if doc[0].Description != "Minimum Possible Setting" {
		t.Errorf("unexpected description %q", doc[0].Description)
	}
}

func TestSettingParseList(t *testing.T) {
	s, err := newSetting(listSettingBlock)
	if err != nil {
		t.Fatalf("newSetting failed: %v", err)
	}

	if s.OptionsType() != ListOptions {
		t.Fatalf("expected LIST options, got %s", s.OptionsType())
	}
	opts := s.Options()
	if len(opts) != 2 || opts[0] != 0 || opts[1] != 1 {
		t.Errorf("expected options [0 1], got %v", opts)
	}
	if s.ACValue() != 1 || s.DCValue() != 1 {
		t.Errorf("expected AC 1 / DC 1, got %d / %d", s.ACValue(), s.DCValue())
	}
}

func TestSettingSetValueRange(t *testing.T) {
	s, err := newSetting(rangeSettingBlock)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetACValue(1800); err != nil {
		t.Fatalf("in-range value rejected: %v", err)
	}
	if s.ACValue() != 1800 {
		t.Errorf("expected AC 1800, got %d", s.ACValue())
	}
	if !s.IsACChanged() {
		t.Error("AC should be flagged as changed")
	}
	if s.IsDCChanged() {
		t.Error("DC should not be flagged as changed")
	}

	err = s.SetACValue(4000)
	if err == nil {
		t.Fatal("out-of-range value accepted")
	}
	var wrong *WrongSettingValueError
	if !errors.As(err, &wrong) {
		t.Fatalf("expected WrongSettingValueError, got %T", err)
	}
	if wrong.Value != 4000 || wrong.Type != RangeOptions || wrong.GUID != s.GUID() || wrong.Setting != "Sleep after" {
		t.Errorf("error carries wrong details: %+v", wrong)
	}
	if len(wrong.Options) != 2 {
		t.Errorf("error should carry the full option list, got %v", wrong.Options)
	}
	if s.ACValue() != 1800 {
		t.Errorf("rejected value must leave the setting unchanged, got %d", s.ACValue())
	}
}

func TestSettingSetValueList(t *testing.T) {
	s, err := newSetting(listSettingBlock)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetDCValue(0); err != nil {
		t.Fatalf("listed value rejected: %v", err)
	}
	if err := s.SetDCValue(2); err == nil {
		t.Fatal("unlisted value accepted")
	}
	if s.DCValue() != 0 {
		t.Errorf("rejected value must leave the setting unchanged, got %d", s.DCValue())
	}
}

func TestSettingChangeTracking(t *testing.T) {
	s, err := newSetting(rangeSettingBlock)
	if err != nil {
		t.Fatal(err)
	}

	if s.IsACChanged() || s.IsDCChanged() {
		t.Error("freshly parsed setting must not report changes")
	}

	if err := s.SetACValue(60); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDCValue(120); err != nil {
		t.Fatal(err)
	}
	if !s.IsACChanged() || !s.IsDCChanged() {
		t.Error("both values should be flagged as changed")
	}

	s.UpdateOldValues()
	if s.IsACChanged() || s.IsDCChanged() {
		t.Error("no changes should be reported after committing the baseline")
	}
}

func TestSettingHexValues(t *testing.T) {
	block := `    Power Setting GUID: 9d7815a6-7ee4-497e-8888-515a05f02364  (Allow hybrid sleep)
      Possible Setting Index: 000
      Possible Setting Friendly Name: Off
      Possible Setting Index: 003
      Possible Setting Friendly Name: On
    Current AC Power Setting Index: 0x3
    Current DC Power Setting Index: 0x0`

	s, err := newSetting(block)
	if err != nil {
		t.Fatal(err)
	}
	if s.ACValue() != 3 {
		t.Errorf("0x3 should parse to 3, got %d", s.ACValue())
	}
	if s.ACValueHex() != "0x3" {
		t.Errorf("expected hex form 0x3, got %q", s.ACValueHex())
	}
	if s.DCValueHex() != "0x0" {
		t.Errorf("expected hex form 0x0, got %q", s.DCValueHex())
	}
}

func TestSettingRangeBoundsOrderPreserved(t *testing.T) {
	// Bounds are kept as encountered, even when authored in descending
	// order. No normalization happens.
	block := `    Power Setting GUID: 29f6c1db-86da-48c5-9fdb-f2b67b1f44da  (Oddly authored)
      Maximum Possible Setting: 0x00000064
      Minimum Possible Setting: 0x00000000
    Current AC Power Setting Index: 0x00000001
    Current DC Power Setting Index: 0x00000001`

	s, err := newSetting(block)
	if err != nil {
		t.Fatal(err)
	}
	opts := s.Options()
	if opts[0] != 100 || opts[1] != 0 {
		t.Errorf("expected bounds [100 0] in encounter order, got %v", opts)
	}
}

func TestSettingExtraValueRowsIgnored(t *testing.T) {
	block := rangeSettingBlock + "\n    Current AC Power Setting Index: 0x00000063"

	s, err := newSetting(block)
	if err != nil {
		t.Fatalf("extra value row should be tolerated: %v", err)
	}
	if s.ACValue() != 900 || s.DCValue() != 300 {
		t.Errorf("extra value row leaked into AC/DC: %d / %d", s.ACValue(), s.DCValue())
	}
}

func TestSettingParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{
			"missing DC row",
			`    Power Setting GUID: 29f6c1db-86da-48c5-9fdb-f2b67b1f44da  (Broken)
      Minimum Possible Setting: 0x00000000
      Maximum Possible Setting: 0x00000e10
    Current AC Power Setting Index: 0x00000384`,
		},
		{
			"single doc row",
			`    Power Setting GUID: 29f6c1db-86da-48c5-9fdb-f2b67b1f44da  (Broken)
      Minimum Possible Setting: 0x00000000
    Current AC Power Setting Index: 0x00000384
    Current DC Power Setting Index: 0x0000012c`,
		},
		{
			"unparseable value row",
			`    Power Setting GUID: 29f6c1db-86da-48c5-9fdb-f2b67b1f44da  (Broken)
      Minimum Possible Setting: 0x00000000
      Maximum Possible Setting: 0x00000e10
    Current AC Power Setting Index: 0xZZZZ
    Current DC Power Setting Index: 0x0000012c`,
		},
		{
			// 0xffffffffffffffff normalizes to a 20-digit decimal that
			// overflows int64; the bound must not silently saturate.
			"range bound overflow",
			`    Power Setting GUID: 29f6c1db-86da-48c5-9fdb-f2b67b1f44da  (Broken)
      Minimum Possible Setting: 0x00000000
      Maximum Possible Setting: 0xffffffffffffffff
    Current AC Power Setting Index: 0x00000384
    Current DC Power Setting Index: 0x0000012c`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newSetting(tt.block)
			if err == nil {
				t.Fatal("expected parse error")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %T", err)
			}
			if parseErr.Entity != "setting" || parseErr.GUID == "" {
				t.Errorf("error should name the offending setting: %+v", parseErr)
			}
		})
	}
}

func TestNormalizeDocValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0x00000000", "0"},
		{"0x00000e10", "3600"},
		{"0x3", "3"},
		{"000", "000"},
		{"Seconds", "Seconds"},
		{"%", "%"},
	}

	for _, tt := range tests {
		got, err := normalizeDocValue(tt.in)
		if err != nil {
			t.Errorf("normalizeDocValue(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("normalizeDocValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := normalizeDocValue("0xnope"); err == nil {
		t.Error("bad hex value should fail")
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"000", true},
		{"3600", true},
		{"", false},
		{"-1", false},
		{"12a", false},
		{"Seconds", false},
	}

	for _, tt := range tests {
		if got := isNumeric(tt.in); got != tt.want {
			t.Errorf("isNumeric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
