package power

import (
	"encoding/json"
	"errors"
	"testing"
)

const queryOutput = `Power Scheme GUID: 381b4222-f694-41f0-9685-ff5bb260df2e  (Balanced)
  Subgroup GUID: fea3413e-7e05-4911-9a71-700331f1c294  (Settings belonging to no subgroup)
    Power Setting GUID: 0e796bdb-100d-47d6-a2d5-f7d2daa51f51  (Require a password on wakeup)
      Possible Setting Index: 000
      Possible Setting Friendly Name: No
      Possible Setting Index: 001
      Possible Setting Friendly Name: Yes
    Current AC Power Setting Index: 0x00000001
    Current DC Power Setting Index: 0x00000001
  Subgroup GUID: 238c9fa8-0aad-41ed-83f4-97be242c8f20  (Sleep)
    Power Setting GUID: 29f6c1db-86da-48c5-9fdb-f2b67b1f44da  (Sleep after)
      Minimum Possible Setting: 0x00000000
      Maximum Possible Setting: 0x00000e10
      Possible Settings increment: 0x00000001
      Possible Settings units: Seconds
    Current AC Power Setting Index: 0x00000384
    Current DC Power Setting Index: 0x0000012c
    Power Setting GUID: 94ac6d29-73ce-41a6-809f-6363ba21b47e  (Hibernate after)
      Minimum Possible Setting: 0x00000000
      Maximum Possible Setting: 0x00000e10
      Possible Settings increment: 0x00000001
      Possible Settings units: Seconds
    Current AC Power Setting Index: 0x00000000
    Current DC Power Setting Index: 0x00000708
    Power Setting GUID: 9d7815a6-7ee4-497e-8888-515a05f02364  (Allow hybrid sleep)
      Possible Setting Index: 000
      Possible Setting Friendly Name: Off
      Possible Setting Index: 001
      Possible Setting Friendly Name: On
    Current AC Power Setting Index: 0x00000001
    Current DC Power Setting Index: 0x00000000
`

func TestParseScheme(t *testing.T) {
	scheme, err := ParseScheme(queryOutput)
	if err != nil {
		t.Fatalf("ParseScheme failed: %v", err)
	}

	if scheme.GUID() != "381b4222-f694-41f0-9685-ff5bb260df2e" {
		t.Errorf("unexpected scheme GUID %q", scheme.GUID())
	}
	if scheme.Name() != "Balanced" {
		t.Errorf("unexpected scheme name %q", scheme.Name())
	}

	groups := scheme.SubGroups()
	if len(groups) != 2 {
		t.Fatalf("expected 2 subgroups, got %d", len(groups))
	}
	if groups[0].Name() != "Settings belonging to no subgroup" || groups[1].Name() != "Sleep" {
		t.Errorf("subgroup order not preserved: %q, %q", groups[0].Name(), groups[1].Name())
	}

	// The Sleep subgroup holds three consecutive setting blocks; each
	// must come out separately, in order, with only its own rows.
	sleep := groups[1].Settings()
	if len(sleep) != 3 {
		t.Fatalf("expected 3 settings in Sleep, got %d", len(sleep))
	}
	wantNames := []string{"Sleep after", "Hibernate after", "Allow hybrid sleep"}
	for i, s := range sleep {
		if s.Name() != wantNames[i] {
			t.Errorf("setting %d: expected %q, got %q", i, wantNames[i], s.Name())
		}
	}
	if sleep[0].ACValue() != 900 || sleep[0].DCValue() != 300 {
		t.Errorf("Sleep after values wrong: %d / %d", sleep[0].ACValue(), sleep[0].DCValue())
	}
	if sleep[1].ACValue() != 0 || sleep[1].DCValue() != 1800 {
		t.Errorf("Hibernate after values wrong: %d / %d", sleep[1].ACValue(), sleep[1].DCValue())
	}
	if sleep[2].OptionsType() != ListOptions {
		t.Errorf("Allow hybrid sleep should be a LIST setting")
	}
}

func TestParseSchemeCRLF(t *testing.T) {
	crlf := ""
	for _, r := range queryOutput {
		if r == '\n' {
			crlf += "\r\n"
		} else {
			crlf += string(r)
		}
	}

	scheme, err := ParseScheme(crlf)
	if err != nil {
		t.Fatalf("ParseScheme failed on CRLF input: %v", err)
	}
	if len(scheme.SubGroups()) != 2 {
		t.Errorf("expected 2 subgroups, got %d", len(scheme.SubGroups()))
	}
}

func TestParseSchemeNoGUID(t *testing.T) {
	_, err := ParseScheme("not a powercfg dump\nat all")
	if err == nil {
		t.Fatal("expected parse error")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
}

func TestFindSetting(t *testing.T) {
	scheme, err := ParseScheme(queryOutput)
	if err != nil {
		t.Fatal(err)
	}

	group, setting, ok := scheme.FindSetting("94AC6D29-73CE-41A6-809F-6363BA21B47E")
	if !ok {
		t.Fatal("setting not found (lookup should be case-insensitive)")
	}
	if group.Name() != "Sleep" || setting.Name() != "Hibernate after" {
		t.Errorf("found the wrong entity: %q / %q", group.Name(), setting.Name())
	}

	if _, _, ok := scheme.FindSetting("00000000-0000-0000-0000-000000000000"); ok {
		t.Error("nonexistent GUID should not be found")
	}
}

func TestSchemeRoundTrip(t *testing.T) {
	first, err := ParseScheme(queryOutput)
	if err != nil {
		t.Fatal(err)
	}

	// Mutate a couple of values, export, and restore into a second
	// freshly parsed tree.
	_, sleepAfter, _ := first.FindSetting("29f6c1db-86da-48c5-9fdb-f2b67b1f44da")
	if err := sleepAfter.SetACValue(1800); err != nil {
		t.Fatal(err)
	}
	_, hybrid, _ := first.FindSetting("9d7815a6-7ee4-497e-8888-515a05f02364")
	if err := hybrid.SetDCValue(1); err != nil {
		t.Fatal(err)
	}

	buf, err := json.Marshal(first.ToRecord())
	if err != nil {
		t.Fatal(err)
	}
	var rec SchemeRecord
	if err := json.Unmarshal(buf, &rec); err != nil {
		t.Fatal(err)
	}

	second, err := ParseScheme(queryOutput)
	if err != nil {
		t.Fatal(err)
	}
	if err := second.LoadRecord(rec); err != nil {
		t.Fatalf("LoadRecord failed: %v", err)
	}

	for _, g := range first.SubGroups() {
		for _, s := range g.Settings() {
			_, other, ok := second.FindSetting(s.GUID())
			if !ok {
				t.Fatalf("setting %s missing after restore", s.GUID())
			}
			if other.ACValue() != s.ACValue() || other.DCValue() != s.DCValue() {
				t.Errorf("setting %s: values diverged after round trip: AC %d/%d DC %d/%d",
					s.GUID(), s.ACValue(), other.ACValue(), s.DCValue(), other.DCValue())
			}
		}
	}
}

func TestSchemeLoadRecordMismatch(t *testing.T) {
	scheme, err := ParseScheme(queryOutput)
	if err != nil {
		t.Fatal(err)
	}

	rec := scheme.ToRecord()
	rec.GUID = "00000000-0000-0000-0000-000000000000"
	for guid := range rec.SubGroups {
		sub := rec.SubGroups[guid]
		for sguid := range sub.Settings {
			s := sub.Settings[sguid]
			s.ACValue = 0
			sub.Settings[sguid] = s
		}
	}

	err = scheme.LoadRecord(rec)
	if !errors.Is(err, ErrSchemeMismatch) {
		t.Fatalf("expected ErrSchemeMismatch, got %v", err)
	}

	// The tree must be untouched.
	_, sleepAfter, _ := scheme.FindSetting("29f6c1db-86da-48c5-9fdb-f2b67b1f44da")
	if sleepAfter.ACValue() != 900 {
		t.Errorf("mismatch restore mutated the tree: AC %d", sleepAfter.ACValue())
	}
}

func TestSchemeLoadRecordMissingChildren(t *testing.T) {
	scheme, err := ParseScheme(queryOutput)
	if err != nil {
		t.Fatal(err)
	}

	rec := scheme.ToRecord()
	// Drop the Sleep subgroup and one setting of the remaining one.
	delete(rec.SubGroups, "238c9fa8-0aad-41ed-83f4-97be242c8f20")
	password := rec.SubGroups["fea3413e-7e05-4911-9a71-700331f1c294"]
	pwRec := password.Settings["0e796bdb-100d-47d6-a2d5-f7d2daa51f51"]
	pwRec.ACValue = 0
	password.Settings["0e796bdb-100d-47d6-a2d5-f7d2daa51f51"] = pwRec

	if err := scheme.LoadRecord(rec); err != nil {
		t.Fatalf("partial profile should restore cleanly: %v", err)
	}

	_, pw, _ := scheme.FindSetting("0e796bdb-100d-47d6-a2d5-f7d2daa51f51")
	if pw.ACValue() != 0 {
		t.Errorf("present setting not restored: AC %d", pw.ACValue())
	}
	_, sleepAfter, _ := scheme.FindSetting("29f6c1db-86da-48c5-9fdb-f2b67b1f44da")
	if sleepAfter.ACValue() != 900 {
		t.Errorf("missing subgroup should be left untouched: AC %d", sleepAfter.ACValue())
	}
}

func TestSchemeLoadRecordBadValue(t *testing.T) {
	scheme, err := ParseScheme(queryOutput)
	if err != nil {
		t.Fatal(err)
	}

	rec := scheme.ToRecord()
	password := rec.SubGroups["fea3413e-7e05-4911-9a71-700331f1c294"]
	pwRec := password.Settings["0e796bdb-100d-47d6-a2d5-f7d2daa51f51"]
	pwRec.ACValue = 42 // not in the [0 1] list
	password.Settings["0e796bdb-100d-47d6-a2d5-f7d2daa51f51"] = pwRec

	err = scheme.LoadRecord(rec)
	var wrong *WrongSettingValueError
	if !errors.As(err, &wrong) {
		t.Fatalf("corrupted persisted value must be rejected, got %v", err)
	}
	if wrong.Value != 42 {
		t.Errorf("error should carry the rejected value, got %d", wrong.Value)
	}
}
