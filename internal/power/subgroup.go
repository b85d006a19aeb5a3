package power

// SubGroup is the middle level of the scheme tree: an ordered collection
// of Settings with no mutable state of its own.
type SubGroup struct {
	header
	settings []*Setting
}

func newSubGroup(block string) (*SubGroup, error) {
	g := &SubGroup{}
	rows := splitRows(block)
	g.parseHeader(rows[0])
	if err := g.parseBody(rows[1:]); err != nil {
		return nil, err
	}
	return g, nil
}

// parseBody splits the body into one block per setting. Setting headers
// sit at 4 spaces and carry a GUID.
func (g *SubGroup) parseBody(rows []string) error {
	for _, block := range splitBlocks(rows, indentSetting) {
		s, err := newSetting(joinBlock(block))
		if err != nil {
			return err
		}
		g.settings = append(g.settings, s)
	}
	return nil
}

// Settings returns the contained settings in original order.
func (g *SubGroup) Settings() []*Setting { return g.settings }

func (g *SubGroup) toRecord() SubGroupRecord {
	settings := make(map[string]SettingRecord, len(g.settings))
	for _, s := range g.settings {
		settings[s.GUID()] = s.toRecord()
	}
	return SubGroupRecord{
		Name:     g.namePtr(),
		Settings: settings,
	}
}

// loadRecord restores persisted values into the contained settings.
// A setting absent from the record is left untouched; supports partial
// or older profiles.
func (g *SubGroup) loadRecord(rec SubGroupRecord) error {
	for _, s := range g.settings {
		sub, ok := rec.Settings[s.GUID()]
		if !ok {
			continue
		}
		if err := s.loadRecord(sub); err != nil {
			return err
		}
	}
	return nil
}
