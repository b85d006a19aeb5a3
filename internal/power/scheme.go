package power

import (
	"fmt"
	"strings"
)

// Scheme is the root of the tree: one complete power-configuration
// profile. The structural shape is fixed after parsing; only setting
// values mutate.
type Scheme struct {
	header
	subgroups []*SubGroup
}

// ParseScheme parses the full `powercfg /query` output into a Scheme.
func ParseScheme(text string) (*Scheme, error) {
	s := &Scheme{}
	rows := splitRows(text)
	s.parseHeader(rows[0])
	if s.guid == "" {
		return nil, &ParseError{
			Entity: "scheme",
			Reason: "no scheme GUID in first row",
			Block:  rows[0],
		}
	}
	if err := s.parseBody(rows[1:]); err != nil {
		return nil, err
	}
	return s, nil
}

// parseBody splits the body into one block per subgroup. Subgroup
// headers sit at 2 spaces and carry a GUID.
func (s *Scheme) parseBody(rows []string) error {
	for _, block := range splitBlocks(rows, indentSubGroup) {
		g, err := newSubGroup(joinBlock(block))
		if err != nil {
			return err
		}
		s.subgroups = append(s.subgroups, g)
	}
	return nil
}

// SubGroups returns the contained subgroups in original order.
func (s *Scheme) SubGroups() []*SubGroup { return s.subgroups }

// FindSetting locates a setting anywhere in the tree by its GUID.
func (s *Scheme) FindSetting(guid string) (*SubGroup, *Setting, bool) {
	for _, g := range s.subgroups {
		for _, st := range g.Settings() {
			if strings.EqualFold(st.GUID(), guid) {
				return g, st, true
			}
		}
	}
	return nil, nil, false
}

// ToRecord exports the whole tree as a persistable profile document.
func (s *Scheme) ToRecord() SchemeRecord {
	subgroups := make(map[string]SubGroupRecord, len(s.subgroups))
	for _, g := range s.subgroups {
		subgroups[g.GUID()] = g.toRecord()
	}
	return SchemeRecord{
		GUID:      s.guid,
		Name:      s.namePtr(),
		SubGroups: subgroups,
	}
}

// LoadRecord restores persisted values into the tree. The record must
// name this scheme's GUID; a subgroup absent from the record is skipped,
// any other fault propagates.
func (s *Scheme) LoadRecord(rec SchemeRecord) error {
	if !strings.EqualFold(rec.GUID, s.guid) {
		return fmt.Errorf("%w: persisted %s, live %s", ErrSchemeMismatch, rec.GUID, s.guid)
	}
	for _, g := range s.subgroups {
		sub, ok := rec.SubGroups[g.GUID()]
		if !ok {
			continue
		}
		if err := g.loadRecord(sub); err != nil {
			return err
		}
	}
	return nil
}
