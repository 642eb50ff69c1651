package profile

// Profile is a named, complete configuration for one AI-driven
// card-generation format: the prompt sent to Gemini, the output format tag,
// and the mapping from logical slots to destination note fields.
type Profile struct {
	// Key is the stable identifier; it doubles as the map key in the
	// config document, so it is not serialized inside the record.
	Key         string          `yaml:"-"`
	DisplayName string          `yaml:"display_name"`
	Format      Format          `yaml:"format"`
	Prompt      string          `yaml:"prompt"`
	FieldMap    map[Slot]string `yaml:"field_map,omitempty"`
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.FieldMap = make(map[Slot]string, len(p.FieldMap))
	for k, v := range p.FieldMap {
		cp.FieldMap[k] = v
	}
	return &cp
}

// pruneFieldMap drops field-map keys that are not valid slots for the
// profile's format, so a slot name from one format never leaks into
// another.
func (p *Profile) pruneFieldMap() bool {
	valid := make(map[Slot]bool)
	for _, s := range p.Format.Slots() {
		valid[s] = true
	}
	changed := false
	for k := range p.FieldMap {
		if !valid[k] {
			delete(p.FieldMap, k)
			changed = true
		}
	}
	return changed
}
