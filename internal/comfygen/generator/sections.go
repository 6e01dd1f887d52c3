package generator

// Entry is a single key/value pair inside an INI section.
type Entry struct {
	Key   string
	Value any
}

// Section is a named [section] block with ordered entries.
type Section struct {
	Name    string
	Entries []Entry
}

// Sections is an ordered INI-style document. Order matters: supervisord
// reads its sections top to bottom, and Go maps would scramble them.
type Sections []Section

// Lookup returns the first section with the given name.
func (s Sections) Lookup(name string) (Section, bool) {
	for _, sec := range s {
		if sec.Name == name {
			return sec, true
		}
	}
	return Section{}, false
}

// Get returns the value for key within the section, or nil.
func (s Section) Get(key string) any {
	for _, e := range s.Entries {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}
