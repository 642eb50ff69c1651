package profile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a profile key does not resolve.
	ErrNotFound = errors.New("profile not found")
	// ErrBuiltinProtected is returned when deleting a built-in profile.
	ErrBuiltinProtected = errors.New("built-in profiles cannot be deleted")
	// ErrNoDefaultPrompt is returned when resetting a custom profile's
	// prompt: only built-ins have a factory default.
	ErrNoDefaultPrompt = errors.New("custom profiles have no default prompt")
)

// Store holds the full set of profiles (built-in and custom) and tracks
// which one is active. It operates directly on the map loaded from the
// config document, so mutations are visible to the caller at save time.
type Store struct {
	profiles map[string]*Profile
	active   string
}

// NewStore wraps profiles and runs the non-destructive migration: absent
// built-ins are recreated, missing structural fields are backfilled, blank
// prompts are reseeded. Present, non-blank prompts and custom profiles are
// never touched. A stale active key falls back to the first built-in.
func NewStore(profiles map[string]*Profile, active string) *Store {
	if profiles == nil {
		profiles = make(map[string]*Profile)
	}
	s := &Store{profiles: profiles, active: active}
	s.Migrate()
	return s
}

// Migrate applies the built-in reseed rules. It is idempotent; the second
// run on the same data reports no changes.
func (s *Store) Migrate() bool {
	changed := false
	defaults := Defaults()

	for _, key := range builtinOrder {
		def := defaults[key]
		p, ok := s.profiles[key]
		if !ok {
			s.profiles[key] = def.Clone()
			changed = true
			continue
		}
		p.Key = key
		if !p.Format.Valid() {
			p.Format = def.Format
			changed = true
		}
		if p.DisplayName == "" {
			p.DisplayName = def.DisplayName
			changed = true
		}
		if len(p.FieldMap) == 0 {
			p.FieldMap = make(map[Slot]string, len(def.FieldMap))
			for k, v := range def.FieldMap {
				p.FieldMap[k] = v
			}
			changed = true
		} else if p.pruneFieldMap() {
			changed = true
		}
		if strings.TrimSpace(p.Prompt) == "" {
			p.Prompt = def.Prompt
			changed = true
		}
	}

	for key, p := range s.profiles {
		p.Key = key
		if p.FieldMap == nil {
			p.FieldMap = make(map[Slot]string)
		}
	}

	if _, ok := s.profiles[s.active]; !ok {
		s.active = builtinOrder[0]
		changed = true
	}
	return changed
}

// Get returns the profile for key.
func (s *Store) Get(key string) (*Profile, bool) {
	p, ok := s.profiles[key]
	return p, ok
}

// All returns the profiles in listing order: built-ins first in canonical
// order, then custom profiles sorted by key.
func (s *Store) All() []*Profile {
	out := make([]*Profile, 0, len(s.profiles))
	for _, key := range builtinOrder {
		if p, ok := s.profiles[key]; ok {
			out = append(out, p)
		}
	}
	var custom []string
	for key := range s.profiles {
		if !IsBuiltin(key) {
			custom = append(custom, key)
		}
	}
	sort.Strings(custom)
	for _, key := range custom {
		out = append(out, s.profiles[key])
	}
	return out
}

// Profiles exposes the underlying map for config serialization.
func (s *Store) Profiles() map[string]*Profile { return s.profiles }

// Active returns the active profile. The active key always resolves after
// migration, so this never returns nil.
func (s *Store) Active() *Profile {
	if p, ok := s.profiles[s.active]; ok {
		return p
	}
	return s.profiles[builtinOrder[0]]
}

// ActiveKey returns the key of the active profile.
func (s *Store) ActiveKey() string { return s.active }

// SetActive switches the active profile.
func (s *Store) SetActive(key string) error {
	if _, ok := s.profiles[key]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	s.active = key
	return nil
}

// Duplicate creates a custom copy of an existing profile. Key and display
// name collisions are disambiguated with " (Copy)" / " (Copy N)" suffixes
// rather than failing.
func (s *Store) Duplicate(key string) (*Profile, error) {
	src, ok := s.profiles[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	cp := src.Clone()
	cp.Key = s.uniqueKey(src.Key)
	cp.DisplayName = src.DisplayName + " (Copy)"
	s.profiles[cp.Key] = cp
	return cp, nil
}

// NewBlank creates an empty custom profile for the given format. The
// prompt starts blank; the user supplies it in settings.
func (s *Store) NewBlank(name string, format Format) (*Profile, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if strings.TrimSpace(name) == "" {
		name = "New Profile"
	}
	p := &Profile{
		Key:         s.uniqueKey(name),
		DisplayName: name,
		Format:      format,
		FieldMap:    make(map[Slot]string),
	}
	s.profiles[p.Key] = p
	return p, nil
}

// Rename changes a profile's display name only; keys are stable.
func (s *Store) Rename(key, displayName string) error {
	p, ok := s.profiles[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	p.DisplayName = displayName
	return nil
}

// Delete removes a custom profile. Built-ins are rejected with no state
// change. If the deleted profile was active, the active key falls back to
// the first built-in.
func (s *Store) Delete(key string) error {
	if IsBuiltin(key) {
		return fmt.Errorf("%w: %q", ErrBuiltinProtected, key)
	}
	if _, ok := s.profiles[key]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	delete(s.profiles, key)
	if s.active == key {
		s.active = builtinOrder[0]
	}
	return nil
}

// ResetPrompt restores a built-in profile's prompt to its factory default.
func (s *Store) ResetPrompt(key string) error {
	p, ok := s.profiles[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if !IsBuiltin(key) {
		return fmt.Errorf("%w: %q", ErrNoDefaultPrompt, key)
	}
	p.Prompt = Defaults()[key].Prompt
	return nil
}

func (s *Store) uniqueKey(base string) string {
	if _, taken := s.profiles[base]; !taken {
		return base
	}
	candidate := base + " (Copy)"
	for n := 2; ; n++ {
		if _, taken := s.profiles[candidate]; !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s (Copy %d)", base, n)
	}
}
