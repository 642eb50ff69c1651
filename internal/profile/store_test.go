package profile

import (
	"errors"
	"testing"
)

func TestNewStore_SeedsBuiltinsFromEmptyConfig(t *testing.T) {
	s := NewStore(nil, "")

	for _, key := range []string{KeyMCQ, KeyCloze, KeyBasic} {
		p, ok := s.Get(key)
		if !ok {
			t.Fatalf("Expected built-in %q to exist after migration", key)
		}
		if p.Prompt == "" {
			t.Errorf("Expected built-in %q to carry a default prompt", key)
		}
		if len(p.FieldMap) == 0 {
			t.Errorf("Expected built-in %q to carry a default field map", key)
		}
	}

	if s.ActiveKey() != KeyMCQ {
		t.Errorf("Expected active key to fall back to %q, got %q", KeyMCQ, s.ActiveKey())
	}
}

func TestMigrate_IsIdempotent(t *testing.T) {
	s := NewStore(nil, "")

	if s.Migrate() {
		t.Error("Expected second migration run to report no changes")
	}
}

func TestMigrate_PreservesEditedPrompt(t *testing.T) {
	profiles := map[string]*Profile{
		KeyMCQ: {
			DisplayName: "Multiple Choice (MCQ)",
			Format:      FormatOptionBased,
			Prompt:      "my custom instructions",
			FieldMap:    map[Slot]string{SlotQuestion: "Question"},
		},
	}

	s := NewStore(profiles, KeyMCQ)

	p, _ := s.Get(KeyMCQ)
	if p.Prompt != "my custom instructions" {
		t.Errorf("Expected edited prompt to survive migration, got %q", p.Prompt)
	}
}

func TestMigrate_ReseedsBlankPromptAndBackfillsFields(t *testing.T) {
	profiles := map[string]*Profile{
		KeyCloze: {Prompt: "   "},
	}

	s := NewStore(profiles, KeyCloze)

	p, _ := s.Get(KeyCloze)
	if p.Prompt != defaultClozePrompt {
		t.Error("Expected blank prompt to be reseeded with the default")
	}
	if p.Format != FormatFillInBlank {
		t.Errorf("Expected format backfill, got %q", p.Format)
	}
	if p.DisplayName == "" {
		t.Error("Expected display name backfill")
	}
	if p.FieldMap[SlotText] != "Text" {
		t.Errorf("Expected default field map backfill, got %v", p.FieldMap)
	}
}

func TestMigrate_PrunesForeignSlots(t *testing.T) {
	profiles := map[string]*Profile{
		KeyBasic: {
			DisplayName: "Basic (Front/Back)",
			Format:      FormatFrontBack,
			Prompt:      "custom",
			FieldMap: map[Slot]string{
				SlotQuestion: "Front",
				SlotChoices:  "Leftover", // not a front-back slot
			},
		},
	}

	s := NewStore(profiles, KeyBasic)

	p, _ := s.Get(KeyBasic)
	if _, ok := p.FieldMap[SlotChoices]; ok {
		t.Error("Expected foreign slot to be pruned from field map")
	}
	if p.FieldMap[SlotQuestion] != "Front" {
		t.Errorf("Expected valid slot to survive pruning, got %v", p.FieldMap)
	}
}

func TestMigrate_LeavesCustomProfilesAlone(t *testing.T) {
	profiles := map[string]*Profile{
		"my-deck": {
			DisplayName: "My Deck",
			Format:      FormatOptionBased,
			Prompt:      "", // blank prompts are only reseeded for built-ins
		},
	}

	s := NewStore(profiles, "my-deck")

	p, _ := s.Get("my-deck")
	if p.Prompt != "" {
		t.Errorf("Expected custom profile's blank prompt untouched, got %q", p.Prompt)
	}
	if s.ActiveKey() != "my-deck" {
		t.Errorf("Expected valid active key preserved, got %q", s.ActiveKey())
	}
}

func TestAll_ListsBuiltinsFirstThenCustomsSorted(t *testing.T) {
	s := NewStore(nil, "")
	if _, err := s.NewBlank("zeta", FormatFrontBack); err != nil {
		t.Fatal(err)
	}
	if _, err := s.NewBlank("alpha", FormatOptionBased); err != nil {
		t.Fatal(err)
	}

	got := s.All()
	wantKeys := []string{KeyMCQ, KeyCloze, KeyBasic, "alpha", "zeta"}
	if len(got) != len(wantKeys) {
		t.Fatalf("Expected %d profiles, got %d", len(wantKeys), len(got))
	}
	for i, key := range wantKeys {
		if got[i].Key != key {
			t.Errorf("Position %d: expected key %q, got %q", i, key, got[i].Key)
		}
	}
}

func TestDuplicate_DisambiguatesKeys(t *testing.T) {
	s := NewStore(nil, "")

	first, err := s.Duplicate(KeyMCQ)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Duplicate(KeyMCQ)
	if err != nil {
		t.Fatal(err)
	}

	if first.Key != "mcq (Copy)" {
		t.Errorf("Expected first copy key 'mcq (Copy)', got %q", first.Key)
	}
	if second.Key != "mcq (Copy 2)" {
		t.Errorf("Expected second copy key 'mcq (Copy 2)', got %q", second.Key)
	}
	if IsBuiltin(first.Key) {
		t.Error("Expected duplicates to be custom profiles")
	}

	// Copies must be independent of the source.
	first.FieldMap[SlotQuestion] = "Elsewhere"
	src, _ := s.Get(KeyMCQ)
	if src.FieldMap[SlotQuestion] != "Question" {
		t.Error("Expected duplicate's field map to be a deep copy")
	}
}

func TestDelete(t *testing.T) {
	s := NewStore(nil, "")
	p, err := s.Duplicate(KeyBasic)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetActive(p.Key); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(KeyMCQ); !errors.Is(err, ErrBuiltinProtected) {
		t.Errorf("Expected ErrBuiltinProtected deleting a built-in, got %v", err)
	}
	if _, ok := s.Get(KeyMCQ); !ok {
		t.Error("Expected built-in to survive the rejected delete")
	}

	if err := s.Delete(p.Key); err != nil {
		t.Fatalf("Expected custom delete to succeed, got %v", err)
	}
	if s.ActiveKey() != KeyMCQ {
		t.Errorf("Expected active to fall back to %q, got %q", KeyMCQ, s.ActiveKey())
	}

	if err := s.Delete("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestResetPrompt(t *testing.T) {
	s := NewStore(nil, "")

	p, _ := s.Get(KeyMCQ)
	p.Prompt = "scribbled over"
	if err := s.ResetPrompt(KeyMCQ); err != nil {
		t.Fatal(err)
	}
	if p.Prompt != defaultMCQPrompt {
		t.Error("Expected prompt restored to the factory default")
	}

	custom, err := s.Duplicate(KeyMCQ)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ResetPrompt(custom.Key); !errors.Is(err, ErrNoDefaultPrompt) {
		t.Errorf("Expected ErrNoDefaultPrompt for a custom profile, got %v", err)
	}
}

func TestSetActive_RejectsUnknownKey(t *testing.T) {
	s := NewStore(nil, "")

	if err := s.SetActive("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if s.Active() == nil {
		t.Fatal("Expected Active to stay resolvable")
	}
}
