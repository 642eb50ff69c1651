package fieldmap

import (
	"testing"

	"deckforge/internal/profile"
)

func TestResolve_FuzzyMatchesDefaultSchema(t *testing.T) {
	schema := []string{"Question", "Multiple Choice", "Correct Answers", "Extra"}

	res := Resolve(profile.FormatOptionBased, nil, schema)

	want := Resolution{
		profile.SlotQuestion: "Question",
		profile.SlotChoices:  "Multiple Choice",
		profile.SlotAnswer:   "Correct Answers",
		profile.SlotExtra:    "Extra",
	}
	for slot, field := range want {
		if res[slot] != field {
			t.Errorf("Slot %s: expected %q, got %q", slot, field, res[slot])
		}
	}
}

func TestResolve_ExactMappingWins(t *testing.T) {
	schema := []string{"Front", "Back", "Notes"}
	mapping := map[profile.Slot]string{
		profile.SlotQuestion: "Back",
	}

	res := Resolve(profile.FormatFrontBack, mapping, schema)

	if res[profile.SlotQuestion] != "Back" {
		t.Errorf("Expected explicit mapping to win, got %q", res[profile.SlotQuestion])
	}
}

func TestResolve_ExactMappingToMissingFieldFallsThroughToFuzzy(t *testing.T) {
	schema := []string{"Front", "Back", "Extra"}
	mapping := map[profile.Slot]string{
		profile.SlotQuestion: "No Such Field",
	}

	res := Resolve(profile.FormatFrontBack, mapping, schema)

	if res[profile.SlotQuestion] != "Front" {
		t.Errorf("Expected fuzzy fallback to 'Front', got %q", res[profile.SlotQuestion])
	}
}

func TestResolve_PrefersUnclaimedFields(t *testing.T) {
	// "Back Extra" contains both "Back" and "Extra"; the answer slot claims
	// it first, so the extra slot must settle on the plain "Extra" field.
	schema := []string{"Front", "Back Extra", "Extra"}

	res := Resolve(profile.FormatFrontBack, nil, schema)

	if res[profile.SlotAnswer] != "Back Extra" {
		t.Errorf("Expected answer slot on 'Back Extra', got %q", res[profile.SlotAnswer])
	}
	if res[profile.SlotExtra] != "Extra" {
		t.Errorf("Expected extra slot on unclaimed 'Extra', got %q", res[profile.SlotExtra])
	}
}

func TestResolve_ReclaimsWhenNoUnclaimedFieldMatches(t *testing.T) {
	// A single field matching both slots gets assigned twice rather than
	// leaving the second slot unmapped.
	schema := []string{"Question and Answer"}

	res := Resolve(profile.FormatFrontBack, nil, schema)

	if res[profile.SlotQuestion] != "Question and Answer" {
		t.Errorf("Expected question slot mapped, got %q", res[profile.SlotQuestion])
	}
	if res[profile.SlotAnswer] != "Question and Answer" {
		t.Errorf("Expected answer slot to reclaim the same field, got %q", res[profile.SlotAnswer])
	}
}

func TestResolve_UnmatchableSlotStaysUnmapped(t *testing.T) {
	schema := []string{"Alpha", "Beta"}

	res := Resolve(profile.FormatFillInBlank, nil, schema)

	if field, ok := res[profile.SlotText]; ok {
		t.Errorf("Expected text slot unmapped, got %q", field)
	}
	if field, ok := res[profile.SlotExtra]; ok {
		t.Errorf("Expected extra slot unmapped, got %q", field)
	}
}

func TestResolve_MatchIsCaseInsensitive(t *testing.T) {
	schema := []string{"QUESTION", "answer text"}

	res := Resolve(profile.FormatFrontBack, nil, schema)

	if res[profile.SlotQuestion] != "QUESTION" {
		t.Errorf("Expected case-insensitive match on 'QUESTION', got %q", res[profile.SlotQuestion])
	}
	if res[profile.SlotAnswer] != "answer text" {
		t.Errorf("Expected case-insensitive match on 'answer text', got %q", res[profile.SlotAnswer])
	}
}
