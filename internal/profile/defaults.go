package profile

// Built-in profile keys. These are reserved: the store recreates them on
// load if absent and refuses to delete them.
const (
	KeyMCQ   = "mcq"
	KeyCloze = "cloze"
	KeyBasic = "basic"
)

// builtinOrder is the canonical listing order and the fallback order when a
// stored active key no longer resolves.
var builtinOrder = []string{KeyMCQ, KeyCloze, KeyBasic}

const defaultMCQPrompt = `*** SYSTEM INSTRUCTION: SUBDECK ROUTING ***
You are an Anki CSV generator. Output 5 columns separated by pipes (|).
Format: Subtopic Name|Question|Multiple Choice|Correct Answers|Extra

1. Subtopic: Analyze header. If continuation, use previous topic.
2. Follow USER PROMPT below exactly.

*** USER PROMPT ***
**Objective:** Create high-yield MCQs.
**Priorities:** Classification, Drug Names, MoA, Uses, Side Effects.
**Distractors:** Must be contextually relevant and of similar length/structure.
**Format:**
- HTML <br> for line breaks in choices.
- No Markdown headers.
- Mnemonics in Extra column only.

**Output Rules:**
- One question per line
- Exactly 5 pipe-separated columns
- No extra formatting or commentary
- Include 3-5 questions per image minimum
`

const defaultClozePrompt = `*** SYSTEM INSTRUCTION: SUBDECK ROUTING ***
You are an Anki CSV generator. Output 3 columns separated by pipes (|).
Format: Subtopic Name|Cloze Text|Extra

1. Subtopic: Analyze header. If continuation, use previous topic.
2. Follow USER PROMPT below exactly.

*** USER PROMPT ***
**Objective:** Create high-yield cloze deletions from the slide.
**Cloze syntax:** Wrap each hidden term as {{c1::term}}, {{c2::term}}, ...
**Priorities:** Key numbers, drug names, classifications, definitions.
**Format:**
- HTML <br> for line breaks inside a column.
- No Markdown headers.
- Mnemonics in Extra column only.

**Output Rules:**
- One card per line
- Exactly 3 pipe-separated columns
- Every Cloze Text column must contain at least one {{c...}} deletion
- No extra formatting or commentary
- Include 3-5 cards per image minimum
`

const defaultBasicPrompt = `*** SYSTEM INSTRUCTION: SUBDECK ROUTING ***
You are an Anki CSV generator. Output 4 columns separated by pipes (|).
Format: Subtopic Name|Front|Back|Extra

1. Subtopic: Analyze header. If continuation, use previous topic.
2. Follow USER PROMPT below exactly.

*** USER PROMPT ***
**Objective:** Create concise question/answer cards.
**Priorities:** One concept per card, answers under 60 words.
**Format:**
- HTML <br> for line breaks inside a column.
- No Markdown headers.
- Mnemonics in Extra column only.

**Output Rules:**
- One card per line
- Exactly 4 pipe-separated columns
- No extra formatting or commentary
- Include 3-5 cards per image minimum
`

// Defaults returns freshly built copies of the built-in profiles, keyed by
// their reserved keys.
func Defaults() map[string]*Profile {
	return map[string]*Profile{
		KeyMCQ: {
			Key:         KeyMCQ,
			DisplayName: "Multiple Choice (MCQ)",
			Format:      FormatOptionBased,
			Prompt:      defaultMCQPrompt,
			FieldMap: map[Slot]string{
				SlotQuestion: "Question",
				SlotChoices:  "Multiple Choice",
				SlotAnswer:   "Correct Answers",
				SlotExtra:    "Extra",
			},
		},
		KeyCloze: {
			Key:         KeyCloze,
			DisplayName: "Cloze Deletion",
			Format:      FormatFillInBlank,
			Prompt:      defaultClozePrompt,
			FieldMap: map[Slot]string{
				SlotText:  "Text",
				SlotExtra: "Back Extra",
			},
		},
		KeyBasic: {
			Key:         KeyBasic,
			DisplayName: "Basic (Front/Back)",
			Format:      FormatFrontBack,
			Prompt:      defaultBasicPrompt,
			FieldMap: map[Slot]string{
				SlotQuestion: "Front",
				SlotAnswer:   "Back",
				SlotExtra:    "Extra",
			},
		},
	}
}

// IsBuiltin reports whether key names one of the built-in profiles.
func IsBuiltin(key string) bool {
	switch key {
	case KeyMCQ, KeyCloze, KeyBasic:
		return true
	}
	return false
}
