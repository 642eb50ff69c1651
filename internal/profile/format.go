package profile

// Format selects which parser and which slot set apply to a profile's
// output. The tag is stored in the config document, so values are stable.
type Format string

const (
	FormatOptionBased Format = "option-based"
	FormatFillInBlank Format = "fill-in-blank"
	FormatFrontBack   Format = "front-back"
)

// Valid reports whether f is one of the known format tags.
func (f Format) Valid() bool {
	switch f {
	case FormatOptionBased, FormatFillInBlank, FormatFrontBack:
		return true
	}
	return false
}

// Slot is an abstract role a piece of generated text plays, decoupled from
// any concrete note field name. Slots are the stable contract between
// parser output and field resolution.
type Slot string

const (
	SlotQuestion Slot = "question"
	SlotChoices  Slot = "choices"
	SlotAnswer   Slot = "answer"
	SlotText     Slot = "text"
	SlotExtra    Slot = "extra"
)

// Slots returns the ordered slot set for the format. The order matches the
// pipe-delimited column order after the leading subtopic column.
func (f Format) Slots() []Slot {
	switch f {
	case FormatFillInBlank:
		return []Slot{SlotText, SlotExtra}
	case FormatFrontBack:
		return []Slot{SlotQuestion, SlotAnswer, SlotExtra}
	default:
		return []Slot{SlotQuestion, SlotChoices, SlotAnswer, SlotExtra}
	}
}

// MinColumns returns the minimum pipe-separated column count (including the
// leading subtopic column) a line must have to be accepted.
func (f Format) MinColumns() int {
	switch f {
	case FormatFillInBlank:
		return 2
	case FormatFrontBack:
		return 3
	default:
		return 5
	}
}

// Label returns the human-readable label for a slot. The fuzzy field
// matcher tokenizes these labels, so each keyword a user's note type might
// carry appears here.
func (s Slot) Label() string {
	switch s {
	case SlotQuestion:
		return "Question / Front"
	case SlotChoices:
		return "Multiple Choice / Options"
	case SlotAnswer:
		return "Correct Answer / Back"
	case SlotText:
		return "Cloze Text"
	case SlotExtra:
		return "Extra / Notes"
	}
	return string(s)
}
