package importer

// Phase is the orchestrator's state for one run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidatingConfig
	PhaseSelectingInput
	PhaseConfirmPending
	PhaseProcessing
	PhaseComplete
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseValidatingConfig:
		return "Validating Config"
	case PhaseSelectingInput:
		return "Selecting Input"
	case PhaseConfirmPending:
		return "Awaiting Confirmation"
	case PhaseProcessing:
		return "Processing"
	case PhaseComplete:
		return "Complete"
	case PhaseCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}
