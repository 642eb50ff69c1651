package importer

import "log"

// ProgressSink receives the orchestrator's running status. Cancellation is
// cooperative: the runner polls Cancelled once per file boundary, so a
// long-running AI call finishes before the run stops.
type ProgressSink interface {
	Phase(p Phase)
	Progress(current, total int, status string)
	Detail(message string)
	Cancelled() bool
}

// LogSink writes progress to the standard logger. Every controls how often
// per-file progress lines are emitted (detail lines always print).
type LogSink struct {
	Every int
}

func (s *LogSink) Phase(p Phase) {
	log.Printf("▶ %s", p)
}

func (s *LogSink) Progress(current, total int, status string) {
	every := s.Every
	if every < 1 {
		every = 1
	}
	if current%every == 0 || current == total {
		log.Printf("  [%d/%d] %s", current, total, status)
	}
}

func (s *LogSink) Detail(message string) {
	log.Printf("  %s", message)
}

func (s *LogSink) Cancelled() bool { return false }
