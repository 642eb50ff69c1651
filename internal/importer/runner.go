// Package importer sequences an import run: file iteration, AI invocation,
// parsing, slot resolution, record merging, and note creation.
package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"deckforge/internal/cardparse"
	"deckforge/internal/collection"
	"deckforge/internal/fieldmap"
	"deckforge/internal/gemini"
	"deckforge/internal/profile"
)

// Generator is the remote AI service as the runner sees it.
type Generator interface {
	GenerateCards(ctx context.Context, prompt string, current gemini.Image, previous *gemini.Image) (string, error)
}

// Collection is the destination store as the runner sees it.
type Collection interface {
	AddMedia(path string) (string, error)
	DeckID(name string) (uint, error)
	AddNote(noteTypeID, deckID uint, fields []string) (*collection.Note, error)
}

// ConfigError is a pre-flight configuration failure. OpenSettings marks
// the ones a settings dialog can fix.
type ConfigError struct {
	Msg          string
	OpenSettings bool
}

func (e *ConfigError) Error() string { return e.Msg }

// Plan is a validated, ready-to-confirm import run.
type Plan struct {
	Files      []string
	Invalid    []InvalidFile
	RootDeck   string
	Profile    *profile.Profile
	NoteType   *collection.NoteType
	Model      string
	Resolution fieldmap.Resolution
}

// FileError is one logged failure, tied to a file where possible.
type FileError struct {
	File    string
	Message string
}

// Result summarizes a finished (or stopped) run.
type Result struct {
	TotalFiles     int
	FilesProcessed int
	FilesFailed    int
	CardsCreated   int
	Errors         []FileError
	Cancelled      bool
	Aborted        bool
}

// Summary renders the user-facing completion report.
func (r *Result) Summary() string {
	var b strings.Builder
	switch {
	case r.Cancelled:
		b.WriteString("Import cancelled — already created cards were kept.\n\n")
	case r.Aborted:
		b.WriteString("Import stopped early.\n\n")
	default:
		b.WriteString("Import complete!\n\n")
	}
	fmt.Fprintf(&b, "✓ Files processed: %d/%d\n", r.FilesProcessed, r.TotalFiles)
	fmt.Fprintf(&b, "✓ Cards created: %d\n", r.CardsCreated)
	if r.FilesFailed > 0 {
		fmt.Fprintf(&b, "⚠ Files with errors: %d\n", r.FilesFailed)
	}
	return b.String()
}

// ErrorDetails renders up to max individual errors for drill-down.
func (r *Result) ErrorDetails(max int) string {
	if len(r.Errors) == 0 {
		return ""
	}
	var b strings.Builder
	for i, e := range r.Errors {
		if i == max {
			fmt.Fprintf(&b, "... and %d more errors\n", len(r.Errors)-max)
			break
		}
		fmt.Fprintf(&b, "%s: %s\n", e.File, e.Message)
	}
	return b.String()
}

// Runner executes import runs against a generator and a collection.
type Runner struct {
	gen  Generator
	col  Collection
	sink ProgressSink
}

func NewRunner(gen Generator, col Collection, sink ProgressSink) *Runner {
	if sink == nil {
		sink = &LogSink{}
	}
	return &Runner{gen: gen, col: col, sink: sink}
}

// BuildPlan validates the input selection and resolves the profile's slots
// onto the note type's schema. The resolution applies the positional
// Nth-field fallback so every slot writes somewhere when the schema allows
// it.
func BuildPlan(folder, rootDeck string, prof *profile.Profile, nt *collection.NoteType, model string) (*Plan, error) {
	if prof == nil {
		return nil, &ConfigError{Msg: "no active profile configured", OpenSettings: true}
	}
	schema := nt.Fields()
	if len(schema) < 2 {
		return nil, &ConfigError{
			Msg:          fmt.Sprintf("note type %q has only %d fields, need at least 2", nt.Name, len(schema)),
			OpenSettings: true,
		}
	}

	files, invalid, err := ScanFolder(folder)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		if len(invalid) > 0 {
			return nil, fmt.Errorf("no valid images found in %s (%d files excluded)", folder, len(invalid))
		}
		return nil, fmt.Errorf("no image files found in %s (supported: %s)",
			folder, strings.Join(SupportedExtensions(), ", "))
	}

	res := fieldmap.Resolve(prof.Format, prof.FieldMap, schema)
	applyPositionalFallback(res, prof.Format, schema)

	return &Plan{
		Files:      files,
		Invalid:    invalid,
		RootDeck:   SanitizeDeckPath(rootDeck),
		Profile:    prof,
		NoteType:   nt,
		Model:      model,
		Resolution: res,
	}, nil
}

// applyPositionalFallback assigns still-unmapped slots to the schema field
// at the slot's own column position, the import path's last resort. Slots
// whose position exceeds the schema stay unmapped.
func applyPositionalFallback(res fieldmap.Resolution, format profile.Format, schema []string) {
	for i, slot := range format.Slots() {
		if _, ok := res[slot]; ok {
			continue
		}
		if i < len(schema) {
			res[slot] = schema[i]
		}
	}
}

// Run processes the plan's files strictly sequentially. Failures local to
// one file or record never abort the batch; authorization failures do,
// since they recur for every subsequent file. Cancellation is polled at
// file boundaries and already-created cards are kept. The final phase is
// always emitted, even when an unexpected error escapes the loop.
func (r *Runner) Run(ctx context.Context, plan *Plan) *Result {
	res := &Result{TotalFiles: len(plan.Files)}

	defer func() {
		if p := recover(); p != nil {
			res.Aborted = true
			res.Errors = append(res.Errors, FileError{File: "import", Message: fmt.Sprintf("unexpected error: %v", p)})
		}
		switch {
		case res.Cancelled:
			r.sink.Phase(PhaseCancelled)
		default:
			r.sink.Phase(PhaseComplete)
		}
	}()

	r.sink.Phase(PhaseProcessing)
	r.logResolution(plan)

	var prevPath string
	for i, path := range plan.Files {
		if r.sink.Cancelled() || ctx.Err() != nil {
			res.Cancelled = true
			break
		}

		name := filepath.Base(path)
		r.sink.Progress(i+1, len(plan.Files), "Processing: "+name)

		mediaName, err := r.col.AddMedia(path)
		if err != nil {
			r.fail(res, name, "failed to add media: "+err.Error())
			continue
		}

		current, err := gemini.LoadImage(path)
		if err != nil {
			r.fail(res, name, err.Error())
			continue
		}
		var previous *gemini.Image
		if prevPath != "" {
			if img, err := gemini.LoadImage(prevPath); err == nil {
				previous = &img
			}
		}

		text, err := r.gen.GenerateCards(ctx, plan.Profile.Prompt, current, previous)
		if err != nil {
			r.fail(res, name, "API error: "+err.Error())
			if gemini.IsAuth(err) {
				r.sink.Detail("✗ authorization failure, stopping import")
				res.Aborted = true
				break
			}
			continue
		}

		records, warnings := cardparse.Parse(text, plan.Profile.Format)
		for _, w := range warnings {
			r.sink.Detail("⚠ " + w.String())
		}
		if len(records) == 0 {
			r.fail(res, name, "no valid cards found in response")
			continue
		}

		created := 0
		for _, rec := range records {
			if err := r.createNote(plan, rec, mediaName); err != nil {
				r.sink.Detail("⚠ card creation error: " + err.Error())
				res.Errors = append(res.Errors, FileError{File: name, Message: err.Error()})
				continue
			}
			created++
			res.CardsCreated++
		}
		if created > 0 {
			res.FilesProcessed++
			r.sink.Detail(fmt.Sprintf("✓ created %d cards from %s", created, name))
		}

		prevPath = path
	}

	return res
}

func (r *Runner) fail(res *Result, file, msg string) {
	r.sink.Detail("✗ " + msg)
	res.Errors = append(res.Errors, FileError{File: file, Message: msg})
	res.FilesFailed++
}

func (r *Runner) logResolution(plan *Plan) {
	var b strings.Builder
	b.WriteString("Field mapping:")
	for _, slot := range plan.Profile.Format.Slots() {
		field := plan.Resolution[slot]
		if field == "" {
			field = "(unmapped)"
		}
		fmt.Fprintf(&b, "\n  %s → %s", slot.Label(), field)
	}
	r.sink.Detail(b.String())
}

// createNote resolves one record into field values and persists it. Slots
// mapped to the same field are merged by appending with a visual
// separator, and the image reference is appended to the extra slot's
// resolved field.
func (r *Runner) createNote(plan *Plan, rec cardparse.Record, mediaName string) error {
	merged := make(map[string]string)
	for _, slot := range plan.Profile.Format.Slots() {
		field := plan.Resolution[slot]
		value := rec.Slots[slot]
		if field == "" || value == "" {
			continue
		}
		if existing := merged[field]; existing != "" {
			merged[field] = existing + "<br><br>" + value
		} else {
			merged[field] = value
		}
	}

	if field := plan.Resolution[profile.SlotExtra]; field != "" {
		tag := fmt.Sprintf("<img src='%s'>", mediaName)
		if existing := merged[field]; existing != "" {
			merged[field] = existing + "<br><br>" + tag
		} else {
			merged[field] = tag
		}
	}

	schema := plan.NoteType.Fields()
	fields := make([]string, len(schema))
	for i, name := range schema {
		fields[i] = merged[name]
	}

	subdeck := "General"
	if rec.Subtopic != "" {
		subdeck = SanitizeDeckName(rec.Subtopic)
	}
	deckID, err := r.col.DeckID(plan.RootDeck + "::" + subdeck)
	if err != nil {
		return err
	}
	_, err = r.col.AddNote(plan.NoteType.ID, deckID, fields)
	return err
}
