package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"deckforge/internal/collection"
	"deckforge/internal/config"
	"deckforge/internal/gemini"
	"deckforge/internal/importer"
	"deckforge/internal/profile"
	"deckforge/internal/tui"
)

const usage = `deckforge — batch-generate flashcards from lecture slides with Gemini

Usage:
  deckforge import <folder> -deck <name> [-plain] [-yes]
  deckforge models
  deckforge check
  deckforge notetypes
  deckforge profiles list
  deckforge profiles use <key>
  deckforge profiles duplicate <key>
  deckforge profiles new <name> -format <option-based|fill-in-blank|front-back>
  deckforge profiles rename <key> <display name>
  deckforge profiles delete <key>
  deckforge profiles reset-prompt <key>

Configuration lives in ~/.config/deckforge/config.yaml; the API key can
also be provided via GEMINI_API_KEY (a .env file is honored).
`

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("✗ %v", err)
	}
	store := cfg.Store()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.ValidateOnStartup && os.Args[1] != "check" {
		validateOnStartup(ctx, cfg)
	}

	switch os.Args[1] {
	case "import":
		err = cmdImport(ctx, cfg, store, os.Args[2:])
	case "models":
		err = cmdModels(ctx, cfg)
	case "check":
		err = cmdCheck(ctx, cfg)
	case "notetypes":
		err = cmdNoteTypes(cfg)
	case "profiles":
		err = cmdProfiles(cfg, store, os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		var cfgErr *importer.ConfigError
		if errors.As(err, &cfgErr) && cfgErr.OpenSettings {
			log.Printf("✗ %s", cfgErr.Msg)
			log.Printf("  Edit ~/.config/deckforge/config.yaml or set GEMINI_API_KEY.")
			os.Exit(1)
		}
		log.Fatalf("✗ %v", err)
	}
}

// validateOnStartup pings the API once when the config asks for it; a
// failure only warns, matching the optional startup check preference.
func validateOnStartup(ctx context.Context, cfg *config.Config) {
	if gemini.ValidateKeyFormat(cfg.APIKey) != nil {
		return
	}
	client, err := gemini.NewClient(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		log.Printf("⚠ Gemini API validation failed: %v", err)
		return
	}
	defer client.Close()
	if err := client.TestConnection(ctx); err != nil {
		log.Printf("⚠ Gemini API validation failed: %v", err)
		log.Printf("  Please check your settings.")
	}
}

func cmdImport(ctx context.Context, cfg *config.Config, store *profile.Store, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	deck := fs.String("deck", "", "root deck name, e.g. 'Medical::Pharmacology'")
	plain := fs.Bool("plain", false, "log progress instead of the interactive view")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: deckforge import <folder> -deck <name>")
	}
	folder := fs.Arg(0)
	if strings.TrimSpace(*deck) == "" {
		return fmt.Errorf("a root deck name is required (-deck)")
	}

	log.Printf("▶ %s", importer.PhaseValidatingConfig)

	if err := gemini.ValidateKeyFormat(cfg.APIKey); err != nil {
		return &importer.ConfigError{Msg: "API key not configured: " + err.Error(), OpenSettings: true}
	}

	client, err := gemini.NewClient(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return err
	}
	defer client.Close()

	model, err := client.ChooseModel(ctx, cfg.Model)
	if err != nil {
		return fmt.Errorf("could not resolve a supported Gemini model: %w", err)
	}
	if model != cfg.Model {
		log.Printf("  model %q not available, using %q", cfg.Model, model)
		cfg.Model = model
	}
	client.SetModel(model)
	log.Printf("✓ Model resolved: %s", model)

	col, err := collection.Open(cfg.CollectionPath)
	if err != nil {
		return err
	}
	defer col.Close()

	nt, err := resolveNoteType(cfg, col)
	if err != nil {
		return err
	}
	log.Printf("✓ Note type: %s (%d fields)", nt.Name, len(nt.Fields()))

	log.Printf("▶ %s", importer.PhaseSelectingInput)
	plan, err := importer.BuildPlan(folder, *deck, store.Active(), nt, model)
	if err != nil {
		return err
	}

	log.Printf("▶ %s", importer.PhaseConfirmPending)
	log.Printf("Ready to import:")
	log.Printf("  • Folder: %s", filepath.Base(folder))
	log.Printf("  • Images: %d files", len(plan.Files))
	log.Printf("  • Root deck: %s", plan.RootDeck)
	log.Printf("  • Note type: %s", nt.Name)
	log.Printf("  • Profile: %s [%s]", plan.Profile.DisplayName, plan.Profile.Format)
	log.Printf("  • Model: %s", model)
	if len(plan.Invalid) > 0 {
		log.Printf("  ⚠ Skipping %d invalid files:", len(plan.Invalid))
		for i, f := range plan.Invalid {
			if i == 5 {
				log.Printf("    ... and %d more", len(plan.Invalid)-5)
				break
			}
			log.Printf("    • %s: %s", f.Name, f.Reason)
		}
	}
	if !*yes && !askUser("Proceed with import?") {
		return nil
	}

	var result *importer.Result
	if *plain {
		sink := &importer.LogSink{Every: cfg.BatchSize}
		result = importer.NewRunner(client, col, sink).Run(ctx, plan)
	} else {
		var uiErr error
		result, uiErr = tui.Run(func(sink importer.ProgressSink) *importer.Result {
			return importer.NewRunner(client, col, sink).Run(ctx, plan)
		})
		if uiErr != nil {
			// The view failed (e.g. no TTY) but the run still completed
			// under it; tui.Run returns that result, never a second run.
			log.Printf("⚠ interactive view unavailable (%v), pass -plain to log progress instead", uiErr)
		}
	}

	fmt.Println()
	fmt.Print(result.Summary())
	if len(result.Errors) > 0 {
		fmt.Println("\nError details:")
		fmt.Print(result.ErrorDetails(20))
	}
	if cfg.AutoOpenMedia && result.CardsCreated > 0 {
		fmt.Printf("\nMedia folder: %s\n", col.MediaDir())
	}

	return cfg.Save(store)
}

func resolveNoteType(cfg *config.Config, col *collection.Store) (*collection.NoteType, error) {
	if cfg.NoteType == "" {
		return col.EnsureDefaultNoteType()
	}
	nt, err := col.NoteTypeByName(cfg.NoteType)
	if err != nil {
		return nil, &importer.ConfigError{
			Msg:          fmt.Sprintf("selected note type %q not found, it may have been deleted", cfg.NoteType),
			OpenSettings: true,
		}
	}
	return nt, nil
}

func cmdModels(ctx context.Context, cfg *config.Config) error {
	if err := gemini.ValidateKeyFormat(cfg.APIKey); err != nil {
		return &importer.ConfigError{Msg: "API key not configured: " + err.Error(), OpenSettings: true}
	}
	client, err := gemini.NewClient(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return err
	}
	defer client.Close()

	models, err := client.ListGenerateModels(ctx)
	if err != nil {
		return err
	}
	log.Printf("✓ Found %d available Gemini model(s):", len(models))
	for _, m := range models {
		marker := " "
		if m == cfg.Model {
			marker = "*"
		}
		fmt.Printf(" %s %s\n", marker, m)
	}
	return nil
}

func cmdCheck(ctx context.Context, cfg *config.Config) error {
	if err := gemini.ValidateKeyFormat(cfg.APIKey); err != nil {
		return &importer.ConfigError{Msg: err.Error(), OpenSettings: true}
	}
	log.Printf("✓ API key format looks valid")

	client, err := gemini.NewClient(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return err
	}
	defer client.Close()

	model, err := client.ChooseModel(ctx, cfg.Model)
	if err != nil {
		return err
	}
	client.SetModel(model)
	if err := client.TestConnection(ctx); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	log.Printf("✓ API connection successful (model %s)", client.Model())
	return nil
}

func cmdNoteTypes(cfg *config.Config) error {
	col, err := collection.Open(cfg.CollectionPath)
	if err != nil {
		return err
	}
	defer col.Close()

	if _, err := col.EnsureDefaultNoteType(); err != nil {
		return err
	}
	types, err := col.NoteTypes()
	if err != nil {
		return err
	}
	for _, nt := range types {
		marker := " "
		if nt.Name == cfg.NoteType || (cfg.NoteType == "" && nt.Name == collection.DefaultNoteTypeName) {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, nt.Name)
		for i, f := range nt.Fields() {
			fmt.Printf("    %d. %s\n", i+1, f)
		}
	}
	return nil
}

func cmdProfiles(cfg *config.Config, store *profile.Store, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		for _, p := range store.All() {
			marker := " "
			if p.Key == store.ActiveKey() {
				marker = "*"
			}
			kind := "custom"
			if profile.IsBuiltin(p.Key) {
				kind = "built-in"
			}
			fmt.Printf("%s %-24s %s [%s, %s]\n", marker, p.Key, p.DisplayName, p.Format, kind)
		}
		return nil

	case "use":
		if len(args) < 2 {
			return fmt.Errorf("usage: deckforge profiles use <key>")
		}
		if err := store.SetActive(args[1]); err != nil {
			return err
		}
		log.Printf("✓ Active profile: %s", args[1])

	case "duplicate":
		if len(args) < 2 {
			return fmt.Errorf("usage: deckforge profiles duplicate <key>")
		}
		p, err := store.Duplicate(args[1])
		if err != nil {
			return err
		}
		log.Printf("✓ Created profile %q", p.Key)

	case "new":
		fs := flag.NewFlagSet("profiles new", flag.ExitOnError)
		format := fs.String("format", string(profile.FormatOptionBased), "card format tag")
		fs.Parse(args[1:])
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: deckforge profiles new <name> -format <tag>")
		}
		p, err := store.NewBlank(fs.Arg(0), profile.Format(*format))
		if err != nil {
			return err
		}
		log.Printf("✓ Created blank profile %q (edit its prompt in the config file)", p.Key)

	case "rename":
		if len(args) < 3 {
			return fmt.Errorf("usage: deckforge profiles rename <key> <display name>")
		}
		if err := store.Rename(args[1], strings.Join(args[2:], " ")); err != nil {
			return err
		}
		log.Printf("✓ Renamed %q", args[1])

	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: deckforge profiles delete <key>")
		}
		if err := store.Delete(args[1]); err != nil {
			return err
		}
		log.Printf("✓ Deleted %q (active profile: %s)", args[1], store.ActiveKey())

	case "reset-prompt":
		if len(args) < 2 {
			return fmt.Errorf("usage: deckforge profiles reset-prompt <key>")
		}
		if err := store.ResetPrompt(args[1]); err != nil {
			return err
		}
		log.Printf("✓ Prompt reset to default for %q", args[1])

	default:
		return fmt.Errorf("unknown profiles action %q", args[0])
	}

	return cfg.Save(store)
}

func askUser(question string) bool {
	fmt.Printf("\n%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
