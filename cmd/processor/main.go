package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/mklimuk/life-pilot/pkg/ai"
	"github.com/mklimuk/life-pilot/pkg/automation"
	"github.com/mklimuk/life-pilot/pkg/config"
	"github.com/mklimuk/life-pilot/pkg/db"
	"github.com/mklimuk/life-pilot/pkg/engine"
	"github.com/mklimuk/life-pilot/pkg/github"
	"github.com/mklimuk/life-pilot/pkg/notify"
	"github.com/mklimuk/life-pilot/pkg/store"
	"github.com/mklimuk/life-pilot/pkg/sync"
	"github.com/mklimuk/life-pilot/pkg/vault"
)

func main() {
	vaultPath := flag.String("vault", "", "Path to the note vault")
	dataDir := flag.String("data", "data", "Path to the dashboard data directory")
	dbPath := flag.String("db", "", "Path to the run-history SQLite DB (default <data>/life-pilot.db)")
	profilePath := flag.String("profile", "profile.yml", "Path to the YAML profile overlay")
	days := flag.Int("days", 0, "Day window override (default from profile)")
	dryRun := flag.Bool("dry-run", false, "Run analysis but don't update files")
	commit := flag.Bool("commit", false, "Commit data changes to git after processing")
	push := flag.Bool("push", false, "Push after committing (implies -commit)")
	fullScan := flag.Bool("full-scan", false, "Scan the whole vault with no recency cutoff and report, then exit")
	compact := flag.Bool("compact-manual", false, "Remove processed manual entries and exit")
	history := flag.Bool("history", false, "Print recent run history and exit")
	schedule := flag.String("schedule", "", "Run on a schedule ('every 12h' or 'daily 09:00') instead of once")
	aiProvider := flag.String("ai-provider", "anthropic", "AI provider: anthropic or gemini")
	flag.Parse()

	cfg := config.Default()
	if err := cfg.LoadProfile(*profilePath); err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}
	cfg.FromEnv()
	cfg.VaultPath = *vaultPath
	cfg.DataDir = *dataDir
	cfg.DBPath = *dbPath
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "life-pilot.db")
	}
	if *days > 0 {
		cfg.Days = *days
	}

	database, err := db.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open run history DB: %v", err)
	}
	defer database.Close()
	if err := database.InitSchema(); err != nil {
		log.Fatalf("Failed to init run history schema: %v", err)
	}
	repo := db.NewRepository(database)

	if *history {
		printHistory(repo)
		return
	}

	st, err := store.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	if *compact {
		if err := st.CompactManualEntries(); err != nil {
			log.Fatalf("Failed to compact manual entries: %v", err)
		}
		log.Print("Processed manual entries removed")
		return
	}

	if *vaultPath == "" {
		log.Fatal("Please provide -vault path")
	}

	if *fullScan {
		runFullScan(cfg)
		return
	}

	ctx := context.Background()
	generator, cleanup := newGenerator(ctx, *aiProvider, cfg)
	defer cleanup()

	analyzer := ai.NewAnalyzer(generator, cfg)
	activity := github.NewClient(cfg.GitHubUsername, cfg.GitHubToken)

	eng := engine.New(cfg, analyzer, activity, st)
	eng.History = repo

	var git *sync.GitManager
	if *commit || *push {
		git = sync.NewGitManager(filepath.Dir(cfg.DataDir), filepath.Base(cfg.DataDir))
	}

	notifiers := buildNotifiers(cfg)

	runOnce := func(ctx context.Context) error {
		report, err := eng.Run(ctx, engine.Options{Days: cfg.Days, DryRun: *dryRun})
		if err != nil {
			return err
		}
		if !*dryRun && git != nil {
			if err := git.Commit(""); err != nil {
				log.Printf("Git commit failed: %v", err)
			} else if *push {
				if err := git.Push(); err != nil {
					log.Printf("Git push failed: %v", err)
				}
			}
		}
		for _, n := range notifiers {
			if err := n.Notify(report); err != nil {
				log.Printf("Notification failed: %v", err)
			}
		}
		log.Printf("Run complete: %d notes scanned, %d timeline entries added",
			report.NotesScanned, report.TimelineAdded)
		return nil
	}

	if *schedule != "" {
		sched, err := automation.ParseSchedule(*schedule)
		if err != nil {
			log.Fatalf("Invalid schedule: %v", err)
		}
		service := automation.NewService(sched, runOnce)
		service.Start()
		log.Printf("Scheduler started (%s)", *schedule)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		service.Stop()
		return
	}

	if err := runOnce(ctx); err != nil {
		log.Printf("Processing failed: %v", err)
		os.Exit(1)
	}
}

// newGenerator builds the configured AI provider and a cleanup func.
func newGenerator(ctx context.Context, provider string, cfg config.Config) (ai.Generator, func()) {
	switch provider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Fatal("ANTHROPIC_API_KEY environment variable is required when using anthropic provider")
		}
		client := ai.NewAnthropicClient(cfg.AnthropicAPIKey)
		return client, func() { client.Close() }
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Fatal("GEMINI_API_KEY environment variable is required when using gemini provider")
		}
		client, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to create AI client: %v", err)
		}
		return client, func() { client.Close() }
	default:
		log.Fatalf("Unknown AI provider: %s", provider)
		return nil, nil
	}
}

func buildNotifiers(cfg config.Config) []notify.Notifier {
	var notifiers []notify.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		n, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("Failed to create Telegram notifier: %v", err)
		} else {
			notifiers = append(notifiers, n)
		}
	}
	if cfg.DiscordToken != "" && cfg.DiscordChannelID != "" {
		n, err := notify.NewDiscordNotifier(cfg.DiscordToken, cfg.DiscordChannelID)
		if err != nil {
			log.Printf("Failed to create Discord notifier: %v", err)
		} else {
			notifiers = append(notifiers, n)
		}
	}
	return notifiers
}

func runFullScan(cfg config.Config) {
	scanner := vault.NewScanner(cfg.VaultPath, cfg.JournalFolder, cfg.AreaFolder)
	notes, err := scanner.FullScan()
	if err != nil {
		log.Fatalf("Full scan failed: %v", err)
	}

	counts := map[vault.Source]int{}
	for _, n := range notes {
		counts[n.Source]++
	}
	fmt.Printf("Scanned %d notes\n", len(notes))
	fmt.Printf("  journal: %d\n", counts[vault.SourceJournal])
	fmt.Printf("  area:    %d\n", counts[vault.SourceArea])
	fmt.Printf("  notes:   %d\n", counts[vault.SourceNotes])
	if len(notes) > 0 {
		fmt.Printf("Most recent: %s (%s)\n", notes[0].Filename, notes[0].Modified.Format("2006-01-02"))
	}
}

func printHistory(repo *db.Repository) {
	runs, err := repo.RecentRuns(20)
	if err != nil {
		log.Fatalf("Failed to read run history: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet")
		return
	}
	for _, run := range runs {
		mode := ""
		if run.DryRun {
			mode = " (dry run)"
		}
		fmt.Printf("%s  %-7s  notes=%d entries=%d%s\n",
			run.StartedAt.Format("2006-01-02 15:04"), run.Status,
			run.NotesScanned, run.EntriesAdded, mode)
		if run.Error != "" {
			fmt.Printf("  error: %s\n", run.Error)
		}
	}
}
