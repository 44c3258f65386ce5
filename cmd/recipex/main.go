// Recipe Explorer: find recipes from the ingredients you have.
//
// Usage:
//
//	recipex [-verbose] [-quiet] [-offline] [-theme light|dark|system] [-no-speech]
package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/recipex/internal/autocomplete"
	"github.com/hammamikhairi/recipex/internal/display"
	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/explorer"
	"github.com/hammamikhairi/recipex/internal/logger"
	"github.com/hammamikhairi/recipex/internal/narrate"
	"github.com/hammamikhairi/recipex/internal/prefs"
	"github.com/hammamikhairi/recipex/internal/recipe"
	"github.com/hammamikhairi/recipex/internal/search"
	"github.com/hammamikhairi/recipex/internal/spoonacular"
	"github.com/hammamikhairi/recipex/internal/storage"
)

const appDir = "recipe-explorer"

func main() {
	os.Exit(run())
}

// run wires and runs the program and returns the exit code. Deferred
// cleanup runs before main exits.
func run() int {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", defaultPath("recipex.log"), "file to write logs to (use \"stderr\" to log to console)")
	storePath := flag.String("store", defaultPath("prefs.json"), "file holding the theme and saved recipes")
	theme := flag.String("theme", "system", "initial theme when none is saved: light, dark or system")
	debounce := flag.Duration("debounce", autocomplete.DefaultDebounce, "delay between the last keystroke and the suggestion request")
	cacheTTL := flag.Duration("cache-ttl", 10*time.Minute, "how long provider responses are reused (0 disables)")
	timeout := flag.Duration("timeout", search.DefaultTimeout, "deadline for one recipe search")
	exportDir := flag.String("export-dir", ".", "directory for spreadsheet exports")
	offline := flag.Bool("offline", false, "use the built-in recipes instead of Spoonacular")
	noSpeech := flag.Bool("no-speech", false, "disable read-aloud even if Azure keys are set")
	cacheDir := flag.String("cache-dir", defaultPath("tts-cache"), "directory for the read-aloud audio cache")
	flag.Parse()

	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// The terminal belongs to the UI, so logs go to a rotating file.
	logOut, err := logger.OpenFile(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (logging disabled)\n", *logFile, err)
		logLevel = logger.LevelOff
		logOut, _ = logger.OpenFile("stderr")
	}
	defer logOut.Close()

	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Provider.
	var provider domain.RecipeProvider
	if *offline {
		provider = recipe.NewMemorySource(log.Named("recipes"))
		log.Info("offline mode: using built-in recipes")
	} else {
		var clientOpts []spoonacular.ClientOption
		if base := os.Getenv(spoonacular.EnvBaseURL); base != "" {
			clientOpts = append(clientOpts, spoonacular.WithBaseURL(base))
		}
		client, err := spoonacular.NewClient(os.Getenv(spoonacular.EnvAPIKey), log.Named("spoonacular"), clientOpts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\nset %s in the environment or a .env file, or run with -offline\n", err, spoonacular.EnvAPIKey)
			return 1
		}
		provider = client
		if *cacheTTL > 0 {
			provider = spoonacular.NewCached(client, *cacheTTL, log.Named("cache"))
		}
	}

	// Preferences.
	var kv domain.KVStore
	fileStore, err := storage.OpenFileStore(*storePath, log.Named("storage"))
	if err != nil {
		log.Warn("preferences will not persist: %v", err)
		kv = storage.NewMemoryStore(log.Named("storage"))
	} else {
		kv = fileStore
	}

	var detector prefs.Detector = prefs.TerminalDetector{}
	switch *theme {
	case "light":
		detector = prefs.StaticDetector(false)
	case "dark":
		detector = prefs.StaticDetector(true)
	case "system":
	default:
		fmt.Fprintf(os.Stderr, "error: unknown theme %q (want light, dark or system)\n", *theme)
		return 2
	}
	store := prefs.Load(kv, detector, log.Named("prefs"))

	// Read-aloud is optional.
	var narrator domain.Narrator = narrate.NewNoOp(log)
	azureKey := os.Getenv(narrate.EnvAzureSpeechKey)
	azureRegion := os.Getenv(narrate.EnvAzureSpeechRegion)
	if azureKey != "" && azureRegion != "" && !*noSpeech {
		player, err := narrate.NewPlayer(log.Named("player"))
		if err != nil {
			log.Error("audio player init failed, read-aloud disabled: %v", err)
		} else {
			tts := narrate.NewAzureClient(azureKey, azureRegion, log.Named("tts"))
			narrator = narrate.New(tts, player, log.Named("narrate"), narrate.WithCacheDir(*cacheDir))
			log.Info("read-aloud enabled (voice=%s, region=%s)", tts.Voice(), azureRegion)
		}
	} else if !*noSpeech {
		log.Info("read-aloud disabled: set %s and %s env vars to enable", narrate.EnvAzureSpeechKey, narrate.EnvAzureSpeechRegion)
	}

	// The UI is created after the app, but the app needs a repaint hook.
	var ui *display.UI
	app := explorer.New(provider, store, log.Named("explorer"),
		explorer.WithDebounce(*debounce),
		explorer.WithSearchTimeout(*timeout),
		explorer.WithExportDir(*exportDir),
		explorer.WithNarrator(narrator),
		explorer.WithOnChange(func() { ui.Notify() }),
	)
	defer app.Close()

	ui = display.NewUI(app, log.Named("ui"))
	store.OnThemeChange(ui.ApplyTheme)

	log.Info("starting (theme=%s, saved=%d)", store.Theme(), len(store.Saved()))
	if err := ui.Run(ctx); err != nil {
		log.Error("display: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// defaultPath places name under the user config directory, falling back
// to a dot directory in the working directory.
func defaultPath(name string) string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("."+appDir, name)
	}
	return filepath.Join(base, appDir, name)
}
