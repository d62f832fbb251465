package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/prismmail/prism-tui/internal/api"
	"github.com/prismmail/prism-tui/internal/config"
	"github.com/prismmail/prism-tui/internal/db"
	"github.com/prismmail/prism-tui/internal/tui"
	"github.com/prismmail/prism-tui/internal/version"
)

func main() {
	configPathFlag := flag.String("config", "", "Path to JSON configuration file (default: XDG config dir)")
	serverFlag := flag.String("server", "", "Backend base URL (overrides config)")
	dbPathFlag := flag.String("db", "", "Path to the local SQLite database (default: XDG state dir)")
	versionFlag := flag.Bool("version", false, "Show version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\n", version.GetVersionString())
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PRISM_CONFIG   Override default config file path\n")
		fmt.Fprintf(os.Stderr, "  PRISM_SERVER   Override backend base URL\n")
	}

	flag.Parse()

	if *versionFlag {
		fmt.Println(version.GetDetailedVersionString())
		return
	}

	configPath := *configPathFlag
	if configPath == "" {
		configPath = os.Getenv("PRISM_CONFIG")
	}
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: could not load configuration: %v", err)
		cfg = config.DefaultConfig()
	}

	if *serverFlag != "" {
		cfg.Server.BaseURL = *serverFlag
	} else if env := os.Getenv("PRISM_SERVER"); env != "" {
		cfg.Server.BaseURL = env
	}

	var clientOpts []api.Option
	if cfg.Server.RateLimit > 0 {
		clientOpts = append(clientOpts, api.WithRateLimit(cfg.Server.RateLimit, int(cfg.Server.RateLimit)+1))
	}
	client, err := api.NewClient(cfg.Server.BaseURL, clientOpts...)
	if err != nil {
		log.Fatalf("Could not initialize backend client: %v", err)
	}

	app := tui.NewApp(client, cfg)

	// Local store for layout state and drafts. The app degrades to
	// session-only state when it cannot be opened.
	dbPath := *dbPathFlag
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	if store, err := db.Open(context.Background(), dbPath); err != nil {
		log.Printf("Warning: could not open local database at %s: %v", dbPath, err)
	} else {
		defer func() { _ = store.Close() }()
		app.RegisterDBStore(store)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
