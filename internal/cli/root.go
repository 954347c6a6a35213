// Package cli implements the rooted CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rcliao/rooted/internal/catalog"
	"github.com/rcliao/rooted/internal/config"
	"github.com/rcliao/rooted/internal/live"
	"github.com/rcliao/rooted/internal/logging"
	"github.com/rcliao/rooted/internal/memory"
	"github.com/rcliao/rooted/internal/random"
	"github.com/rcliao/rooted/internal/recommend"
	"github.com/rcliao/rooted/internal/store"
	"github.com/rcliao/rooted/internal/tracking"
	"github.com/rcliao/rooted/internal/youtube"
)

var (
	dbPath     string
	configPath string
	verbose    bool

	cfg = config.Default()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "rooted",
	Short: "Mood-aware wellness recommendations",
	Long:  "Recommends short wellness activities for how you feel, tracks what you actually did, and remembers what helped. SQLite-backed, single binary.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init("warn", false, os.Stderr); err != nil {
			return err
		}
		config.LoadEnv()
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		return logging.Init(level, cfg.Log.Pretty, os.Stderr)
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $ROOTED_DB or ~/.rooted/rooted.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.DBPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

// app wires the engines over one store.
type app struct {
	store    *store.SQLiteStore
	memory   *memory.Engine
	tracking *tracking.Engine
	live     *live.Fetcher
	selector *recommend.Selector
}

func openApp() (*app, error) {
	s, err := openStore()
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	cat := catalog.Default()
	rng := random.NewTime()

	var provider live.Provider
	if cfg.YouTube.APIKey != "" {
		client := youtube.NewClient(cfg.YouTube.APIKey, cfg.YouTube.Timeout, cfg.YouTube.MinInterval)
		if cfg.YouTube.BaseURL != "" {
			client = client.WithBaseURL(cfg.YouTube.BaseURL)
		}
		provider = client
	} else {
		log.Debug().Msg("no YouTube API key, live content disabled")
	}

	mem := memory.New(s, memory.Options{})
	tr := tracking.New(s, tracking.Options{})
	tr.Subscribe(func(d tracking.Data) {
		log.Debug().
			Int("sessions", len(d.Sessions)).
			Int("completions", len(d.Completions)).
			Msg("tracking updated")
	})
	fetcher := live.New(provider, s, live.Options{
		Catalog:     cat,
		Rand:        rng,
		MaxResults:  cfg.YouTube.MaxResults,
		Timeout:     cfg.YouTube.Timeout,
		CacheTTL:    cfg.Live.CacheTTL,
		HistorySize: cfg.Live.HistorySize,
	})
	return &app{
		store:    s,
		memory:   mem,
		tracking: tr,
		live:     fetcher,
		selector: recommend.New(s, recommend.Options{
			Catalog:       cat,
			Rand:          rng,
			Live:          fetcher,
			Preferences:   mem,
			RecentCap:     cfg.Recommend.RecentCap,
			RecentExclude: cfg.Recommend.RecentExclude,
		}),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func mustOpenApp() *app {
	a, err := openApp()
	if err != nil {
		exitErr("open", err)
	}
	return a
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
