// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aph-tools/aph/address"
	"github.com/aph-tools/aph/journal"
	"github.com/aph-tools/aph/settings"
	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

// Options are the flags shared by every command.
type Options struct {
	SettingsPath   string
	Locale         string
	JournalPath    string
	Jitter         string
	CellResolution int
}

var options = &Options{}

var rootCmd = &cobra.Command{
	Use:   "aph",
	Short: "address point helper",
	Long: `
aph creates address points inside selected area features: it finds a point
guaranteed to lie inside the area, inherits the parent's address and lock rank,
and emits the creation request for the editor.
`,
}

var Version = "dev"

func Execute(version string) {
	Version = version
	rootCmd.Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func init() {
	defaultSettings, err := settings.DefaultPath()
	if err != nil {
		defaultSettings = "aph-settings.json"
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&options.SettingsPath, "settings", envOr("APH_SETTINGS", defaultSettings), "settings file")
	flags.StringVar(&options.Locale, "locale", envOr("APH_LOCALE", "en"), "locale for labels")
	flags.StringVar(&options.JournalPath, "journal", os.Getenv("APH_JOURNAL"), "duckdb file recording created points (disabled when empty)")
	flags.StringVar(&options.Jitter, "jitter", "positive", "placement jitter: positive, symmetric or none")
	flags.IntVar(&options.CellResolution, "cell-resolution", address.DefaultCellResolution, "H3 resolution of the recorded cell")
}

func loadSettings() (settings.Settings, error) {
	s, err := settings.Load(options.SettingsPath)
	if err != nil {
		return s, fmt.Errorf("loading settings: %w", err)
	}

	return s, nil
}

func newComposer() (*address.Composer, error) {
	jitter, ok := address.JitterByName(options.Jitter)
	if !ok {
		return nil, fmt.Errorf("unknown jitter %q", options.Jitter)
	}

	return address.NewComposer(
		address.WithJitter(jitter),
		address.WithCellResolution(options.CellResolution),
	), nil
}

// openJournal returns nil, nil when no journal is configured.
func openJournal() (journal.Repository, error) {
	if options.JournalPath == "" {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(options.JournalPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("duckdb", options.JournalPath)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	repo := journal.NewRepository(db)
	if err := repo.CreateSchema(); err != nil {
		db.Close()

		return nil, err
	}

	return repo, nil
}

func closeJournal(repo journal.Repository) {
	if repo == nil {
		return
	}

	if err := repo.DB().Close(); err != nil {
		log.Printf("closing journal: %v", err)
	}
}
