// Package main provides the CLI entry point for sheetcal.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetcal-go/internal/config"
	"github.com/ukaji3/sheetcal-go/internal/observability"
	"github.com/ukaji3/sheetcal-go/internal/store"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/dictionary"
)

// app carries global flags and the state resolved from them.
type app struct {
	configPath string
	dbPath     string
	dictPath   string
	logLevel   string
	logFormat  string
	workers    string
	timezone   string

	cfg  config.ResolvedConfig
	dict *dictionary.Dictionary
	loc  *time.Location
	log  *zerolog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "sheetcal",
		Short: "Extract appointment records from loosely structured spreadsheets",
		Long: `sheetcal reads hand-maintained booking sheets (xlsx, csv, tsv), infers
which columns hold names, phones, dates and procedures, and turns every
usable row into a calendar record.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (default: ~/.sheetcal/config.yaml)")
	pf.StringVar(&a.dbPath, "db", "", "SQLite database path")
	pf.StringVar(&a.dictPath, "dictionary", "", "Keyword dictionary extension (YAML)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format: console, json")
	pf.StringVar(&a.workers, "workers", "", "Sheets extracted concurrently")
	pf.StringVar(&a.timezone, "tz", "", "Time zone for event timestamps")

	rootCmd.AddCommand(
		newExtractCmd(a),
		newSyncCmd(a),
		newEventsCmd(a),
		newSheetsCmd(a),
	)
	return rootCmd
}

// setup loads .env, resolves configuration, and initializes logging and
// the keyword dictionary.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.ResolveConfig(config.ResolveOptions{
		ConfigPath:    a.configPath,
		CLIDBPath:     a.dbPath,
		CLIDictionary: a.dictPath,
		CLILogLevel:   a.logLevel,
		CLILogFormat:  a.logFormat,
		CLIWorkers:    a.workers,
		CLITimezone:   a.timezone,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := observability.InitLogger(cfg.LogLevel.Value, cfg.LogFormat.Value); err != nil {
		return err
	}
	a.log = observability.GetLogger()

	if a.loc, err = cfg.Location(); err != nil {
		return err
	}
	if a.dict, err = dictionary.Load(cfg.Dictionary.Value); err != nil {
		return err
	}

	a.log.Debug().
		Str("config", cfg.ConfigPath).
		Str("db", cfg.DBPath.Value).
		Str("db_source", string(cfg.DBPath.Source)).
		Str("dictionary", cfg.Dictionary.Value).
		Int("dictionary_version", a.dict.Version).
		Msg("configuration resolved")
	return nil
}

// extractOptions builds extraction options from the resolved config.
func (a *app) extractOptions(sheet, label string) (sheetcal.Options, error) {
	workers, err := a.cfg.WorkerCount()
	if err != nil {
		return sheetcal.Options{}, err
	}
	opts := sheetcal.DefaultOptions()
	opts.Dictionary = a.dict
	opts.Workers = workers
	opts.Sheet = sheet
	opts.Label = label
	opts.Logger = a.log
	return opts, nil
}

func (a *app) openStore() (*store.SQLiteStore, error) {
	return store.NewStore(store.StoreConfig{DBPath: a.cfg.DBPath.Value})
}
