// Package config resolves sheetcal settings from built-in defaults, a
// YAML config file, the environment and command-line flags, in that
// order of increasing precedence. Every value remembers where it came from.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/normalize"
)

type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
	SourceDefault ValueSource = "default"
)

// Environment variables read by ResolveConfig.
const (
	EnvDB         = "SHEETCAL_DB"
	EnvDictionary = "SHEETCAL_DICTIONARY"
	EnvLogLevel   = "SHEETCAL_LOG_LEVEL"
	EnvLogFormat  = "SHEETCAL_LOG_FORMAT"
	EnvWorkers    = "SHEETCAL_WORKERS"
	EnvTimezone   = "SHEETCAL_TZ"
)

const (
	DefaultDBPath    = "~/.sheetcal/sheetcal.db"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
	DefaultTimezone  = "Asia/Seoul"
)

// ErrInvalidValue marks a resolved value that cannot be converted.
var ErrInvalidValue = errors.New("invalid config value")

type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

type ResolveOptions struct {
	ConfigPath    string
	CLIDBPath     string
	CLIDictionary string
	CLILogLevel   string
	CLILogFormat  string
	CLIWorkers    string
	CLITimezone   string
}

type ResolvedConfig struct {
	ConfigPath string `json:"config_path"`

	DBPath     ResolvedValue `json:"db_path"`
	Dictionary ResolvedValue `json:"dictionary"`
	LogLevel   ResolvedValue `json:"log_level"`
	LogFormat  ResolvedValue `json:"log_format"`
	Workers    ResolvedValue `json:"workers"`
	Timezone   ResolvedValue `json:"timezone"`
}

type fileConfig struct {
	DBPath     string `yaml:"db_path"`
	Dictionary string `yaml:"dictionary"`
	Log        struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Workers  int    `yaml:"workers"`
	Timezone string `yaml:"timezone"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sheetcal", "config.yaml")
}

func ResolveConfig(opts ResolveOptions) (ResolvedConfig, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedConfig{ConfigPath: path}
	apply(&out.DBPath, DefaultDBPath, SourceDefault, "built-in default")
	apply(&out.LogLevel, DefaultLogLevel, SourceDefault, "built-in default")
	apply(&out.LogFormat, DefaultLogFormat, SourceDefault, "built-in default")
	apply(&out.Workers, strconv.Itoa(runtime.NumCPU()), SourceDefault, "built-in default")
	apply(&out.Timezone, DefaultTimezone, SourceDefault, "built-in default")

	cfg, err := loadConfig(path)
	if err != nil {
		return out, err
	}

	if cfg != nil {
		apply(&out.DBPath, cfg.DBPath, SourceConfig, path)
		apply(&out.Dictionary, cfg.Dictionary, SourceConfig, path)
		apply(&out.LogLevel, cfg.Log.Level, SourceConfig, path)
		apply(&out.LogFormat, cfg.Log.Format, SourceConfig, path)
		if cfg.Workers > 0 {
			apply(&out.Workers, strconv.Itoa(cfg.Workers), SourceConfig, path)
		}
		apply(&out.Timezone, cfg.Timezone, SourceConfig, path)
	}

	applyEnv(&out.DBPath, EnvDB)
	applyEnv(&out.Dictionary, EnvDictionary)
	applyEnv(&out.LogLevel, EnvLogLevel)
	applyEnv(&out.LogFormat, EnvLogFormat)
	applyEnv(&out.Workers, EnvWorkers)
	applyEnv(&out.Timezone, EnvTimezone)

	apply(&out.DBPath, opts.CLIDBPath, SourceCLI, "--db")
	apply(&out.Dictionary, opts.CLIDictionary, SourceCLI, "--dictionary")
	apply(&out.LogLevel, opts.CLILogLevel, SourceCLI, "--log-level")
	apply(&out.LogFormat, opts.CLILogFormat, SourceCLI, "--log-format")
	apply(&out.Workers, opts.CLIWorkers, SourceCLI, "--workers")
	apply(&out.Timezone, opts.CLITimezone, SourceCLI, "--tz")

	out.DBPath.Value = expandUserPath(out.DBPath.Value)
	out.Dictionary.Value = expandUserPath(out.Dictionary.Value)

	return out, nil
}

// WorkerCount returns the resolved worker count.
func (r ResolvedConfig) WorkerCount() (int, error) {
	n, err := strconv.Atoi(r.Workers.Value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: workers %q (from %s)", ErrInvalidValue, r.Workers.Value, r.Workers.From)
	}
	return n, nil
}

// Location returns the resolved time zone.
func (r ResolvedConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(r.Timezone.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q (from %s): %v", ErrInvalidValue, r.Timezone.Value, r.Timezone.From, err)
	}
	return loc, nil
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(normalize.StripControlBytes(b), &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
