package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestResolveConfig_Precedence_ConfigEnvCLI(t *testing.T) {
	cfgPath := writeConfig(t, `db_path: /tmp/from-config.db
dictionary: /tmp/dict.yaml
log:
  level: warn
  format: json
workers: 2
`)

	t.Setenv(EnvDB, "/tmp/from-env.db")
	t.Setenv(EnvLogLevel, "debug")

	resolved, err := ResolveConfig(ResolveOptions{
		ConfigPath: cfgPath,
		CLIDBPath:  "/tmp/from-cli.db",
	})
	require.NoError(t, err)

	assert.Equal(t, ResolvedValue{Value: "/tmp/from-cli.db", Source: SourceCLI, From: "--db"}, resolved.DBPath)
	assert.Equal(t, ResolvedValue{Value: "debug", Source: SourceEnv, From: EnvLogLevel}, resolved.LogLevel)
	assert.Equal(t, SourceConfig, resolved.LogFormat.Source)
	assert.Equal(t, "json", resolved.LogFormat.Value)
	assert.Equal(t, cfgPath, resolved.Dictionary.From)
	assert.Equal(t, SourceDefault, resolved.Timezone.Source)

	n, err := resolved.WorkerCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestResolveConfig_MissingFileUsesDefaults(t *testing.T) {
	resolved, err := ResolveConfig(ResolveOptions{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	require.NoError(t, err)

	assert.Equal(t, SourceDefault, resolved.DBPath.Source)
	assert.Equal(t, DefaultLogLevel, resolved.LogLevel.Value)
	assert.Empty(t, resolved.Dictionary.Value)

	loc, err := resolved.Location()
	require.NoError(t, err)
	assert.Equal(t, DefaultTimezone, loc.String())
}

func TestResolveConfig_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	resolved, err := ResolveConfig(ResolveOptions{
		ConfigPath: filepath.Join(home, "none.yaml"),
		CLIDBPath:  "~/data/events.db",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "events.db"), resolved.DBPath.Value)
}

func TestResolveConfig_StripsControlCharacters(t *testing.T) {
	cfgPath := writeConfig(t, "log:\n  level: \x00error\x1b\n")

	resolved, err := ResolveConfig(ResolveOptions{ConfigPath: cfgPath})
	require.NoError(t, err)
	assert.Equal(t, "error", resolved.LogLevel.Value)
}

func TestResolveConfig_InvalidYAML(t *testing.T) {
	cfgPath := writeConfig(t, "log: [unclosed")
	_, err := ResolveConfig(ResolveOptions{ConfigPath: cfgPath})
	assert.Error(t, err)
}

func TestResolvedConfig_InvalidValues(t *testing.T) {
	t.Setenv(EnvWorkers, "many")
	t.Setenv(EnvTimezone, "Mars/Olympus")

	resolved, err := ResolveConfig(ResolveOptions{ConfigPath: filepath.Join(t.TempDir(), "none.yaml")})
	require.NoError(t, err)

	_, err = resolved.WorkerCount()
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = resolved.Location()
	assert.ErrorIs(t, err, ErrInvalidValue)
}
