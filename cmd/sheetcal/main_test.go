package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetcal-go/internal/store"
)

const bookingCSV = `성함,연락처,확정일시,시술
홍길동,01012345678,2025-08-05 14:30,코필러
김철수,010-9999-8888,25-08-06(수),리프팅
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_ExtractSyncEventsSheets(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "라비앙.csv")
	require.NoError(t, os.WriteFile(input, []byte(bookingCSV), 0o644))
	dbPath := filepath.Join(dir, "sheetcal.db")
	global := []string{
		"--config", filepath.Join(dir, "none.yaml"),
		"--db", dbPath,
		"--log-level", "error",
		"--log-format", "json",
		"--tz", "Asia/Seoul",
	}
	with := func(args ...string) []string { return append(append([]string{}, args...), global...) }

	out, err := execute(t, with("extract", input)...)
	require.NoError(t, err)
	assert.Contains(t, out, "라비앙성형외과")
	assert.Contains(t, out, `"010-1234-5678"`)

	sheetsDir := filepath.Join(dir, "sheets")
	_, err = execute(t, with("extract", input, "--sheets-dir", sheetsDir, "--pretty")...)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(sheetsDir, "라비앙.json"))

	out, err = execute(t, with("sync", input, "--color", "#FF0000")...)
	require.NoError(t, err)
	assert.Contains(t, out, "라비앙")

	// A second sync replaces rather than appends.
	_, err = execute(t, with("sync", input)...)
	require.NoError(t, err)

	out, err = execute(t, with("events", "--json", "--from", "2025-08-06")...)
	require.NoError(t, err)
	var events []eventView
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "라비앙성형외과_김철수", events[0].Title)
	assert.Equal(t, "#FF0000", events[0].Color)
	assert.Equal(t, "2025-08-06T09:00:00+09:00", events[0].StartsAt.Format("2006-01-02T15:04:05Z07:00"))

	out, err = execute(t, with("events")...)
	require.NoError(t, err)
	assert.Contains(t, out, "라비앙성형외과_홍길동")
	assert.Contains(t, out, "14:30")

	st, err := store.NewStore(store.StoreConfig{DBPath: dbPath})
	require.NoError(t, err)
	sheets, err := st.ListSheets(context.Background())
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.Len(t, sheets, 1)
	assert.Equal(t, 2, sheets[0].EventCount)

	out, err = execute(t, with("sheets", "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, sheets[0].ID)

	_, err = execute(t, with("sheets", "delete", sheets[0].ID)...)
	require.NoError(t, err)
	_, err = execute(t, with("sheets", "delete", sheets[0].ID)...)
	assert.ErrorIs(t, err, store.ErrSheetNotFound)
}

func TestCLI_Errors(t *testing.T) {
	dir := t.TempDir()
	cfg := []string{"--config", filepath.Join(dir, "none.yaml"), "--db", filepath.Join(dir, "x.db"), "--log-level", "error"}

	_, err := execute(t, append([]string{"extract", filepath.Join(dir, "missing.xlsx")}, cfg...)...)
	assert.Error(t, err)

	_, err = execute(t, append([]string{"events", "--from", "08/05"}, cfg...)...)
	assert.ErrorContains(t, err, "--from")

	_, err = execute(t, append([]string{"extract", "x.csv", "--workers", "none"}, cfg...)...)
	assert.Error(t, err)
}

func TestCLI_SyncClearsSheetWithoutRecords(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "라비앙.csv")
	require.NoError(t, os.WriteFile(input, []byte(bookingCSV), 0o644))
	dbPath := filepath.Join(dir, "sheetcal.db")
	args := func(extra ...string) []string {
		return append(extra, "--config", filepath.Join(dir, "none.yaml"), "--db", dbPath, "--log-level", "error")
	}
	eventCount := func() int {
		st, err := store.NewStore(store.StoreConfig{DBPath: dbPath})
		require.NoError(t, err)
		defer st.Close()
		sheets, err := st.ListSheets(context.Background())
		require.NoError(t, err)
		require.Len(t, sheets, 1)
		return sheets[0].EventCount
	}

	_, err := execute(t, args("sync", input)...)
	require.NoError(t, err)
	assert.Equal(t, 2, eventCount())

	// Too sparse to be a table: the sheet is skipped on the next run.
	require.NoError(t, os.WriteFile(input, []byte("메모\n"), 0o644))
	out, err := execute(t, args("sync", input)...)
	require.NoError(t, err)
	assert.Contains(t, out, "라비앙")
	assert.Equal(t, 0, eventCount())
}
