package database

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyu-x/desktop-cleaner/internal"
	"github.com/moyu-x/desktop-cleaner/pkg/organizer"
)

func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "journal.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "Expected database file to be created")
	return db
}

func TestRun_RecordAndFinish(t *testing.T) {
	db := openTestDatabase(t)

	run, err := db.BeginRun(internal.ModeGrouped, "/home/demo/Desktop")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID())

	entries := []organizer.Entry{
		{Name: "a.txt", Extension: "txt", Category: "Miscellaneous", Source: "/s/a.txt", Destination: "/d/Miscellaneous/a.txt", Size: 3, Checksum: "abc", MIME: "unknown"},
		{Name: "b.txt", Extension: "txt", Category: "Miscellaneous", Source: "/s/b.txt", Destination: "/d/Miscellaneous/b.txt", Size: 4, Checksum: "def", MIME: "unknown"},
		{Name: "c.png", Extension: "png", Category: "Pictures", Source: "/s/c.png", Destination: "/d/Pictures/c.png", Size: 5, Checksum: "123", MIME: "image/png"},
	}
	for _, entry := range entries {
		require.NoError(t, run.Record(entry))
	}
	require.NoError(t, run.Finish(&organizer.RunResult{MovedCount: 3, Elapsed: 1500 * time.Millisecond}))

	totals, err := db.ExtensionTotals()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"txt": 2, "png": 1}, totals)

	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID(), runs[0].ID)
	assert.Equal(t, "move-grouped", runs[0].Mode)
	assert.Equal(t, 3, runs[0].MovedCount)
	assert.Equal(t, int64(1500), runs[0].ElapsedMs)
	assert.NotNil(t, runs[0].FinishedAt)
}

func TestDatabase_RecentRunsLimit(t *testing.T) {
	db := openTestDatabase(t)

	for i := 0; i < 5; i++ {
		_, err := db.BeginRun(internal.ModeFlat, fmt.Sprintf("/source/%d", i))
		require.NoError(t, err)
	}

	runs, err := db.RecentRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestDatabase_Clear(t *testing.T) {
	db := openTestDatabase(t)

	run, err := db.BeginRun(internal.ModeDelete, "/home/demo/Desktop")
	require.NoError(t, err)
	require.NoError(t, run.Record(organizer.Entry{Name: "old.log", Extension: "log", Source: "/s/old.log"}))

	require.NoError(t, db.Clear())

	totals, err := db.ExtensionTotals()
	require.NoError(t, err)
	assert.Empty(t, totals)

	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestNewDatabase_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	db, err := NewDatabase("~/.desktop-cleaner/journal.db")
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(filepath.Join(home, ".desktop-cleaner", "journal.db"))
	assert.NoError(t, err)
}
