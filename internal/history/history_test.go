package history

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := s.Record(Entry{
		Title:      "Shape of You",
		Artists:    "Ed Sheeran",
		SourceID:   "JGwWNGJdvx8",
		Path:       "/music/Shape of You - Ed Sheeran.m4a",
		Placed:     true,
		SizeBytes:  4_000_000,
		AcquiredAt: base,
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	_, err = s.Record(Entry{
		Title:      "Under Pressure",
		Artists:    "Queen, David Bowie",
		SourceID:   "a01QQZyl-_I",
		Path:       "Under Pressure - Queen, David Bowie.m4a",
		AcquiredAt: base.Add(time.Minute),
	})
	require.NoError(t, err)

	entries, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Under Pressure", entries[0].Title)
	assert.False(t, entries[0].Placed)
	assert.Zero(t, entries[0].SizeBytes)

	assert.Equal(t, "Shape of You", entries[1].Title)
	assert.True(t, entries[1].Placed)
	assert.Equal(t, int64(4_000_000), entries[1].SizeBytes)
	assert.True(t, entries[1].AcquiredAt.Equal(base))
}

func TestRecentLimit(t *testing.T) {
	s := openTestStore(t)
	for i := range 5 {
		_, err := s.Record(Entry{Title: "t", SourceID: "id", Path: "p", AcquiredAt: time.Unix(int64(i+1), 0)})
		require.NoError(t, err)
	}

	entries, err := s.Recent(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].AcquiredAt.Equal(time.Unix(5, 0)))

	all, err := s.Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestRecordDefaultsTimestamp(t *testing.T) {
	s := openTestStore(t)
	before := time.Now()

	e, err := s.Record(Entry{Title: "t", SourceID: "id", Path: "p"})
	require.NoError(t, err)
	assert.False(t, e.AcquiredAt.Before(before))
}

func TestRecentEmpty(t *testing.T) {
	s := openTestStore(t)
	entries, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(Entry{Title: "t", SourceID: "id", Path: "p"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	entries, err := reopened.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWithTx_Rollback(t *testing.T) {
	s := openTestStore(t)
	testErr := errors.New("test error")

	err := withTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO acquisitions (title, artists, source_id, path, acquired_at) VALUES ('t', '', 'id', 'p', 1)`); err != nil {
			return err
		}
		return testErr
	})
	require.ErrorIs(t, err, testErr)

	entries, err := s.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, entries, "insert must be rolled back")
}
