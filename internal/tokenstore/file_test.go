package tokenstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testRecord() Record {
	return Record{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		IssuedAt:     time.Date(2026, 7, 25, 9, 30, 0, 0, time.UTC),
	}
}

func TestFile_SaveReadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	st, err := NewFile(path)
	require.NoError(t, err)

	require.NoError(t, st.Save(testRecord()))

	got, err := st.Read()
	require.NoError(t, err)
	require.Equal(t, testRecord(), got)

	// Права файла — только владелец.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFile_ReadAbsent(t *testing.T) {
	t.Parallel()

	st, err := NewFile(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)

	_, err = st.Read()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFile_SaveOverwrites(t *testing.T) {
	t.Parallel()

	st, err := NewFile(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)

	require.NoError(t, st.Save(testRecord()))

	next := testRecord()
	next.AccessToken = "access-2"
	require.NoError(t, st.Save(next))

	got, err := st.Read()
	require.NoError(t, err)
	require.Equal(t, "access-2", got.AccessToken)
	require.Equal(t, "refresh-1", got.RefreshToken)
}

func TestFile_ClearIdempotent(t *testing.T) {
	t.Parallel()

	st, err := NewFile(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)

	// Clear на пустом хранилище — no-op, не ошибка.
	require.NoError(t, st.Clear())

	require.NoError(t, st.Save(testRecord()))
	require.NoError(t, st.Clear())
	require.NoError(t, st.Clear())

	_, err = st.Read()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFile_CorruptedFileReadsAsAbsent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	st, err := NewFile(path)
	require.NoError(t, err)

	_, err = st.Read()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFile_EmptyPathRejected(t *testing.T) {
	t.Parallel()

	_, err := NewFile("")
	require.Error(t, err)
}

func TestMemory_Contract(t *testing.T) {
	t.Parallel()

	st := NewMemory()

	_, err := st.Read()
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Save(testRecord()))

	got, err := st.Read()
	require.NoError(t, err)
	require.Equal(t, testRecord(), got)

	require.NoError(t, st.Clear())
	require.NoError(t, st.Clear())

	_, err = st.Read()
	require.ErrorIs(t, err, ErrNotFound)
}
