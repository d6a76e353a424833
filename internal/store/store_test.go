package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexreader/codex-core/internal/domain"
	"github.com/codexreader/codex-core/internal/store"
)

func setupTestStore(t *testing.T) (*store.Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath, nil)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func TestStore_LibraryIndex_EmptyOnFreshStore(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	metas, err := s.LoadLibraryIndex()
	require.NoError(t, err)
	assert.Empty(t, metas)
}

func TestStore_LibraryIndex_RoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	metas := []*domain.DocumentMeta{
		domain.NewDocumentMeta("alpha.pdf", 100, 1000),
		domain.NewDocumentMeta("beta.pdf", 200, 2000),
	}

	require.NoError(t, s.SaveLibraryIndex(metas))

	loaded, err := s.LoadLibraryIndex()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "alpha.pdf:100", loaded[0].ID)
	assert.Equal(t, "alpha", loaded[0].Title)
	assert.Equal(t, int64(2000), loaded[1].AddedAt)
}

func TestStore_Blob_RoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	data := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff}
	require.NoError(t, s.PutBlob("doc-1", data))

	got, err := s.GetBlob("doc-1")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestStore_Blob_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetBlob("nonexistent")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Blob_Delete(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	require.NoError(t, s.PutBlob("doc-1", []byte("bytes")))
	require.NoError(t, s.DeleteBlob("doc-1"))

	_, err := s.GetBlob("doc-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_State_RoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	state := domain.NewDocumentState(5000)
	state.CurrentPage = 42
	state.TotalPages = 120
	state.Highlights = append(state.Highlights, domain.Highlight{
		ID:         "hl-1",
		PageNumber: 42,
		Text:       "a passage",
		Rects:      []domain.Rect{{X: 1, Y: 2, Width: 3, Height: 4}},
		Color:      domain.HighlightYellow,
		CreatedAt:  5000,
	})

	require.NoError(t, s.SaveState("doc-1", &state))

	loaded, err := s.LoadState("doc-1")
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.CurrentPage)
	assert.Equal(t, 120, loaded.TotalPages)
	require.Len(t, loaded.Highlights, 1)
	assert.Equal(t, domain.HighlightYellow, loaded.Highlights[0].Color)
}

func TestStore_State_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.LoadState("nonexistent")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLegacyStore_Base64Fallback(t *testing.T) {
	tmpDir := t.TempDir()

	legacy, err := store.OpenLegacy(filepath.Join(tmpDir, "legacy.db"), nil)
	require.NoError(t, err)
	defer legacy.Close()

	data := []byte{0x01, 0x02, 0xfe, 0xff}
	require.NoError(t, legacy.PutBlob("doc-1", data))

	got, err := legacy.GetBlob("doc-1")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLegacyStore_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	legacy, err := store.OpenLegacy(filepath.Join(tmpDir, "legacy.db"), nil)
	require.NoError(t, err)
	defer legacy.Close()

	_, err = legacy.GetBlob("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLegacyStore_Delete(t *testing.T) {
	tmpDir := t.TempDir()

	legacy, err := store.OpenLegacy(filepath.Join(tmpDir, "legacy.db"), nil)
	require.NoError(t, err)
	defer legacy.Close()

	require.NoError(t, legacy.PutBlob("doc-1", []byte("bytes")))
	require.NoError(t, legacy.DeleteBlob("doc-1"))

	_, err = legacy.GetBlob("doc-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
