package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexreader/codex-core/internal/domain"
	"github.com/codexreader/codex-core/internal/errors"
	"github.com/codexreader/codex-core/internal/logger"
	"github.com/codexreader/codex-core/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func setupLibrary(t *testing.T, s *store.Store) *LibraryService {
	t.Helper()

	lib, err := NewLibraryService(s, nil, nil, logger.Discard().Logger)
	require.NoError(t, err)
	return lib
}

func TestLibraryAdd(t *testing.T) {
	s := setupTestStore(t)
	lib := setupLibrary(t, s)

	data := []byte("pdf bytes")
	meta := lib.Add(data, "thesis.pdf", int64(len(data)))

	assert.Equal(t, "thesis.pdf:9", meta.ID)
	assert.Equal(t, "thesis", meta.Title)

	got, err := lib.GetBytes(meta.ID)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.Len(t, lib.List(), 1)
}

func TestLibraryAdd_SameFileDeduplicates(t *testing.T) {
	s := setupTestStore(t)
	lib := setupLibrary(t, s)

	data := []byte("pdf bytes")
	first := lib.Add(data, "thesis.pdf", int64(len(data)))

	// Simulate the first import having happened earlier.
	first.LastReadAt = 1000
	pages := 120
	lib.Update(first.ID, domain.MetaUpdate{TotalPages: &pages})

	second := lib.Add(data, "thesis.pdf", int64(len(data)))

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, lib.List(), 1)

	// Existing record was refreshed, not replaced.
	assert.Equal(t, 120, second.TotalPages)
	assert.Greater(t, second.LastReadAt, int64(1000))
}

func TestLibraryAdd_IndexSurvivesReload(t *testing.T) {
	s := setupTestStore(t)
	lib := setupLibrary(t, s)

	lib.Add([]byte("a"), "a.pdf", 1)
	lib.Add([]byte("bb"), "b.pdf", 2)

	reloaded := setupLibrary(t, s)
	assert.Len(t, reloaded.List(), 2)
}

func TestLibraryList_MostRecentlyReadFirst(t *testing.T) {
	s := setupTestStore(t)
	lib := setupLibrary(t, s)

	a := lib.Add([]byte("a"), "a.pdf", 1)
	b := lib.Add([]byte("b"), "b.pdf", 1)

	older := int64(1000)
	newer := int64(2000)
	lib.Update(a.ID, domain.MetaUpdate{LastReadAt: &newer})
	lib.Update(b.ID, domain.MetaUpdate{LastReadAt: &older})

	docs := lib.List()
	require.Len(t, docs, 2)
	assert.Equal(t, a.ID, docs[0].ID)
	assert.Equal(t, b.ID, docs[1].ID)
}

func TestLibraryUpdate_UnknownIDIsNoOp(t *testing.T) {
	s := setupTestStore(t)
	lib := setupLibrary(t, s)

	title := "ghost"
	lib.Update("missing:1", domain.MetaUpdate{Title: &title})

	assert.Empty(t, lib.List())
}

func TestLibraryRemove_DeletesEverything(t *testing.T) {
	s := setupTestStore(t)
	lib := setupLibrary(t, s)

	meta := lib.Add([]byte("bytes"), "doc.pdf", 5)

	state := domain.NewDocumentState(time.Now().UnixMilli())
	require.NoError(t, s.SaveState(meta.ID, &state))

	lib.Remove(meta.ID)

	assert.Nil(t, lib.Get(meta.ID))
	assert.Empty(t, lib.List())

	_, err := lib.GetBytes(meta.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = s.LoadState(meta.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLibraryGetBytes_FallsBackToLegacyStore(t *testing.T) {
	s := setupTestStore(t)

	legacy, err := store.OpenLegacy(filepath.Join(t.TempDir(), "legacy.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = legacy.Close() })

	lib, err := NewLibraryService(s, legacy, nil, logger.Discard().Logger)
	require.NoError(t, err)

	// The document record exists but its bytes live only in the old store.
	meta := lib.Add(nil, "old.pdf", 4)
	require.NoError(t, legacy.PutBlob(meta.ID, []byte("old!")))
	require.NoError(t, s.DeleteBlob(meta.ID))

	got, err := lib.GetBytes(meta.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("old!"), got)
}

func TestLibraryGetBytes_MissingEverywhere(t *testing.T) {
	s := setupTestStore(t)
	lib := setupLibrary(t, s)

	_, err := lib.GetBytes("nope:0")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
