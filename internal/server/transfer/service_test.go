package transfer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passvault/internal/common"
	"passvault/internal/logging"
	"passvault/internal/server/vault"
)

func newTestService(t *testing.T) (*Service, vault.Repository) {
	t.Helper()
	repo := vault.NewInMemoryRepository()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewService(repo, logger), repo
}

func seedEntries(t *testing.T, repo vault.Repository, owner string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := repo.Create(context.Background(), &vault.Entry{
			UserID: owner, Title: "t", Username: "u", Password: "p", URL: "url", Notes: "n",
		})
		require.NoError(t, err)
	}
}

func TestExportThenImport_DoublesEntries(t *testing.T) {
	s, repo := newTestService(t)
	ctx := context.Background()
	owner := uuid.NewString()

	seedEntries(t, repo, owner, 3)

	exported, err := s.Export(ctx, owner)
	require.NoError(t, err)
	require.Len(t, exported, 3)

	document, err := json.Marshal(exported)
	require.NoError(t, err)

	result, err := s.Import(ctx, owner, document)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 0, result.Failed)

	entries, err := repo.GetByUser(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, entries, 6)

	// the original entries are untouched
	for _, e := range entries[:3] {
		assert.Equal(t, "t", e.Title)
		assert.Equal(t, "p", e.Password)
	}
}

func TestImport_DiscardsIDsAndRestampsOwner(t *testing.T) {
	s, repo := newTestService(t)
	ctx := context.Background()
	owner := uuid.NewString()

	stale := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	foreign := []vault.Entry{
		{ID: "stale-id", UserID: "someone-else", Title: "t1", CreatedAt: stale, UpdatedAt: stale},
		{ID: "stale-id", UserID: "someone-else", Title: "t2", CreatedAt: stale, UpdatedAt: stale},
	}
	document, err := json.Marshal(foreign)
	require.NoError(t, err)

	result, err := s.Import(ctx, owner, document)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	entries, err := repo.GetByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, owner, e.UserID)
		assert.NotEqual(t, "stale-id", e.ID)
		// timestamps are restamped at insert, not carried over
		assert.True(t, e.CreatedAt.After(stale))
		assert.True(t, e.UpdatedAt.After(stale))
	}
}

func TestImport_RejectsNonArray(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	documents := [][]byte{
		[]byte(`{"title":"not an array"}`),
		[]byte(`"just a string"`),
		[]byte(`not json`),
		[]byte(`null`),
		[]byte(`42`),
	}

	for _, document := range documents {
		_, err := s.Import(ctx, uuid.NewString(), document)
		assert.ErrorIs(t, err, common.ErrValidation, "document %q", document)
	}
}

func TestImport_MalformedElementDoesNotSinkBatch(t *testing.T) {
	s, repo := newTestService(t)
	ctx := context.Background()
	owner := uuid.NewString()

	document := []byte(`[{"title":"good1"}, 5, {"title":"good2"}, "nope"]`)

	result, err := s.Import(ctx, owner, document)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 1, result.Errors[0].Index)
	assert.Equal(t, 3, result.Errors[1].Index)

	entries, err := repo.GetByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "good1", entries[0].Title)
	assert.Equal(t, "good2", entries[1].Title)
}

func TestImport_EmptyArray(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	result, err := s.Import(ctx, uuid.NewString(), []byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 0, result.Failed)
}

func TestExport_EmptyVault(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	entries, err := s.Export(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
