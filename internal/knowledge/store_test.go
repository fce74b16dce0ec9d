package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialogsynth/internal/logger"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "knowledge.db"), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestChunk(t *testing.T) {
	chunks := Chunk("Erster Absatz.\r\n\r\nZweiter\nAbsatz.\n\n\n\n  \n\nDritter.")
	assert.Equal(t, []string{"Erster Absatz.", "Zweiter\nAbsatz.", "Dritter."}, chunks)
	assert.Empty(t, Chunk("  \n\n "))
}

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"kreditkarte", "sperren", "bitte", "über", "tage"}, Terms("Kreditkarte sperren, bitte über 10 Tage? kreditkarte!"))
}

func TestEnsurePopulatedOnce(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	added, err := s.EnsurePopulated(ctx, "../../data/knowledge")
	require.NoError(t, err)
	assert.Equal(t, 7, added)

	added, err = s.EnsurePopulated(ctx, "../../data/knowledge")
	require.NoError(t, err)
	assert.Zero(t, added)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestEnsurePopulatedSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("Eins\n\nZwei"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("binary"), 0o644))

	added, err := openTemp(t).EnsurePopulated(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
}

func TestRetrieveRanksByOverlap(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	_, err := s.EnsurePopulated(ctx, "../../data/knowledge")
	require.NoError(t, err)

	got, err := s.Retrieve(ctx, "Meine Kreditkarte wurde gestohlen, bitte sperren", 2)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "karten.md", got[0].Source)
	assert.Contains(t, got[0].Text, "gestohlene Kreditkarte")
	assert.LessOrEqual(t, len(got), 2)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}

	none, err := s.Retrieve(ctx, "xyzzy", 3)
	require.NoError(t, err)
	assert.Empty(t, none)

	none, err = s.Retrieve(ctx, "a b", 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRetrieveFoldsUmlauts(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	_, err := s.EnsurePopulated(ctx, "../../data/knowledge")
	require.NoError(t, err)

	for _, q := range []string{"Überweisung", "überweisung", "ÜBERWEISUNG"} {
		t.Run(q, func(t *testing.T) {
			got, err := s.Retrieve(ctx, q, 3)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "zahlungen.txt", got[0].Source)
			assert.Contains(t, got[0].Text, "Fehlgeschlagene Überweisungen")
			assert.Equal(t, 1, got[0].Score)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "No relevant information found.", Format(nil))
	assert.Equal(t, "[a.md]\nEins\n\n[b.txt]\nZwei", Format([]Passage{
		{Source: "a.md", Text: "Eins"},
		{Source: "b.txt", Text: "Zwei"},
	}))
}
