package operations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runPasteSync(t *testing.T, e *Engine, opType Type, params PasteParams) *Operation {
	t.Helper()
	op, err := e.tracker.Create(opType)
	require.NoError(t, err)
	op.SourcePaths = append([]string(nil), params.Sources...)
	op.DestinationPath = params.Destination
	require.NoError(t, e.tracker.Update(op))

	e.runPaste(op, params)

	final, err := e.tracker.Get(op.ID)
	require.NoError(t, err)
	return final
}

func pasteFixture(t *testing.T) (root, src, dest string) {
	t.Helper()
	root = t.TempDir()
	src = filepath.Join(root, "src")
	dest = filepath.Join(root, "dest")
	require.NoError(t, os.Mkdir(src, 0o755))
	require.NoError(t, os.Mkdir(dest, 0o755))
	return root, src, dest
}

func TestRunPasteCopy(t *testing.T) {
	root, src, dest := pasteFixture(t)
	e := newTestEngine(t, root)

	fileA := filepath.Join(src, "a.txt")
	require.NoError(t, os.WriteFile(fileA, []byte("alpha"), 0o644))
	tree := filepath.Join(src, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "deep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "deep", "b.txt"), []byte("beta"), 0o644))

	op := runPasteSync(t, e, TypeCopy, PasteParams{
		Sources:     []string{fileA, tree},
		Destination: dest,
		Conflict:    ConflictRename,
	})

	assert.Equal(t, StatusCompleted, op.Status)
	assert.Equal(t, 2, op.TotalItems)
	assert.Equal(t, 2, op.ProcessedItems)
	assert.Equal(t, 100, op.Progress)
	assert.Empty(t, op.ErrorMessage)
	require.NotNil(t, op.CompletedAt)

	assert.FileExists(t, filepath.Join(dest, "a.txt"))
	assert.FileExists(t, filepath.Join(dest, "tree", "deep", "b.txt"))
	// copy keeps sources
	assert.FileExists(t, fileA)
}

func TestRunPasteMove(t *testing.T) {
	root, src, dest := pasteFixture(t)
	e := newTestEngine(t, root)

	file := filepath.Join(src, "m.txt")
	require.NoError(t, os.WriteFile(file, []byte("move me"), 0o644))

	op := runPasteSync(t, e, TypeMove, PasteParams{
		Sources:     []string{file},
		Destination: dest,
		Conflict:    ConflictRename,
	})

	assert.Equal(t, StatusCompleted, op.Status)
	assert.FileExists(t, filepath.Join(dest, "m.txt"))
	assert.NoFileExists(t, file)
}

func TestRunPasteConflicts(t *testing.T) {
	t.Run("skip leaves target untouched", func(t *testing.T) {
		root, src, dest := pasteFixture(t)
		e := newTestEngine(t, root)

		file := filepath.Join(src, "c.txt")
		require.NoError(t, os.WriteFile(file, []byte("new"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dest, "c.txt"), []byte("old"), 0o644))

		op := runPasteSync(t, e, TypeCopy, PasteParams{
			Sources:     []string{file},
			Destination: dest,
			Conflict:    ConflictSkip,
		})

		assert.Equal(t, StatusCompleted, op.Status)
		assert.Zero(t, op.ProcessedItems)

		content, err := os.ReadFile(filepath.Join(dest, "c.txt"))
		require.NoError(t, err)
		assert.Equal(t, "old", string(content))
	})

	t.Run("overwrite replaces target", func(t *testing.T) {
		root, src, dest := pasteFixture(t)
		e := newTestEngine(t, root)

		file := filepath.Join(src, "c.txt")
		require.NoError(t, os.WriteFile(file, []byte("new"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dest, "c.txt"), []byte("old"), 0o644))

		op := runPasteSync(t, e, TypeCopy, PasteParams{
			Sources:     []string{file},
			Destination: dest,
			Conflict:    ConflictOverwrite,
		})

		assert.Equal(t, StatusCompleted, op.Status)
		assert.Equal(t, 1, op.ProcessedItems)

		content, err := os.ReadFile(filepath.Join(dest, "c.txt"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))
	})

	t.Run("rename appends counter before extension", func(t *testing.T) {
		root, src, dest := pasteFixture(t)
		e := newTestEngine(t, root)

		file := filepath.Join(src, "c.txt")
		require.NoError(t, os.WriteFile(file, []byte("new"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dest, "c.txt"), []byte("old"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dest, "c (1).txt"), []byte("older"), 0o644))

		op := runPasteSync(t, e, TypeCopy, PasteParams{
			Sources:     []string{file},
			Destination: dest,
			Conflict:    ConflictRename,
		})

		assert.Equal(t, StatusCompleted, op.Status)
		assert.FileExists(t, filepath.Join(dest, "c (2).txt"))
	})

	t.Run("custom rename pattern", func(t *testing.T) {
		root, src, dest := pasteFixture(t)
		e := newTestEngine(t, root)

		file := filepath.Join(src, "c.txt")
		require.NoError(t, os.WriteFile(file, []byte("new"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dest, "c.txt"), []byte("old"), 0o644))

		op := runPasteSync(t, e, TypeCopy, PasteParams{
			Sources:       []string{file},
			Destination:   dest,
			Conflict:      ConflictRename,
			RenamePattern: "{name}_copy{n}",
		})

		assert.Equal(t, StatusCompleted, op.Status)
		assert.FileExists(t, filepath.Join(dest, "c_copy1.txt"))
	})
}

func TestRunPastePartialSuccess(t *testing.T) {
	root, src, dest := pasteFixture(t)
	e := newTestEngine(t, root)

	good := filepath.Join(src, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("ok"), 0o644))
	missing := filepath.Join(src, "missing.txt")

	op := runPasteSync(t, e, TypeCopy, PasteParams{
		Sources:     []string{missing, good},
		Destination: dest,
		Conflict:    ConflictRename,
	})

	// one success keeps the run completed; the failure is reported in
	// error_message
	assert.Equal(t, StatusCompleted, op.Status)
	assert.Equal(t, 1, op.ProcessedItems)
	assert.Contains(t, op.ErrorMessage, "missing.txt")
	assert.FileExists(t, filepath.Join(dest, "good.txt"))
}

func TestRunPasteAllFailed(t *testing.T) {
	root, src, dest := pasteFixture(t)
	e := newTestEngine(t, root)

	op := runPasteSync(t, e, TypeCopy, PasteParams{
		Sources:     []string{filepath.Join(src, "ghost1"), filepath.Join(src, "ghost2")},
		Destination: dest,
		Conflict:    ConflictRename,
	})

	assert.Equal(t, StatusFailed, op.Status)
	assert.Zero(t, op.ProcessedItems)
	assert.NotEmpty(t, op.ErrorMessage)
	require.NotNil(t, op.CompletedAt)
}

func TestNextFreeName(t *testing.T) {
	dest := t.TempDir()

	t.Run("counter starts at one", func(t *testing.T) {
		target, ok := nextFreeName(dest, "file.txt", DefaultRenamePattern)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dest, "file (1).txt"), target)
	})

	t.Run("skips occupied names", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dest, "doc (1).pdf"), []byte("x"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dest, "doc (2).pdf"), []byte("x"), 0o644))

		target, ok := nextFreeName(dest, "doc.pdf", DefaultRenamePattern)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dest, "doc (3).pdf"), target)
	})

	t.Run("name without extension", func(t *testing.T) {
		target, ok := nextFreeName(dest, "Makefile", DefaultRenamePattern)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dest, "Makefile (1)"), target)
	})
}
