package clipboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
)

func TestSetReplacesSelection(t *testing.T) {
	m := NewManager()

	m.Set("s1", ModeCopy, []string{"/a", "/b"})
	m.Set("s1", ModeCut, []string{"/c"})

	session, err := m.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, ModeCut, session.Mode)
	assert.Equal(t, []string{"/c"}, session.Paths)
	assert.Equal(t, 1, m.Len())
}

func TestGetMissingSession(t *testing.T) {
	m := NewManager()

	_, err := m.Get("nope")
	assert.True(t, errs.Is(err, errs.NotFound))
}

func TestTakeForPaste(t *testing.T) {
	t.Run("copy selection survives paste", func(t *testing.T) {
		m := NewManager()
		m.Set("s1", ModeCopy, []string{"/a"})

		session, err := m.TakeForPaste("s1")
		require.NoError(t, err)
		assert.Equal(t, ModeCopy, session.Mode)

		_, err = m.Get("s1")
		assert.NoError(t, err)
	})

	t.Run("cut selection is consumed at paste initiation", func(t *testing.T) {
		m := NewManager()
		m.Set("s1", ModeCut, []string{"/a"})

		_, err := m.TakeForPaste("s1")
		require.NoError(t, err)

		_, err = m.TakeForPaste("s1")
		assert.True(t, errs.Is(err, errs.NotFound))
	})
}

func TestClear(t *testing.T) {
	m := NewManager()
	m.Set("s1", ModeCopy, []string{"/a"})

	m.Clear("s1")
	_, err := m.Get("s1")
	assert.True(t, errs.Is(err, errs.NotFound))

	// missing session is a no-op
	m.Clear("never")
}

func TestSelectionSize(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("12345"), 0o644))

	dir := filepath.Join(root, "dir")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("123"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b"), []byte("12"), 0o644))

	t.Run("files and directories", func(t *testing.T) {
		assert.Equal(t, int64(10), SelectionSize([]string{file, dir}))
	})

	t.Run("missing paths are skipped", func(t *testing.T) {
		assert.Equal(t, int64(5), SelectionSize([]string{file, filepath.Join(root, "ghost")}))
	})
}
