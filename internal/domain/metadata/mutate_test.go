package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
)

func TestMkdir(t *testing.T) {
	svc, root := newTestService(t)

	t.Run("single level", func(t *testing.T) {
		created, err := svc.Mkdir(filepath.Join(root, "docs"), false)
		require.NoError(t, err)
		assert.DirExists(t, created)
	})

	t.Run("existing path conflicts", func(t *testing.T) {
		_, err := svc.Mkdir(filepath.Join(root, "docs"), false)
		assert.True(t, errs.Is(err, errs.AlreadyExists))
	})

	t.Run("missing parent without parents flag", func(t *testing.T) {
		_, err := svc.Mkdir(filepath.Join(root, "a/b/c"), false)
		assert.True(t, errs.Is(err, errs.Internal))
	})

	t.Run("parents flag creates intermediates", func(t *testing.T) {
		created, err := svc.Mkdir(filepath.Join(root, "x/y/z"), true)
		require.NoError(t, err)
		assert.DirExists(t, created)
	})
}

func TestDelete(t *testing.T) {
	svc, root := newTestService(t)

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(root, "f.txt")
		writeFile(t, path, "x")

		require.NoError(t, svc.Delete(path, false))
		assert.NoFileExists(t, path)
	})

	t.Run("missing path", func(t *testing.T) {
		err := svc.Delete(filepath.Join(root, "ghost"), false)
		assert.True(t, errs.Is(err, errs.NotFound))
	})

	t.Run("empty directory without recursive", func(t *testing.T) {
		dir := filepath.Join(root, "empty")
		require.NoError(t, os.Mkdir(dir, 0o755))

		require.NoError(t, svc.Delete(dir, false))
		assert.NoDirExists(t, dir)
	})

	t.Run("populated directory without recursive", func(t *testing.T) {
		dir := filepath.Join(root, "full")
		require.NoError(t, os.Mkdir(dir, 0o755))
		writeFile(t, filepath.Join(dir, "child"), "x")

		err := svc.Delete(dir, false)
		assert.True(t, errs.Is(err, errs.InvalidArgument))
		assert.DirExists(t, dir)
	})

	t.Run("populated directory with recursive", func(t *testing.T) {
		dir := filepath.Join(root, "full2")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
		writeFile(t, filepath.Join(dir, "nested", "child"), "x")

		require.NoError(t, svc.Delete(dir, true))
		assert.NoDirExists(t, dir)
	})
}

func TestRename(t *testing.T) {
	svc, root := newTestService(t)

	t.Run("bare name stays in source directory", func(t *testing.T) {
		src := filepath.Join(root, "old.txt")
		writeFile(t, src, "data")

		dest, err := svc.Rename(src, "new.txt", false)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(root, "new.txt"), dest)
		assert.FileExists(t, dest)
		assert.NoFileExists(t, src)
	})

	t.Run("full path moves across directories", func(t *testing.T) {
		src := filepath.Join(root, "move-me.txt")
		writeFile(t, src, "data")
		sub := filepath.Join(root, "sub")
		require.NoError(t, os.Mkdir(sub, 0o755))

		dest, err := svc.Rename(src, filepath.Join(sub, "moved.txt"), false)
		require.NoError(t, err)
		assert.FileExists(t, dest)
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := svc.Rename(filepath.Join(root, "ghost"), "x", false)
		assert.True(t, errs.Is(err, errs.NotFound))
	})

	t.Run("existing destination without overwrite", func(t *testing.T) {
		src := filepath.Join(root, "a.txt")
		writeFile(t, src, "a")
		writeFile(t, filepath.Join(root, "b.txt"), "b")

		_, err := svc.Rename(src, "b.txt", false)
		assert.True(t, errs.Is(err, errs.AlreadyExists))
	})

	t.Run("overwrite replaces destination", func(t *testing.T) {
		src := filepath.Join(root, "c.txt")
		writeFile(t, src, "fresh")
		dst := filepath.Join(root, "d.txt")
		writeFile(t, dst, "stale")

		got, err := svc.Rename(src, "d.txt", true)
		require.NoError(t, err)

		content, err := os.ReadFile(got)
		require.NoError(t, err)
		assert.Equal(t, "fresh", string(content))
	})
}

func TestCopyFile(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o640))

	dst := filepath.Join(root, "dst.txt")
	require.NoError(t, CopyFile(src, dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))

	srcInfo, err := os.Stat(src)
	require.NoError(t, err)
	dstInfo, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, srcInfo.Mode().Perm(), dstInfo.Mode().Perm())
	assert.Equal(t, srcInfo.ModTime().Unix(), dstInfo.ModTime().Unix())
}

func TestCopyTree(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "deep.txt"), []byte("2"), 0o644))
	require.NoError(t, os.Symlink("top.txt", filepath.Join(src, "link")))

	dst := filepath.Join(root, "copy")
	require.NoError(t, CopyTree(src, dst))

	assert.FileExists(t, filepath.Join(dst, "top.txt"))
	assert.FileExists(t, filepath.Join(dst, "nested", "deep.txt"))

	target, err := os.Readlink(filepath.Join(dst, "link"))
	require.NoError(t, err)
	assert.Equal(t, "top.txt", target)
}

func TestMove(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	dst := filepath.Join(root, "dst.txt")
	require.NoError(t, Move(src, dst))

	assert.FileExists(t, dst)
	assert.NoFileExists(t, src)
}
