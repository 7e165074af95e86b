package locations

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "explorer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewManager(st, &logging.Logger{Logger: zap.NewNop()})
}

func findLocation(t *testing.T, locs []Location, key string) *Location {
	t.Helper()
	for i := range locs {
		if locs[i].Key == key {
			return &locs[i]
		}
	}
	return nil
}

func TestSeedSystemLocations(t *testing.T) {
	m := newTestManager(t)

	locs, err := m.List()
	require.NoError(t, err)
	require.Len(t, locs, 3)

	root := findLocation(t, locs, "root")
	require.NotNil(t, root)
	assert.Equal(t, "/", root.Path)
	assert.Equal(t, "system", root.Type)
	assert.False(t, root.IsEditable)
	assert.True(t, root.Exists)

	assert.NotNil(t, findLocation(t, locs, "home"))
	assert.NotNil(t, findLocation(t, locs, "media"))
}

func TestCreateBookmark(t *testing.T) {
	m := newTestManager(t)

	loc, err := m.Create("Projects", "/home/projects", "", "work tree")
	require.NoError(t, err)

	assert.NotZero(t, loc.ID)
	assert.Equal(t, "user_bookmark", loc.Type)
	assert.True(t, loc.IsEditable)
	assert.Equal(t, loc.CreatedAt, loc.UpdatedAt)

	got, err := m.Get(loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Projects", got.Label)
}

func TestListSortedByLabel(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Create("Zeta", "/z", "", "")
	require.NoError(t, err)
	_, err = m.Create("Alpha", "/a", "", "")
	require.NoError(t, err)

	locs, err := m.List()
	require.NoError(t, err)

	labels := make([]string, len(locs))
	for i, l := range locs {
		labels[i] = l.Label
	}
	assert.IsNonDecreasing(t, labels)
}

func TestExistsFlag(t *testing.T) {
	m := newTestManager(t)
	real := t.TempDir()

	there, err := m.Create("There", real, "", "")
	require.NoError(t, err)
	gone, err := m.Create("Gone", filepath.Join(real, "missing"), "", "")
	require.NoError(t, err)

	locs, err := m.List()
	require.NoError(t, err)

	for _, l := range locs {
		switch l.ID {
		case there.ID:
			assert.True(t, l.Exists)
		case gone.ID:
			assert.False(t, l.Exists)
		}
	}
}

func TestUpdateBookmark(t *testing.T) {
	m := newTestManager(t)

	loc, err := m.Create("Old", "/old", "", "")
	require.NoError(t, err)

	label := "New"
	path := "/new"
	updated, err := m.Update(loc.ID, UpdateOptions{Label: &label, Path: &path})
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Label)
	assert.Equal(t, "/new", updated.Path)

	t.Run("missing id", func(t *testing.T) {
		_, err := m.Update(9999, UpdateOptions{Label: &label})
		assert.True(t, errs.Is(err, errs.NotFound))
	})
}

func TestSystemLocationProtection(t *testing.T) {
	m := newTestManager(t)

	locs, err := m.List()
	require.NoError(t, err)
	root := findLocation(t, locs, "root")
	require.NotNil(t, root)

	t.Run("delete rejected", func(t *testing.T) {
		err := m.Delete(root.ID)
		assert.True(t, errs.Is(err, errs.Forbidden))
	})

	t.Run("label mutation rejected", func(t *testing.T) {
		label := "Hacked"
		_, err := m.Update(root.ID, UpdateOptions{Label: &label})
		assert.True(t, errs.Is(err, errs.Forbidden))
	})

	t.Run("description mutation allowed", func(t *testing.T) {
		desc := "the filesystem root"
		updated, err := m.Update(root.ID, UpdateOptions{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, desc, updated.Description)
	})
}

func TestDeleteBookmark(t *testing.T) {
	m := newTestManager(t)

	loc, err := m.Create("Temp", "/tmp/x", "", "")
	require.NoError(t, err)

	require.NoError(t, m.Delete(loc.ID))

	_, err = m.Get(loc.ID)
	assert.True(t, errs.Is(err, errs.NotFound))
}

func TestConfig(t *testing.T) {
	m := newTestManager(t)

	t.Run("defaults", func(t *testing.T) {
		cfg, err := m.GetConfig()
		require.NoError(t, err)

		assert.Equal(t, "false", cfg[ConfigShowHiddenFiles])
		assert.Equal(t, "/media", cfg[ConfigUSBMountPath])
		assert.Equal(t, "/", cfg[ConfigRootDirectory])
	})

	t.Run("set overlays default", func(t *testing.T) {
		require.NoError(t, m.SetConfig(ConfigShowHiddenFiles, "true"))

		value, err := m.GetConfigValue(ConfigShowHiddenFiles)
		require.NoError(t, err)
		assert.Equal(t, "true", value)

		cfg, err := m.GetConfig()
		require.NoError(t, err)
		assert.Equal(t, "true", cfg[ConfigShowHiddenFiles])
		assert.Equal(t, "/media", cfg[ConfigUSBMountPath])
	})

	t.Run("unknown keys pass through", func(t *testing.T) {
		require.NoError(t, m.SetConfig("theme", "dark"))

		value, err := m.GetConfigValue("theme")
		require.NoError(t, err)
		assert.Equal(t, "dark", value)
	})

	t.Run("persisted value is distinguishable from default", func(t *testing.T) {
		_, ok, err := m.PersistedConfigValue(ConfigRootDirectory)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, m.SetConfig(ConfigRootDirectory, "/srv/files"))

		value, ok, err := m.PersistedConfigValue(ConfigRootDirectory)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "/srv/files", value)
	})
}
