package locations

import (
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
)

// Documented configuration keys. Unknown keys pass through unvalidated.
const (
	ConfigShowHiddenFiles = "show_hidden_files"
	ConfigUSBMountPath    = "usb_mount_path"
	ConfigRootDirectory   = "root_directory"
)

func configDefaults() map[string]string {
	return map[string]string{
		ConfigShowHiddenFiles: "false",
		ConfigUSBMountPath:    "/media",
		ConfigRootDirectory:   "/",
	}
}

// GetConfig returns the full configuration map with defaults overlaid by
// persisted values.
func (m *Manager) GetConfig() (map[string]string, error) {
	config := configDefaults()
	err := m.store.ForEach(store.BucketConfig, func(key, value []byte) error {
		config[string(key)] = string(value)
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "read config", err)
	}
	return config, nil
}

// GetConfigValue returns one key's value, falling back to its documented
// default and then the empty string.
func (m *Manager) GetConfigValue(key string) (string, error) {
	value, err := m.store.Get(store.BucketConfig, []byte(key))
	if err == store.ErrKeyNotFound {
		return configDefaults()[key], nil
	}
	if err != nil {
		return "", errs.Wrap(errs.Internal, "read config key", err)
	}
	return string(value), nil
}

// PersistedConfigValue returns one key's stored value only, reporting
// whether it exists. Defaults are not consulted, so callers can distinguish
// an operator-set value from a documented fallback.
func (m *Manager) PersistedConfigValue(key string) (string, bool, error) {
	value, err := m.store.Get(store.BucketConfig, []byte(key))
	if err == store.ErrKeyNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, errs.Wrap(errs.Internal, "read config key", err)
	}
	return string(value), true, nil
}

// SetConfig upserts one key.
func (m *Manager) SetConfig(key, value string) error {
	if err := m.store.Put(store.BucketConfig, []byte(key), []byte(value)); err != nil {
		return errs.Wrap(errs.Internal, "write config key", err)
	}
	return nil
}
