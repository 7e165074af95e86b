// Package locations manages named filesystem bookmarks and the flat
// key/value explorer configuration.
package locations

import (
	"encoding/binary"
	"os"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
)

// Location is a persisted bookmark. Records with IsEditable=false are
// system-defined and reject delete and label/path mutation.
type Location struct {
	ID          uint64    `json:"id"`
	Key         string    `json:"key,omitempty"`
	Label       string    `json:"label"`
	Path        string    `json:"path"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	IsEditable  bool      `json:"is_editable"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Exists is computed at list time, never persisted.
	Exists bool `json:"exists"`
}

// UpdateOptions carries the optional fields of a partial update. Nil fields
// are left untouched.
type UpdateOptions struct {
	Label       *string
	Path        *string
	Description *string
}

// Manager provides CRUD over locations and the config store.
type Manager struct {
	store  *store.Store
	logger *logging.Logger
}

// NewManager creates a location manager and seeds system locations.
func NewManager(st *store.Store, logger *logging.Logger) *Manager {
	m := &Manager{store: st, logger: logger}
	if err := m.seedSystemLocations(); err != nil {
		logger.Warn("Failed to seed system locations", zap.Error(err))
	}
	return m
}

// List returns all locations ordered by label, each augmented with an
// existence flag for its path.
func (m *Manager) List() ([]Location, error) {
	var locs []Location
	err := m.store.ForEach(store.BucketLocations, func(_, value []byte) error {
		var loc Location
		if err := sonic.Unmarshal(value, &loc); err != nil {
			return err
		}
		locs = append(locs, loc)
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "list locations", err)
	}

	for i := range locs {
		_, statErr := os.Stat(locs[i].Path)
		locs[i].Exists = statErr == nil
	}

	sort.Slice(locs, func(i, j int) bool { return locs[i].Label < locs[j].Label })
	return locs, nil
}

// Get fetches one location by id.
func (m *Manager) Get(id uint64) (*Location, error) {
	value, err := m.store.Get(store.BucketLocations, locationKey(id))
	if err == store.ErrKeyNotFound {
		return nil, errs.Newf(errs.NotFound, "bookmark %d not found", id)
	}
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "get location", err)
	}

	var loc Location
	if err := sonic.Unmarshal(value, &loc); err != nil {
		return nil, errs.Wrap(errs.Internal, "decode location", err)
	}
	return &loc, nil
}

// Create inserts a user bookmark.
func (m *Manager) Create(label, path, locType, description string) (*Location, error) {
	if locType == "" {
		locType = "user_bookmark"
	}
	return m.create(Location{
		Label:       label,
		Path:        path,
		Type:        locType,
		Description: description,
		IsEditable:  true,
	})
}

func (m *Manager) create(loc Location) (*Location, error) {
	if loc.Key != "" {
		existing, err := m.findByKey(loc.Key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, errs.Newf(errs.AlreadyExists, "location key %q already exists", loc.Key)
		}
	}

	id, err := m.store.NextSequence(store.BucketLocations)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "allocate location id", err)
	}

	now := time.Now().UTC()
	loc.ID = id
	loc.CreatedAt = now
	loc.UpdatedAt = now

	if err := m.put(&loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// Update applies a partial update. Non-editable records reject label and
// path mutation.
func (m *Manager) Update(id uint64, opts UpdateOptions) (*Location, error) {
	loc, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	if !loc.IsEditable && (opts.Label != nil || opts.Path != nil) {
		return nil, errs.Newf(errs.Forbidden, "bookmark %d is not editable", id)
	}

	if opts.Label != nil {
		loc.Label = *opts.Label
	}
	if opts.Path != nil {
		loc.Path = *opts.Path
	}
	if opts.Description != nil {
		loc.Description = *opts.Description
	}
	loc.UpdatedAt = time.Now().UTC()

	if err := m.put(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Delete removes a bookmark. Non-editable records are protected.
func (m *Manager) Delete(id uint64) error {
	loc, err := m.Get(id)
	if err != nil {
		return err
	}
	if !loc.IsEditable {
		return errs.Newf(errs.Forbidden, "bookmark %d is not editable", id)
	}
	if err := m.store.Delete(store.BucketLocations, locationKey(id)); err != nil {
		return errs.Wrap(errs.Internal, "delete location", err)
	}
	return nil
}

func (m *Manager) put(loc *Location) error {
	value, err := sonic.Marshal(loc)
	if err != nil {
		return errs.Wrap(errs.Internal, "encode location", err)
	}
	if err := m.store.Put(store.BucketLocations, locationKey(loc.ID), value); err != nil {
		return errs.Wrap(errs.Internal, "store location", err)
	}
	return nil
}

func (m *Manager) findByKey(key string) (*Location, error) {
	var found *Location
	err := m.store.ForEach(store.BucketLocations, func(_, value []byte) error {
		var loc Location
		if err := sonic.Unmarshal(value, &loc); err != nil {
			return err
		}
		if loc.Key == key {
			found = &loc
		}
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "scan locations", err)
	}
	return found, nil
}

// seedSystemLocations bootstraps the protected well-known bookmarks once.
func (m *Manager) seedSystemLocations() error {
	seeds := []Location{
		{Key: "root", Label: "Root", Path: "/", Type: "system"},
		{Key: "home", Label: "Home", Path: "/home", Type: "system"},
		{Key: "media", Label: "Removable Media", Path: "/media", Type: "system"},
	}
	for _, seed := range seeds {
		existing, err := m.findByKey(seed.Key)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		seed.IsEditable = false
		if _, err := m.create(seed); err != nil {
			return err
		}
	}
	return nil
}

func locationKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}
