// Package metadata implements the synchronous filesystem surface: stat,
// directory listing, and the create/delete/rename primitives.
package metadata

import (
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/format"
)

// Service provides filesystem metadata and mutation primitives rooted at a
// configured directory. Paths are normalized but not confined to the root.
type Service struct {
	rootDir string
	rootFn  func() string
	logger  *logging.Logger
}

// NewService creates a metadata service.
func NewService(rootDir string, logger *logging.Logger) *Service {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		abs = "/"
	}
	return &Service{rootDir: abs, logger: logger}
}

// SetRootSource installs a dynamic root lookup, consulted on every Root and
// empty-path Resolve. An empty or failed lookup falls back to the static
// root. Must be called before the service handles requests.
func (s *Service) SetRootSource(fn func() string) {
	s.rootFn = fn
}

// Root returns the effective root directory.
func (s *Service) Root() string {
	if s.rootFn != nil {
		if root := s.rootFn(); root != "" {
			if abs, err := filepath.Abs(root); err == nil {
				return abs
			}
		}
	}
	return s.rootDir
}

// Resolve normalizes a caller-supplied path to absolute form. An empty path
// resolves to the root directory.
func (s *Service) Resolve(path string) string {
	if path == "" {
		return s.Root()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return s.Root()
	}
	return abs
}

// Describe stats a path without following a terminal symlink and returns its
// normalized entry.
func (s *Service) Describe(path string) (*FileEntry, error) {
	abs := s.Resolve(path)

	info, err := os.Lstat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Newf(errs.NotFound, "path not found: %s", path)
		}
		return nil, errs.Wrap(errs.Internal, "stat failed", err)
	}

	return s.entryFromInfo(abs, info), nil
}

func (s *Service) entryFromInfo(abs string, info fs.FileInfo) *FileEntry {
	name := filepath.Base(abs)

	entry := &FileEntry{
		Name:        name,
		Path:        abs,
		Type:        fileType(info),
		Size:        info.Size(),
		SizeHuman:   format.Bytes(info.Size()),
		Permissions: info.Mode().String(),
		Modified:    info.ModTime(),
		IsHidden:    len(name) > 0 && name[0] == '.',
		IsSymlink:   info.Mode()&os.ModeSymlink != 0,
	}

	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		entry.PermissionsOctal = strconv.FormatUint(uint64(st.Mode)&0o7777, 8)
		entry.OwnerID = int(st.Uid)
		entry.GroupID = int(st.Gid)
		entry.Owner = lookupOwner(st.Uid)
		entry.Group = lookupGroup(st.Gid)
		entry.Inode = st.Ino
		entry.HardLinks = uint64(st.Nlink)
		entry.Accessed = time.Unix(st.Atim.Sec, st.Atim.Nsec)
		entry.Created = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}

	if entry.IsSymlink {
		if target, err := os.Readlink(abs); err == nil {
			entry.SymlinkTarget = target
		}
	}

	entry.MimeType = detectMime(abs, entry.Type)
	entry.IsReadable = unix.Access(abs, unix.R_OK) == nil
	entry.IsWritable = unix.Access(abs, unix.W_OK) == nil
	entry.IsExecutable = unix.Access(abs, unix.X_OK) == nil

	return entry
}

func fileType(info fs.FileInfo) FileType {
	if info.IsDir() {
		return TypeDirectory
	}
	return TypeFile
}

func detectMime(abs string, ftype FileType) string {
	if ftype == TypeDirectory {
		return DirMimeType
	}
	mtype, err := mimetype.DetectFile(abs)
	if err != nil {
		return "application/octet-stream"
	}
	return mtype.String()
}

func lookupOwner(uid uint32) string {
	if u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10)); err == nil {
		return u.Username
	}
	return strconv.FormatUint(uint64(uid), 10)
}

func lookupGroup(gid uint32) string {
	if g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10)); err == nil {
		return g.Name
	}
	return strconv.FormatUint(uint64(gid), 10)
}

func (s *Service) warnSkipped(path string, err error) {
	if s.logger != nil {
		s.logger.Warn("Skipping unreadable entry", zap.String("path", path), zap.Error(err))
	}
}
