package metadata

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
)

// Mkdir creates a directory, optionally creating missing parents.
func (s *Service) Mkdir(path string, parents bool) (string, error) {
	abs := s.Resolve(path)

	if _, err := os.Lstat(abs); err == nil {
		return "", errs.Newf(errs.AlreadyExists, "path already exists: %s", path)
	}

	var err error
	if parents {
		err = os.MkdirAll(abs, 0o755)
	} else {
		err = os.Mkdir(abs, 0o755)
	}
	if err != nil {
		return "", errs.Wrap(errs.Internal, "create directory failed", err)
	}
	return abs, nil
}

// Delete removes a path. Directories require recursive unless empty.
func (s *Service) Delete(path string, recursive bool) error {
	abs := s.Resolve(path)

	info, err := os.Lstat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return errs.Newf(errs.NotFound, "path not found: %s", path)
		}
		return errs.Wrap(errs.Internal, "stat failed", err)
	}

	if info.IsDir() {
		if recursive {
			if err := os.RemoveAll(abs); err != nil {
				return errs.Wrap(errs.Internal, "recursive delete failed", err)
			}
			return nil
		}
		if err := os.Remove(abs); err != nil {
			if isNotEmpty(err) {
				return errs.Newf(errs.InvalidArgument, "directory not empty: %s", path)
			}
			return errs.Wrap(errs.Internal, "delete failed", err)
		}
		return nil
	}

	if err := os.Remove(abs); err != nil {
		return errs.Wrap(errs.Internal, "delete failed", err)
	}
	return nil
}

// Rename moves source to destination. A destination with no path separator
// is treated as a bare name inside the source's directory.
func (s *Service) Rename(source, destination string, overwrite bool) (string, error) {
	absSource := s.Resolve(source)

	dest := destination
	if !strings.ContainsRune(dest, os.PathSeparator) {
		dest = filepath.Join(filepath.Dir(absSource), dest)
	}
	absDest := s.Resolve(dest)

	if _, err := os.Lstat(absSource); err != nil {
		if os.IsNotExist(err) {
			return "", errs.Newf(errs.NotFound, "source not found: %s", source)
		}
		return "", errs.Wrap(errs.Internal, "stat failed", err)
	}

	if _, err := os.Lstat(absDest); err == nil && !overwrite {
		return "", errs.Newf(errs.AlreadyExists, "destination exists: %s", destination)
	}

	if err := Move(absSource, absDest); err != nil {
		return "", errs.Wrap(errs.Internal, "rename failed", err)
	}
	return absDest, nil
}

// Move relocates a path, falling back to copy+delete when a direct rename is
// not possible (cross-device).
func Move(source, destination string) error {
	err := os.Rename(source, destination)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return err
	}

	info, statErr := os.Lstat(source)
	if statErr != nil {
		return statErr
	}
	if info.IsDir() {
		if err := CopyTree(source, destination); err != nil {
			return err
		}
	} else {
		if err := CopyFile(source, destination); err != nil {
			return err
		}
	}
	return os.RemoveAll(source)
}

// CopyFile duplicates a regular file, preserving its mode and timestamps.
func CopyFile(source, destination string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}

	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(destination, info.ModTime(), info.ModTime())
}

// CopyTree duplicates a directory recursively, preserving file modes.
func CopyTree(source, destination string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(destination, info.Mode().Perm()); err != nil {
		return err
	}

	children, err := os.ReadDir(source)
	if err != nil {
		return err
	}

	for _, child := range children {
		srcPath := filepath.Join(source, child.Name())
		dstPath := filepath.Join(destination, child.Name())

		if child.IsDir() {
			if err := CopyTree(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if child.Type()&os.ModeSymlink != 0 {
			target, err := os.Readlink(srcPath)
			if err != nil {
				return err
			}
			if err := os.Symlink(target, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := CopyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return errors.Is(linkErr.Err, syscall.EXDEV)
	}
	return errors.Is(err, syscall.EXDEV)
}

func isNotEmpty(err error) bool {
	return errors.Is(err, syscall.ENOTEMPTY) || errors.Is(err, syscall.EEXIST)
}
