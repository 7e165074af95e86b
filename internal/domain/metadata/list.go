package metadata

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/format"
)

// List enumerates the direct children of a directory with filtering and
// sorting. Entries whose metadata cannot be read are skipped, not reported.
func (s *Service) List(path string, showHidden bool, sortBy SortBy, sortOrder SortOrder) (*DirListing, error) {
	abs := s.Resolve(path)

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Newf(errs.NotFound, "path not found: %s", path)
		}
		return nil, errs.Wrap(errs.Internal, "stat failed", err)
	}
	if !info.IsDir() {
		return nil, errs.Newf(errs.InvalidArgument, "path is not a directory: %s", path)
	}

	children, err := os.ReadDir(abs)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "read directory failed", err)
	}

	entries := make([]FileEntry, 0, len(children))
	var totalSize int64

	for _, child := range children {
		if !showHidden && strings.HasPrefix(child.Name(), ".") {
			continue
		}

		childPath := filepath.Join(abs, child.Name())
		childInfo, err := os.Lstat(childPath)
		if err != nil {
			// Permission errors and files disappearing mid-listing are
			// best-effort skips, not partial failures.
			s.warnSkipped(childPath, err)
			continue
		}

		entry := s.entryFromInfo(childPath, childInfo)
		entries = append(entries, *entry)
		if entry.Type == TypeFile {
			totalSize += entry.Size
		}
	}

	sortEntries(entries, sortBy, sortOrder)

	return &DirListing{
		CurrentPath:    abs,
		ParentPath:     filepath.Dir(abs),
		Entries:        entries,
		TotalEntries:   len(entries),
		TotalSize:      totalSize,
		TotalSizeHuman: format.Bytes(totalSize),
	}, nil
}

func sortEntries(entries []FileEntry, sortBy SortBy, sortOrder SortOrder) {
	less := lessFunc(entries, sortBy)
	if sortOrder == SortDesc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(entries, less)
}

func lessFunc(entries []FileEntry, sortBy SortBy) func(i, j int) bool {
	switch sortBy {
	case SortBySize:
		return func(i, j int) bool { return entries[i].Size < entries[j].Size }
	case SortByModified:
		// Zero timestamps sort as the earliest possible value.
		return func(i, j int) bool { return entries[i].Modified.Before(entries[j].Modified) }
	case SortByType:
		return func(i, j int) bool {
			if entries[i].Type != entries[j].Type {
				return entries[i].Type < entries[j].Type
			}
			return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
		}
	default: // SortByName
		return func(i, j int) bool {
			return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
		}
	}
}
