package metadata

import "time"

// FileType distinguishes regular files from directories.
type FileType string

const (
	TypeFile      FileType = "file"
	TypeDirectory FileType = "directory"
)

// SortBy selects the listing sort key.
type SortBy string

const (
	SortByName     SortBy = "name"
	SortBySize     SortBy = "size"
	SortByModified SortBy = "modified"
	SortByType     SortBy = "type"
)

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FileEntry is the normalized description of one filesystem path.
// Computed on demand, never persisted.
type FileEntry struct {
	Name             string    `json:"name"`
	Path             string    `json:"path"`
	Type             FileType  `json:"type"`
	Size             int64     `json:"size"`
	SizeHuman        string    `json:"size_human"`
	Permissions      string    `json:"permissions"`
	PermissionsOctal string    `json:"permissions_octal"`
	Owner            string    `json:"owner"`
	OwnerID          int       `json:"owner_id"`
	Group            string    `json:"group"`
	GroupID          int       `json:"group_id"`
	Modified         time.Time `json:"modified"`
	Accessed         time.Time `json:"accessed"`
	Created          time.Time `json:"created"`
	IsHidden         bool      `json:"is_hidden"`
	IsSymlink        bool      `json:"is_symlink"`
	SymlinkTarget    string    `json:"symlink_target,omitempty"`
	MimeType         string    `json:"mime_type"`
	Inode            uint64    `json:"inode"`
	HardLinks        uint64    `json:"hard_links"`
	IsReadable       bool      `json:"is_readable"`
	IsWritable       bool      `json:"is_writable"`
	IsExecutable     bool      `json:"is_executable"`
}

// DirListing is the result of listing one directory.
// TotalSize aggregates file-type entries only; directory sizes are not
// meaningful for aggregation.
type DirListing struct {
	CurrentPath    string      `json:"current_path"`
	ParentPath     string      `json:"parent_path"`
	Entries        []FileEntry `json:"entries"`
	TotalEntries   int         `json:"total_entries"`
	TotalSize      int64       `json:"total_size"`
	TotalSizeHuman string      `json:"total_size_human"`
}

// DirMimeType is the sentinel MIME type reported for directories.
const DirMimeType = "inode/directory"
