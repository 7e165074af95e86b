package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/metadata"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
)

// ListDirectory lists a directory's entries with sorting.
func (h *Handlers) ListDirectory(c *gin.Context) {
	path := c.Query("path")
	showHidden := c.Query("show_hidden") == "true"

	sortBy := metadata.SortBy(c.DefaultQuery("sort_by", string(metadata.SortByName)))
	sortOrder := metadata.SortOrder(c.DefaultQuery("sort_order", string(metadata.SortAsc)))

	switch sortBy {
	case metadata.SortByName, metadata.SortBySize, metadata.SortByModified, metadata.SortByType:
	default:
		fail(c, errs.Newf(errs.InvalidArgument, "invalid sort_by: %s", sortBy))
		return
	}
	switch sortOrder {
	case metadata.SortAsc, metadata.SortDesc:
	default:
		fail(c, errs.Newf(errs.InvalidArgument, "invalid sort_order: %s", sortOrder))
		return
	}

	listing, err := h.meta.List(path, showHidden, sortBy, sortOrder)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// GetCwd reports the effective root directory.
func (h *Handlers) GetCwd(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"current_path": h.meta.Root(),
		"is_root":      true,
	})
}

// Navigate lists the requested directory with default sorting; a browsing
// client's change-directory call.
func (h *Handlers) Navigate(c *gin.Context) {
	var req struct {
		Path       string `json:"path" binding:"required"`
		ShowHidden bool   `json:"show_hidden"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	listing, err := h.meta.List(req.Path, req.ShowHidden, metadata.SortByName, metadata.SortAsc)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// DownloadFile streams a regular file as an attachment.
func (h *Handlers) DownloadFile(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		fail(c, errs.New(errs.InvalidArgument, "path is required"))
		return
	}

	abs := h.meta.Resolve(path)
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			fail(c, errs.Newf(errs.NotFound, "path not found: %s", path))
			return
		}
		fail(c, errs.Wrap(errs.Internal, "stat failed", err))
		return
	}
	if info.IsDir() {
		fail(c, errs.New(errs.InvalidArgument, "cannot download a directory"))
		return
	}

	c.FileAttachment(abs, filepath.Base(abs))
}

// GetProperties returns the full metadata of a single entry.
func (h *Handlers) GetProperties(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		fail(c, errs.New(errs.InvalidArgument, "path is required"))
		return
	}

	entry, err := h.meta.Describe(path)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// CreateDirectory creates a directory, optionally with parents.
func (h *Handlers) CreateDirectory(c *gin.Context) {
	var req struct {
		Path    string `json:"path" binding:"required"`
		Parents bool   `json:"parents"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.meta.Mkdir(req.Path, req.Parents)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"path":    created,
	})
}

// DeleteEntries deletes a batch of paths, reporting per-item outcomes.
// A mixed batch answers 207 so callers cannot mistake it for full success.
func (h *Handlers) DeleteEntries(c *gin.Context) {
	var req struct {
		Paths     []string `json:"paths" binding:"required"`
		Recursive bool     `json:"recursive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if len(req.Paths) == 0 {
		fail(c, errs.New(errs.InvalidArgument, "paths must not be empty"))
		return
	}

	type itemResult struct {
		Path    string `json:"path"`
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}

	results := make([]itemResult, 0, len(req.Paths))
	failures := 0
	for _, p := range req.Paths {
		if err := h.meta.Delete(p, req.Recursive); err != nil {
			results = append(results, itemResult{Path: p, Error: err.Error()})
			failures++
			h.logger.Warn("Delete failed", zap.String("path", p), zap.Error(err))
			continue
		}
		results = append(results, itemResult{Path: p, Success: true})
	}

	status := http.StatusOK
	if failures > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{
		"success": failures == 0,
		"deleted": len(req.Paths) - failures,
		"failed":  failures,
		"results": results,
	})
}

// RenameEntry renames or moves a single entry.
func (h *Handlers) RenameEntry(c *gin.Context) {
	var req struct {
		Source      string `json:"source" binding:"required"`
		Destination string `json:"destination" binding:"required"`
		Overwrite   bool   `json:"overwrite"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	dest, err := h.meta.Rename(req.Source, req.Destination, req.Overwrite)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"path":    dest,
	})
}
