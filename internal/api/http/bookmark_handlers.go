package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/locations"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
)

// ListBookmarks returns all locations, system entries included.
func (h *Handlers) ListBookmarks(c *gin.Context) {
	locs, err := h.locations.List()
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookmarks": locs,
		"count":     len(locs),
	})
}

// CreateBookmark adds a user bookmark.
func (h *Handlers) CreateBookmark(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Path        string `json:"path" binding:"required"`
		Type        string `json:"type"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	loc, err := h.locations.Create(req.Name, req.Path, req.Type, req.Description)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"bookmark": loc,
	})
}

// UpdateBookmark applies a partial update to a bookmark.
func (h *Handlers) UpdateBookmark(c *gin.Context) {
	id, ok := bookmarkID(c)
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Path        *string `json:"path"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	loc, err := h.locations.Update(id, locations.UpdateOptions{
		Label:       req.Name,
		Path:        req.Path,
		Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookmark": loc,
	})
}

// DeleteBookmark removes a user bookmark. System locations answer 403.
func (h *Handlers) DeleteBookmark(c *gin.Context) {
	id, ok := bookmarkID(c)
	if !ok {
		return
	}

	if err := h.locations.Delete(id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

func bookmarkID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, errs.Newf(errs.InvalidArgument, "invalid bookmark id: %s", c.Param("id")))
		return 0, false
	}
	return id, true
}

// GetConfig returns the full explorer configuration.
func (h *Handlers) GetConfig(c *gin.Context) {
	cfg, err := h.locations.GetConfig()
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"config": cfg,
	})
}

// UpdateConfig upserts the supplied configuration keys, leaving the rest
// untouched.
func (h *Handlers) UpdateConfig(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if len(req) == 0 {
		fail(c, errs.New(errs.InvalidArgument, "no configuration keys supplied"))
		return
	}

	for key, value := range req {
		if err := h.locations.SetConfig(key, value); err != nil {
			fail(c, err)
			return
		}
	}

	cfg, err := h.locations.GetConfig()
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"config":  cfg,
	})
}
