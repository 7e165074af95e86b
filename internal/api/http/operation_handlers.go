package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/operations"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/id"
)

// SubmitSearch dispatches a background filename search and answers with
// the pending operation.
func (h *Handlers) SubmitSearch(c *gin.Context) {
	var req struct {
		Path          string `json:"path"`
		Pattern       string `json:"pattern" binding:"required"`
		UseRegex      bool   `json:"use_regex"`
		CaseSensitive bool   `json:"case_sensitive"`
		TypeFilter    string `json:"type_filter"`
		ShowHidden    bool   `json:"show_hidden"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	typeFilter := req.TypeFilter
	switch typeFilter {
	case "":
		typeFilter = operations.FilterAll
	case operations.FilterAll, operations.FilterFiles, operations.FilterDirectories:
	default:
		fail(c, errs.Newf(errs.InvalidArgument, "invalid type_filter: %s", req.TypeFilter))
		return
	}

	// Reject a bad pattern before spawning the worker so the caller gets
	// a 400 instead of a failed operation.
	if _, err := operations.CompilePattern(req.Pattern, req.UseRegex, req.CaseSensitive); err != nil {
		fail(c, err)
		return
	}

	op, err := h.engine.SubmitSearch(operations.SearchParams{
		Root:          h.meta.Resolve(req.Path),
		Pattern:       req.Pattern,
		UseRegex:      req.UseRegex,
		CaseSensitive: req.CaseSensitive,
		TypeFilter:    typeFilter,
		ShowHidden:    req.ShowHidden,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success":      true,
		"operation_id": op.ID,
		"operation":    op,
	})
}

// GetOperation returns one tracked operation by id.
func (h *Handlers) GetOperation(c *gin.Context) {
	opID := c.Param("id")
	if !id.IsValidOperationID(opID) {
		fail(c, errs.Newf(errs.InvalidArgument, "invalid operation id: %s", opID))
		return
	}

	op, err := h.engine.Tracker().Get(opID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, op)
}

// ListOperations returns tracked operations, newest first, with optional
// status and type filters and pagination.
func (h *Handlers) ListOperations(c *gin.Context) {
	status := operations.Status(c.Query("status"))
	opType := operations.Type(c.Query("operation_type"))

	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		fail(c, err)
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		fail(c, err)
		return
	}

	ops, total, err := h.engine.Tracker().List(status, opType, limit, offset)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"operations": ops,
		"total":      total,
		"limit":      limit,
		"offset":     offset,
	})
}

// DeleteOperation removes an operation record. Deleting a record whose
// worker is still running is permitted; the worker's next checkpoint is
// then discarded.
func (h *Handlers) DeleteOperation(c *gin.Context) {
	opID := c.Param("id")
	if !id.IsValidOperationID(opID) {
		fail(c, errs.Newf(errs.InvalidArgument, "invalid operation id: %s", opID))
		return
	}

	if err := h.engine.Tracker().Delete(opID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errs.Newf(errs.InvalidArgument, "invalid %s: %s", key, raw)
	}
	return v, nil
}
