package http

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/clipboard"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/operations"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/format"
)

type clipboardRequest struct {
	SessionID string   `json:"session_id" binding:"required"`
	Paths     []string `json:"paths" binding:"required"`
}

// ClipboardCopy records a copy selection for the session.
func (h *Handlers) ClipboardCopy(c *gin.Context) {
	h.setClipboard(c, clipboard.ModeCopy)
}

// ClipboardCut records a cut selection for the session.
func (h *Handlers) ClipboardCut(c *gin.Context) {
	h.setClipboard(c, clipboard.ModeCut)
}

func (h *Handlers) setClipboard(c *gin.Context, mode clipboard.Mode) {
	var req clipboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if len(req.Paths) == 0 {
		fail(c, errs.New(errs.InvalidArgument, "paths must not be empty"))
		return
	}

	// Missing sources are rejected up front; a stale selection is caught
	// again at paste time.
	for _, p := range req.Paths {
		if _, err := os.Lstat(h.meta.Resolve(p)); err != nil {
			fail(c, errs.Newf(errs.NotFound, "path not found: %s", p))
			return
		}
	}

	h.clipboard.Set(req.SessionID, mode, req.Paths)
	h.logger.Info("Clipboard selection recorded",
		zap.String("session_id", req.SessionID),
		zap.String("mode", string(mode)),
		zap.Int("paths", len(req.Paths)))

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"operation": mode,
		"count":     len(req.Paths),
	})
}

// ClipboardPaste dispatches a background transfer of the session's
// selection into the destination and answers with the pending operation.
func (h *Handlers) ClipboardPaste(c *gin.Context) {
	var req struct {
		SessionID          string `json:"session_id" binding:"required"`
		Destination        string `json:"destination" binding:"required"`
		ConflictResolution string `json:"conflict_resolution"`
		RenamePattern      string `json:"rename_pattern"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	conflict := operations.ConflictPolicy(req.ConflictResolution)
	switch conflict {
	case "":
		conflict = operations.ConflictRename
	case operations.ConflictSkip, operations.ConflictOverwrite, operations.ConflictRename:
	default:
		fail(c, errs.Newf(errs.InvalidArgument, "invalid conflict_resolution: %s", req.ConflictResolution))
		return
	}

	dest := h.meta.Resolve(req.Destination)
	if info, err := os.Stat(dest); err != nil || !info.IsDir() {
		fail(c, errs.Newf(errs.InvalidArgument, "destination is not a directory: %s", req.Destination))
		return
	}

	session, err := h.clipboard.TakeForPaste(req.SessionID)
	if err != nil {
		fail(c, err)
		return
	}

	opType := operations.TypeCopy
	if session.Mode == clipboard.ModeCut {
		opType = operations.TypeMove
	}

	op, err := h.engine.SubmitPaste(opType, operations.PasteParams{
		Sources:       session.Paths,
		Destination:   dest,
		Conflict:      conflict,
		RenamePattern: req.RenamePattern,
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

// ClipboardStatus reports the session's pending selection with its total
// size computed on demand.
func (h *Handlers) ClipboardStatus(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		fail(c, errs.New(errs.InvalidArgument, "session_id is required"))
		return
	}

	session, err := h.clipboard.Get(sessionID)
	if err != nil {
		if errs.Is(err, errs.NotFound) {
			c.JSON(http.StatusOK, gin.H{
				"has_content": false,
			})
			return
		}
		fail(c, err)
		return
	}

	size := clipboard.SelectionSize(session.Paths)
	c.JSON(http.StatusOK, gin.H{
		"has_content":      true,
		"operation":        session.Mode,
		"paths":            session.Paths,
		"timestamp":        session.Timestamp,
		"total_size":       size,
		"total_size_human": format.Bytes(size),
	})
}

// ClipboardClear drops the session's selection.
func (h *Handlers) ClipboardClear(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		fail(c, errs.New(errs.InvalidArgument, "session_id is required"))
		return
	}

	h.clipboard.Clear(sessionID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
