// Package http exposes the explorer over a JSON REST API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/clipboard"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/devices"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/locations"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/metadata"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/operations"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
)

// Handlers holds the dependencies shared by all route handlers.
type Handlers struct {
	meta      *metadata.Service
	locations *locations.Manager
	clipboard *clipboard.Manager
	devices   *devices.Enumerator
	engine    *operations.Engine
	logger    *logging.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(
	meta *metadata.Service,
	loc *locations.Manager,
	clip *clipboard.Manager,
	dev *devices.Enumerator,
	engine *operations.Engine,
	logger *logging.Logger,
) *Handlers {
	return &Handlers{
		meta:      meta,
		locations: loc,
		clipboard: clip,
		devices:   dev,
		engine:    engine,
		logger:    logger,
	}
}

// Health reports service liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "explorer-backend",
	})
}

// statusFor maps an error kind to its HTTP status code.
func statusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.NotFound:
		return http.StatusNotFound
	case errs.AlreadyExists:
		return http.StatusConflict
	case errs.Forbidden:
		return http.StatusForbidden
	case errs.InvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the uniform error envelope for err.
func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

// badRequest writes a 400 for a malformed request body or query.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "Invalid request: " + err.Error(),
	})
}
