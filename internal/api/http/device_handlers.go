package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListUSBDevices enumerates mounted removable storage. Enumeration always
// succeeds; a host without lsblk simply reports no devices.
func (h *Handlers) ListUSBDevices(c *gin.Context) {
	devs := h.devices.List(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"devices": devs,
		"count":   len(devs),
	})
}
