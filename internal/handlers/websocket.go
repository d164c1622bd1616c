package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kungucharles/shereheni-backend/internal/services"
)

// WebSocketHandler upgrades the connection and registers the vendor with
// the event hub
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)
		services.HandleWebSocket(hub, c.Writer, c.Request, vendorID)
	}
}
