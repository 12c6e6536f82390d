package http

import "github.com/gin-gonic/gin"

// Register mounts the ingestion routes. Devices post to /diagnostics; / is
// kept for clients configured with a bare host:port.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/", h.Receive)
	r.POST("/diagnostics", h.Receive)

	if h.events != nil {
		r.GET("/diagnostics/stream", h.StreamEvents)
	}
}
