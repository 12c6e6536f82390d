package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/go-diag-sink/internal/logging"
	"github.com/gin-gonic/gin"
)

const keepAliveInterval = 15 * time.Second

// StreamEvents relays accepted diagnostics to the caller using Server-Sent Events.
func (h *Handler) StreamEvents(c *gin.Context) {
	ctx := c.Request.Context()

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "streaming unsupported"})
		return
	}

	events, closeSub, err := h.events.Subscribe(ctx)
	if err != nil {
		logging.FromContext(ctx).WithError(err).Error("failed to subscribe to diagnostics events")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "event stream unavailable"})
		return
	}
	defer closeSub()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering
	c.Status(http.StatusOK)

	if _, err := fmt.Fprint(c.Writer, ": connected\n\n"); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if _, err := fmt.Fprint(c.Writer, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(c.Writer, "id: %s\nevent: diagnostics\ndata: %s\n\n", ev.ID, data); err != nil {
				logging.FromContext(ctx).WithError(err).Debug("diagnostics stream closed by viewer")
				return
			}
			flusher.Flush()
		}
	}
}
