package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/GoSim-25-26J-441/go-diag-sink/internal/diagnostics/domain"
	"github.com/GoSim-25-26J-441/go-diag-sink/internal/diagnostics/service"
	"github.com/GoSim-25-26J-441/go-diag-sink/internal/logging"
	"github.com/gin-gonic/gin"
)

// EventSource feeds the live stream endpoint.
type EventSource interface {
	Subscribe(ctx context.Context) (<-chan domain.Event, func() error, error)
}

type Handler struct {
	ingest *service.IngestService
	events EventSource
}

// New creates the handler. events may be nil, in which case the stream
// endpoint is not registered.
func New(ingest *service.IngestService, events EventSource) *Handler {
	return &Handler{ingest: ingest, events: events}
}

// Receive accepts one diagnostics document and acknowledges it.
func (h *Handler) Receive(c *gin.Context) {
	declared, err := declaredLength(c.Request)
	if err != nil {
		h.reject(c, err)
		return
	}

	_, err = h.ingest.Ingest(c.Request.Context(), service.IngestInput{
		Body:           c.Request.Body,
		DeclaredLength: declared,
		RemoteAddr:     c.ClientIP(),
	})
	if err != nil {
		h.reject(c, err)
		return
	}

	c.Data(http.StatusOK, domain.AckContentType, domain.AckBody)
}

func (h *Handler) reject(c *gin.Context, err error) {
	ctx := c.Request.Context()
	status := domain.StatusFor(err)

	logging.FromContext(ctx).
		WithError(err).
		WithField("kind", domain.Kind(err)).
		WithField("status", status).
		Warn("rejected diagnostics request")

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     err.Error(),
		RequestID: logging.RequestID(ctx),
	})
}

// declaredLength returns the body length announced by the client. Chunked
// bodies and requests without a Content-Length header are refused.
func declaredLength(r *http.Request) (int64, error) {
	if len(r.TransferEncoding) > 0 {
		return 0, fmt.Errorf("%w: transfer-encoding %v", domain.ErrLengthRequired, r.TransferEncoding)
	}

	raw := r.Header.Get("Content-Length")
	switch {
	case r.ContentLength > 0:
		return r.ContentLength, nil
	case raw == "" && r.ContentLength <= 0:
		return 0, domain.ErrLengthRequired
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidLength, raw)
	}
	return n, nil
}
