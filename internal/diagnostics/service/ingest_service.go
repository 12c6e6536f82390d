package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/GoSim-25-26J-441/go-diag-sink/internal/diagnostics/domain"
	"github.com/GoSim-25-26J-441/go-diag-sink/internal/logging"
	"github.com/google/uuid"
)

// Publisher fans accepted payloads out to live viewers.
type Publisher interface {
	Publish(ctx context.Context, ev domain.Event) error
}

type IngestInput struct {
	Body           io.Reader
	DeclaredLength int64
	RemoteAddr     string
}

// IngestService reads, decodes and renders one diagnostics payload per call.
type IngestService struct {
	console   *Console
	publisher Publisher
	now       func() time.Time
}

// NewIngestService creates the service. publisher may be nil.
func NewIngestService(console *Console, publisher Publisher) *IngestService {
	return &IngestService{
		console:   console,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *IngestService) Ingest(ctx context.Context, in IngestInput) (domain.Payload, error) {
	log := logging.FromContext(ctx)

	body, err := ReadBody(in.Body, in.DeclaredLength)
	if err != nil {
		return domain.Payload{}, s.fail("read", err)
	}

	payload, err := Decode(body)
	if err != nil {
		return domain.Payload{}, s.fail("decode", err)
	}

	rendered, err := Render(payload)
	if err != nil {
		return domain.Payload{}, s.fail("render", err)
	}

	if err := s.console.Print(rendered); err != nil {
		return domain.Payload{}, s.fail("print", err)
	}

	recordAccepted(payload.Size())
	log.WithField("size", payload.Size()).Debug("diagnostics payload accepted")

	if s.publisher != nil {
		ev := domain.Event{
			ID:         uuid.New().String(),
			RequestID:  logging.RequestID(ctx),
			ReceivedAt: s.now().UTC(),
			RemoteAddr: in.RemoteAddr,
			Size:       payload.Size(),
			Payload:    payload.Raw,
		}
		// Payloads accepted while the server drains are still fanned out.
		if err := s.publisher.Publish(context.WithoutCancel(ctx), ev); err != nil {
			recordFanoutError()
			log.WithError(err).Warn("failed to publish diagnostics event")
		}
	}

	return payload, nil
}

func (s *IngestService) fail(op string, err error) error {
	recordFailure(domain.Kind(err))
	return fmt.Errorf("%s: %w", op, err)
}
