package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/go-diag-sink/internal/diagnostics/domain"
	"github.com/GoSim-25-26J-441/go-diag-sink/internal/logging"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	events []domain.Event
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, ev domain.Event) error {
	f.events = append(f.events, ev)
	return f.err
}

func newTestService(pub Publisher) (*IngestService, *bytes.Buffer) {
	var out bytes.Buffer
	svc := NewIngestService(NewConsole(&out), pub)
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, &out
}

func TestIngestService_Ingest(t *testing.T) {
	t.Run("renders the documented scenario", func(t *testing.T) {
		svc, out := newTestService(nil)
		body := `{"temp": 21.5, "ok": true}`

		p, err := svc.Ingest(context.Background(), IngestInput{Body: strings.NewReader(body), DeclaredLength: int64(len(body))})
		require.NoError(t, err)
		assert.Equal(t, body, string(p.Raw))
		assert.Equal(t, "\nReceived Diagnostics Data:\n{\n    \"temp\": 21.5,\n    \"ok\": true\n}\n", out.String())
	})

	t.Run("same payload twice renders identically", func(t *testing.T) {
		svc, out := newTestService(nil)
		body := `{"uptime":12,"errors":[]}`

		for i := 0; i < 2; i++ {
			_, err := svc.Ingest(context.Background(), IngestInput{Body: strings.NewReader(body), DeclaredLength: int64(len(body))})
			require.NoError(t, err)
		}

		half := out.Len() / 2
		assert.Equal(t, out.String()[:half], out.String()[half:])
	})

	t.Run("invalid payload prints nothing", func(t *testing.T) {
		svc, out := newTestService(nil)
		before := testutil.ToFloat64(ingestFailures.WithLabelValues("decode"))

		_, err := svc.Ingest(context.Background(), IngestInput{Body: strings.NewReader(`{invalid`), DeclaredLength: 8})
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
		assert.Empty(t, out.String())
		assert.Equal(t, before+1, testutil.ToFloat64(ingestFailures.WithLabelValues("decode")))
	})

	t.Run("short body is a transport failure", func(t *testing.T) {
		svc, out := newTestService(nil)

		_, err := svc.Ingest(context.Background(), IngestInput{Body: strings.NewReader(`{}`), DeclaredLength: 20})
		assert.ErrorIs(t, err, domain.ErrTruncatedBody)
		assert.Empty(t, out.String())
	})

	t.Run("publishes an event per accepted payload", func(t *testing.T) {
		pub := &fakePublisher{}
		svc, _ := newTestService(pub)
		ctx := logging.WithRequestID(context.Background(), "rid-1")
		before := testutil.ToFloat64(payloadsReceived)

		_, err := svc.Ingest(ctx, IngestInput{Body: strings.NewReader(`{"a":1}`), DeclaredLength: 7, RemoteAddr: "10.0.0.5:4321"})
		require.NoError(t, err)

		require.Len(t, pub.events, 1)
		ev := pub.events[0]
		assert.NotEmpty(t, ev.ID)
		assert.Equal(t, "rid-1", ev.RequestID)
		assert.Equal(t, "10.0.0.5:4321", ev.RemoteAddr)
		assert.Equal(t, 7, ev.Size)
		assert.JSONEq(t, `{"a":1}`, string(ev.Payload))
		assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), ev.ReceivedAt)
		assert.Equal(t, before+1, testutil.ToFloat64(payloadsReceived))
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		pub := &fakePublisher{err: errors.New("redis down")}
		svc, out := newTestService(pub)
		before := testutil.ToFloat64(fanoutErrors)

		_, err := svc.Ingest(context.Background(), IngestInput{Body: strings.NewReader(`[]`), DeclaredLength: 2})
		require.NoError(t, err)
		assert.Contains(t, out.String(), domain.Banner)
		assert.Equal(t, before+1, testutil.ToFloat64(fanoutErrors))
	})
}
