package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		kind string
	}{
		{"missing length", ErrLengthRequired, http.StatusLengthRequired, "framing"},
		{"negative length", ErrInvalidLength, http.StatusBadRequest, "framing"},
		{"short body", fmt.Errorf("read body: %w", ErrTruncatedBody), http.StatusBadRequest, "transport"},
		{"bad json", fmt.Errorf("decode: %w", ErrInvalidPayload), http.StatusBadRequest, "decode"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
			assert.Equal(t, tt.kind, Kind(tt.err))
		})
	}

	assert.Equal(t, http.StatusOK, StatusFor(nil))
}

func TestAckBody(t *testing.T) {
	assert.Equal(t, `{"status": "received"}`, string(AckBody))
}
