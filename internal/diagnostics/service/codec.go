package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/GoSim-25-26J-441/go-diag-sink/internal/diagnostics/domain"
)

const indent = "    "

// ReadBody reads exactly declared bytes from r.
func ReadBody(r io.Reader, declared int64) ([]byte, error) {
	if declared < 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidLength, declared)
	}
	if declared == 0 {
		return []byte{}, nil
	}

	body, err := io.ReadAll(io.LimitReader(r, declared))
	if err != nil {
		return nil, fmt.Errorf("%w: read %d of %d bytes: %v", domain.ErrTruncatedBody, len(body), declared, err)
	}
	if int64(len(body)) < declared {
		return nil, fmt.Errorf("%w: read %d of %d bytes", domain.ErrTruncatedBody, len(body), declared)
	}
	return body, nil
}

// Decode accepts any syntactically valid JSON document encoded as UTF-8.
func Decode(body []byte) (domain.Payload, error) {
	if !utf8.Valid(body) {
		return domain.Payload{}, fmt.Errorf("%w: body is not valid UTF-8", domain.ErrInvalidPayload)
	}
	if !json.Valid(body) {
		// Unmarshal again only to get a positioned error message.
		var v any
		err := json.Unmarshal(body, &v)
		if err == nil {
			err = errors.New("malformed document")
		}
		return domain.Payload{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return domain.Payload{Raw: json.RawMessage(body)}, nil
}

// Render indents p with four spaces. Key order and number literals are kept
// as sent.
func Render(p domain.Payload) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, p.Raw, "", indent); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}
