package domain

import (
	"errors"
	"net/http"
)

var (
	ErrLengthRequired = errors.New("content length required")
	ErrInvalidLength  = errors.New("invalid content length")
	ErrTruncatedBody  = errors.New("request body shorter than declared length")
	ErrInvalidPayload = errors.New("request body is not valid JSON")
)

// StatusFor maps an ingest error to the HTTP status sent back to the device.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrLengthRequired):
		return http.StatusLengthRequired
	case errors.Is(err, ErrInvalidLength),
		errors.Is(err, ErrTruncatedBody),
		errors.Is(err, ErrInvalidPayload):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Kind is a short label for metrics and logs.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrLengthRequired), errors.Is(err, ErrInvalidLength):
		return "framing"
	case errors.Is(err, ErrTruncatedBody):
		return "transport"
	case errors.Is(err, ErrInvalidPayload):
		return "decode"
	default:
		return "internal"
	}
}
