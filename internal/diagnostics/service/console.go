package service

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/GoSim-25-26J-441/go-diag-sink/internal/diagnostics/domain"
)

// Console is the operator-facing output stream. Writes are serialized so
// renderings from concurrent requests never interleave.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Print writes the banner line followed by an already rendered document.
func (c *Console) Print(rendered []byte) error {
	var buf bytes.Buffer
	buf.Grow(len(rendered) + len(domain.Banner) + 3)
	buf.WriteByte('\n')
	buf.WriteString(domain.Banner)
	buf.WriteByte('\n')
	buf.Write(rendered)
	buf.WriteByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.w.Write(buf.Bytes())
	return err
}

// Announce prints the startup line.
func (c *Console) Announce(port int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.w, "Server started on port %d. Waiting for diagnostics data...\n", port)
	return err
}
