package service

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/GoSim-25-26J-441/go-diag-sink/internal/diagnostics/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_Print(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out)

	require.NoError(t, c.Print([]byte("{\n    \"temp\": 21.5,\n    \"ok\": true\n}")))
	assert.Equal(t, "\nReceived Diagnostics Data:\n{\n    \"temp\": 21.5,\n    \"ok\": true\n}\n", out.String())
}

func TestConsole_Announce(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewConsole(&out).Announce(8071))
	assert.Equal(t, "Server started on port 8071. Waiting for diagnostics data...\n", out.String())
}

func TestConsole_ConcurrentPrintsDoNotInterleave(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out)

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rendered := fmt.Sprintf("{\n    \"n\": %d,\n    \"pad\": %q\n}", i, strings.Repeat("x", 512))
			assert.NoError(t, c.Print([]byte(rendered)))
		}(i)
	}
	wg.Wait()

	chunks := strings.Split(out.String(), "\n"+domain.Banner+"\n")
	require.Len(t, chunks, n+1)
	assert.Empty(t, chunks[0])

	block := regexp.MustCompile(`^\{\n    "n": \d+,\n    "pad": "x{512}"\n\}\n$`)
	seen := map[string]bool{}
	for _, chunk := range chunks[1:] {
		assert.Regexp(t, block, chunk)
		seen[chunk] = true
	}
	assert.Len(t, seen, n)
}
