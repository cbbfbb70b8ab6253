package share

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalWritesAreWhole(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "tty"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	term := NewTerminal(f)
	assert.Equal(t, f.Fd(), term.Fd())

	frame := strings.Repeat("x", 4096)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = term.Write([]byte(frame + "\n"))
		}()
	}
	s := &Sink{Terminal: term, writeClipboard: func(string) error { return errors.New("no xclip") }}
	_, err = s.Share(context.Background(), "score")
	require.NoError(t, err)
	wg.Wait()
	require.NoError(t, term.Close())

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	seenOSC := false
	for _, line := range lines {
		if strings.HasPrefix(line, "\x1b]52;") {
			seenOSC = true
			line = line[strings.IndexByte(line, '\a')+1:]
		}
		if line != "" {
			assert.Equal(t, frame, line)
		}
	}
	assert.True(t, seenOSC)
}
