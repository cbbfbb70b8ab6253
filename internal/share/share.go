// Package share publishes score text from the terminal.
package share

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/verte-zerg/catchme/internal/game"
)

// Sink copies text to the system clipboard, falling back to an OSC 52
// sequence written to the terminal.
type Sink struct {
	// Terminal receives the OSC 52 fallback. Nil disables the fallback.
	Terminal io.Writer

	writeClipboard func(string) error
	unsupported    bool
}

// NewSink returns a Sink using the system clipboard.
func NewSink(terminal io.Writer) *Sink {
	return &Sink{
		Terminal:       terminal,
		writeClipboard: clipboard.WriteAll,
		unsupported:    clipboard.Unsupported,
	}
}

// Share implements game.Sharer.
func (s *Sink) Share(ctx context.Context, text string) (game.ShareOutcome, error) {
	if err := ctx.Err(); err != nil {
		return game.ShareCancelled, nil
	}
	var clipErr error
	if s.unsupported || s.writeClipboard == nil {
		clipErr = errors.New("system clipboard unsupported")
	} else if clipErr = s.writeClipboard(text); clipErr == nil {
		return game.ShareCopied, nil
	}
	if s.Terminal == nil {
		return game.ShareCopied, fmt.Errorf("failed to copy score: %w", clipErr)
	}
	if _, err := osc52.New(text).WriteTo(s.Terminal); err != nil {
		return game.ShareCopied, fmt.Errorf("failed to copy score: %w", errors.Join(clipErr, err))
	}
	return game.ShareCopied, nil
}
