// Package memory provides scripted in-memory audio adapters for tests
// and demo sessions without real devices.
package memory

import (
	"context"
	"sync"

	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
)

// Ensure the adapters implement the interfaces.
var (
	_ driven.AudioInputFactory = (*InputFactory)(nil)
	_ driven.AudioInput        = (*Input)(nil)
	_ driven.AudioPlayer       = (*Player)(nil)
)

// InputFactory hands out scripted inputs, one per Open call.
type InputFactory struct {
	mu      sync.Mutex
	scripts [][][]byte
}

// NewInputFactory creates a factory with no scripted captures.
func NewInputFactory() *InputFactory {
	return &InputFactory{}
}

// Enqueue adds a scripted capture: the chunks Read returns, in order.
// Once the script runs out the input produces empty reads.
func (f *InputFactory) Enqueue(chunks ...[]byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts = append(f.scripts, chunks)
}

// Open returns the next scripted input, or an empty one when nothing
// was enqueued.
func (f *InputFactory) Open(ctx context.Context) (driven.AudioInput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var chunks [][]byte
	if len(f.scripts) > 0 {
		chunks = f.scripts[0]
		f.scripts = f.scripts[1:]
	}
	return &Input{chunks: chunks}, nil
}

// Input replays scripted PCM chunks.
type Input struct {
	mu     sync.Mutex
	chunks [][]byte
	pos    int
	closed bool
}

// Read returns the next scripted chunk, or nothing once exhausted.
func (i *Input) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.pos >= len(i.chunks) {
		return nil, nil
	}
	chunk := i.chunks[i.pos]
	i.pos++
	return chunk, nil
}

// SampleRate returns the nominal capture rate.
func (i *Input) SampleRate() int {
	return 16000
}

// Close marks the input closed. Idempotent.
func (i *Input) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.closed = true
	return nil
}

// Closed reports whether Close was called.
func (i *Input) Closed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.closed
}

// Player records played payloads without producing sound.
type Player struct {
	mu     sync.Mutex
	played [][]byte
}

// NewPlayer creates a silent player.
func NewPlayer() *Player {
	return &Player{}
}

// Play records the payload and returns immediately.
func (p *Player) Play(ctx context.Context, audio []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, audio)
	return nil
}

// Played returns the recorded payloads.
func (p *Player) Played() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.played))
	copy(out, p.played)
	return out
}
