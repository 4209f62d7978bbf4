package exec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	osexec "os/exec"
	"runtime"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/logger"
)

// Ensure Player implements the interface.
var _ driven.AudioPlayer = (*Player)(nil)

// Player plays MP3 payloads through a platform playback tool. The
// synthesis endpoint returns MP3, so the tool must accept it either on
// stdin (mpg123) or as a file argument (afplay).
type Player struct {
	// Command overrides the platform default playback command. It is
	// run through the shell with the audio payload on stdin.
	Command string
}

// NewPlayer creates a playback adapter.
func NewPlayer(override string) *Player {
	return &Player{Command: override}
}

// Play writes the payload to a temporary file and blocks until the
// playback tool exits or the context is cancelled.
func (p *Player) Play(ctx context.Context, audio []byte) error {
	if len(audio) == 0 {
		return nil
	}

	if p.Command != "" {
		return p.playVia(ctx, []string{"sh", "-c", p.Command}, audio)
	}

	candidates := [][]string{}
	if runtime.GOOS == "darwin" {
		candidates = append(candidates, []string{"afplay"})
	}
	candidates = append(candidates, []string{"mpg123", "-q"}, []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"})

	for _, argv := range candidates {
		if _, err := osexec.LookPath(argv[0]); err == nil {
			return p.playFile(ctx, argv, audio)
		}
	}
	return domain.ErrPlaybackUnavailable
}

// playFile hands the payload to the tool as a temporary file argument.
func (p *Player) playFile(ctx context.Context, argv []string, audio []byte) error {
	tmp, err := os.CreateTemp("", "tarot42-*.mp3")
	if err != nil {
		return fmt.Errorf("playback temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		return fmt.Errorf("playback temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("playback temp file: %w", err)
	}

	argv = append(argv[:len(argv):len(argv)], tmp.Name())
	logger.Debug("audio: playing %d bytes via %s", len(audio), argv[0])

	cmd := osexec.CommandContext(ctx, argv[0], argv[1:]...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}

// playVia pipes the payload to an override command's stdin.
func (p *Player) playVia(ctx context.Context, argv []string, audio []byte) error {
	logger.Debug("audio: playing %d bytes via override command", len(audio))

	cmd := osexec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = bytes.NewReader(audio)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}
