// Package exec provides audio capture and playback adapters backed by
// platform command-line tools (sox, arecord, afplay, mpg123).
package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	osexec "os/exec"
	"runtime"
	"sync"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/logger"
)

// Ensure the adapters implement the interfaces.
var (
	_ driven.AudioInputFactory = (*InputFactory)(nil)
	_ driven.AudioInput        = (*Input)(nil)
)

// captureSampleRate is the rate requested from the capture tool.
// Whisper-class transcription models expect 16 kHz mono.
const captureSampleRate = 16000

// InputFactory opens microphone streams by spawning a capture command
// that writes raw PCM16LE to stdout.
type InputFactory struct {
	// Command overrides the platform default capture command. The
	// command must write s16le mono PCM at 16 kHz to stdout.
	Command []string
}

// NewInputFactory creates a capture factory. With an empty override the
// platform default is used: sox on macOS, arecord elsewhere.
func NewInputFactory(override string) *InputFactory {
	f := &InputFactory{}
	if override != "" {
		f.Command = []string{"sh", "-c", override}
	}
	return f
}

// defaultCommand picks the platform capture tool.
func defaultCommand() ([]string, error) {
	candidates := [][]string{}
	if runtime.GOOS == "darwin" {
		candidates = append(candidates, []string{
			"sox", "-q", "-d", "-t", "raw", "-r", "16000", "-e", "signed", "-b", "16", "-c", "1", "-",
		})
	} else {
		candidates = append(candidates, []string{
			"arecord", "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "raw",
		})
		candidates = append(candidates, []string{
			"sox", "-q", "-d", "-t", "raw", "-r", "16000", "-e", "signed", "-b", "16", "-c", "1", "-",
		})
	}

	for _, cmd := range candidates {
		if _, err := osexec.LookPath(cmd[0]); err == nil {
			return cmd, nil
		}
	}
	return nil, domain.ErrMicUnavailable
}

// Open spawns the capture command and returns the stream.
func (f *InputFactory) Open(ctx context.Context) (driven.AudioInput, error) {
	argv := f.Command
	if len(argv) == 0 {
		var err error
		argv, err = defaultCommand()
		if err != nil {
			return nil, err
		}
	}

	cmd := osexec.CommandContext(ctx, argv[0], argv[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("capture pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, domain.ErrPermissionDenied
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMicUnavailable, err)
	}

	logger.Debug("audio: capture started via %s", argv[0])
	return &Input{cmd: cmd, stdout: stdout}, nil
}

// Input is a running capture process. Read drains whatever PCM the
// process has produced since the previous call.
type Input struct {
	cmd    *osexec.Cmd
	stdout io.ReadCloser

	closeOnce sync.Once
	closeErr  error
}

// Read returns the audio captured since the previous call.
func (i *Input) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := make([]byte, 32*1024)
	n, err := i.stdout.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("capture read: %w", err)
	}
	return nil, nil
}

// SampleRate returns the capture sample rate in Hz.
func (i *Input) SampleRate() int {
	return captureSampleRate
}

// Close terminates the capture process. Idempotent.
func (i *Input) Close() error {
	i.closeOnce.Do(func() {
		if i.cmd.Process != nil {
			_ = i.cmd.Process.Kill()
		}
		_ = i.stdout.Close()
		// Reap the process; the kill error is expected.
		_ = i.cmd.Wait()
	})
	return i.closeErr
}
