// Package config loads client configuration from environment variables.
// User preferences (overlay, style, voice, auto-send/speak) are persisted
// separately by the preference store; this package covers deployment
// concerns: where the server lives, timeouts and tunable thresholds.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// Config holds environment-driven client configuration.
type Config struct {
	// BaseURL is the Tarot42 server base URL.
	BaseURL string `env:"TAROT42_BASE_URL" envDefault:"http://localhost:8000"`

	// HTTPTimeout bounds every API request.
	HTTPTimeout time.Duration `env:"TAROT42_HTTP_TIMEOUT" envDefault:"30s"`

	// FrameDir is the drop directory watched for camera frames in
	// physical mode. Empty disables the frame watcher.
	FrameDir string `env:"TAROT42_FRAME_DIR"`

	// RecordCommand overrides the platform audio capture command.
	RecordCommand string `env:"TAROT42_RECORD_CMD"`

	// PlayCommand overrides the platform audio playback command.
	PlayCommand string `env:"TAROT42_PLAY_CMD"`

	// SilenceRMS overrides the silence-detection energy threshold.
	SilenceRMS float64 `env:"TAROT42_SILENCE_RMS" envDefault:"0.012"`

	// MinRecording overrides the minimum recording time before
	// silence may auto-stop.
	MinRecording time.Duration `env:"TAROT42_MIN_RECORDING" envDefault:"700ms"`

	// SilenceStop overrides the accumulated silence required to stop.
	SilenceStop time.Duration `env:"TAROT42_SILENCE_STOP" envDefault:"1200ms"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// VoiceTuning derives the silence policy from the defaults plus any
// environment overrides.
func (c *Config) VoiceTuning() domain.VoiceTuning {
	tuning := domain.DefaultVoiceTuning()
	tuning.SilenceRMS = c.SilenceRMS
	tuning.MinRecording = c.MinRecording
	tuning.SilenceStop = c.SilenceStop
	return tuning
}
