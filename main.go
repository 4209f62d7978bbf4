// Tarot42 is a terminal client for the Tarot42 reading server.
package main

import (
	"fmt"
	"os"

	"github.com/wattleworks/tarot42-cli/internal/adapters/driven/api"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driven/audio/exec"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driven/camera/dirwatch"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driven/haptics/terminal"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driven/prefs/file"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/cli"
	"github.com/wattleworks/tarot42-cli/internal/config"
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/core/services"
	"github.com/wattleworks/tarot42-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := api.NewClient(api.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.HTTPTimeout,
	})

	prefs, err := file.NewPrefStore("")
	if err != nil {
		return fmt.Errorf("opening preference store: %w", err)
	}

	// Driven adapters.
	inputs := exec.NewInputFactory(cfg.RecordCommand)
	player := exec.NewPlayer(cfg.PlayCommand)
	haptics := terminal.NewHaptics()

	var frames driven.FrameSource
	if cfg.FrameDir != "" {
		watcher, err := dirwatch.NewWatcher(cfg.FrameDir)
		if err != nil {
			logger.Warn("frame watcher disabled: %v", err)
		} else {
			frames = watcher
			defer watcher.Close()
		}
	}

	// Core services.
	session := services.NewSession()
	spread := services.NewSpread(haptics, domain.DefaultHapticTuning())
	acquire := services.NewAcquirer(session, spread, client, client)
	recorder := services.NewRecorder(session, inputs, client, prefs, cfg.VoiceTuning())
	conversation := services.NewConversation(session, spread, client, client, client, player, prefs)

	// A fresh session clears the board, the clarifier state and the
	// conversation.
	session.OnReset(func() {
		if spread.SpreadType().IsValid() {
			_ = spread.NewSpread(spread.SpreadType())
		}
	})
	session.OnReset(acquire.Reset)
	session.OnReset(conversation.Reset)

	restorePrefs(session, prefs)

	cli.SetServices(&cli.Services{
		Session:      session,
		Spread:       spread,
		Acquire:      acquire,
		Recorder:     recorder,
		Conversation: conversation,
		Frames:       frames,
		Voice:        client,
		Prefs:        prefs,
	})

	return cli.Execute()
}

// restorePrefs applies the persisted style and overlay to a new session.
func restorePrefs(session *services.Session, prefs driven.PrefStore) {
	if style := domain.ReaderStyle(prefs.GetString(driven.PrefReaderStyle)); style.IsValid() {
		session.SetStyle(style)
	}
	if overlay := domain.OverlayID(prefs.GetString(driven.PrefOverlayID)); overlay.IsValid() {
		session.SetOverlayID(overlay)
	}
}
