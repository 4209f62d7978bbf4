package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
	"github.com/wattleworks/tarot42-cli/internal/logger"
)

// Ensure Recorder implements the driving port.
var _ driving.RecorderService = (*Recorder)(nil)

// Recorder manages the microphone capture lifecycle. The sampling loop
// is bound to the capture session's context and cancelled atomically
// with teardown, so no timer can outlive the session it reads.
type Recorder struct {
	session driving.SessionService
	inputs  driven.AudioInputFactory
	voice   driven.VoiceAPI
	prefs   driven.PrefStore
	tuning  domain.VoiceTuning

	mu      sync.Mutex
	phase   domain.MicPhase
	current *micSession

	events chan driving.VoiceEvent
}

// micSession is the transient capture state. It is created on record
// start and fully discarded, device handle and timers included, on stop
// completion or error, regardless of path taken.
type micSession struct {
	epoch     string
	input     driven.AudioInput
	startedAt time.Time

	// cancel stops the sampling loop's context.
	cancel context.CancelFunc

	// stopOnce guards the manual-stop signal.
	stopOnce sync.Once
	stopCh   chan struct{}

	// teardownOnce makes the teardown idempotent so repeated error
	// paths never leak a device handle or a running timer.
	teardownOnce sync.Once

	// buf accumulates captured PCM16 audio. Owned by the sampling loop.
	buf bytes.Buffer

	// silence is the accumulated silent time. Owned by the sampling loop.
	silence time.Duration
}

// NewRecorder creates a voice capture service.
// The voice API and input factory may be nil; Start then fails with
// domain.ErrMicUnavailable.
func NewRecorder(
	session driving.SessionService,
	inputs driven.AudioInputFactory,
	voice driven.VoiceAPI,
	prefs driven.PrefStore,
	tuning domain.VoiceTuning,
) *Recorder {
	return &Recorder{
		session: session,
		inputs:  inputs,
		voice:   voice,
		prefs:   prefs,
		tuning:  tuning,
		phase:   domain.MicIdle,
		events:  make(chan driving.VoiceEvent, 32),
	}
}

// Phase returns the current capture phase.
func (r *Recorder) Phase() domain.MicPhase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Events returns the recorder's lifecycle event channel.
func (r *Recorder) Events() <-chan driving.VoiceEvent {
	return r.events
}

// Start begins recording. A start while already recording or
// transcribing is a no-op.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.phase != domain.MicIdle {
		r.mu.Unlock()
		logger.Debug("recorder: start ignored in phase %s", r.phase)
		return nil
	}
	if r.inputs == nil || r.voice == nil {
		r.mu.Unlock()
		return domain.ErrMicUnavailable
	}
	// Reserve the state machine before the potentially slow device
	// acquisition so concurrent starts stay no-ops.
	r.phase = domain.MicRecording
	r.mu.Unlock()

	input, err := r.inputs.Open(ctx)
	if err != nil {
		r.mu.Lock()
		r.phase = domain.MicIdle
		r.mu.Unlock()
		r.emit(driving.VoiceEvent{Kind: driving.VoiceError, Epoch: r.session.Epoch(), Err: err})
		return err
	}

	captureCtx, cancel := context.WithCancel(ctx)
	ms := &micSession{
		epoch:     r.session.Epoch(),
		input:     input,
		startedAt: time.Now(),
		cancel:    cancel,
		stopCh:    make(chan struct{}),
	}

	r.mu.Lock()
	r.current = ms
	r.mu.Unlock()

	logger.Debug("recorder: recording started")
	r.emit(driving.VoiceEvent{Kind: driving.VoiceStarted, Epoch: ms.epoch})
	go r.run(ctx, captureCtx, ms)
	return nil
}

// Stop ends recording immediately, bypassing the silence thresholds.
// A no-op unless recording.
func (r *Recorder) Stop() {
	r.mu.Lock()
	ms := r.current
	recording := r.phase == domain.MicRecording
	r.mu.Unlock()

	if !recording || ms == nil {
		logger.Debug("recorder: stop ignored while not recording")
		return
	}
	ms.stopOnce.Do(func() { close(ms.stopCh) })
}

// run is the capture loop: a display tick for the UI and a silence
// sampling tick implementing the two-threshold auto-stop policy.
// parentCtx outlives teardown and carries the transcription request;
// captureCtx dies with the mic session.
func (r *Recorder) run(parentCtx, captureCtx context.Context, ms *micSession) {
	displayTick := time.NewTicker(r.tuning.DisplayTick)
	silenceTick := time.NewTicker(r.tuning.SilenceTick)
	defer displayTick.Stop()
	defer silenceTick.Stop()

	for {
		select {
		case <-captureCtx.Done():
			r.abort(ms, captureCtx.Err())
			return

		case <-ms.stopCh:
			r.transcribe(parentCtx, ms)
			return

		case <-displayTick.C:
			r.emitTick(driving.VoiceEvent{
				Kind:    driving.VoiceTick,
				Epoch:   ms.epoch,
				Elapsed: time.Since(ms.startedAt),
			})

		case <-silenceTick.C:
			chunk, err := ms.input.Read(captureCtx)
			if err != nil {
				r.abort(ms, err)
				return
			}
			ms.buf.Write(chunk)

			if pcmRMS(chunk) < r.tuning.SilenceRMS {
				ms.silence += r.tuning.SilenceTick
			} else {
				ms.silence = 0
			}

			// Auto-stop needs both thresholds: enough total recording
			// time and enough accumulated silence.
			if time.Since(ms.startedAt) >= r.tuning.MinRecording &&
				ms.silence >= r.tuning.SilenceStop {
				logger.Debug("recorder: silence auto-stop after %s", time.Since(ms.startedAt))
				r.transcribe(parentCtx, ms)
				return
			}
		}
	}
}

// transcribe finalises the buffered audio, releases the device and
// submits the payload. Runs only in the capture goroutine.
func (r *Recorder) transcribe(ctx context.Context, ms *micSession) {
	r.mu.Lock()
	r.phase = domain.MicTranscribing
	r.mu.Unlock()
	r.emit(driving.VoiceEvent{Kind: driving.VoiceTranscribing, Epoch: ms.epoch})

	payload := append([]byte(nil), ms.buf.Bytes()...)
	// The device is released before the network round trip; the
	// teardown also guards every later exit path.
	r.teardown(ms)

	if len(payload) == 0 {
		r.finish(ms, driving.VoiceEvent{Kind: driving.VoiceNoSpeech, Epoch: ms.epoch})
		return
	}

	text, err := r.voice.Transcribe(ctx, payload, "recording.pcm")
	if err != nil {
		r.finish(ms, driving.VoiceEvent{Kind: driving.VoiceError, Epoch: ms.epoch, Err: err})
		return
	}

	text = strings.TrimSpace(text)
	if text == "" {
		r.finish(ms, driving.VoiceEvent{Kind: driving.VoiceNoSpeech, Epoch: ms.epoch})
		return
	}

	autoSend := r.prefs != nil && r.prefs.GetBool(driven.PrefAutoSend)
	r.finish(ms, driving.VoiceEvent{
		Kind:       driving.VoiceTranscript,
		Epoch:      ms.epoch,
		Transcript: text,
		AutoSend:   autoSend,
	})
}

// abort is the error edge: full teardown, then idle.
func (r *Recorder) abort(ms *micSession, err error) {
	r.finish(ms, driving.VoiceEvent{Kind: driving.VoiceError, Epoch: ms.epoch, Err: err})
}

// finish runs the unconditional teardown, returns the machine to idle
// and emits the final event for this capture.
func (r *Recorder) finish(ms *micSession, event driving.VoiceEvent) {
	r.teardown(ms)

	r.mu.Lock()
	if r.current == ms {
		r.current = nil
		r.phase = domain.MicIdle
	}
	r.mu.Unlock()

	r.emit(event)
}

// teardown cancels the sampling context, releases the device and
// discards buffered audio. Idempotent.
func (r *Recorder) teardown(ms *micSession) {
	ms.teardownOnce.Do(func() {
		ms.cancel()
		if err := ms.input.Close(); err != nil {
			logger.Warn("recorder: closing input: %v", err)
		}
		ms.buf.Reset()
		ms.silence = 0
	})
}

// emit delivers a lifecycle event, blocking until the consumer takes it.
func (r *Recorder) emit(event driving.VoiceEvent) {
	r.events <- event
}

// emitTick delivers a display tick, dropped when the consumer lags.
func (r *Recorder) emitTick(event driving.VoiceEvent) {
	select {
	case r.events <- event:
	default:
	}
}

// pcmRMS computes the normalised root-mean-square energy of a PCM16
// little-endian chunk. An empty chunk reads as silence.
func pcmRMS(chunk []byte) float64 {
	n := len(chunk) / 2
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sample := int16(binary.LittleEndian.Uint16(chunk[i*2:]))
		v := float64(sample) / 32768.0
		sum += v * v
	}
	return math.Sqrt(sum / float64(n))
}
