// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ScanAPI: Card recognition from camera frames
//   - ReadingAPI: Reading generation, algorithmic draws, clarifiers, follow-up
//   - ChatAPI: Legacy session-only follow-up conversation
//   - PrefStore: Persisted user preferences
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - VoiceAPI: Speech synthesis and transcription. Without it, voice
//     capture and spoken replies are disabled.
//   - AudioInputFactory / AudioPlayer: Platform audio devices. Without
//     them, recording and playback are disabled.
//   - Haptics: Placement feedback. Without it, feedback is silently skipped.
//   - FrameSource: Camera frame delivery for physical mode.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
