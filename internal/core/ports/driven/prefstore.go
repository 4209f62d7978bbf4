package driven

// Preference keys persisted across sessions. These are the only values
// that outlive a session; everything else is in-memory only.
const (
	// PrefOverlayID is the last selected weather overlay.
	PrefOverlayID = "overlay_id"

	// PrefReaderStyle is the last selected reader style.
	PrefReaderStyle = "reader_style"

	// PrefVoice is the selected synthesis voice.
	PrefVoice = "voice"

	// PrefAutoSend sends a transcript immediately instead of
	// pre-filling the chat input.
	PrefAutoSend = "auto_send"

	// PrefAutoSpeakChat speaks assistant replies aloud.
	PrefAutoSpeakChat = "auto_speak_chat"
)

// PrefStore provides access to persisted user preferences.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type PrefStore interface {
	// Get retrieves a preference value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string preference.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetBool retrieves a boolean preference.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a preference value.
	// The value is persisted immediately.
	Set(key string, value any) error
}
