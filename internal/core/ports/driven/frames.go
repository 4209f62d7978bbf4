package driven

// Frame is one captured camera image ready for recognition.
type Frame struct {
	// Name is the original file name, used as the upload filename.
	Name string

	// Data is the encoded image bytes.
	Data []byte
}

// FrameSource delivers camera frames for physical-mode scanning.
// The channel closes when the source shuts down.
type FrameSource interface {
	// Frames returns the channel of captured frames.
	Frames() <-chan Frame

	// Close stops the source and releases its resources.
	Close() error
}
