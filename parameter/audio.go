package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Chime tones played by the live view
const (
	// ChimeImproveHz marks a new best fitness
	ChimeImproveHz = 660

	// ChimeDoneHz marks the end of the run
	ChimeDoneHz = 880

	// ChimeDuration is the length of one tone
	ChimeDuration = 60 * time.Millisecond
)
