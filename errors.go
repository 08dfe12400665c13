package canvasplayer

import (
	"errors"

	"github.com/opd-ai/canvasplayer/scheduler"
)

// Construction errors. These are fatal: New returns no Player.
var (
	// ErrNoDocument indicates Host.Document is nil.
	ErrNoDocument = errors.New("no surface document")

	// ErrSourceNotFound indicates the source surface reference resolves to nothing.
	ErrSourceNotFound = errors.New("source surface not found")

	// ErrInvalidRate indicates a frame rate that is not a positive finite number.
	ErrInvalidRate = scheduler.ErrInvalidRate

	// ErrInvalidQuality indicates an encoding quality outside [0,1].
	ErrInvalidQuality = errors.New("quality must be within [0,1]")

	// ErrUnknownBackend indicates an unsupported refresh backend name.
	ErrUnknownBackend = errors.New("unknown refresh backend")
)

// State errors. The Player is left unchanged.
var (
	// ErrAlreadyRecording indicates Record was called while recording.
	ErrAlreadyRecording = errors.New("already recording")

	// ErrRecordingActive indicates an operation that is not allowed while recording.
	ErrRecordingActive = errors.New("recording in progress")

	// ErrPlaybackActive indicates Record was called while playing.
	ErrPlaybackActive = errors.New("playback in progress")

	// ErrAlreadyPlaying indicates Play was called while playing.
	ErrAlreadyPlaying = errors.New("already playing")

	// ErrEmptyBuffer indicates Play was called with nothing recorded.
	ErrEmptyBuffer = errors.New("frame buffer is empty")

	// ErrClosed indicates the Player was closed.
	ErrClosed = errors.New("player closed")
)
