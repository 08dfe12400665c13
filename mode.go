package canvasplayer

import "fmt"

// Mode is the activity of a Player.
type Mode uint8

const (
	// ModeIdle indicates neither recording nor playing.
	ModeIdle Mode = iota
	// ModeRecording indicates frames are being captured.
	ModeRecording
	// ModePlaying indicates frames are being replayed.
	ModePlaying
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRecording:
		return "recording"
	case ModePlaying:
		return "playing"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Stats counts what a Player has done since it was created.
type Stats struct {
	// Recordings and Playbacks count successful Record and Play calls.
	Recordings uint64
	Playbacks  uint64

	FramesCaptured uint64
	CaptureErrors  uint64

	FramesDrawn uint64
	DrawErrors  uint64
	// StaleDraws counts decoded frames dropped because a newer draw was
	// requested or playback stopped first.
	StaleDraws uint64
	// Loops counts rewinds of a looping playback.
	Loops uint64
}
