package canvasplayer

import (
	"fmt"
	"math"
	"time"

	"github.com/opd-ai/canvasplayer/clock"
	"github.com/opd-ai/canvasplayer/config"
	"github.com/opd-ai/canvasplayer/frame"
	"github.com/opd-ai/canvasplayer/limits"
	"github.com/opd-ai/canvasplayer/scheduler"
)

// Options configures a Player.
type Options struct {
	// SourceSurface references the surface to record. Empty selects the
	// first surface of the document.
	SourceSurface string
	// FPS is both the capture and the playback rate.
	FPS float64
	// Quality is the lossy encoding quality in [0,1].
	Quality float64
	// Format is the still-image encoding of captured frames.
	Format frame.Format
	// MaxFrames bounds the buffer. Zero means limits.MaxBufferedFrames.
	MaxFrames int
	// RefreshBackend selects the refresh source when Host.Refresher is nil:
	// config.BackendFrame or config.BackendTimer.
	RefreshBackend string
	// RefreshPeriod is the period of that refresh source.
	RefreshPeriod time.Duration
}

// NewOptions returns the defaults of the standard profile.
func NewOptions() *Options {
	return &Options{
		FPS:            24,
		Quality:        0.5,
		Format:         frame.FormatJPEG,
		RefreshBackend: config.BackendFrame,
		RefreshPeriod:  clock.DefaultRefreshPeriod,
	}
}

// NewOptionsFromSettings converts decoded settings into Options.
func NewOptionsFromSettings(s config.Settings) (*Options, error) {
	format, err := frame.ParseFormat(s.Format)
	if err != nil {
		return nil, err
	}

	opts := NewOptions()
	opts.SourceSurface = s.Source
	opts.FPS = s.FPS
	opts.Quality = s.Quality
	opts.Format = format
	opts.MaxFrames = s.MaxFrames
	if s.Refresh.Backend != "" {
		opts.RefreshBackend = s.Refresh.Backend
	}
	if s.Refresh.Period > 0 {
		opts.RefreshPeriod = s.Refresh.Period
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// LoadOptions decodes YAML settings over their profile and converts them.
func LoadOptions(data []byte) (*Options, error) {
	s, err := config.Load(data)
	if err != nil {
		return nil, err
	}
	return NewOptionsFromSettings(s)
}

// Validate checks every field.
func (o *Options) Validate() error {
	if _, err := scheduler.IntervalFor(o.FPS); err != nil {
		return err
	}
	if o.Quality < 0 || o.Quality > 1 || math.IsNaN(o.Quality) {
		return fmt.Errorf("%w: %v", ErrInvalidQuality, o.Quality)
	}
	if !o.Format.Valid() {
		return fmt.Errorf("%w: %d", frame.ErrUnknownFormat, uint8(o.Format))
	}
	if err := limits.ValidateCapacity(o.MaxFrames); err != nil {
		return err
	}
	switch o.RefreshBackend {
	case "", config.BackendFrame, config.BackendTimer:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, o.RefreshBackend)
	}
	return nil
}
