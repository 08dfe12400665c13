package canvasplayer

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/canvasplayer/clock"
	"github.com/opd-ai/canvasplayer/config"
	"github.com/opd-ai/canvasplayer/frame"
	"github.com/opd-ai/canvasplayer/scheduler"
	"github.com/opd-ai/canvasplayer/surface"
)

// Host bundles the collaborators a Player works through.
type Host struct {
	// Document resolves the source surface and playback targets. Required.
	Document surface.Resolver
	// Codec encodes snapshots and decodes frames. Defaults to surface.NewImageCodec().
	Codec surface.Codec
	// Refresher schedules refresh callbacks. Defaults to a backend built from
	// Options.RefreshBackend, owned and closed by the Player.
	Refresher clock.Refresher
	// Clock supplies the current time. Defaults to the real clock.
	Clock clock.TimeProvider
}

// drawRequest is a decode handed to the codec after the Player lock is
// released.
type drawRequest struct {
	generation uint64
	target     surface.Target
	frame      frame.Frame
}

// Player records frames from a source surface and replays them.
type Player struct {
	id uuid.UUID

	resolver     surface.Resolver
	codec        surface.Codec
	refresher    clock.Refresher
	timeProvider clock.TimeProvider
	ownedLoop    *clock.FrameLoop

	source surface.Surface
	buffer *frame.Buffer

	recordScheduler *scheduler.Scheduler
	playScheduler   *scheduler.Scheduler

	mu       sync.Mutex
	options  Options
	mode     Mode
	iterator *frame.Iterator
	target   surface.Target
	loop     bool
	rewind   bool
	stats    Stats
	closed   bool

	// drawGen numbers draw requests. lastDrawn is the newest generation
	// drawn or invalidated; completions at or below it are stale.
	drawGen   uint64
	lastDrawn uint64
}

// New creates an idle Player. opts may be nil for the defaults.
func New(opts *Options, host Host) (*Player, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if host.Document == nil {
		return nil, ErrNoDocument
	}

	source, err := host.Document.Source(opts.SourceSurface)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "New",
			"source":   opts.SourceSurface,
			"error":    err.Error(),
		}).Error("Source surface not resolvable")
		return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}

	p := &Player{
		id:           uuid.New(),
		resolver:     host.Document,
		codec:        host.Codec,
		refresher:    host.Refresher,
		timeProvider: clock.Resolve(host.Clock),
		source:       source,
		buffer:       frame.NewBuffer(opts.MaxFrames),
		options:      *opts,
	}
	if p.codec == nil {
		p.codec = surface.NewImageCodec()
	}
	if p.refresher == nil {
		if err := p.buildRefresher(); err != nil {
			return nil, err
		}
	}

	if p.recordScheduler, err = scheduler.New(p.refresher, p.timeProvider, opts.FPS); err != nil {
		p.closeOwnedLoop()
		return nil, err
	}
	if p.playScheduler, err = scheduler.New(p.refresher, p.timeProvider, opts.FPS); err != nil {
		p.closeOwnedLoop()
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":   "New",
		"session_id": p.id.String(),
		"source":     opts.SourceSurface,
		"fps":        opts.FPS,
		"quality":    opts.Quality,
		"format":     opts.Format.String(),
		"max_frames": p.buffer.Capacity(),
	}).Info("Canvas player created")

	return p, nil
}

func (p *Player) buildRefresher() error {
	switch p.options.RefreshBackend {
	case "", config.BackendFrame:
		loop := clock.NewFrameLoop(p.options.RefreshPeriod, p.timeProvider)
		if err := loop.Start(); err != nil {
			return err
		}
		p.ownedLoop = loop
		p.refresher = loop
	case config.BackendTimer:
		p.refresher = clock.NewIntervalTimer(p.options.RefreshPeriod, p.timeProvider)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, p.options.RefreshBackend)
	}
	return nil
}

func (p *Player) closeOwnedLoop() {
	if p.ownedLoop != nil {
		p.ownedLoop.Close()
	}
}

func (p *Player) logger(function string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"function":   function,
		"session_id": p.id.String(),
	})
}

// ID returns the session identifier used in logs.
func (p *Player) ID() uuid.UUID {
	return p.id
}

// Mode returns the current mode.
func (p *Player) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// Options returns a copy of the current options.
func (p *Player) Options() Options {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.options
}

// Stats returns a snapshot of the counters.
func (p *Player) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Target returns the playback target, or nil before the first Play.
func (p *Player) Target() surface.Target {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.target
}

// Record starts capturing the source surface. It returns immediately;
// frames are appended on the scheduler's cadence until StopRecord.
func (p *Player) Record() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	switch p.mode {
	case ModeRecording:
		p.logger("Record").Warn("Already recording")
		return ErrAlreadyRecording
	case ModePlaying:
		p.logger("Record").Warn("Cannot record while playing")
		return ErrPlaybackActive
	}

	p.mode = ModeRecording
	if err := p.recordScheduler.Start(p.captureTick); err != nil {
		p.mode = ModeIdle
		return err
	}
	p.stats.Recordings++

	p.logger("Record").WithFields(logrus.Fields{
		"fps":     p.options.FPS,
		"quality": p.options.Quality,
		"format":  p.options.Format.String(),
	}).Info("Start recording")
	return nil
}

func (p *Player) captureTick(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != ModeRecording {
		return
	}

	f, err := p.codec.Encode(p.source, p.options.Format, p.options.Quality)
	if err != nil {
		p.stats.CaptureErrors++
		p.logger("captureTick").WithField("error", err.Error()).Warn("Frame capture failed")
		return
	}
	f.CapturedAt = now

	stored, err := p.buffer.Append(f)
	if err != nil {
		p.stats.CaptureErrors++
		p.logger("captureTick").WithField("error", err.Error()).Warn("Frame not buffered")
		return
	}
	p.stats.FramesCaptured++

	p.logger("captureTick").WithFields(logrus.Fields{
		"seq":   stored.Seq,
		"bytes": len(stored.Data),
	}).Trace("Frame captured")
}

// StopRecord stops capturing and prepares the captured frames for playback.
// It is a no-op when not recording.
func (p *Player) StopRecord() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != ModeRecording {
		return
	}

	p.mode = ModeIdle
	p.recordScheduler.Stop()
	p.iterator = frame.NewIterator(p.buffer.Freeze())
	p.rewind = false

	p.logger("StopRecord").WithField("frames", p.iterator.Len()).Info("Stop recording")
}

// Images returns a copy of the buffered frames. It fails while recording.
func (p *Player) Images() ([]frame.Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode == ModeRecording {
		p.logger("Images").Warn("Cannot get images while recording")
		return nil, ErrRecordingActive
	}
	return p.buffer.Snapshot(), nil
}

// ClearBuffer discards every buffered frame. A running playback stops.
func (p *Player) ClearBuffer() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode == ModePlaying {
		p.stopPlaybackLocked()
	}
	p.buffer.Clear()
	p.iterator = nil
	p.invalidateDrawsLocked()

	p.logger("ClearBuffer").Debug("Buffer cleared")
}

// Play replays the recorded frames onto the surface referenced by target.
// When target resolves to nothing and no target exists yet, an overlay the
// size of the source surface is created. With loop the sequence restarts
// after the last frame; otherwise playback stops there.
func (p *Player) Play(target string, loop bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	switch {
	case p.mode == ModeRecording:
		p.logger("Play").Warn("Cannot play while recording")
		return ErrRecordingActive
	case p.mode == ModePlaying:
		p.logger("Play").Warn("Already playing")
		return ErrAlreadyPlaying
	case p.iterator == nil || p.iterator.Len() == 0:
		p.logger("Play").Warn("Nothing recorded")
		return ErrEmptyBuffer
	}

	if err := p.resolveTargetLocked(target); err != nil {
		return err
	}

	p.loop = loop
	p.rewind = p.iterator.Cursor() >= p.iterator.Len()
	p.mode = ModePlaying
	if err := p.playScheduler.Start(p.playTick); err != nil {
		p.mode = ModeIdle
		return err
	}
	p.stats.Playbacks++

	p.logger("Play").WithFields(logrus.Fields{
		"target": target,
		"loop":   loop,
		"frames": p.iterator.Len(),
		"cursor": p.iterator.Cursor(),
	}).Info("Start playing")
	return nil
}

func (p *Player) resolveTargetLocked(ref string) error {
	if t, ok := p.resolver.Target(ref); ok {
		p.target = t
		return nil
	}
	if p.target != nil {
		return nil
	}

	size := p.source.Bounds().Size()
	t, err := p.resolver.CreateOverlay(size.X, size.Y)
	if err != nil {
		p.logger("Play").WithField("error", err.Error()).Error("Overlay creation failed")
		return err
	}
	p.target = t

	p.logger("Play").WithFields(logrus.Fields{
		"width":  size.X,
		"height": size.Y,
	}).Debug("Created playback overlay")
	return nil
}

func (p *Player) playTick(time.Time) {
	req, ok := p.advance()
	if !ok {
		return
	}
	p.codec.Decode(req.frame, func(img image.Image, err error) {
		p.completeDraw(req, img, err)
	})
}

// advance pulls the next frame and reserves a draw generation for it.
func (p *Player) advance() (drawRequest, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != ModePlaying || p.iterator == nil {
		return drawRequest{}, false
	}

	r := p.iterator.Next(p.rewind)
	p.rewind = false
	if r.Done {
		if !p.loop {
			p.stopPlaybackLocked()
			p.logger("playTick").Info("Playback finished")
			return drawRequest{}, false
		}
		r = p.iterator.Next(true)
		p.stats.Loops++
	}

	p.drawGen++
	return drawRequest{
		generation: p.drawGen,
		target:     p.target,
		frame:      r.Frame,
	}, true
}

func (p *Player) completeDraw(req drawRequest, img image.Image, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if req.generation <= p.lastDrawn {
		p.stats.StaleDraws++
		p.logger("completeDraw").WithField("seq", req.frame.Seq).Trace("Dropped stale draw")
		return
	}
	if err == nil {
		err = req.target.Draw(img)
	}
	if err != nil {
		p.stats.DrawErrors++
		p.logger("completeDraw").WithFields(logrus.Fields{
			"seq":   req.frame.Seq,
			"error": err.Error(),
		}).Warn("Frame draw failed")
		return
	}
	p.lastDrawn = req.generation
	p.stats.FramesDrawn++
}

// invalidateDrawsLocked marks every draw requested so far as stale.
func (p *Player) invalidateDrawsLocked() {
	p.lastDrawn = p.drawGen
}

// StopPlay stops playback. A decode still in flight is not drawn. It is a
// no-op when not playing.
func (p *Player) StopPlay() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != ModePlaying {
		return
	}
	p.stopPlaybackLocked()
	p.invalidateDrawsLocked()

	p.logger("StopPlay").Info("Stop playing")
}

func (p *Player) stopPlaybackLocked() {
	p.mode = ModeIdle
	p.playScheduler.Stop()
}

// SetRate changes the capture and playback rate. A running mode keeps its
// rate until it is started again.
func (p *Player) SetRate(fps float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.recordScheduler.SetRate(fps); err != nil {
		return err
	}
	if err := p.playScheduler.SetRate(fps); err != nil {
		return err
	}
	p.options.FPS = fps

	p.logger("SetRate").WithField("fps", fps).Debug("Rate changed")
	return nil
}

// Close stops any activity and releases a refresh loop the Player created.
// Close is idempotent.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mode = ModeIdle
	p.recordScheduler.Stop()
	p.playScheduler.Stop()
	p.invalidateDrawsLocked()
	loop := p.ownedLoop
	p.mu.Unlock()

	// Outside the lock: the loop may be running a tick waiting on p.mu.
	if loop != nil {
		if err := loop.Close(); err != nil {
			return err
		}
	}

	p.logger("Close").Info("Canvas player closed")
	return nil
}
