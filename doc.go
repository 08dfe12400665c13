// Package canvasplayer records still-image snapshots of a drawing surface at
// a fixed rate and replays them onto another surface.
//
// A Player owns one frame buffer and alternates between three modes: idle,
// recording and playing. Recording and playing never overlap. Both modes are
// driven by a clock-corrected scheduler sitting on top of the host's refresh
// callback, so the sustained capture and playback rates converge to the
// configured frames per second even when refreshes arrive at a coarser grain.
//
// # Getting Started
//
//	doc := surface.NewDocument()
//	scene, _ := surface.NewCanvas("scene", 800, 400)
//	doc.Attach(scene)
//
//	options := canvasplayer.NewOptions()
//	options.SourceSurface = "scene"
//	options.FPS = 10
//
//	player, err := canvasplayer.New(options, canvasplayer.Host{Document: doc})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer player.Close()
//
//	player.Record()
//	time.Sleep(2 * time.Second)
//	player.StopRecord()
//
//	// With no target reference an overlay the size of the source is created.
//	player.Play("", true)
//
// # Host Collaborators
//
// Everything the player touches outside its own state is injected through
// [Host]: the surface resolver, the image codec, the refresh scheduler and
// the clock. Nil collaborators fall back to an [surface.ImageCodec], the real
// clock, and a refresh backend chosen by [Options.RefreshBackend].
//
// # State Conflicts
//
// Calling Record while recording, Play while recording, or Images while
// recording does not change any state. The call logs a warning and returns a
// sentinel error such as [ErrAlreadyRecording] or [ErrRecordingActive].
// StopRecord and StopPlay are no-ops outside their mode.
//
// # Playback
//
// Each accepted playback tick pulls the next frame and decodes it
// asynchronously; the decoded image is drawn when the decode completes. Only
// the most recently requested draw may land: a decode that finishes after a
// newer one was requested, or after StopPlay, is dropped. A non-looping
// playback stops itself once the sequence is exhausted and leaves the last
// frame on the target. Playing again after that starts from the first frame.
package canvasplayer
