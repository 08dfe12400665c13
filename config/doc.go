// Package config loads canvas player settings from YAML.
//
// Settings start from a named profile and are overlaid with the keys of the
// document, the same way two option mappings are merged at construction:
//
//	# player.yaml
//	profile: lossless
//	source: scene
//	fps: 30
//
//	settings, err := config.Load(data)
//
// Two profiles are built in. "standard" captures JPEG at quality 0.5 on a
// refresh-driven loop. "lossless" captures PNG at quality 1.0 on a
// timer-driven loop. Both default to 24 frames per second.
//
// Merge refuses to combine anything other than two key/value mappings and
// reports a *MergeError wrapping ErrIncompatibleMerge.
package config
