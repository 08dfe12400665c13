package config

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Refresh backends.
const (
	BackendFrame = "frame"
	BackendTimer = "timer"
)

// DefaultProfile is used when a document names no profile.
const DefaultProfile = "standard"

var (
	// ErrIncompatibleMerge indicates an attempt to merge values that are not
	// both key/value mappings.
	ErrIncompatibleMerge = errors.New("cannot merge different types")

	// ErrUnknownProfile indicates a profile name with no built-in defaults.
	ErrUnknownProfile = errors.New("unknown profile")
)

// MergeError describes a failed Merge.
type MergeError struct {
	BaseKind     string
	OverrideKind string
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("%s: %s and %s", ErrIncompatibleMerge, e.BaseKind, e.OverrideKind)
}

// Unwrap returns ErrIncompatibleMerge.
func (e *MergeError) Unwrap() error {
	return ErrIncompatibleMerge
}

// Settings is the decoded configuration.
type Settings struct {
	Profile   string  `yaml:"profile"`
	Source    string  `yaml:"source"`
	FPS       float64 `yaml:"fps"`
	Quality   float64 `yaml:"quality"`
	Format    string  `yaml:"format"`
	MaxFrames int     `yaml:"max_frames"`
	Refresh   Refresh `yaml:"refresh"`
}

// Refresh selects the refresh-scheduling backend.
type Refresh struct {
	Backend string        `yaml:"backend"`
	Period  time.Duration `yaml:"period"`
}

func profiles() map[string]map[string]interface{} {
	return map[string]map[string]interface{}{
		"standard": {
			"profile": "standard",
			"fps":     24.0,
			"quality": 0.5,
			"format":  "jpg",
			"refresh": map[string]interface{}{"backend": BackendFrame},
		},
		"lossless": {
			"profile": "lossless",
			"fps":     24.0,
			"quality": 1.0,
			"format":  "png",
			"refresh": map[string]interface{}{"backend": BackendTimer},
		},
	}
}

// Profiles returns the built-in profile names.
func Profiles() []string {
	names := make([]string, 0, 2)
	for name := range profiles() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new mapping with every key of base, then every key of
// override. Both values must be mappings.
func Merge(base, override interface{}) (map[string]interface{}, error) {
	b, bok := base.(map[string]interface{})
	o, ook := override.(map[string]interface{})
	if !bok || !ook {
		return nil, &MergeError{BaseKind: kindOf(base), OverrideKind: kindOf(override)}
	}

	merged := make(map[string]interface{}, len(b)+len(o))
	for k, v := range b {
		merged[k] = v
	}
	for k, v := range o {
		merged[k] = v
	}
	return merged, nil
}

func kindOf(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "mapping"
	case []interface{}:
		return "sequence"
	default:
		return fmt.Sprintf("scalar %T", v)
	}
}

// Profile returns the settings of a built-in profile.
func Profile(name string) (Settings, error) {
	defaults, ok := profiles()[name]
	if !ok {
		return Settings{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return decode(defaults)
}

// Load decodes a YAML document over its profile defaults. An empty document
// yields the default profile.
func Load(data []byte) (Settings, error) {
	var doc interface{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Settings{}, fmt.Errorf("parse settings: %w", err)
		}
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}

	name := DefaultProfile
	if m, ok := doc.(map[string]interface{}); ok {
		if p, ok := m["profile"].(string); ok && p != "" {
			name = p
		}
	}
	defaults, ok := profiles()[name]
	if !ok {
		return Settings{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}

	merged, err := Merge(defaults, doc)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "config.Load",
			"profile":  name,
			"error":    err.Error(),
		}).Error("Settings merge failed")
		return Settings{}, err
	}

	settings, err := decode(merged)
	if err != nil {
		return Settings{}, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "config.Load",
		"profile":  settings.Profile,
		"source":   settings.Source,
		"fps":      settings.FPS,
		"quality":  settings.Quality,
		"format":   settings.Format,
		"backend":  settings.Refresh.Backend,
	}).Debug("Settings loaded")

	return settings, nil
}

// decode round-trips a mapping through YAML into Settings, rejecting keys
// Settings does not know.
func decode(m map[string]interface{}) (Settings, error) {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return Settings{}, fmt.Errorf("encode settings: %w", err)
	}

	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}
