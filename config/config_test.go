package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	base := map[string]interface{}{"fps": 24, "format": "jpg"}
	override := map[string]interface{}{"format": "png", "source": "scene"}

	merged, err := Merge(base, override)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"fps": 24, "format": "png", "source": "scene"}, merged)

	// inputs untouched
	assert.Equal(t, "jpg", base["format"])
	assert.NotContains(t, base, "source")
}

func TestMerge_Incompatible(t *testing.T) {
	tests := []struct {
		name           string
		base, override interface{}
		wantKinds      [2]string
	}{
		{"scalar override", map[string]interface{}{}, 42, [2]string{"mapping", "scalar int"}},
		{"sequence override", map[string]interface{}{}, []interface{}{"a"}, [2]string{"mapping", "sequence"}},
		{"string base", "jpg", map[string]interface{}{}, [2]string{"scalar string", "mapping"}},
		{"nil override", map[string]interface{}{}, nil, [2]string{"mapping", "null"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge(tt.base, tt.override)
			require.ErrorIs(t, err, ErrIncompatibleMerge)

			var mergeErr *MergeError
			require.True(t, errors.As(err, &mergeErr))
			assert.Equal(t, tt.wantKinds[0], mergeErr.BaseKind)
			assert.Equal(t, tt.wantKinds[1], mergeErr.OverrideKind)
			assert.Contains(t, err.Error(), "cannot merge different types")
		})
	}
}

func TestProfiles(t *testing.T) {
	assert.Equal(t, []string{"lossless", "standard"}, Profiles())

	standard, err := Profile("standard")
	require.NoError(t, err)
	assert.Equal(t, 24.0, standard.FPS)
	assert.Equal(t, 0.5, standard.Quality)
	assert.Equal(t, "jpg", standard.Format)
	assert.Equal(t, BackendFrame, standard.Refresh.Backend)

	lossless, err := Profile("lossless")
	require.NoError(t, err)
	assert.Equal(t, 1.0, lossless.Quality)
	assert.Equal(t, "png", lossless.Format)
	assert.Equal(t, BackendTimer, lossless.Refresh.Backend)

	_, err = Profile("cinema")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestLoad_Empty(t *testing.T) {
	s, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile, s.Profile)
	assert.Equal(t, 24.0, s.FPS)
}

func TestLoad_OverlaysProfile(t *testing.T) {
	data := []byte(`
profile: lossless
source: scene
fps: 30
max_frames: 500
refresh:
  backend: frame
  period: 8ms
`)

	s, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, "lossless", s.Profile)
	assert.Equal(t, "scene", s.Source)
	assert.Equal(t, 30.0, s.FPS)
	assert.Equal(t, 1.0, s.Quality)
	assert.Equal(t, "png", s.Format)
	assert.Equal(t, 500, s.MaxFrames)
	assert.Equal(t, BackendFrame, s.Refresh.Backend)
	assert.Equal(t, 8*time.Millisecond, s.Refresh.Period)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]byte("42"))
	assert.ErrorIs(t, err, ErrIncompatibleMerge)

	_, err = Load([]byte("- fps: 10"))
	assert.ErrorIs(t, err, ErrIncompatibleMerge)

	_, err = Load([]byte("profile: cinema"))
	assert.ErrorIs(t, err, ErrUnknownProfile)

	_, err = Load([]byte("colour: red"))
	assert.Error(t, err)

	_, err = Load([]byte("fps: [1"))
	assert.Error(t, err)
}
