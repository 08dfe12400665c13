package limits

import (
	"errors"
	"testing"
)

func TestValidateEncodedFrame(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr error
	}{
		{"empty", 0, ErrFrameEmpty},
		{"single byte", 1, nil},
		{"at limit", MaxEncodedFrame, nil},
		{"over limit", MaxEncodedFrame + 1, ErrFrameTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEncodedFrame(make([]byte, tt.size))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateEncodedFrame(%d bytes) = %v, want %v", tt.size, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"typical", 800, 400, false},
		{"single pixel", 1, 1, false},
		{"at limit", MaxSurfaceDimension, MaxSurfaceDimension, false},
		{"zero width", 0, 10, true},
		{"negative height", 10, -1, true},
		{"too wide", MaxSurfaceDimension + 1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height)
			if tt.wantErr && !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("ValidateDimensions(%d, %d) = %v, want ErrInvalidDimensions", tt.width, tt.height, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateDimensions(%d, %d) = %v, want nil", tt.width, tt.height, err)
			}
		})
	}
}

func TestCapacity(t *testing.T) {
	if err := ValidateCapacity(0); err != nil {
		t.Errorf("ValidateCapacity(0) = %v, want nil", err)
	}
	if err := ValidateCapacity(-1); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("ValidateCapacity(-1) = %v, want ErrInvalidCapacity", err)
	}
	if err := ValidateCapacity(MaxBufferedFrames + 1); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("ValidateCapacity(max+1) = %v, want ErrInvalidCapacity", err)
	}

	if got := EffectiveCapacity(0); got != MaxBufferedFrames {
		t.Errorf("EffectiveCapacity(0) = %d, want %d", got, MaxBufferedFrames)
	}
	if got := EffectiveCapacity(10); got != 10 {
		t.Errorf("EffectiveCapacity(10) = %d, want 10", got)
	}
}
