package jpegdsp

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vearutop/jpegdsp/internal/jpegx"
)

// Mode selects the component layout of the encoded frame.
type Mode int

const (
	// ModeAuto picks ModeGrayscale for gray images and ModeColor420 otherwise.
	ModeAuto Mode = iota
	// ModeGrayscale encodes a single luminance component.
	ModeGrayscale
	// ModeColor420 encodes Y, Cb and Cr with 2x2 chroma subsampling.
	ModeColor420
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeGrayscale:
		return "grayscale"
	case ModeColor420:
		return "color_420"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ModeAuto, nil
	case "grayscale", "gray":
		return ModeGrayscale, nil
	case "color_420", "color", "420":
		return ModeColor420, nil
	}
	return ModeAuto, fmt.Errorf("%w: %q", ErrMode, s)
}

func (m Mode) layout() (jpegx.Layout, error) {
	switch m {
	case ModeGrayscale:
		return jpegx.GrayscaleLayout, nil
	case ModeColor420:
		return jpegx.YCbCr420Layout, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrMode, m)
}

// Plane is a single 8-bit channel.
type Plane = jpegx.Plane

// NewPlane allocates a zeroed plane.
func NewPlane(width, height int) Plane {
	return jpegx.NewPlane(width, height)
}

// Errors returned by encoding functions. Check them with errors.Is.
var (
	ErrDimensions = jpegx.ErrDimensions
	ErrQuality    = jpegx.ErrQuality
	ErrLayout     = jpegx.ErrLayout
	ErrMode       = errors.New("jpeg: unknown mode")
)

// InvariantError reports a value that an encoding stage could not represent.
type InvariantError = jpegx.InvariantError

// EncodeOptions controls encoding.
type EncodeOptions struct {
	Quality int
	Mode    Mode
	Logger  *slog.Logger
	// Workers bounds the goroutines of the transform stage, 0 means GOMAXPROCS.
	Workers int
	// MaxWidth and MaxHeight, when positive, downscale larger images to fit
	// before encoding, keeping the aspect ratio.
	MaxWidth      uint
	MaxHeight     uint
	Interpolation Interpolation
	// Analyze enables EncodeResult.Analysis.
	Analyze bool
	// OnResult is called with the result of a successful encode.
	OnResult func(res *EncodeResult)
}

// EncodeResult is a finished encode.
type EncodeResult struct {
	Data []byte
	// Mode is the resolved mode, never ModeAuto.
	Mode  Mode
	Stats jpegx.Stats
	// Analysis is set when EncodeOptions.Analyze is true.
	Analysis *Analysis
}

func defaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Quality:       75,
		Mode:          ModeAuto,
		Interpolation: InterpolationLanczos3,
	}
}
