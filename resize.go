package jpegdsp

import (
	"fmt"
	"image"
	"strings"

	"github.com/nfnt/resize"
)

// Interpolation selects the resampling kernel used by Fit.
type Interpolation int

const (
	// InterpolationNearest is nearest-neighbor sampling.
	InterpolationNearest Interpolation = iota
	// InterpolationBilinear is linear sampling.
	InterpolationBilinear
	// InterpolationBicubic is cubic sampling.
	InterpolationBicubic
	// InterpolationMitchellNetravali is Mitchell-Netravali sampling.
	InterpolationMitchellNetravali
	// InterpolationLanczos2 is Lanczos sampling with a=2.
	InterpolationLanczos2
	// InterpolationLanczos3 is Lanczos sampling with a=3.
	InterpolationLanczos3
)

var interpolationNames = map[Interpolation]string{
	InterpolationNearest:           "nearest",
	InterpolationBilinear:          "bilinear",
	InterpolationBicubic:           "bicubic",
	InterpolationMitchellNetravali: "mitchell",
	InterpolationLanczos2:          "lanczos2",
	InterpolationLanczos3:          "lanczos3",
}

func (i Interpolation) String() string {
	if s, ok := interpolationNames[i]; ok {
		return s
	}
	return fmt.Sprintf("interpolation(%d)", int(i))
}

// ParseInterpolation parses a name as printed by Interpolation.String.
func ParseInterpolation(s string) (Interpolation, error) {
	s = strings.ToLower(s)
	for i, name := range interpolationNames {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown interpolation %q", s)
}

func (i Interpolation) kernel() resize.InterpolationFunction {
	switch i {
	case InterpolationBilinear:
		return resize.Bilinear
	case InterpolationBicubic:
		return resize.Bicubic
	case InterpolationMitchellNetravali:
		return resize.MitchellNetravali
	case InterpolationLanczos2:
		return resize.Lanczos2
	case InterpolationLanczos3:
		return resize.Lanczos3
	default:
		return resize.NearestNeighbor
	}
}

// Fit downscales img to fit within maxWidth x maxHeight, keeping the aspect
// ratio. A zero bound is unlimited. Images that already fit are returned
// unchanged.
func Fit(img image.Image, maxWidth, maxHeight uint, interp Interpolation) image.Image {
	b := img.Bounds()
	if maxWidth == 0 {
		maxWidth = uint(b.Dx())
	}
	if maxHeight == 0 {
		maxHeight = uint(b.Dy())
	}
	return resize.Thumbnail(maxWidth, maxHeight, img, interp.kernel())
}
