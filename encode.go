package jpegdsp

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vearutop/jpegdsp/internal/jpegx"
)

// WithQuality sets quality in [1, 100].
func WithQuality(q int) func(o *EncodeOptions) {
	return func(o *EncodeOptions) {
		o.Quality = q
	}
}

// WithMode sets the component layout.
func WithMode(m Mode) func(o *EncodeOptions) {
	return func(o *EncodeOptions) {
		o.Mode = m
	}
}

// WithLogger enables debug logging of encoding stages.
func WithLogger(l *slog.Logger) func(o *EncodeOptions) {
	return func(o *EncodeOptions) {
		o.Logger = l
	}
}

// WithWorkers bounds the goroutines of the transform stage.
func WithWorkers(n int) func(o *EncodeOptions) {
	return func(o *EncodeOptions) {
		o.Workers = n
	}
}

// WithAnalysis enables EncodeResult.Analysis.
func WithAnalysis() func(o *EncodeOptions) {
	return func(o *EncodeOptions) {
		o.Analyze = true
	}
}

// WithMaxSize downscales images larger than maxWidth x maxHeight.
func WithMaxSize(maxWidth, maxHeight uint, interp Interpolation) func(o *EncodeOptions) {
	return func(o *EncodeOptions) {
		o.MaxWidth = maxWidth
		o.MaxHeight = maxHeight
		o.Interpolation = interp
	}
}

func applyOptions(opts []func(o *EncodeOptions)) EncodeOptions {
	opt := defaultEncodeOptions()
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if opt.Logger == nil {
		opt.Logger = discardLogger
	}
	return opt
}

// Encode compresses planes that are already in the layout of mode.
//
// ModeGrayscale takes one plane with sides that are multiples of 8.
// ModeColor420 takes Y with sides that are multiples of 16, followed by Cb
// and Cr at half resolution. ModeAuto picks the mode by plane count.
// The quality argument overrides WithQuality.
func Encode(planes []Plane, quality int, mode Mode, opts ...func(o *EncodeOptions)) ([]byte, error) {
	opt := applyOptions(opts)
	opt.Quality = quality
	if mode == ModeAuto {
		switch len(planes) {
		case 1:
			mode = ModeGrayscale
		case 3:
			mode = ModeColor420
		default:
			return nil, fmt.Errorf("%w: %d planes", ErrDimensions, len(planes))
		}
	}
	opt.Mode = mode

	res, err := encodePlanes(planes, 0, 0, opt, nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// EncodeImage converts, pads and subsamples img as needed and encodes it.
// The frame declares the size of img, so decoders crop the padding.
func EncodeImage(img image.Image, opts ...func(o *EncodeOptions)) (*EncodeResult, error) {
	opt := applyOptions(opts)
	if img == nil {
		return nil, errors.New("nil image")
	}
	if opt.Quality < 1 || opt.Quality > 100 {
		return nil, fmt.Errorf("%w: %d", ErrQuality, opt.Quality)
	}

	start := time.Now()
	if opt.MaxWidth > 0 || opt.MaxHeight > 0 {
		b := img.Bounds()
		img = Fit(img, opt.MaxWidth, opt.MaxHeight, opt.Interpolation)
		if nb := img.Bounds(); nb.Dx() != b.Dx() || nb.Dy() != b.Dy() {
			opt.Logger.Debug("downscaled",
				"from", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
				"to", fmt.Sprintf("%dx%d", nb.Dx(), nb.Dy()),
				"interpolation", opt.Interpolation.String())
		}
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDimensions)
	}

	if opt.Mode == ModeAuto {
		opt.Mode = ModeColor420
		if IsGray(img) {
			opt.Mode = ModeGrayscale
		}
	}

	var source, planes []Plane
	switch opt.Mode {
	case ModeGrayscale:
		g := GrayPlane(img)
		source = []Plane{g}
		planes = []Plane{PadPlane(g, jpegx.BlockSize)}
	case ModeColor420:
		ycc := YCbCrPlanes(img)
		source = ycc[:]
		mw, _ := jpegx.YCbCr420Layout.MCUSize()
		planes = make([]Plane, 3)
		planes[0] = PadPlane(ycc[0], mw)
		for i := 1; i < 3; i++ {
			c, err := Downsample420(PadPlane(ycc[i], mw))
			if err != nil {
				return nil, err
			}
			planes[i] = c
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrMode, opt.Mode)
	}
	prepare := time.Since(start)
	opt.Logger.Debug("planes ready",
		"mode", opt.Mode.String(),
		"width", w, "height", h,
		"padded_width", planes[0].Width, "padded_height", planes[0].Height,
		"elapsed", prepare)

	var an *analyzer
	if opt.Analyze {
		an = newAnalyzer(len(planes))
	}

	res, err := encodePlanes(planes, w, h, opt, an)
	if err != nil {
		return nil, err
	}

	if an != nil {
		res.Analysis, err = an.finish(img, source, planes, res, opt, prepare)
		if err != nil {
			return nil, fmt.Errorf("analyze: %w", err)
		}
	}

	if opt.OnResult != nil {
		opt.OnResult(res)
	}
	return res, nil
}

func encodePlanes(planes []Plane, frameW, frameH int, opt EncodeOptions, an *analyzer) (*EncodeResult, error) {
	layout, err := opt.Mode.layout()
	if err != nil {
		return nil, err
	}
	eo := jpegx.EncoderOptions{
		Quality:     opt.Quality,
		Logger:      opt.Logger,
		Workers:     opt.Workers,
		FrameWidth:  frameW,
		FrameHeight: frameH,
	}
	if an != nil {
		eo.Observer = an
	}
	r, err := jpegx.Encode(planes, layout, eo)
	if err != nil {
		return nil, err
	}
	return &EncodeResult{Data: r.Data, Mode: opt.Mode, Stats: r.Stats}, nil
}

// EncodeFile reads an image from inPath, encodes it and writes the JPEG to
// outPath.
func EncodeFile(inPath, outPath string, opts ...func(o *EncodeOptions)) (*EncodeResult, error) {
	img, format, err := LoadImage(inPath)
	if err != nil {
		return nil, err
	}
	opt := applyOptions(opts)
	opt.Logger.Debug("loaded", "path", inPath, "format", format)

	res, err := EncodeImage(img, opts...)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Clean(outPath), res.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	return res, nil
}
