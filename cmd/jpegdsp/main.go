package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vearutop/jpegdsp"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:])
	case "analyze":
		err = runAnalyze(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	if err != nil {
		fail(err)
	}
}

var errUsage = errors.New("usage")

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: jpegdsp <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  encode  -in input.png -out output.jpg [-q 75] [-mode auto|grayscale|color_420] [-max-w 0 -max-h 0 -interp lanczos3] [-json] [-v]")
	fmt.Fprintln(os.Stderr, "  analyze -in input.png [-q 75] [-mode auto|grayscale|color_420] [-html report.html] [-json] [-v]")
	fmt.Fprintln(os.Stderr, "  inspect -in input.jpg [-tables]")
}

type commonFlags struct {
	quality *int
	mode    *string
	maxW    *uint
	maxH    *uint
	interp  *string
	verbose *bool
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		quality: fs.Int("q", 75, "quality, 1-100"),
		mode:    fs.String("mode", "auto", "auto, grayscale or color_420"),
		maxW:    fs.Uint("max-w", 0, "downscale to at most this width"),
		maxH:    fs.Uint("max-h", 0, "downscale to at most this height"),
		interp:  fs.String("interp", "lanczos3", "downscale interpolation: nearest, bilinear, bicubic, mitchell, lanczos2, lanczos3"),
		verbose: fs.Bool("v", false, "debug logging"),
	}
}

func (c commonFlags) options() ([]func(o *jpegdsp.EncodeOptions), error) {
	mode, err := jpegdsp.ParseMode(*c.mode)
	if err != nil {
		return nil, err
	}
	interp, err := jpegdsp.ParseInterpolation(*c.interp)
	if err != nil {
		return nil, err
	}
	level := slog.LevelInfo
	if *c.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return []func(o *jpegdsp.EncodeOptions){
		jpegdsp.WithQuality(*c.quality),
		jpegdsp.WithMode(mode),
		jpegdsp.WithLogger(logger),
		jpegdsp.WithMaxSize(*c.maxW, *c.maxH, interp),
	}, nil
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image: png, gif, jpeg, ppm, pgm, pam, qoi")
	outPath := fs.String("out", "", "output JPEG")
	asJSON := fs.Bool("json", false, "print analysis as JSON")
	common := addCommonFlags(fs)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		fs.Usage()
		return errUsage
	}
	opts, err := common.options()
	if err != nil {
		return err
	}
	if *asJSON {
		opts = append(opts, jpegdsp.WithAnalysis())
	}

	res, err := jpegdsp.EncodeFile(*inPath, *outPath, opts...)
	if err != nil {
		return err
	}
	if *asJSON {
		return res.Analysis.WriteJSON(os.Stdout)
	}
	fmt.Fprintf(os.Stdout, "%s: %d bytes, %dx%d %s\n",
		*outPath, len(res.Data), res.Stats.Width, res.Stats.Height, res.Mode)
	return nil
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	htmlPath := fs.String("html", "", "write HTML report")
	asJSON := fs.Bool("json", false, "print analysis as JSON")
	common := addCommonFlags(fs)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		fs.Usage()
		return errUsage
	}
	opts, err := common.options()
	if err != nil {
		return err
	}
	img, _, err := jpegdsp.LoadImage(*inPath)
	if err != nil {
		return err
	}
	res, err := jpegdsp.EncodeImage(img, append(opts, jpegdsp.WithAnalysis())...)
	if err != nil {
		return err
	}
	a := res.Analysis

	if *htmlPath != "" {
		f, err := os.Create(filepath.Clean(*htmlPath))
		if err != nil {
			return err
		}
		if err := a.WriteHTML(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	if *asJSON {
		return a.WriteJSON(os.Stdout)
	}

	psnr := "lossless"
	if a.PSNR != nil {
		psnr = fmt.Sprintf("%.2f dB", *a.PSNR)
	}
	fmt.Fprintf(os.Stdout, "%dx%d %s q%d\n", a.Width, a.Height, a.Mode, a.Quality)
	fmt.Fprintf(os.Stdout, "size: %d bytes (ratio %.2f, %.3f bpp), zstd %d, qoi %d\n",
		a.EncodedBytes, a.CompressionRatio, a.BitsPerPixel, a.ZstdBytes, a.QOIBytes)
	fmt.Fprintf(os.Stdout, "psnr: %s, mse %.4f\n", psnr, a.MSE)
	fmt.Fprintf(os.Stdout, "symbols: %d (zrl %d, eob %d), mean code length %.2f bits\n",
		a.Symbols.Total, a.Symbols.ZRL, a.Symbols.EOB, a.Huffman.MeanCodeLength)
	for _, c := range a.Components {
		fmt.Fprintf(os.Stdout, "%s: %d blocks, sparsity %.1f%%, dc energy %.1f%%\n",
			c.Name, c.Blocks, 100*c.Sparsity, 100*c.DCEnergyShare)
	}
	return nil
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	inPath := fs.String("in", "", "input JPEG")
	tables := fs.Bool("tables", false, "print quantization tables and frame header")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		fs.Usage()
		return errUsage
	}

	f, err := os.Open(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	defer f.Close()

	segs, err := jpegdsp.ScanMarkers(f)
	for _, s := range segs {
		fmt.Fprintf(os.Stdout, "%8d  %-5s %d\n", s.Offset, s.Name, s.Length)
	}
	if err != nil {
		return err
	}
	if !*tables {
		return nil
	}

	data, err := os.ReadFile(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	t, err := jpegdsp.ParseTables(data)
	if err != nil {
		return err
	}
	fr := t.Frame
	fmt.Fprintf(os.Stdout, "frame: %dx%d, %d-bit\n", fr.Width, fr.Height, fr.Precision)
	for _, c := range fr.Components {
		fmt.Fprintf(os.Stdout, "  component %d: %dx%d sampling, quant table %d\n", c.ID, c.H, c.V, c.Quant)
	}
	for _, q := range t.Quant {
		fmt.Fprintf(os.Stdout, "quant table %d:\n", q.ID)
		for y := 0; y < 8; y++ {
			fmt.Fprintf(os.Stdout, "  %3d\n", q.Values[y*8:y*8+8])
		}
	}
	for _, h := range t.Huffman {
		fmt.Fprintf(os.Stdout, "huffman table class %d id %d: %d codes\n", h.Class, h.ID, len(h.Spec.Value))
	}
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
