package jpegdsp

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestAnalysisColor(t *testing.T) {
	res, err := EncodeImage(redBlue(40, 24), WithQuality(90), WithAnalysis())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	an := res.Analysis
	if an == nil {
		t.Fatal("missing analysis")
	}

	if an.Mode != "color_420" || an.Quality != 90 || an.Width != 40 || an.Height != 24 {
		t.Fatalf("unexpected header %+v", an)
	}
	if an.PaddedWidth != 48 || an.PaddedHeight != 32 {
		t.Fatalf("unexpected padded size %dx%d", an.PaddedWidth, an.PaddedHeight)
	}
	if an.RawBytes != 3*40*24 || an.EncodedBytes != len(res.Data) {
		t.Fatalf("unexpected sizes raw %d encoded %d", an.RawBytes, an.EncodedBytes)
	}
	if an.ZstdBytes <= 0 || an.QOIBytes <= 0 {
		t.Fatalf("missing baselines zstd %d qoi %d", an.ZstdBytes, an.QOIBytes)
	}
	if an.PSNR == nil || *an.PSNR < 25 {
		t.Fatalf("unexpected PSNR %v, MSE %f", an.PSNR, an.MSE)
	}
	if an.OutputEntropy <= an.InputEntropy {
		t.Fatalf("output entropy %f not above input entropy %f", an.OutputEntropy, an.InputEntropy)
	}

	if len(an.Components) != 3 {
		t.Fatalf("unexpected components %d", len(an.Components))
	}
	for i, want := range []struct {
		name   string
		blocks int
	}{{"Y", 24}, {"Cb", 6}, {"Cr", 6}} {
		c := an.Components[i]
		if c.Name != want.name || c.Blocks != want.blocks {
			t.Fatalf("component %d: %s with %d blocks", i, c.Name, c.Blocks)
		}
		if c.Blocks != res.Stats.Blocks[i] {
			t.Fatalf("component %d: blocks differ from stats", i)
		}
		dcBlocks := 0
		for _, n := range c.DCCategories {
			dcBlocks += n
		}
		if dcBlocks != c.Blocks {
			t.Fatalf("component %d: %d DC categories for %d blocks", i, dcBlocks, c.Blocks)
		}
		if c.Sparsity <= 0 || c.Sparsity >= 1 {
			t.Fatalf("component %d: unexpected sparsity %f", i, c.Sparsity)
		}
		if c.DCEnergyShare <= 0 || c.DCEnergyShare > 1 {
			t.Fatalf("component %d: unexpected DC energy share %f", i, c.DCEnergyShare)
		}
	}

	s := an.Symbols
	if s.DC != 36 || s.EOB != res.Stats.EOB || s.Total != res.Stats.Symbols {
		t.Fatalf("unexpected symbols %+v", s)
	}
	if s.DC+s.AC+s.ZRL+s.EOB != s.Total {
		t.Fatalf("symbol kinds do not add up: %+v", s)
	}
	if an.Huffman.ScanBytes != res.Stats.ScanBytes || an.Huffman.MeanCodeLength <= 0 {
		t.Fatalf("unexpected scan stats %+v", an.Huffman)
	}
	if an.MarkerOverheadBytes+an.Huffman.ScanBytes != len(res.Data) {
		t.Fatalf("overhead %d and scan %d do not add up to %d", an.MarkerOverheadBytes, an.Huffman.ScanBytes, len(res.Data))
	}
	if len(an.Markers) != 12 || an.Markers[len(an.Markers)-1].Name != "EOI" {
		t.Fatalf("unexpected markers %+v", an.Markers)
	}
}

func TestAnalysisLossless(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	res, err := EncodeImage(img, WithAnalysis())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	an := res.Analysis
	if an.MSE != 0 || an.PSNR != nil {
		t.Fatalf("expected exact reproduction, got MSE %f", an.MSE)
	}
	c := an.Components[0]
	if c.ZeroCoefficients != 4*64 || c.Sparsity != 1 || c.DCCategories[0] != 4 {
		t.Fatalf("unexpected component %+v", c)
	}
	if an.Symbols.AC != 0 || an.Symbols.EOB != 4 || an.Symbols.MeanZeroRun != 0 {
		t.Fatalf("unexpected symbols %+v", an.Symbols)
	}
}

func TestAnalysisDisabled(t *testing.T) {
	res, err := EncodeImage(gradientGray(8, 8))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if res.Analysis != nil {
		t.Fatal("analysis computed without WithAnalysis")
	}
}

func TestAnalysisReports(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 24, 16))
	for x := 0; x < 24; x++ {
		img.Set(x, x%16, color.RGBA{G: 255, A: 255})
	}
	res, err := EncodeImage(img, WithAnalysis())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var js bytes.Buffer
	if err := res.Analysis.WriteJSON(&js); err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"mode", "padded_width", "zstd_bytes", "qoi_bytes", "psnr_db", "components", "symbols", "huffman", "markers", "timings"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("json misses %q", key)
		}
	}

	var page bytes.Buffer
	if err := res.Analysis.WriteHTML(&page); err != nil {
		t.Fatalf("html: %v", err)
	}
	html := page.String()
	for _, want := range []string{"<!DOCTYPE html>", "Component Y", "Component Cr", "color_420", "<td>SOF0</td>", "<td>ECS</td>"} {
		if !strings.Contains(html, want) {
			t.Fatalf("html misses %q", want)
		}
	}
}
