package jpegdsp

import (
	"io"
	"log/slog"
	"math"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func clampToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// shannonEntropy returns the entropy of the byte histogram in bits per symbol.
func shannonEntropy(hist *[256]int) float64 {
	total := 0
	for _, n := range hist {
		total += n
	}
	if total == 0 {
		return 0
	}
	var e float64
	for _, n := range hist {
		if n == 0 {
			continue
		}
		p := float64(n) / float64(total)
		e -= p * math.Log2(p)
	}
	return e
}

func byteEntropy(data []byte) float64 {
	var hist [256]int
	for _, b := range data {
		hist[b]++
	}
	return shannonEntropy(&hist)
}
