package jpegx

import (
	"math"
	"math/rand"
	"testing"
)

func TestFDCTRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for n := 0; n < 100; n++ {
		var in, coef, out Block[float64]
		for i := range in {
			in[i] = float64(rnd.Intn(256) - 128)
		}
		FDCT(&in, &coef)
		IDCT(&coef, &out)
		for i := range in {
			if d := math.Abs(in[i] - out[i]); d > 0.5 {
				t.Fatalf("block %d sample %d: got %f want %f", n, i, out[i], in[i])
			}
		}
	}
}

func TestFDCTConstantBlock(t *testing.T) {
	var in, coef Block[float64]
	for i := range in {
		in[i] = 50
	}
	FDCT(&in, &coef)
	// 1/4 * 1/2 * 64 * 50.
	if math.Abs(coef[0]-400) > 1e-9 {
		t.Fatalf("unexpected DC: %f", coef[0])
	}
	for i := 1; i < BlockLen; i++ {
		if math.Abs(coef[i]) > 1e-9 {
			t.Fatalf("AC %d not zero: %g", i, coef[i])
		}
	}
}

func TestFDCTOrientation(t *testing.T) {
	// Samples vary along x only, so energy lands in the first row: F(u,0).
	var in, coef Block[float64]
	for y := 0; y < BlockSize; y++ {
		for x := 0; x < BlockSize; x++ {
			in.Set(x, y, float64(x*16-64))
		}
	}
	FDCT(&in, &coef)
	if math.Abs(coef.At(1, 0)) < 1 {
		t.Fatalf("expected horizontal energy, got %f", coef.At(1, 0))
	}
	for v := 1; v < BlockSize; v++ {
		for u := 0; u < BlockSize; u++ {
			if math.Abs(coef.At(u, v)) > 1e-9 {
				t.Fatalf("F(%d,%d) = %g, want 0", u, v, coef.At(u, v))
			}
		}
	}
}

func BenchmarkFDCT(b *testing.B) {
	var in, out Block[float64]
	for i := range in {
		in[i] = float64(i*3%255 - 128)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		FDCT(&in, &out)
	}
}
