package jpegx

import "math"

// cosTable[x][u] is cos((2x+1)uπ/16).
var cosTable [BlockSize][BlockSize]float64

// alpha[0] is 1/√2, the rest are 1.
var alpha [BlockSize]float64

func init() {
	for u := range alpha {
		alpha[u] = 1
	}
	alpha[0] = 1 / math.Sqrt2

	for x := 0; x < BlockSize; x++ {
		for u := 0; u < BlockSize; u++ {
			cosTable[x][u] = math.Cos(float64(2*x+1) * float64(u) * math.Pi / 16)
		}
	}
}

// FDCT computes the orthonormal 8x8 forward DCT of in into out:
//
//	F(u,v) = 1/4 α(u) α(v) Σx Σy f(x,y) cos((2x+1)uπ/16) cos((2y+1)vπ/16)
//
// Coefficient F(u,v) is stored at out.At(u, v), so out[0] is the DC term.
// The transform is computed as two separable 1-D passes.
func FDCT(in, out *Block[float64]) {
	var tmp Block[float64]
	// Rows: tmp(u, y) = Σx f(x,y) cos((2x+1)uπ/16).
	for y := 0; y < BlockSize; y++ {
		row := in[y*BlockSize : y*BlockSize+BlockSize]
		for u := 0; u < BlockSize; u++ {
			var s float64
			for x, f := range row {
				s += f * cosTable[x][u]
			}
			tmp[y*BlockSize+u] = s
		}
	}
	// Columns.
	for u := 0; u < BlockSize; u++ {
		for v := 0; v < BlockSize; v++ {
			var s float64
			for y := 0; y < BlockSize; y++ {
				s += tmp[y*BlockSize+u] * cosTable[y][v]
			}
			out[v*BlockSize+u] = 0.25 * alpha[u] * alpha[v] * s
		}
	}
}

// IDCT computes the inverse of FDCT:
//
//	f(x,y) = 1/4 Σu Σv α(u) α(v) F(u,v) cos((2x+1)uπ/16) cos((2y+1)vπ/16)
func IDCT(in, out *Block[float64]) {
	var tmp Block[float64]
	// Columns: tmp(u, y) = Σv α(v) F(u,v) cos((2y+1)vπ/16).
	for u := 0; u < BlockSize; u++ {
		for y := 0; y < BlockSize; y++ {
			var s float64
			for v := 0; v < BlockSize; v++ {
				s += alpha[v] * in[v*BlockSize+u] * cosTable[y][v]
			}
			tmp[y*BlockSize+u] = s
		}
	}
	// Rows.
	for y := 0; y < BlockSize; y++ {
		for x := 0; x < BlockSize; x++ {
			var s float64
			for u := 0; u < BlockSize; u++ {
				s += alpha[u] * tmp[y*BlockSize+u] * cosTable[x][u]
			}
			out[y*BlockSize+x] = 0.25 * s
		}
	}
}
