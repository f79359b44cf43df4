package jpegx

import (
	"fmt"
	"math"
)

// QuantTable holds 8x8 divisors in natural order.
type QuantTable [BlockLen]uint8

// BaseLuminance and BaseChrominance are the unscaled tables from section K.1
// of the spec, in natural order.
var (
	BaseLuminance = QuantTable{
		16, 11, 10, 16, 24, 40, 51, 61,
		12, 12, 14, 19, 26, 58, 60, 55,
		14, 13, 16, 24, 40, 57, 69, 56,
		14, 17, 22, 29, 51, 87, 80, 62,
		18, 22, 37, 56, 68, 109, 103, 77,
		24, 35, 55, 64, 81, 104, 113, 92,
		49, 64, 78, 87, 103, 121, 120, 101,
		72, 92, 95, 98, 112, 100, 103, 99,
	}
	BaseChrominance = QuantTable{
		17, 18, 24, 47, 99, 99, 99, 99,
		18, 21, 26, 66, 99, 99, 99, 99,
		24, 26, 56, 99, 99, 99, 99, 99,
		47, 66, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
	}
)

// QualityScale converts a quality rating to a percentage scaling factor.
func QualityScale(quality int) (int, error) {
	if quality < 1 || quality > 100 {
		return 0, fmt.Errorf("%w: %d", ErrQuality, quality)
	}
	if quality < 50 {
		return 5000 / quality, nil
	}
	return 200 - quality*2, nil
}

// ScaleQuantTable derives the table used for encoding at the given quality.
func ScaleQuantTable(base QuantTable, quality int) (QuantTable, error) {
	scale, err := QualityScale(quality)
	if err != nil {
		return QuantTable{}, err
	}
	var q QuantTable
	for i, b := range base {
		x := (int(b)*scale + 50) / 100
		if x < 1 {
			x = 1
		} else if x > 255 {
			x = 255
		}
		q[i] = uint8(x)
	}
	return q, nil
}

// ZigZag returns the table in zig-zag order, as written to a DQT segment.
func (q *QuantTable) ZigZag() [BlockLen]uint8 {
	var out [BlockLen]uint8
	for z, n := range Unzig {
		out[z] = q[n]
	}
	return out
}

// Quantize divides every coefficient by its divisor and rounds half away
// from zero. It returns the index of the first coefficient that does not fit
// in int16, or -1.
func Quantize(coef *Block[float64], q *QuantTable, out *Block[int16]) int {
	for i, c := range coef {
		v := math.Round(c / float64(q[i]))
		if v > math.MaxInt16 || v < math.MinInt16 || math.IsNaN(v) {
			return i
		}
		out[i] = int16(v)
	}
	return -1
}

// Dequantize multiplies every quantized coefficient by its divisor.
func Dequantize(in *Block[int16], q *QuantTable, out *Block[float64]) {
	for i, v := range in {
		out[i] = float64(v) * float64(q[i])
	}
}
