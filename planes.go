package jpegdsp

import "fmt"

// PaddedSize rounds w and h up to multiples of multiple.
func PaddedSize(w, h, multiple int) (int, int) {
	return (w + multiple - 1) / multiple * multiple, (h + multiple - 1) / multiple * multiple
}

// PadPlane extends p to multiples of multiple by replicating its last column
// and last row. A plane that is already aligned is returned as is.
func PadPlane(p Plane, multiple int) Plane {
	pw, ph := PaddedSize(p.Width, p.Height, multiple)
	if pw == p.Width && ph == p.Height {
		return p
	}
	stride := p.Stride
	if stride == 0 {
		stride = p.Width
	}
	out := NewPlane(pw, ph)
	for y := 0; y < ph; y++ {
		sy := min(y, p.Height-1)
		src := p.Pix[sy*stride : sy*stride+p.Width]
		row := out.Pix[y*pw : (y+1)*pw]
		copy(row, src)
		last := src[p.Width-1]
		for x := p.Width; x < pw; x++ {
			row[x] = last
		}
	}
	return out
}

// Downsample420 halves p in both directions, averaging each 2x2 region with
// rounding.
func Downsample420(p Plane) (Plane, error) {
	if p.Width%2 != 0 || p.Height%2 != 0 {
		return Plane{}, fmt.Errorf("%w: cannot subsample %dx%d", ErrDimensions, p.Width, p.Height)
	}
	out := NewPlane(p.Width/2, p.Height/2)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			sum := int(p.At(2*x, 2*y)) + int(p.At(2*x+1, 2*y)) +
				int(p.At(2*x, 2*y+1)) + int(p.At(2*x+1, 2*y+1))
			out.Pix[y*out.Width+x] = uint8((sum + 2) / 4)
		}
	}
	return out, nil
}
