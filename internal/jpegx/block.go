package jpegx

import (
	"fmt"
)

// Sample is the set of element types a Block can hold.
type Sample interface {
	~int16 | ~int32 | ~float32 | ~float64
}

// Block is an 8x8 tile in natural (row-major) order.
type Block[T Sample] [BlockLen]T

// At returns the element at column x, row y.
func (b *Block[T]) At(x, y int) T {
	return b[y*BlockSize+x]
}

// Set assigns the element at column x, row y.
func (b *Block[T]) Set(x, y int, v T) {
	b[y*BlockSize+x] = v
}

// Plane is a single 8-bit channel.
type Plane struct {
	Width  int
	Height int
	// Stride is the distance in bytes between vertically adjacent samples.
	// Zero means Width.
	Stride int
	Pix    []uint8
}

// NewPlane allocates a zeroed plane.
func NewPlane(width, height int) Plane {
	return Plane{Width: width, Height: height, Stride: width, Pix: make([]uint8, width*height)}
}

func (p Plane) stride() int {
	if p.Stride == 0 {
		return p.Width
	}
	return p.Stride
}

// At returns the sample at x, y.
func (p Plane) At(x, y int) uint8 {
	return p.Pix[y*p.stride()+x]
}

// Set assigns the sample at x, y.
func (p Plane) Set(x, y int, v uint8) {
	p.Pix[y*p.stride()+x] = v
}

// Validate checks that the plane is non-empty, its buffer covers the declared
// size and both sides are multiples of align.
func (p Plane) Validate(align int) error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: empty plane %dx%d", ErrDimensions, p.Width, p.Height)
	}
	if p.stride() < p.Width || len(p.Pix) < (p.Height-1)*p.stride()+p.Width {
		return fmt.Errorf("%w: pixel buffer too small for %dx%d", ErrDimensions, p.Width, p.Height)
	}
	if p.Width%align != 0 || p.Height%align != 0 {
		return fmt.Errorf("%w: %dx%d is not a multiple of %d", ErrDimensions, p.Width, p.Height, align)
	}
	return nil
}

// LoadBlock copies the 8x8 tile at block coordinates bx, by into dst,
// subtracting LevelShift from every sample.
func LoadBlock(p Plane, bx, by int, dst *Block[float64]) {
	stride := p.stride()
	off := by*BlockSize*stride + bx*BlockSize
	for y := 0; y < BlockSize; y++ {
		row := p.Pix[off+y*stride : off+y*stride+BlockSize]
		for x, v := range row {
			dst[y*BlockSize+x] = float64(int(v) - LevelShift)
		}
	}
}

// Blocks slices the plane into level-shifted tiles in raster order.
func Blocks(p Plane) ([]Block[float64], error) {
	if err := p.Validate(BlockSize); err != nil {
		return nil, err
	}
	cols, rows := p.Width/BlockSize, p.Height/BlockSize
	out := make([]Block[float64], cols*rows)
	for by := 0; by < rows; by++ {
		for bx := 0; bx < cols; bx++ {
			LoadBlock(p, bx, by, &out[by*cols+bx])
		}
	}
	return out, nil
}
