package jpegx

import (
	"errors"
	"testing"
)

func TestBlocks(t *testing.T) {
	p := NewPlane(16, 8)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			p.Set(x, y, uint8(x*10+y))
		}
	}
	blocks, err := Blocks(p)
	if err != nil {
		t.Fatalf("blocks: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("unexpected block count %d", len(blocks))
	}
	// Sample 9,3 lands at 1,3 of the second tile.
	if v := blocks[1].At(1, 3); v != 93-LevelShift {
		t.Fatalf("unexpected sample %f", v)
	}
	if v := blocks[0].At(0, 0); v != -LevelShift {
		t.Fatalf("unexpected first sample %f", v)
	}

	for _, bad := range []Plane{NewPlane(12, 8), NewPlane(0, 8), {Width: 8, Height: 8, Pix: make([]uint8, 10)}} {
		if _, err := Blocks(bad); !errors.Is(err, ErrDimensions) {
			t.Fatalf("%dx%d: expected ErrDimensions, got %v", bad.Width, bad.Height, err)
		}
	}
}

func TestLoadBlockStride(t *testing.T) {
	p := Plane{Width: 8, Height: 8, Stride: 10, Pix: make([]uint8, 80)}
	for y := 0; y < 8; y++ {
		p.Pix[y*10+7] = 200
		p.Pix[y*10+8] = 1 // Outside the plane.
	}
	var b Block[float64]
	LoadBlock(p, 0, 0, &b)
	for y := 0; y < BlockSize; y++ {
		if b.At(7, y) != 72 || b.At(0, y) != -128 {
			t.Fatalf("row %d: unexpected samples %v", y, b[y*BlockSize:(y+1)*BlockSize])
		}
	}
}
