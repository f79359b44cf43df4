package jpegx

import "fmt"

// ComponentSpec describes one component of a frame.
type ComponentSpec struct {
	// ID is the component identifier written to SOF0 and SOS.
	ID uint8
	// H and V are the horizontal and vertical sampling factors.
	H, V int
	// Quant selects the quantization table: 0 luminance, 1 chrominance.
	Quant uint8
	DC    HuffIndex
	AC    HuffIndex
}

// Layout is the ordered component list of a frame. Grayscale and color
// frames differ only in their Layout.
type Layout []ComponentSpec

var (
	// GrayscaleLayout is a single luminance component.
	GrayscaleLayout = Layout{
		{ID: 1, H: 1, V: 1, Quant: 0, DC: HuffLuminanceDC, AC: HuffLuminanceAC},
	}

	// YCbCr420Layout is full resolution Y with 2x2 subsampled Cb and Cr.
	// Each MCU holds four Y blocks, then one Cb block, then one Cr block.
	YCbCr420Layout = Layout{
		{ID: 1, H: 2, V: 2, Quant: 0, DC: HuffLuminanceDC, AC: HuffLuminanceAC},
		{ID: 2, H: 1, V: 1, Quant: 1, DC: HuffChrominanceDC, AC: HuffChrominanceAC},
		{ID: 3, H: 1, V: 1, Quant: 1, DC: HuffChrominanceDC, AC: HuffChrominanceAC},
	}
)

// maxBlocksPerMCU is the limit for interleaved scans.
const maxBlocksPerMCU = 10

// Validate checks the layout for internal consistency.
func (l Layout) Validate() error {
	if len(l) == 0 || len(l) > 4 {
		return fmt.Errorf("%w: %d components", ErrLayout, len(l))
	}
	seen := map[uint8]bool{}
	blocks := 0
	for i, c := range l {
		if seen[c.ID] {
			return fmt.Errorf("%w: duplicate component id %d", ErrLayout, c.ID)
		}
		seen[c.ID] = true
		if c.H < 1 || c.H > 4 || c.V < 1 || c.V > 4 {
			return fmt.Errorf("%w: component %d sampling %dx%d", ErrLayout, i, c.H, c.V)
		}
		if c.Quant > 1 {
			return fmt.Errorf("%w: component %d quantization table %d", ErrLayout, i, c.Quant)
		}
		if c.DC < 0 || c.DC >= nHuffIndex || c.DC.Class() != 0 {
			return fmt.Errorf("%w: component %d DC table %d", ErrLayout, i, c.DC)
		}
		if c.AC < 0 || c.AC >= nHuffIndex || c.AC.Class() != 1 {
			return fmt.Errorf("%w: component %d AC table %d", ErrLayout, i, c.AC)
		}
		blocks += c.H * c.V
	}
	if len(l) == 1 && (l[0].H != 1 || l[0].V != 1) {
		return fmt.Errorf("%w: single component frame must use 1x1 sampling", ErrLayout)
	}
	if len(l) > 1 && blocks > maxBlocksPerMCU {
		return fmt.Errorf("%w: %d blocks per MCU", ErrLayout, blocks)
	}
	return nil
}

// MaxSampling returns the largest horizontal and vertical sampling factors.
func (l Layout) MaxSampling() (h, v int) {
	for _, c := range l {
		h = max(h, c.H)
		v = max(v, c.V)
	}
	return h, v
}

// MCUSize returns the MCU size in pixels of the full resolution grid.
func (l Layout) MCUSize() (w, h int) {
	mh, mv := l.MaxSampling()
	return mh * BlockSize, mv * BlockSize
}

// geometry is the block grid of a validated frame.
type geometry struct {
	mcusX, mcusY int
	// width and height are declared in SOF0.
	width, height int
	// cols and rows are the block grid of each component.
	cols, rows []int
}

// geometryOf checks planes against the layout and derives the block grid.
// Frame dimensions default to the MCU grid. Non-zero frameW or frameH must
// end within the last MCU column or row.
func (l Layout) geometryOf(planes []Plane, frameW, frameH int) (geometry, error) {
	var g geometry
	if err := l.Validate(); err != nil {
		return g, err
	}
	if len(planes) != len(l) {
		return g, fmt.Errorf("%w: %d planes for %d components", ErrDimensions, len(planes), len(l))
	}
	for i, p := range planes {
		if err := p.Validate(BlockSize); err != nil {
			return g, fmt.Errorf("component %d: %w", i, err)
		}
	}

	c0 := l[0]
	if planes[0].Width%(c0.H*BlockSize) != 0 || planes[0].Height%(c0.V*BlockSize) != 0 {
		return g, fmt.Errorf("%w: %dx%d is not a multiple of the %dx%d MCU",
			ErrDimensions, planes[0].Width, planes[0].Height, c0.H*BlockSize, c0.V*BlockSize)
	}
	g.mcusX = planes[0].Width / (c0.H * BlockSize)
	g.mcusY = planes[0].Height / (c0.V * BlockSize)
	g.cols = make([]int, len(l))
	g.rows = make([]int, len(l))
	for i, c := range l {
		w, h := g.mcusX*c.H*BlockSize, g.mcusY*c.V*BlockSize
		if planes[i].Width != w || planes[i].Height != h {
			return g, fmt.Errorf("%w: component %d is %dx%d, want %dx%d",
				ErrDimensions, i, planes[i].Width, planes[i].Height, w, h)
		}
		g.cols[i] = w / BlockSize
		g.rows[i] = h / BlockSize
	}

	mw, mh := l.MCUSize()
	g.width, g.height = g.mcusX*mw, g.mcusY*mh
	if frameW != 0 {
		if frameW < 0 || (frameW+mw-1)/mw != g.mcusX {
			return g, fmt.Errorf("%w: frame width %d does not fit %d MCU columns", ErrDimensions, frameW, g.mcusX)
		}
		g.width = frameW
	}
	if frameH != 0 {
		if frameH < 0 || (frameH+mh-1)/mh != g.mcusY {
			return g, fmt.Errorf("%w: frame height %d does not fit %d MCU rows", ErrDimensions, frameH, g.mcusY)
		}
		g.height = frameH
	}
	if g.width > 0xffff || g.height > 0xffff {
		return g, fmt.Errorf("%w: %dx%d exceeds 65535", ErrDimensions, g.width, g.height)
	}
	return g, nil
}
