package jpegx

import "math/bits"

// SymbolKind tags a Symbol.
type SymbolKind uint8

const (
	// SymbolDC is a DC difference.
	SymbolDC SymbolKind = iota
	// SymbolAC is a (run, size, value) triple.
	SymbolAC
	// SymbolZRL is a run of 16 zeros with no terminating value.
	SymbolZRL
	// SymbolEOB marks that all remaining coefficients are zero.
	SymbolEOB
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolDC:
		return "DC"
	case SymbolAC:
		return "AC"
	case SymbolZRL:
		return "ZRL"
	case SymbolEOB:
		return "EOB"
	default:
		return "unknown"
	}
}

const (
	// MaxDCCategory is the largest DC difference category in baseline mode.
	MaxDCCategory = 11
	// MaxACCategory is the largest AC coefficient category in baseline mode.
	MaxACCategory = 10

	zrlSymbol = 0xf0
	eobSymbol = 0x00
)

// Symbol is one entropy coding unit.
type Symbol struct {
	Kind SymbolKind
	// Run is the number of zeros preceding an AC value, or 16 for ZRL.
	Run uint8
	// Size is the category of Value.
	Size uint8
	// Value is the DC difference or the nonzero AC coefficient.
	Value int32
}

// Code returns the byte looked up in the code table: the DC category, or
// Run<<4|Size for AC symbols.
func (s Symbol) Code() uint8 {
	switch s.Kind {
	case SymbolZRL:
		return zrlSymbol
	case SymbolEOB:
		return eobSymbol
	default:
		return s.Run<<4 | s.Size
	}
}

// Category returns the number of bits needed to hold |v|.
func Category(v int32) uint8 {
	if v < 0 {
		v = -v
	}
	return uint8(bits.Len32(uint32(v)))
}

// Amplitude returns the size low bits that encode v: the magnitude for
// positive values and its one's complement for negative ones.
func Amplitude(v int32, size uint8) uint32 {
	if v < 0 {
		v--
	}
	return uint32(v) & (1<<size - 1)
}

// Extend reverses Amplitude, as described in section F.2.2.1 of the spec.
func Extend(a uint32, size uint8) int32 {
	if size == 0 {
		return 0
	}
	if a < 1<<(size-1) {
		return int32(a) + (-1 << size) + 1
	}
	return int32(a)
}

// Symbolizer turns quantized zig-zag blocks into symbols, carrying one DC
// predictor per component.
type Symbolizer struct {
	pred []int32
}

// NewSymbolizer returns a symbolizer with nComponent predictors at zero.
func NewSymbolizer(nComponent int) *Symbolizer {
	return &Symbolizer{pred: make([]int32, nComponent)}
}

// Reset zeroes all predictors.
func (s *Symbolizer) Reset() {
	for i := range s.pred {
		s.pred[i] = 0
	}
}

// Predictor returns the current DC predictor of component c.
func (s *Symbolizer) Predictor(c int) int32 {
	return s.pred[c]
}

// Block appends the symbols of zz, a block of component c in zig-zag order,
// to dst and advances the predictor of c.
func (s *Symbolizer) Block(c int, zz *[BlockLen]int16, dst []Symbol) []Symbol {
	dc := int32(zz[0])
	diff := dc - s.pred[c]
	s.pred[c] = dc
	dst = append(dst, Symbol{Kind: SymbolDC, Size: Category(diff), Value: diff})
	return appendAC(zz, dst)
}

func appendAC(zz *[BlockLen]int16, dst []Symbol) []Symbol {
	run := 0
	for zig := 1; zig < BlockLen; zig++ {
		ac := int32(zz[zig])
		if ac == 0 {
			run++
			continue
		}
		for run > 15 {
			dst = append(dst, Symbol{Kind: SymbolZRL, Run: 16})
			run -= 16
		}
		dst = append(dst, Symbol{Kind: SymbolAC, Run: uint8(run), Size: Category(ac), Value: ac})
		run = 0
	}
	if run > 0 {
		dst = append(dst, Symbol{Kind: SymbolEOB})
	}
	return dst
}
