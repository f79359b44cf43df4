package jpegx

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// EncoderOptions configures Encode.
type EncoderOptions struct {
	// Quality in [1, 100].
	Quality int
	// Logger receives debug events. Nil disables logging.
	Logger *slog.Logger
	// Workers bounds the goroutines of the transform stage, 0 means
	// GOMAXPROCS. Output does not depend on it.
	Workers int
	// FrameWidth and FrameHeight override the size declared in SOF0. They
	// must end within the last MCU column and row; decoders crop the rest.
	FrameWidth  int
	FrameHeight int
	// Observer, if set, is called for every block and symbol in scan order.
	Observer Observer
}

// BlockInfo describes one coded block.
type BlockInfo struct {
	Component int
	// X and Y are block coordinates within the component.
	X, Y int
	// Coef holds the DCT coefficients before quantization.
	Coef *Block[float64]
	// Quantized holds the quantized coefficients in zig-zag order.
	Quantized *[BlockLen]int16
	Table     *QuantTable
}

// Observer receives the intermediate values of an encode.
type Observer interface {
	ObserveBlock(b BlockInfo)
	// ObserveSymbol is called after the symbol's codeword and amplitude
	// bits are written.
	ObserveSymbol(component int, s Symbol, c Code)
}

// Stats summarizes an encode.
type Stats struct {
	Width, Height int
	MCUsX, MCUsY  int
	// Blocks is the number of blocks of each component.
	Blocks []int
	// Symbols counts every DC and AC symbol, ZRL and EOB included.
	Symbols int
	ZRL     int
	EOB     int
	// ZeroCoefficients counts quantized coefficients equal to zero.
	ZeroCoefficients int
	// CodeBits is the total length of Huffman codewords, AmplitudeBits of
	// the appended value bits.
	CodeBits      int
	AmplitudeBits int
	PaddingBits   int
	StuffedBytes  int
	ScanBytes     int
	// HeaderBytes is everything except the scan data.
	HeaderBytes int

	TransformTime time.Duration
	EntropyTime   time.Duration
}

// Result is a finished encode.
type Result struct {
	Data   []byte
	Stats  Stats
	Tables []QuantTable
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func (o EncoderOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}

// componentBlocks holds the transform stage output of one component in
// raster order.
type componentBlocks struct {
	zz   [][BlockLen]int16
	coef []Block[float64]
}

// Encode writes a baseline JFIF stream of planes, one per layout component.
// Planes must be aligned to the MCU grid. On error no data is returned.
func Encode(planes []Plane, layout Layout, opt EncoderOptions) (*Result, error) {
	log := opt.logger()

	g, err := layout.geometryOf(planes, opt.FrameWidth, opt.FrameHeight)
	if err != nil {
		return nil, err
	}
	tables := make([]QuantTable, 2)
	for i, base := range []QuantTable{BaseLuminance, BaseChrominance} {
		if tables[i], err = ScaleQuantTable(base, opt.Quality); err != nil {
			return nil, err
		}
	}

	st := Stats{Width: g.width, Height: g.height, MCUsX: g.mcusX, MCUsY: g.mcusY, Blocks: make([]int, len(layout))}

	start := time.Now()
	comps := make([]componentBlocks, len(layout))
	for i, c := range layout {
		comps[i], err = transformComponent(i, planes[i], &tables[c.Quant], g.cols[i], g.rows[i], opt.Workers, opt.Observer != nil)
		if err != nil {
			return nil, err
		}
		st.Blocks[i] = len(comps[i].zz)
	}
	st.TransformTime = time.Since(start)
	log.Debug("transform done", "components", len(layout), "elapsed", st.TransformTime)

	start = time.Now()
	scan, err := entropyCode(layout, g, comps, tables, opt.Observer, &st)
	if err != nil {
		return nil, err
	}
	st.EntropyTime = time.Since(start)
	log.Debug("entropy coding done", "scan_bytes", len(scan), "elapsed", st.EntropyTime)

	var out bytes.Buffer
	out.Grow(len(scan) + 1024)
	writeMarker(&out, soiMarker)
	writeSegment(&out, app0Marker, jfifPayload)
	writeDQT(&out, layout.quantIDs(), tables)
	writeSOF0(&out, layout, g.width, g.height)
	writeDHT(&out, layout.huffIndexes())
	writeSOS(&out, layout)
	out.Write(scan)
	writeMarker(&out, eoiMarker)

	st.ScanBytes = len(scan)
	st.HeaderBytes = out.Len() - len(scan)
	log.Debug("encoded",
		"width", g.width, "height", g.height,
		"components", len(layout), "quality", opt.Quality, "bytes", out.Len())

	used := make([]QuantTable, 0, 2)
	for _, id := range layout.quantIDs() {
		used = append(used, tables[id])
	}
	return &Result{Data: out.Bytes(), Stats: st, Tables: used}, nil
}

// transformComponent runs the DCT and quantizer over every block of p. Block
// rows are split between workers, the result is in raster order.
func transformComponent(ci int, p Plane, q *QuantTable, cols, rows, workers int, keepCoef bool) (componentBlocks, error) {
	cb := componentBlocks{zz: make([][BlockLen]int16, cols*rows)}
	if keepCoef {
		cb.coef = make([]Block[float64], cols*rows)
	}
	rowErr := make([]error, rows)

	parallelFor(workers, rows, func(startRow, endRow int) {
		var (
			spatial Block[float64]
			coef    Block[float64]
			quant   Block[int16]
		)
		for by := startRow; by < endRow; by++ {
			for bx := 0; bx < cols; bx++ {
				LoadBlock(p, bx, by, &spatial)
				FDCT(&spatial, &coef)
				if i := Quantize(&coef, q, &quant); i >= 0 {
					rowErr[by] = &InvariantError{
						Component: ci, BlockX: bx, BlockY: by,
						Reason: fmt.Sprintf("coefficient %d = %g does not fit int16", i, coef[i]/float64(q[i])),
					}
					break
				}
				k := by*cols + bx
				cb.zz[k] = ToZigZag(&quant)
				if keepCoef {
					cb.coef[k] = coef
				}
			}
		}
	})

	for _, err := range rowErr {
		if err != nil {
			return componentBlocks{}, err
		}
	}
	return cb, nil
}

// entropyCode symbolizes and packs all blocks in MCU order.
func entropyCode(l Layout, g geometry, comps []componentBlocks, tables []QuantTable, obs Observer, st *Stats) ([]byte, error) {
	nBlocks := 0
	for _, c := range comps {
		nBlocks += len(c.zz)
	}
	bw := NewBitWriter(nBlocks * 16)
	sym := NewSymbolizer(len(l))
	symbols := make([]Symbol, 0, BlockLen+1)

	for my := 0; my < g.mcusY; my++ {
		for mx := 0; mx < g.mcusX; mx++ {
			for ci, c := range l {
				dc, ac := &StandardCodeTables[c.DC], &StandardCodeTables[c.AC]
				for v := 0; v < c.V; v++ {
					for h := 0; h < c.H; h++ {
						bx, by := mx*c.H+h, my*c.V+v
						k := by*g.cols[ci] + bx
						zz := &comps[ci].zz[k]
						if obs != nil {
							obs.ObserveBlock(BlockInfo{
								Component: ci, X: bx, Y: by,
								Coef: &comps[ci].coef[k], Quantized: zz, Table: &tables[c.Quant],
							})
						}
						for _, x := range zz {
							if x == 0 {
								st.ZeroCoefficients++
							}
						}

						symbols = sym.Block(ci, zz, symbols[:0])
						for _, s := range symbols {
							code, err := emitSymbol(bw, s, dc, ac)
							if err != nil {
								return nil, &InvariantError{Component: ci, BlockX: bx, BlockY: by, Reason: err.Error()}
							}
							st.Symbols++
							st.CodeBits += int(code.Len)
							st.AmplitudeBits += int(s.Size)
							switch s.Kind {
							case SymbolZRL:
								st.ZRL++
							case SymbolEOB:
								st.EOB++
							}
							if obs != nil {
								obs.ObserveSymbol(ci, s, code)
							}
						}
					}
				}
			}
		}
	}

	payload := bw.PayloadBits()
	bw.FlushToByte()
	st.PaddingBits = bw.Len()*8 - bw.Stuffed()*8 - payload
	st.StuffedBytes = bw.Stuffed()
	return bw.Bytes(), nil
}

// emitSymbol writes the codeword of s followed by its amplitude bits.
func emitSymbol(bw *BitWriter, s Symbol, dc, ac *CodeTable) (Code, error) {
	table := ac
	switch s.Kind {
	case SymbolDC:
		if s.Size > MaxDCCategory {
			return Code{}, fmt.Errorf("DC difference %d has category %d", s.Value, s.Size)
		}
		table = dc
	case SymbolAC:
		if s.Size > MaxACCategory {
			return Code{}, fmt.Errorf("AC value %d has category %d", s.Value, s.Size)
		}
	}
	code, ok := table.Lookup(s.Code())
	if !ok {
		return Code{}, fmt.Errorf("no codeword for %s symbol 0x%02x", s.Kind, s.Code())
	}
	bw.WriteCode(code)
	if s.Size > 0 {
		bw.WriteBits(Amplitude(s.Value, s.Size), uint32(s.Size))
	}
	return code, nil
}
