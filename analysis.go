package jpegdsp

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vearutop/jpegdsp/internal/jpegx"
	"github.com/xfmoulet/qoi"
)

// Analysis describes what the encoder did to an image.
type Analysis struct {
	Mode         string `json:"mode"`
	Quality      int    `json:"quality"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	PaddedWidth  int    `json:"padded_width"`
	PaddedHeight int    `json:"padded_height"`

	// RawBytes is the size of the unpadded input samples.
	RawBytes         int     `json:"raw_bytes"`
	EncodedBytes     int     `json:"encoded_bytes"`
	CompressionRatio float64 `json:"compression_ratio"`
	BitsPerPixel     float64 `json:"bits_per_pixel"`
	// InputEntropy and OutputEntropy are in bits per byte.
	InputEntropy  float64 `json:"input_entropy"`
	OutputEntropy float64 `json:"output_entropy"`
	// ZstdBytes and QOIBytes are lossless baselines of the same input.
	ZstdBytes int `json:"zstd_bytes"`
	QOIBytes  int `json:"qoi_bytes"`

	// MSE and PSNR compare the luminance of the decoded output with the input.
	MSE float64 `json:"mse"`
	// PSNR is nil when the luminance is reproduced exactly.
	PSNR *float64 `json:"psnr_db,omitempty"`

	Components []ComponentAnalysis `json:"components"`
	Symbols    SymbolAnalysis      `json:"symbols"`
	Huffman    HuffmanAnalysis     `json:"huffman"`

	Markers             []Segment `json:"markers"`
	MarkerOverheadBytes int       `json:"marker_overhead_bytes"`

	Timings Timings `json:"timings"`
}

// ComponentAnalysis holds coefficient statistics of one component.
type ComponentAnalysis struct {
	Name      string  `json:"name"`
	Blocks    int     `json:"blocks"`
	MeanAbsDC float64 `json:"mean_abs_dc"`
	MeanAbsAC float64 `json:"mean_abs_ac"`
	// DCEnergyShare is the fraction of coefficient energy in DC terms.
	DCEnergyShare float64 `json:"dc_energy_share"`
	// BandEnergy is the mean squared coefficient per frequency, indexed
	// [v][u].
	BandEnergy [8][8]float64 `json:"band_energy"`
	// Quantization error is measured in the coefficient domain.
	MeanQuantError   float64 `json:"mean_quant_error"`
	PeakQuantError   float64 `json:"peak_quant_error"`
	ZeroCoefficients int     `json:"zero_coefficients"`
	Sparsity         float64 `json:"sparsity"`
	// DCCategories is the histogram of DC difference categories.
	DCCategories [jpegx.MaxDCCategory + 1]int `json:"dc_categories"`
}

// SymbolAnalysis counts entropy coding symbols.
type SymbolAnalysis struct {
	Total int `json:"total"`
	DC    int `json:"dc"`
	AC    int `json:"ac"`
	ZRL   int `json:"zrl"`
	EOB   int `json:"eob"`
	// MeanZeroRun is the mean number of zeros preceding a nonzero AC value.
	MeanZeroRun float64 `json:"mean_zero_run"`
}

// HuffmanAnalysis describes the packed scan.
type HuffmanAnalysis struct {
	ScanBytes      int     `json:"scan_bytes"`
	CodeBits       int     `json:"code_bits"`
	AmplitudeBits  int     `json:"amplitude_bits"`
	PaddingBits    int     `json:"padding_bits"`
	StuffedBytes   int     `json:"stuffed_bytes"`
	MeanCodeLength float64 `json:"mean_code_length"`
}

// Timings are stage durations in milliseconds.
type Timings struct {
	PrepareMS   float64 `json:"prepare_ms"`
	TransformMS float64 `json:"transform_ms"`
	EntropyMS   float64 `json:"entropy_ms"`
}

type componentSums struct {
	blocks     int
	absDC      float64
	absAC      float64
	dcEnergy   float64
	energy     [jpegx.BlockLen]float64
	quantErr   float64
	peakErr    float64
	zeros      int
	categories [jpegx.MaxDCCategory + 1]int
}

// analyzer collects statistics while the encoder runs.
type analyzer struct {
	comps     []componentSums
	acSymbols int
	dcSymbols int
	runSum    int
}

func newAnalyzer(nComponent int) *analyzer {
	return &analyzer{comps: make([]componentSums, nComponent)}
}

func (a *analyzer) ObserveBlock(b jpegx.BlockInfo) {
	c := &a.comps[b.Component]
	c.blocks++
	c.absDC += math.Abs(b.Coef[0])
	c.dcEnergy += b.Coef[0] * b.Coef[0]
	for i, v := range b.Coef {
		c.energy[i] += v * v
		if i > 0 {
			c.absAC += math.Abs(v)
		}
	}
	for z, q := range b.Quantized {
		n := jpegx.Unzig[z]
		e := math.Abs(b.Coef[n] - float64(q)*float64(b.Table[n]))
		c.quantErr += e
		c.peakErr = math.Max(c.peakErr, e)
		if q == 0 {
			c.zeros++
		}
	}
}

func (a *analyzer) ObserveSymbol(component int, s jpegx.Symbol, _ jpegx.Code) {
	switch s.Kind {
	case jpegx.SymbolDC:
		a.dcSymbols++
		a.comps[component].categories[s.Size]++
	case jpegx.SymbolAC:
		a.acSymbols++
		a.runSum += int(s.Run)
	case jpegx.SymbolZRL:
		a.runSum += int(s.Run)
	}
}

var componentNames = map[Mode][]string{
	ModeGrayscale: {"Y"},
	ModeColor420:  {"Y", "Cb", "Cr"},
}

// finish completes the analysis of a successful encode. Source planes are
// the unpadded input, planes what was encoded.
func (a *analyzer) finish(img image.Image, source, planes []Plane, res *EncodeResult, opt EncodeOptions, prepare time.Duration) (*Analysis, error) {
	st := res.Stats
	w, h := source[0].Width, source[0].Height
	an := &Analysis{
		Mode:         res.Mode.String(),
		Quality:      opt.Quality,
		Width:        w,
		Height:       h,
		PaddedWidth:  planes[0].Width,
		PaddedHeight: planes[0].Height,
		EncodedBytes: len(res.Data),
		Timings: Timings{
			PrepareMS:   durationMS(prepare),
			TransformMS: durationMS(st.TransformTime),
			EntropyMS:   durationMS(st.EntropyTime),
		},
	}

	raw := make([]byte, 0, len(source)*w*h)
	for _, p := range source {
		raw = append(raw, p.Pix[:p.Width*p.Height]...)
	}
	an.RawBytes = len(raw)
	an.CompressionRatio = float64(len(raw)) / float64(len(res.Data))
	an.BitsPerPixel = float64(len(res.Data)*8) / float64(w*h)
	an.InputEntropy = byteEntropy(raw)
	an.OutputEntropy = byteEntropy(res.Data)

	zb, err := zstdSize(raw)
	if err != nil {
		return nil, err
	}
	an.ZstdBytes = zb

	var qb bytes.Buffer
	if err := qoi.Encode(&qb, img); err != nil {
		return nil, fmt.Errorf("qoi baseline: %w", err)
	}
	an.QOIBytes = qb.Len()

	decoded, err := jpeg.Decode(bytes.NewReader(res.Data))
	if err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}
	an.MSE = mse(source[0], GrayPlane(decoded))
	if an.MSE > 0 {
		psnr := 10 * math.Log10(255*255/an.MSE)
		an.PSNR = &psnr
	}

	names := componentNames[res.Mode]
	for i, c := range a.comps {
		ca := ComponentAnalysis{Blocks: c.blocks, ZeroCoefficients: c.zeros, DCCategories: c.categories}
		if i < len(names) {
			ca.Name = names[i]
		}
		if c.blocks > 0 {
			n := float64(c.blocks)
			ca.MeanAbsDC = c.absDC / n
			ca.MeanAbsAC = c.absAC / (n * (jpegx.BlockLen - 1))
			ca.MeanQuantError = c.quantErr / (n * jpegx.BlockLen)
			ca.PeakQuantError = c.peakErr
			ca.Sparsity = float64(c.zeros) / (n * jpegx.BlockLen)
			total := 0.0
			for k, e := range c.energy {
				ca.BandEnergy[k/jpegx.BlockSize][k%jpegx.BlockSize] = e / n
				total += e
			}
			if total > 0 {
				ca.DCEnergyShare = c.dcEnergy / total
			}
		}
		an.Components = append(an.Components, ca)
	}

	an.Symbols = SymbolAnalysis{Total: st.Symbols, DC: a.dcSymbols, AC: a.acSymbols, ZRL: st.ZRL, EOB: st.EOB}
	if a.acSymbols > 0 {
		an.Symbols.MeanZeroRun = float64(a.runSum) / float64(a.acSymbols)
	}
	an.Huffman = HuffmanAnalysis{
		ScanBytes:     st.ScanBytes,
		CodeBits:      st.CodeBits,
		AmplitudeBits: st.AmplitudeBits,
		PaddingBits:   st.PaddingBits,
		StuffedBytes:  st.StuffedBytes,
	}
	if st.Symbols > 0 {
		an.Huffman.MeanCodeLength = float64(st.CodeBits) / float64(st.Symbols)
	}

	an.Markers, err = ScanMarkers(bytes.NewReader(res.Data))
	if err != nil {
		return nil, fmt.Errorf("scan markers: %w", err)
	}
	an.MarkerOverheadBytes = st.HeaderBytes
	return an, nil
}

func zstdSize(raw []byte) (int, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		return 0, fmt.Errorf("zstd baseline: %w", err)
	}
	defer enc.Close()
	return len(enc.EncodeAll(raw, nil)), nil
}

// mse compares a with the top-left region of b of the same size.
func mse(a, b Plane) float64 {
	var sum float64
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			d := float64(a.At(x, y)) - float64(b.At(x, y))
			sum += d * d
		}
	}
	return sum / float64(a.Width*a.Height)
}

func durationMS(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
