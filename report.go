package jpegdsp

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"math"
)

// WriteJSON writes the analysis as indented JSON.
func (a *Analysis) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

var reportFuncs = template.FuncMap{
	"f2": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"f4": func(v float64) string { return fmt.Sprintf("%.4f", v) },
	"pct": func(v float64) string {
		return fmt.Sprintf("%.1f%%", 100*v)
	},
	// heat maps band energy to an opacity in [0.05, 1] on a log scale.
	"heat": func(bands [8][8]float64, v float64) string {
		peak := 0.0
		for _, row := range bands {
			for _, e := range row {
				peak = math.Max(peak, e)
			}
		}
		if peak <= 0 || v <= 0 {
			return "0.05"
		}
		o := math.Log1p(v) / math.Log1p(peak)
		return fmt.Sprintf("%.2f", math.Max(0.05, o))
	},
}

var reportTemplate = template.Must(template.New("report").Funcs(reportFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>JPEG encoding analysis</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 1.5em; }
td, th { border: 1px solid #ccc; padding: 0.25em 0.6em; text-align: right; }
th { background: #eee; }
.band td { width: 3.5em; font-size: 0.75em; }
</style>
</head>
<body>
<h1>JPEG encoding analysis</h1>

<h2>Image</h2>
<table>
<tr><th>Mode</th><td>{{.Mode}}</td></tr>
<tr><th>Quality</th><td>{{.Quality}}</td></tr>
<tr><th>Size</th><td>{{.Width}}x{{.Height}}</td></tr>
<tr><th>Padded size</th><td>{{.PaddedWidth}}x{{.PaddedHeight}}</td></tr>
</table>

<h2>Compression</h2>
<table>
<tr><th>Raw bytes</th><td>{{.RawBytes}}</td></tr>
<tr><th>Encoded bytes</th><td>{{.EncodedBytes}}</td></tr>
<tr><th>Compression ratio</th><td>{{f2 .CompressionRatio}}</td></tr>
<tr><th>Bits per pixel</th><td>{{f2 .BitsPerPixel}}</td></tr>
<tr><th>Input entropy, bits/byte</th><td>{{f4 .InputEntropy}}</td></tr>
<tr><th>Output entropy, bits/byte</th><td>{{f4 .OutputEntropy}}</td></tr>
<tr><th>zstd lossless bytes</th><td>{{.ZstdBytes}}</td></tr>
<tr><th>QOI lossless bytes</th><td>{{.QOIBytes}}</td></tr>
<tr><th>Luma MSE</th><td>{{f4 .MSE}}</td></tr>
<tr><th>Luma PSNR, dB</th><td>{{if .PSNR}}{{f2 .PSNR}}{{else}}lossless{{end}}</td></tr>
</table>

<h2>Symbols</h2>
<table>
<tr><th>Total</th><th>DC</th><th>AC</th><th>ZRL</th><th>EOB</th><th>Mean zero run</th></tr>
<tr><td>{{.Symbols.Total}}</td><td>{{.Symbols.DC}}</td><td>{{.Symbols.AC}}</td><td>{{.Symbols.ZRL}}</td><td>{{.Symbols.EOB}}</td><td>{{f2 .Symbols.MeanZeroRun}}</td></tr>
</table>

<h2>Scan</h2>
<table>
<tr><th>Scan bytes</th><th>Code bits</th><th>Amplitude bits</th><th>Padding bits</th><th>Stuffed bytes</th><th>Mean code length</th></tr>
<tr><td>{{.Huffman.ScanBytes}}</td><td>{{.Huffman.CodeBits}}</td><td>{{.Huffman.AmplitudeBits}}</td><td>{{.Huffman.PaddingBits}}</td><td>{{.Huffman.StuffedBytes}}</td><td>{{f2 .Huffman.MeanCodeLength}}</td></tr>
</table>

{{range .Components}}
<h2>Component {{.Name}}</h2>
<table>
<tr><th>Blocks</th><td>{{.Blocks}}</td></tr>
<tr><th>Mean |DC|</th><td>{{f2 .MeanAbsDC}}</td></tr>
<tr><th>Mean |AC|</th><td>{{f2 .MeanAbsAC}}</td></tr>
<tr><th>DC energy share</th><td>{{pct .DCEnergyShare}}</td></tr>
<tr><th>Mean quantization error</th><td>{{f4 .MeanQuantError}}</td></tr>
<tr><th>Peak quantization error</th><td>{{f2 .PeakQuantError}}</td></tr>
<tr><th>Zero coefficients</th><td>{{.ZeroCoefficients}} ({{pct .Sparsity}})</td></tr>
</table>
<table class="band">
{{$bands := .BandEnergy}}{{range .BandEnergy}}<tr>{{range .}}<td style="background: rgba(200, 60, 30, {{heat $bands .}})">{{f2 .}}</td>{{end}}</tr>
{{end}}</table>
<table>
<tr><th>DC category</th>{{range $i, $n := .DCCategories}}<th>{{$i}}</th>{{end}}</tr>
<tr><td>blocks</td>{{range .DCCategories}}<td>{{.}}</td>{{end}}</tr>
</table>
{{end}}

<h2>Markers</h2>
<table>
<tr><th>Marker</th><th>Offset</th><th>Length</th></tr>
{{range .Markers}}<tr><td>{{.Name}}</td><td>{{.Offset}}</td><td>{{.Length}}</td></tr>
{{end}}</table>
<p>Marker overhead: {{.MarkerOverheadBytes}} bytes.</p>

<h2>Timings</h2>
<table>
<tr><th>Prepare, ms</th><th>Transform, ms</th><th>Entropy, ms</th></tr>
<tr><td>{{f2 .Timings.PrepareMS}}</td><td>{{f2 .Timings.TransformMS}}</td><td>{{f2 .Timings.EntropyMS}}</td></tr>
</table>
</body>
</html>
`))

// WriteHTML renders the analysis as a standalone HTML page.
func (a *Analysis) WriteHTML(w io.Writer) error {
	return reportTemplate.Execute(w, a)
}
