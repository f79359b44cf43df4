// Package jpegdsp is a baseline sequential JPEG encoder.
//
// Encode compresses ready-made 8-bit planes, EncodeImage takes any image.Image and
// handles color conversion, padding to the MCU grid and 4:2:0 chroma subsampling.
// Analyze reports what each stage of the pipeline did to the data.
package jpegdsp
