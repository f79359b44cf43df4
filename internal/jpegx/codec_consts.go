package jpegx

const (
	markerStart = 0xff
	soiMarker   = 0xd8 // Start Of Image.
	eoiMarker   = 0xd9 // End Of Image.
	sosMarker   = 0xda // Start Of Scan.
	app0Marker  = 0xe0 // Application segment 0 (JFIF).
	sof0Marker  = 0xc0 // Start Of Frame (Baseline Sequential).
	dhtMarker   = 0xc4 // Define Huffman Table.
	dqtMarker   = 0xdb // Define Quantization Table.
)

const (
	// BlockSize is the side of a DCT block.
	BlockSize = 8
	// BlockLen is the number of samples in a DCT block.
	BlockLen = BlockSize * BlockSize

	// LevelShift centers 8-bit samples around zero before the DCT.
	LevelShift = 128
)

// Unzig maps from the zig-zag ordering to the natural ordering.
var Unzig = [BlockLen]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// Zig maps from the natural ordering to the zig-zag ordering.
var Zig [BlockLen]int

func init() {
	for z, n := range Unzig {
		Zig[n] = z
	}
}
