package jpegx

import "fmt"

// HuffIndex selects one of the four standard code tables.
type HuffIndex int

const (
	HuffLuminanceDC HuffIndex = iota
	HuffLuminanceAC
	HuffChrominanceDC
	HuffChrominanceAC
	nHuffIndex
)

// Class returns the DHT table class: 0 for DC, 1 for AC.
func (h HuffIndex) Class() uint8 {
	return uint8(h) & 1
}

// ID returns the DHT destination identifier: 0 for luminance, 1 for chrominance.
func (h HuffIndex) ID() uint8 {
	return uint8(h) >> 1
}

func (h HuffIndex) String() string {
	switch h {
	case HuffLuminanceDC:
		return "DC luminance"
	case HuffLuminanceAC:
		return "AC luminance"
	case HuffChrominanceDC:
		return "DC chrominance"
	case HuffChrominanceAC:
		return "AC chrominance"
	default:
		return fmt.Sprintf("huffman table %d", int(h))
	}
}

// HuffmanSpec specifies a Huffman encoding.
type HuffmanSpec struct {
	// Count[i] is the number of codes of length i+1 bits.
	Count [16]byte
	// Value[i] is the decoded value of the i'th codeword.
	Value []byte
}

// StandardHuffmanSpecs are the tables of section K.3 of the spec, indexed
// by HuffIndex.
//
// The DC tables have 12 decoded values, called categories.
//
// The AC tables have 162 decoded values: bytes that pack a 4-bit Run and a
// 4-bit Size. There are 16 valid Runs and 10 valid Sizes, plus two special R|S
// cases: 0|0 (meaning EOB) and F|0 (meaning ZRL).
var StandardHuffmanSpecs = [nHuffIndex]HuffmanSpec{
	// Luminance DC.
	{
		Count: [16]byte{0, 1, 5, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0},
		Value: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	},
	// Luminance AC.
	{
		Count: [16]byte{0, 2, 1, 3, 3, 2, 4, 3, 5, 5, 4, 4, 0, 0, 1, 125},
		Value: []byte{
			0x01, 0x02, 0x03, 0x00, 0x04, 0x11, 0x05, 0x12,
			0x21, 0x31, 0x41, 0x06, 0x13, 0x51, 0x61, 0x07,
			0x22, 0x71, 0x14, 0x32, 0x81, 0x91, 0xa1, 0x08,
			0x23, 0x42, 0xb1, 0xc1, 0x15, 0x52, 0xd1, 0xf0,
			0x24, 0x33, 0x62, 0x72, 0x82, 0x09, 0x0a, 0x16,
			0x17, 0x18, 0x19, 0x1a, 0x25, 0x26, 0x27, 0x28,
			0x29, 0x2a, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39,
			0x3a, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48, 0x49,
			0x4a, 0x53, 0x54, 0x55, 0x56, 0x57, 0x58, 0x59,
			0x5a, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68, 0x69,
			0x6a, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78, 0x79,
			0x7a, 0x83, 0x84, 0x85, 0x86, 0x87, 0x88, 0x89,
			0x8a, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97, 0x98,
			0x99, 0x9a, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7,
			0xa8, 0xa9, 0xaa, 0xb2, 0xb3, 0xb4, 0xb5, 0xb6,
			0xb7, 0xb8, 0xb9, 0xba, 0xc2, 0xc3, 0xc4, 0xc5,
			0xc6, 0xc7, 0xc8, 0xc9, 0xca, 0xd2, 0xd3, 0xd4,
			0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0xda, 0xe1, 0xe2,
			0xe3, 0xe4, 0xe5, 0xe6, 0xe7, 0xe8, 0xe9, 0xea,
			0xf1, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf8,
			0xf9, 0xfa,
		},
	},
	// Chrominance DC.
	{
		Count: [16]byte{0, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
		Value: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	},
	// Chrominance AC.
	{
		Count: [16]byte{0, 2, 1, 2, 4, 4, 3, 4, 7, 5, 4, 4, 0, 1, 2, 119},
		Value: []byte{
			0x00, 0x01, 0x02, 0x03, 0x11, 0x04, 0x05, 0x21,
			0x31, 0x06, 0x12, 0x41, 0x51, 0x07, 0x61, 0x71,
			0x13, 0x22, 0x32, 0x81, 0x08, 0x14, 0x42, 0x91,
			0xa1, 0xb1, 0xc1, 0x09, 0x23, 0x33, 0x52, 0xf0,
			0x15, 0x62, 0x72, 0xd1, 0x0a, 0x16, 0x24, 0x34,
			0xe1, 0x25, 0xf1, 0x17, 0x18, 0x19, 0x1a, 0x26,
			0x27, 0x28, 0x29, 0x2a, 0x35, 0x36, 0x37, 0x38,
			0x39, 0x3a, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48,
			0x49, 0x4a, 0x53, 0x54, 0x55, 0x56, 0x57, 0x58,
			0x59, 0x5a, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68,
			0x69, 0x6a, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78,
			0x79, 0x7a, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87,
			0x88, 0x89, 0x8a, 0x92, 0x93, 0x94, 0x95, 0x96,
			0x97, 0x98, 0x99, 0x9a, 0xa2, 0xa3, 0xa4, 0xa5,
			0xa6, 0xa7, 0xa8, 0xa9, 0xaa, 0xb2, 0xb3, 0xb4,
			0xb5, 0xb6, 0xb7, 0xb8, 0xb9, 0xba, 0xc2, 0xc3,
			0xc4, 0xc5, 0xc6, 0xc7, 0xc8, 0xc9, 0xca, 0xd2,
			0xd3, 0xd4, 0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0xda,
			0xe2, 0xe3, 0xe4, 0xe5, 0xe6, 0xe7, 0xe8, 0xe9,
			0xea, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf8,
			0xf9, 0xfa,
		},
	},
}

// Code is a Huffman codeword. A zero Len marks a symbol the table cannot
// encode.
type Code struct {
	Len  uint8
	Bits uint16
}

// CodeTable maps an 8-bit symbol to its codeword.
type CodeTable [256]Code

// Lookup returns the codeword for symbol and whether the table defines it.
func (t *CodeTable) Lookup(symbol uint8) (Code, bool) {
	c := t[symbol]
	return c, c.Len > 0
}

// BuildCodeTable assigns canonical codes to the spec values as described in
// section C.2 of the spec.
func BuildCodeTable(s HuffmanSpec) (CodeTable, error) {
	var t CodeTable
	total := 0
	for _, c := range s.Count {
		total += int(c)
	}
	if total != len(s.Value) {
		return t, fmt.Errorf("jpeg: huffman spec has %d counts and %d values", total, len(s.Value))
	}
	code, k := uint32(0), 0
	for i, n := range s.Count {
		for j := uint8(0); j < n; j++ {
			if code >= 1<<(i+1) {
				return t, fmt.Errorf("jpeg: huffman spec overflows at length %d", i+1)
			}
			t[s.Value[k]] = Code{Len: uint8(i + 1), Bits: uint16(code)}
			code++
			k++
		}
		code <<= 1
	}
	return t, nil
}

// StandardCodeTables are the compiled StandardHuffmanSpecs.
var StandardCodeTables [nHuffIndex]CodeTable

func init() {
	for i, s := range StandardHuffmanSpecs {
		t, err := BuildCodeTable(s)
		if err != nil {
			panic(err)
		}
		StandardCodeTables[i] = t
	}
}
