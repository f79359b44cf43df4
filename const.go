package jpegdsp

import "fmt"

const (
	markerStart = 0xff
	markerSOF0  = 0xc0
	markerSOF2  = 0xc2
	markerDHT   = 0xc4
	markerRST0  = 0xd0
	markerRST7  = 0xd7
	markerSOI   = 0xd8
	markerEOI   = 0xd9
	markerSOS   = 0xda
	markerDQT   = 0xdb
	markerDRI   = 0xdd
	markerAPP0  = 0xe0
	markerAPP15 = 0xef
	markerCOM   = 0xfe
)

// MarkerName returns the conventional name of a marker code.
func MarkerName(m byte) string {
	switch {
	case m == markerSOI:
		return "SOI"
	case m == markerEOI:
		return "EOI"
	case m == markerSOS:
		return "SOS"
	case m == markerDQT:
		return "DQT"
	case m == markerDHT:
		return "DHT"
	case m == markerDRI:
		return "DRI"
	case m == markerCOM:
		return "COM"
	case m == markerSOF0:
		return "SOF0"
	case m >= 0xc1 && m <= 0xcf && m != 0xc4 && m != 0xc8 && m != 0xcc:
		return fmt.Sprintf("SOF%d", m-markerSOF0)
	case m >= markerRST0 && m <= markerRST7:
		return fmt.Sprintf("RST%d", m-markerRST0)
	case m >= markerAPP0 && m <= markerAPP15:
		return fmt.Sprintf("APP%d", m-markerAPP0)
	default:
		return fmt.Sprintf("0x%02X", m)
	}
}
