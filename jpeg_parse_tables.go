package jpegdsp

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/vearutop/jpegdsp/internal/jpegx"
)

// HuffmanSpec is the content of one DHT table.
type HuffmanSpec = jpegx.HuffmanSpec

// QuantTable is a DQT table in natural order.
type QuantTable struct {
	ID     uint8
	Values [64]uint8
}

// HuffmanTable is a DHT table with its destination.
type HuffmanTable struct {
	// Class is 0 for DC tables and 1 for AC tables.
	Class uint8
	ID    uint8
	Spec  HuffmanSpec
}

// FrameComponent is a component of a SOF0 header.
type FrameComponent struct {
	ID    uint8
	H, V  uint8
	Quant uint8
}

// Frame is a SOF0 header.
type Frame struct {
	Precision  uint8
	Width      int
	Height     int
	Components []FrameComponent
}

// ScanComponent selects the code tables of a component in a scan.
type ScanComponent struct {
	ID uint8
	DC uint8
	AC uint8
}

// Scan is a SOS header.
type Scan struct {
	Components []ScanComponent
	Ss, Se     uint8
	Ah, Al     uint8
}

// Tables are the headers of a baseline JPEG stream.
type Tables struct {
	Quant   []QuantTable
	Huffman []HuffmanTable
	Frame   *Frame
	Scan    *Scan
}

// ParseTables decodes the DQT, DHT, SOF0 and SOS segments that precede the
// first scan.
func ParseTables(data []byte) (*Tables, error) {
	if len(data) < 4 || data[0] != markerStart || data[1] != markerSOI {
		return nil, ErrNotJPEG
	}
	t := &Tables{}
	pos := 2
	for pos+3 < len(data) {
		if data[pos] != markerStart {
			pos++
			continue
		}
		for pos < len(data) && data[pos] == markerStart {
			pos++
		}
		if pos >= len(data) {
			break
		}
		marker := data[pos]
		pos++
		if marker == markerEOI {
			break
		}
		if marker >= markerRST0 && marker <= markerRST7 {
			continue
		}
		if pos+1 >= len(data) {
			return nil, errors.New("truncated marker")
		}
		segLen := int(binary.BigEndian.Uint16(data[pos:]))
		if segLen < 2 || pos+segLen > len(data) {
			return nil, errors.New("invalid segment length")
		}
		seg := data[pos+2 : pos+segLen]
		var err error
		switch marker {
		case markerDQT:
			err = parseDQT(seg, t)
		case markerDHT:
			err = parseDHT(seg, t)
		case markerSOF0:
			err = parseSOF0(seg, t)
		case markerSOF2:
			err = errors.New("progressive jpeg is not supported")
		case markerSOS:
			err = parseSOS(seg, t)
		}
		if err != nil {
			return nil, err
		}
		pos += segLen
		if marker == markerSOS {
			break
		}
	}
	if len(t.Quant) == 0 || len(t.Huffman) == 0 || t.Frame == nil {
		return nil, errors.New("missing tables or SOF0")
	}
	return t, nil
}

func parseDQT(seg []byte, t *Tables) error {
	pos := 0
	for pos < len(seg) {
		pq := seg[pos] >> 4
		tq := seg[pos] & 0x0F
		pos++
		if pq != 0 {
			return errors.New("unsupported 16-bit quant table")
		}
		if pos+64 > len(seg) {
			return errors.New("truncated dqt table")
		}
		q := QuantTable{ID: tq}
		for z, v := range seg[pos : pos+64] {
			q.Values[jpegx.Unzig[z]] = v
		}
		t.Quant = append(t.Quant, q)
		pos += 64
	}
	return nil
}

func parseDHT(seg []byte, t *Tables) error {
	pos := 0
	for pos < len(seg) {
		if pos+17 > len(seg) {
			return errors.New("truncated dht")
		}
		tc := seg[pos] >> 4
		th := seg[pos] & 0x0F
		pos++
		var count [16]byte
		copy(count[:], seg[pos:pos+16])
		pos += 16
		total := 0
		for _, c := range count {
			total += int(c)
		}
		if pos+total > len(seg) {
			return errors.New("truncated dht values")
		}
		vals := append([]byte(nil), seg[pos:pos+total]...)
		pos += total
		if tc > 1 {
			return fmt.Errorf("invalid dht class %d", tc)
		}
		t.Huffman = append(t.Huffman, HuffmanTable{Class: tc, ID: th, Spec: HuffmanSpec{Count: count, Value: vals}})
	}
	return nil
}

func parseSOF0(seg []byte, t *Tables) error {
	if len(seg) < 6 {
		return errors.New("truncated sof0")
	}
	f := &Frame{
		Precision: seg[0],
		Height:    int(binary.BigEndian.Uint16(seg[1:])),
		Width:     int(binary.BigEndian.Uint16(seg[3:])),
	}
	if f.Precision != 8 {
		return fmt.Errorf("unsupported precision %d", f.Precision)
	}
	n := int(seg[5])
	if n < 1 {
		return errors.New("invalid component count")
	}
	pos := 6
	for i := 0; i < n; i++ {
		if pos+3 > len(seg) {
			return errors.New("truncated sof0 comps")
		}
		f.Components = append(f.Components, FrameComponent{
			ID: seg[pos], H: seg[pos+1] >> 4, V: seg[pos+1] & 0x0F, Quant: seg[pos+2],
		})
		pos += 3
	}
	t.Frame = f
	return nil
}

func parseSOS(seg []byte, t *Tables) error {
	if len(seg) < 1 {
		return errors.New("truncated sos")
	}
	n := int(seg[0])
	if len(seg) < 1+2*n+3 {
		return errors.New("truncated sos comps")
	}
	s := &Scan{}
	for i := 0; i < n; i++ {
		p := 1 + 2*i
		s.Components = append(s.Components, ScanComponent{ID: seg[p], DC: seg[p+1] >> 4, AC: seg[p+1] & 0x0F})
	}
	p := 1 + 2*n
	s.Ss, s.Se = seg[p], seg[p+1]
	s.Ah, s.Al = seg[p+2]>>4, seg[p+2]&0x0F
	t.Scan = s
	return nil
}
