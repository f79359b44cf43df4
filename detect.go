package jpegdsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ScanDataName names the pseudo-segment of entropy-coded data in ScanMarkers
// output.
const ScanDataName = "ECS"

// Segment is one marker segment of a JPEG stream.
type Segment struct {
	// Marker is the marker code, zero for entropy-coded data.
	Marker byte   `json:"marker"`
	Name   string `json:"name"`
	// Offset is the position of the marker's 0xFF byte.
	Offset int64 `json:"offset"`
	// Length is the size in bytes including the marker and length field.
	Length int `json:"length"`
}

// ErrNotJPEG is returned for streams that do not start with SOI.
var ErrNotJPEG = errors.New("not a jpeg stream")

// ScanMarkers reads a JPEG stream up to EOI and lists its segments in order
// without buffering it.
func ScanMarkers(r io.Reader) ([]Segment, error) {
	mr := &markerReader{br: bufio.NewReader(r)}
	var soi [2]byte
	if err := mr.readFull(soi[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJPEG, err)
	}
	if soi[0] != markerStart || soi[1] != markerSOI {
		return nil, ErrNotJPEG
	}
	segs := []Segment{{Marker: markerSOI, Name: MarkerName(markerSOI), Length: 2}}

	var (
		marker byte
		off    int64
		length int
		err    error
	)
	marker, off, err = mr.readMarker()
	for {
		if err != nil {
			return segs, unexpectedEOF(err)
		}
		seg := Segment{Marker: marker, Name: MarkerName(marker), Offset: off, Length: 2}
		if marker == markerEOI {
			segs = append(segs, seg)
			return segs, nil
		}
		if marker >= markerRST0 && marker <= markerRST7 {
			segs = append(segs, seg)
			marker, off, err = mr.readMarker()
			continue
		}

		if length, err = mr.discardSegment(); err != nil {
			return segs, unexpectedEOF(err)
		}
		seg.Length += length
		segs = append(segs, seg)

		if marker != markerSOS {
			marker, off, err = mr.readMarker()
			continue
		}

		scanStart := mr.off
		marker, off, err = mr.skipScan()
		if err == nil {
			segs = append(segs, Segment{Name: ScanDataName, Offset: scanStart, Length: int(off - scanStart)})
		}
	}
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// markerReader tracks the stream offset of a buffered reader.
type markerReader struct {
	br  *bufio.Reader
	off int64
}

func (mr *markerReader) readByte() (byte, error) {
	b, err := mr.br.ReadByte()
	if err == nil {
		mr.off++
	}
	return b, err
}

func (mr *markerReader) readFull(p []byte) error {
	n, err := io.ReadFull(mr.br, p)
	mr.off += int64(n)
	return err
}

// readMarker skips to the next marker, collapsing fill bytes. It returns the
// marker code and the offset of its last 0xFF byte.
func (mr *markerReader) readMarker() (byte, int64, error) {
	for {
		b, err := mr.readByte()
		if err != nil {
			return 0, 0, err
		}
		if b != markerStart {
			continue
		}
		for {
			m, err := mr.readByte()
			if err != nil {
				return 0, 0, err
			}
			if m != markerStart {
				return m, mr.off - 2, nil
			}
		}
	}
}

func (mr *markerReader) readU16() (uint16, error) {
	hi, err := mr.readByte()
	if err != nil {
		return 0, err
	}
	lo, err := mr.readByte()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// discardSegment skips a segment body and returns its length field.
func (mr *markerReader) discardSegment() (int, error) {
	length, err := mr.readU16()
	if err != nil {
		return 0, err
	}
	if length < 2 {
		return 0, errors.New("invalid segment length")
	}
	return int(length), mr.discardN(int(length - 2))
}

func (mr *markerReader) discardN(n int) error {
	if n <= 0 {
		return nil
	}
	d, err := io.CopyN(io.Discard, mr.br, int64(n))
	mr.off += d
	return err
}

// skipScan consumes entropy-coded data, including restart markers, up to the
// next marker. It returns that marker and its offset.
func (mr *markerReader) skipScan() (byte, int64, error) {
	for {
		b, err := mr.readByte()
		if err != nil {
			return 0, 0, err
		}
		if b != markerStart {
			continue
		}
		m, err := mr.readByte()
		if err != nil {
			return 0, 0, err
		}
		for m == markerStart {
			m, err = mr.readByte()
			if err != nil {
				return 0, 0, err
			}
		}
		if m == 0x00 || (m >= markerRST0 && m <= markerRST7) {
			continue
		}
		return m, mr.off - 2, nil
	}
}
