package jpegdsp

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"testing"
)

func encodeGradient(t *testing.T, w, h int, opts ...func(o *EncodeOptions)) *EncodeResult {
	t.Helper()
	res, err := EncodeImage(gradientGray(w, h), opts...)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return res
}

func TestScanMarkers(t *testing.T) {
	res := encodeGradient(t, 16, 8)
	segs, err := ScanMarkers(bytes.NewReader(res.Data))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	var names []string
	for _, s := range segs {
		names = append(names, s.Name)
	}
	want := []string{"SOI", "APP0", "DQT", "SOF0", "DHT", "DHT", "SOS", ScanDataName, "EOI"}
	if len(names) != len(want) {
		t.Fatalf("unexpected segments %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("segment %d: got %s want %s", i, names[i], want[i])
		}
	}

	if segs[1].Offset != 2 || segs[1].Length != 18 {
		t.Fatalf("unexpected APP0 %+v", segs[1])
	}
	if segs[2].Offset != 20 || segs[2].Length != 69 {
		t.Fatalf("unexpected DQT %+v", segs[2])
	}
	ecs := segs[7]
	if ecs.Marker != 0 || ecs.Length != res.Stats.ScanBytes {
		t.Fatalf("unexpected scan segment %+v, scan bytes %d", ecs, res.Stats.ScanBytes)
	}
	eoi := segs[8]
	if eoi.Offset != int64(len(res.Data)-2) || ecs.Offset+int64(ecs.Length) != eoi.Offset {
		t.Fatalf("unexpected EOI %+v", eoi)
	}

	total := 0
	for _, s := range segs {
		total += s.Length
	}
	if total != len(res.Data) {
		t.Fatalf("segments cover %d of %d bytes", total, len(res.Data))
	}
}

func TestScanMarkersReferenceEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 24, 24)), nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	segs, err := ScanMarkers(&buf)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if segs[0].Name != "SOI" || segs[len(segs)-1].Name != "EOI" {
		t.Fatalf("unexpected segments %+v", segs)
	}
}

func TestScanMarkersErrors(t *testing.T) {
	if _, err := ScanMarkers(bytes.NewReader([]byte("GIF89a"))); !errors.Is(err, ErrNotJPEG) {
		t.Fatalf("expected ErrNotJPEG, got %v", err)
	}
	if _, err := ScanMarkers(bytes.NewReader(nil)); !errors.Is(err, ErrNotJPEG) {
		t.Fatalf("expected ErrNotJPEG for empty input, got %v", err)
	}

	data := encodeGradient(t, 8, 8).Data
	for _, n := range []int{3, 30, len(data) - 1} {
		segs, err := ScanMarkers(bytes.NewReader(data[:n]))
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Fatalf("truncated at %d: expected io.ErrUnexpectedEOF, got %v", n, err)
		}
		if len(segs) == 0 || segs[0].Name != "SOI" {
			t.Fatalf("truncated at %d: missing partial result", n)
		}
	}
}

func TestMarkerName(t *testing.T) {
	for m, want := range map[byte]string{
		0xd8: "SOI",
		0xc0: "SOF0",
		0xc2: "SOF2",
		0xc4: "DHT",
		0xd3: "RST3",
		0xe1: "APP1",
		0xfe: "COM",
		0xdd: "DRI",
		0x01: "0x01",
	} {
		if got := MarkerName(m); got != want {
			t.Fatalf("MarkerName(0x%02x) = %s, want %s", m, got, want)
		}
	}
}
