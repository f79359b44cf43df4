package jpegdsp

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/vearutop/jpegdsp/internal/jpegx"
)

func TestParseTablesColor(t *testing.T) {
	res, err := EncodeImage(redBlue(40, 24), WithQuality(50))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	tables, err := ParseTables(res.Data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(tables.Quant) != 2 {
		t.Fatalf("unexpected quant tables %d", len(tables.Quant))
	}
	for i, base := range []jpegx.QuantTable{jpegx.BaseLuminance, jpegx.BaseChrominance} {
		q := tables.Quant[i]
		if q.ID != uint8(i) {
			t.Fatalf("quant table %d has id %d", i, q.ID)
		}
		if jpegx.QuantTable(q.Values) != base {
			t.Fatalf("quant table %d: got %v want %v", i, q.Values, base)
		}
	}

	if len(tables.Huffman) != 4 {
		t.Fatalf("unexpected huffman tables %d", len(tables.Huffman))
	}
	for i, h := range []jpegx.HuffIndex{jpegx.HuffLuminanceDC, jpegx.HuffLuminanceAC, jpegx.HuffChrominanceDC, jpegx.HuffChrominanceAC} {
		ht := tables.Huffman[i]
		if ht.Class != h.Class() || ht.ID != h.ID() {
			t.Fatalf("huffman table %d: class %d id %d, want %s", i, ht.Class, ht.ID, h)
		}
		if ht.Spec.Count != jpegx.StandardHuffmanSpecs[h].Count ||
			!bytes.Equal(ht.Spec.Value, jpegx.StandardHuffmanSpecs[h].Value) {
			t.Fatalf("huffman table %s differs from the standard table", h)
		}
	}

	f := tables.Frame
	if f.Precision != 8 || f.Width != 40 || f.Height != 24 || len(f.Components) != 3 {
		t.Fatalf("unexpected frame %+v", f)
	}
	if c := f.Components[0]; c.ID != 1 || c.H != 2 || c.V != 2 || c.Quant != 0 {
		t.Fatalf("unexpected Y component %+v", c)
	}
	if c := f.Components[2]; c.ID != 3 || c.H != 1 || c.V != 1 || c.Quant != 1 {
		t.Fatalf("unexpected Cr component %+v", c)
	}

	s := tables.Scan
	if s == nil || len(s.Components) != 3 || s.Ss != 0 || s.Se != 63 || s.Ah != 0 || s.Al != 0 {
		t.Fatalf("unexpected scan %+v", s)
	}
	if c := s.Components[1]; c.ID != 2 || c.DC != 1 || c.AC != 1 {
		t.Fatalf("unexpected Cb scan component %+v", c)
	}
}

func TestParseTablesGray(t *testing.T) {
	res := encodeGradient(t, 9, 9, WithQuality(100))
	tables, err := ParseTables(res.Data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tables.Quant) != 1 || len(tables.Huffman) != 2 || len(tables.Frame.Components) != 1 {
		t.Fatalf("unexpected tables %+v", tables)
	}
	for i, v := range tables.Quant[0].Values {
		if v != 1 {
			t.Fatalf("entry %d: got %d want 1", i, v)
		}
	}
	if tables.Frame.Width != 9 || tables.Frame.Height != 9 {
		t.Fatalf("unexpected frame size %dx%d", tables.Frame.Width, tables.Frame.Height)
	}
}

func TestParseTablesReferenceEncoder(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	img.SetGray(3, 3, color.Gray{Y: 200})
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 50}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	tables, err := ParseTables(buf.Bytes())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tables.Frame.Width != 16 || len(tables.Frame.Components) != 1 {
		t.Fatalf("unexpected frame %+v", tables.Frame)
	}
	if tables.Quant[0].Values[0] != 16 || tables.Quant[0].Values[1] != 11 || tables.Quant[0].Values[8] != 12 {
		t.Fatalf("unexpected quant table %v", tables.Quant[0].Values[:9])
	}
}

func TestParseTablesErrors(t *testing.T) {
	if _, err := ParseTables([]byte{0x89, 'P', 'N', 'G'}); err == nil {
		t.Fatal("expected error for non-jpeg data")
	}
	if _, err := ParseTables([]byte{0xff, 0xd8, 0xff, 0xd9}); err == nil {
		t.Fatal("expected error for missing tables")
	}

	progressive := []byte{
		0xff, 0xd8,
		0xff, 0xc2, 0x00, 0x0b, 0x08, 0x00, 0x08, 0x00, 0x08, 0x01, 0x01, 0x11, 0x00,
		0xff, 0xd9,
	}
	if _, err := ParseTables(progressive); err == nil {
		t.Fatal("expected error for progressive frame")
	}

	data := encodeGradient(t, 8, 8).Data
	if _, err := ParseTables(data[:25]); err == nil {
		t.Fatal("expected error for truncated segment")
	}
}
