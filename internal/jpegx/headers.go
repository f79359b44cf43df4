package jpegx

import (
	"bytes"
	"sort"
)

// jfifPayload is the APP0 body: identifier, version 1.01, no units, 1:1
// pixel density and no thumbnail.
var jfifPayload = []byte{
	'J', 'F', 'I', 'F', 0x00,
	0x01, 0x01,
	0x00,
	0x00, 0x01,
	0x00, 0x01,
	0x00, 0x00,
}

func writeMarker(out *bytes.Buffer, marker byte) {
	out.WriteByte(markerStart)
	out.WriteByte(marker)
}

func writeSegment(out *bytes.Buffer, marker byte, payload []byte) {
	writeMarker(out, marker)
	length := uint16(len(payload) + 2)
	out.WriteByte(byte(length >> 8))
	out.WriteByte(byte(length))
	out.Write(payload)
}

// writeDQT writes one segment per table, entries in zig-zag order.
func writeDQT(out *bytes.Buffer, ids []uint8, tables []QuantTable) {
	for _, id := range ids {
		zz := tables[id].ZigZag()
		payload := make([]byte, 0, 1+BlockLen)
		payload = append(payload, id) // Pq=0 (8-bit), Tq=id.
		payload = append(payload, zz[:]...)
		writeSegment(out, dqtMarker, payload)
	}
}

func writeSOF0(out *bytes.Buffer, l Layout, width, height int) {
	payload := make([]byte, 0, 6+3*len(l))
	payload = append(payload,
		8, // Sample precision.
		byte(height>>8), byte(height),
		byte(width>>8), byte(width),
		byte(len(l)),
	)
	for _, c := range l {
		payload = append(payload, c.ID, byte(c.H<<4|c.V), c.Quant)
	}
	writeSegment(out, sof0Marker, payload)
}

// writeDHT writes one segment per table.
func writeDHT(out *bytes.Buffer, huffs []HuffIndex) {
	for _, h := range huffs {
		s := StandardHuffmanSpecs[h]
		payload := make([]byte, 0, 17+len(s.Value))
		payload = append(payload, h.Class()<<4|h.ID())
		payload = append(payload, s.Count[:]...)
		payload = append(payload, s.Value...)
		writeSegment(out, dhtMarker, payload)
	}
}

func writeSOS(out *bytes.Buffer, l Layout) {
	payload := make([]byte, 0, 4+2*len(l))
	payload = append(payload, byte(len(l)))
	for _, c := range l {
		payload = append(payload, c.ID, c.DC.ID()<<4|c.AC.ID())
	}
	payload = append(payload,
		0x00, // Ss.
		0x3f, // Se.
		0x00, // Ah, Al.
	)
	writeSegment(out, sosMarker, payload)
}

// quantIDs returns the distinct quantization table ids of l in ascending order.
func (l Layout) quantIDs() []uint8 {
	seen := map[uint8]bool{}
	var ids []uint8
	for _, c := range l {
		if !seen[c.Quant] {
			seen[c.Quant] = true
			ids = append(ids, c.Quant)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// huffIndexes returns the distinct code tables of l. The ascending order
// puts the DC table of each destination before its AC table.
func (l Layout) huffIndexes() []HuffIndex {
	var used [nHuffIndex]bool
	for _, c := range l {
		used[c.DC] = true
		used[c.AC] = true
	}
	var out []HuffIndex
	for h, u := range used {
		if u {
			out = append(out, HuffIndex(h))
		}
	}
	return out
}
