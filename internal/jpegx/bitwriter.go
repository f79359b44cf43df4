package jpegx

// BitWriter packs codewords MSB-first into entropy-coded scan data.
// Every emitted 0xff byte is followed by a stuffed 0x00.
type BitWriter struct {
	buf []byte
	// bits and nBits are accumulated bits not yet written to buf, left
	// aligned in bits.
	bits, nBits uint32
	// payload counts bits written through WriteBits, excluding padding.
	payload int
	stuffed int
}

// NewBitWriter returns a writer with the given initial capacity.
func NewBitWriter(capacity int) *BitWriter {
	return &BitWriter{buf: make([]byte, 0, capacity)}
}

// WriteBits appends the least significant length bits of value.
// The precondition is length <= 16.
func (w *BitWriter) WriteBits(value uint32, length uint32) {
	if length == 0 {
		return
	}
	w.payload += int(length)
	value &= 1<<length - 1
	nBits := w.nBits + length
	bits := value<<(32-nBits) | w.bits
	for nBits >= 8 {
		b := uint8(bits >> 24)
		w.buf = append(w.buf, b)
		if b == 0xff {
			w.buf = append(w.buf, 0x00)
			w.stuffed++
		}
		bits <<= 8
		nBits -= 8
	}
	w.bits, w.nBits = bits, nBits
}

// WriteCode appends a Huffman codeword.
func (w *BitWriter) WriteCode(c Code) {
	w.WriteBits(uint32(c.Bits), uint32(c.Len))
}

// FlushToByte pads the pending partial byte with 1 bits.
func (w *BitWriter) FlushToByte() {
	if w.nBits == 0 {
		return
	}
	pad := 8 - w.nBits
	payload := w.payload
	w.WriteBits(1<<pad-1, pad)
	w.payload = payload
}

// Bytes returns the packed data. It does not include pending bits.
func (w *BitWriter) Bytes() []byte {
	return w.buf
}

// Len returns the number of packed bytes, stuffing included.
func (w *BitWriter) Len() int {
	return len(w.buf)
}

// Stuffed returns the number of 0x00 bytes inserted after 0xff.
func (w *BitWriter) Stuffed() int {
	return w.stuffed
}

// PayloadBits returns the number of bits written, excluding padding.
func (w *BitWriter) PayloadBits() int {
	return w.payload
}
