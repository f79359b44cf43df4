package jpegx

// ToZigZag reorders a natural-order block into zig-zag scan order.
func ToZigZag[T Sample](b *Block[T]) [BlockLen]T {
	var s [BlockLen]T
	for z, n := range Unzig {
		s[z] = b[n]
	}
	return s
}

// FromZigZag is the inverse of ToZigZag.
func FromZigZag[T Sample](s *[BlockLen]T) Block[T] {
	var b Block[T]
	for z, n := range Unzig {
		b[n] = s[z]
	}
	return b
}
