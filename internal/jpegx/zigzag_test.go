package jpegx

import (
	"math/rand"
	"testing"
)

func TestUnzigIsPermutation(t *testing.T) {
	var seen [BlockLen]bool
	for z, n := range Unzig {
		if seen[n] {
			t.Fatalf("natural index %d repeated", n)
		}
		seen[n] = true
		if Zig[n] != z {
			t.Fatalf("Zig[%d] = %d, want %d", n, Zig[n], z)
		}
	}
}

func TestZigZagRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	var b Block[int16]
	for i := range b {
		b[i] = int16(rnd.Intn(2048) - 1024)
	}
	s := ToZigZag(&b)
	if got := FromZigZag(&s); got != b {
		t.Fatal("unzigzag(zigzag(block)) != block")
	}

	var seq [BlockLen]float64
	for i := range seq {
		seq[i] = rnd.Float64()
	}
	back := FromZigZag(&seq)
	if got := ToZigZag(&back); got != seq {
		t.Fatal("zigzag(unzigzag(seq)) != seq")
	}
}

func TestZigZagOrder(t *testing.T) {
	var b Block[int32]
	for i := range b {
		b[i] = int32(i)
	}
	s := ToZigZag(&b)
	// (0,0), (1,0), (0,1), (0,2), (1,1), (2,0).
	want := []int32{0, 1, 8, 16, 9, 2}
	for i, w := range want {
		if s[i] != w {
			t.Fatalf("position %d: got %d want %d", i, s[i], w)
		}
	}
	if s[63] != 63 {
		t.Fatalf("last position: got %d", s[63])
	}
}
