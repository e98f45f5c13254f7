package frame

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestSerializeParseRoundTrip(t *testing.T) {
	f := Frame{Ciphertext: []byte("hello, stego world")}
	copy(f.Nonce[:], []byte("abcdefghijkl"))

	raw := f.Serialize()
	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Nonce != f.Nonce {
		t.Fatalf("nonce mismatch: got %v want %v", got.Nonce, f.Nonce)
	}
	if !bytes.Equal(got.Ciphertext, f.Ciphertext) {
		t.Fatalf("ciphertext mismatch: got %q want %q", got.Ciphertext, f.Ciphertext)
	}
}

func TestParseRejectsTruncatedHeader(t *testing.T) {
	if _, err := Parse(make([]byte, HeaderSize-1)); err == nil {
		t.Fatalf("expected error for truncated header")
	}
}

func TestParseRejectsShortCiphertext(t *testing.T) {
	raw := make([]byte, HeaderSize)
	putUint32BE(raw[NonceSize:], 100)
	if _, err := Parse(raw); err == nil {
		t.Fatalf("expected error when declared length exceeds available bytes")
	}
}

func TestBitByteRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	data := make([]byte, 64)
	rng.Read(data)

	bits := BytesToBits(data)
	if len(bits) != len(data)*8 {
		t.Fatalf("got %d bits, want %d", len(bits), len(data)*8)
	}
	got := BitsToBytes(bits)
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %x want %x", got, data)
	}
}

func TestBytesToBitsMSBFirst(t *testing.T) {
	bits := BytesToBits([]byte{0b10110000})
	want := []int{1, 0, 1, 1, 0, 0, 0, 0}
	for i, b := range want {
		if bits[i] != b {
			t.Fatalf("bit %d: got %d want %d", i, bits[i], b)
		}
	}
}
