package stegocipher

import (
	"bytes"
	"testing"
)

func TestKeyStringRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	encoded := key.String()
	got, err := ParseKey(encoded)
	if err != nil {
		t.Fatalf("parse key: %v", err)
	}
	if got != key {
		t.Fatalf("round trip mismatch")
	}
}

func TestParseKeyRejectsWrongLength(t *testing.T) {
	if _, err := ParseKey("dG9vc2hvcnQ="); err == nil {
		t.Fatalf("expected error for undersized key")
	}
}

func TestXORKeyStreamIsInvolution(t *testing.T) {
	key, _ := GenerateKey()
	nonce, err := GenerateNonce()
	if err != nil {
		t.Fatalf("generate nonce: %v", err)
	}
	plaintext := []byte("the quick brown fox jumps over the lazy dog")

	ciphertext, err := XORKeyStream(key, nonce, plaintext)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Equal(ciphertext, plaintext) {
		t.Fatalf("ciphertext should differ from plaintext")
	}

	decrypted, err := XORKeyStream(key, nonce, ciphertext)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Fatalf("decrypted %q, want %q", decrypted, plaintext)
	}
}

func TestXORKeyStreamCorruptionIsLocal(t *testing.T) {
	key, _ := GenerateKey()
	nonce, _ := GenerateNonce()
	plaintext := bytes.Repeat([]byte("A"), 64)

	ciphertext, _ := XORKeyStream(key, nonce, plaintext)
	corrupted := append([]byte(nil), ciphertext...)
	corrupted[10] ^= 0xFF

	decrypted, err := XORKeyStream(key, nonce, corrupted)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	for i, b := range decrypted {
		if i == 10 {
			continue
		}
		if b != plaintext[i] {
			t.Fatalf("byte %d corrupted beyond the flipped ciphertext byte: got %v want %v", i, b, plaintext[i])
		}
	}
	if decrypted[10] == plaintext[10] {
		t.Fatalf("expected byte 10 to be corrupted")
	}
}
