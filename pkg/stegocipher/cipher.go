// Package stegocipher wraps the raw ChaCha20 IETF stream cipher used to
// encrypt frame payloads. It deliberately uses the bare stream cipher
// rather than an AEAD construction: a single bit flip in an AEAD ciphertext
// invalidates the whole message, while a stream cipher lets a bit channel
// error corrupt only the bytes it touches, which is what lets Extract
// degrade gracefully instead of failing outright.
package stegocipher

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// KeySize is the ChaCha20 key length in bytes.
const KeySize = chacha20.KeySize

// NonceSize is the ChaCha20 IETF nonce length in bytes.
const NonceSize = chacha20.NonceSize

// Key is a 32-byte ChaCha20 key.
type Key [KeySize]byte

// GenerateKey draws a fresh random key from crypto/rand.
func GenerateKey() (Key, error) {
	var k Key
	if _, err := rand.Read(k[:]); err != nil {
		return Key{}, fmt.Errorf("stegocipher: generating key: %w", err)
	}
	return k, nil
}

// String encodes the key as standard base64, suitable for writing to a
// key file or printing to a terminal.
func (k Key) String() string {
	return base64.StdEncoding.EncodeToString(k[:])
}

// ParseKey decodes a base64-encoded key previously produced by Key.String.
func ParseKey(s string) (Key, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Key{}, fmt.Errorf("stegocipher: decoding key: %w", err)
	}
	if len(raw) != KeySize {
		return Key{}, fmt.Errorf("stegocipher: key must be %d bytes, got %d", KeySize, len(raw))
	}
	var k Key
	copy(k[:], raw)
	return k, nil
}

// GenerateNonce draws a fresh random 12-byte IETF nonce.
func GenerateNonce() ([NonceSize]byte, error) {
	var n [NonceSize]byte
	if _, err := rand.Read(n[:]); err != nil {
		return n, fmt.Errorf("stegocipher: generating nonce: %w", err)
	}
	return n, nil
}

// XORKeyStream encrypts or decrypts data under key and nonce with the
// stream starting at counter 0, returning the result in a new slice; data
// itself is not modified. ChaCha20 is an involution, so the same call
// serves both directions.
func XORKeyStream(key Key, nonce [NonceSize]byte, data []byte) ([]byte, error) {
	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return nil, fmt.Errorf("stegocipher: constructing cipher: %w", err)
	}
	out := make([]byte, len(data))
	cipher.XORKeyStream(out, data)
	return out, nil
}
