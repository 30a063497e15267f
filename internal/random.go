package internal

import (
	"crypto/rand"
)

// Alphabet is the symbol set used for session ids and secrets. Lowercase
// letters and digits minus the visually ambiguous l, o, 0 and 1.
const Alphabet = "abcdefghijkmnpqrstuvwxyz23456789"

// DefaultRandomBytes is the number of random bytes drawn per id or secret.
const DefaultRandomBytes = 24

// GenerateSecureRandomString returns an n-character string over [Alphabet],
// one symbol per random byte. Each byte is shifted right by three so the
// 256 byte values land evenly on the 32 symbols.
//
// A failing system RNG leaves no safe fallback, so it panics.
func GenerateSecureRandomString(n int) string {
	if n <= 0 {
		return ""
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("gosession: crypto/rand unavailable: " + err.Error())
	}

	out := make([]byte, n)
	for i, b := range buf {
		out[i] = Alphabet[b>>3]
	}
	return string(out)
}
