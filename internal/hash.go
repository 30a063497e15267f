package internal

import (
	"crypto/sha256"
	"errors"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Supported secret hash algorithms. Every one yields a 32-byte digest.
const (
	HashSHA256     = "sha256"
	HashSHA3_256   = "sha3-256"
	HashBLAKE2b256 = "blake2b-256"
)

// ErrUnknownHashAlgorithm reports an unsupported hash algorithm name.
var ErrUnknownHashAlgorithm = errors.New("unknown hash algorithm")

// ValidHashAlgorithm reports whether alg is a supported algorithm name.
// The empty string means sha256.
func ValidHashAlgorithm(alg string) bool {
	switch alg {
	case "", HashSHA256, HashSHA3_256, HashBLAKE2b256:
		return true
	default:
		return false
	}
}

// HashSecret digests the UTF-8 bytes of secret with alg. Unknown names
// fall back to sha256; configs are validated before they reach here.
func HashSecret(alg, secret string) [32]byte {
	data := []byte(secret)
	switch alg {
	case HashSHA3_256:
		return sha3.Sum256(data)
	case HashBLAKE2b256:
		return blake2b.Sum256(data)
	default:
		return sha256.Sum256(data)
	}
}

// ConstantTimeEqual compares a and b without early exit on the first
// differing byte. Unequal lengths return false immediately; callers only
// compare fixed-size digests.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	var acc byte
	for i := range a {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}
