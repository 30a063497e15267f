package internal

import (
	"crypto/sha256"
	"testing"
)

func TestConstantTimeEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want bool
	}{
		{"both empty", []byte{}, []byte{}, true},
		{"nil and empty", nil, []byte{}, true},
		{"equal", []byte("abc"), []byte("abc"), true},
		{"last byte differs", []byte("abc"), []byte("abd"), false},
		{"first byte differs", []byte("xbc"), []byte("abc"), false},
		{"length mismatch", []byte("abc"), []byte("ab"), false},
		{"single bit", []byte{0x00}, []byte{0x01}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ConstantTimeEqual(tc.a, tc.b); got != tc.want {
				t.Fatalf("ConstantTimeEqual(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			if got := ConstantTimeEqual(tc.b, tc.a); got != tc.want {
				t.Fatalf("ConstantTimeEqual not symmetric for %v, %v", tc.a, tc.b)
			}
		})
	}
}

func TestHashSecretDefaultIsSHA256(t *testing.T) {
	want := sha256.Sum256([]byte("secret"))
	if got := HashSecret("", "secret"); got != want {
		t.Fatalf("empty alg should hash with sha256")
	}
	if got := HashSecret(HashSHA256, "secret"); got != want {
		t.Fatalf("sha256 digest mismatch")
	}
}

func TestHashSecretAlgorithmsDiffer(t *testing.T) {
	a := HashSecret(HashSHA256, "secret")
	b := HashSecret(HashSHA3_256, "secret")
	c := HashSecret(HashBLAKE2b256, "secret")
	if a == b || a == c || b == c {
		t.Fatalf("expected distinct digests per algorithm")
	}
	if HashSecret(HashSHA3_256, "secret") != b {
		t.Fatalf("sha3-256 not deterministic")
	}
	if HashSecret(HashBLAKE2b256, "secret") != c {
		t.Fatalf("blake2b-256 not deterministic")
	}
}

func TestValidHashAlgorithm(t *testing.T) {
	for _, alg := range []string{"", HashSHA256, HashSHA3_256, HashBLAKE2b256} {
		if !ValidHashAlgorithm(alg) {
			t.Fatalf("expected %q valid", alg)
		}
	}
	for _, alg := range []string{"md5", "SHA256", "sha512"} {
		if ValidHashAlgorithm(alg) {
			t.Fatalf("expected %q invalid", alg)
		}
	}
}
