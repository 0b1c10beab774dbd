// Package objects holds the primitives shared by every stored object:
// content fingerprints, object types and payload codecs.
package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
)

const pkgName = "objects"

// Fingerprint is the 40-character lowercase hex SHA-1 of an object's payload.
// The zero value "" means "no object".
type Fingerprint string

const (
	// FingerprintLength is the length of a full fingerprint in hex.
	FingerprintLength = 40
	// ShortLength is the default abbreviation length.
	ShortLength = 7

	// EmptyFingerprint is the SHA-1 of zero bytes.
	EmptyFingerprint Fingerprint = "da39a3ee5e6b4b0d3255bfef95601890afd80709"
)

// ComputeFingerprint hashes data.
func ComputeFingerprint(data []byte) Fingerprint {
	sum := sha1.Sum(data)
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// ParseFingerprint validates s as a full fingerprint. Uppercase input is
// rejected rather than folded so stored text round-trips exactly.
func ParseFingerprint(s string) (Fingerprint, error) {
	f := Fingerprint(s)
	if e := f.Validate(); e != nil {
		return "", e
	}
	return f, nil
}

// ParseOptionalFingerprint accepts "" as the zero fingerprint.
func ParseOptionalFingerprint(s string) (Fingerprint, error) {
	if s == "" {
		return "", nil
	}
	return ParseFingerprint(s)
}

// String returns the fingerprint as a string
func (f Fingerprint) String() string {
	return string(f)
}

// IsZero reports whether f names no object.
func (f Fingerprint) IsZero() bool {
	return f == ""
}

// Validate checks length and alphabet.
func (f Fingerprint) Validate() error {
	if len(f) != FingerprintLength {
		return err.New(pkgName, err.CodeMalformedRecord, "Validate",
			fmt.Sprintf("fingerprint must be %d characters long, got %d", FingerprintLength, len(f)), nil)
	}
	for _, c := range f {
		if !isLowerHex(c) {
			return err.New(pkgName, err.CodeMalformedRecord, "Validate",
				fmt.Sprintf("fingerprint must contain only lowercase hex characters, found '%c'", c), nil)
		}
	}
	return nil
}

// Short returns the abbreviated fingerprint.
func (f Fingerprint) Short() string {
	if len(f) >= ShortLength {
		return string(f[:ShortLength])
	}
	return string(f)
}

func isLowerHex(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
