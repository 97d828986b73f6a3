package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Algorithm is a digest algorithm tag as it appears in the lockfile.
type Algorithm string

const (
	// AlgorithmSHA1 is SHA-1, still published by some registries.
	AlgorithmSHA1 Algorithm = "sha1"
	// AlgorithmSHA256 is SHA-256, as published by Hangar and PaperMC.
	AlgorithmSHA256 Algorithm = "sha256"
	// AlgorithmSHA512 is SHA-512, as published by Modrinth.
	AlgorithmSHA512 Algorithm = "sha512"
	// AlgorithmXXH64 is the non-cryptographic XXH64 digest.
	AlgorithmXXH64 Algorithm = "xxh64"
)

const checksumSeparator = "#"

// Checksum is an algorithm tag plus a lowercase hex digest, rendered as "sha512#abcd...".
type Checksum struct {
	Algorithm Algorithm
	Digest    string
}

// NewChecksum builds a checksum, normalizing the digest to lowercase.
func NewChecksum(alg Algorithm, digest string) Checksum {
	return Checksum{
		Algorithm: Algorithm(strings.ToLower(string(alg))),
		Digest:    strings.ToLower(strings.TrimSpace(digest)),
	}
}

// ParseChecksum parses a "algorithm#digest" string.
func ParseChecksum(s string) (Checksum, error) {
	alg, digest, ok := strings.Cut(s, checksumSeparator)
	if !ok || alg == "" || digest == "" {
		return Checksum{}, zerr.With(zerr.Wrap(ErrUnsupportedChecksum, "malformed checksum"), "checksum", s)
	}
	return NewChecksum(Algorithm(alg), digest), nil
}

// IsZero reports whether the checksum is unset.
func (c Checksum) IsZero() bool {
	return c.Algorithm == "" && c.Digest == ""
}

// String renders the checksum in its tagged form.
func (c Checksum) String() string {
	if c.IsZero() {
		return ""
	}
	return string(c.Algorithm) + checksumSeparator + c.Digest
}

// MarshalText implements encoding.TextMarshaler.
func (c Checksum) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Checksum) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Checksum{}
		return nil
	}
	parsed, err := ParseChecksum(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
