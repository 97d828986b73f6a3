package domain

import (
	"slices"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"
	"go.trai.ch/zerr"
)

// Latest is the version selector sentinel meaning "newest matching version".
const Latest = "latest"

// Version is a dotted numeric version such as "1.20.1".
// Snapshots, pre-releases and other free-form strings do not parse.
type Version struct {
	v *goversion.Version
	n int
}

// ParseVersion parses a dotted numeric version string.
func ParseVersion(s string) (Version, error) {
	invalid := zerr.With(zerr.Wrap(ErrInvalidConfiguration, "version is not dotted numeric"), "version", s)
	if s == "" {
		return Version{}, zerr.With(zerr.Wrap(ErrInvalidConfiguration, "empty version"), "version", s)
	}
	// go-version tolerates a "v" prefix; game versions never carry one.
	if s[0] < '0' || s[0] > '9' {
		return Version{}, invalid
	}

	v, err := goversion.NewVersion(s)
	if err != nil || v.Prerelease() != "" || v.Metadata() != "" {
		return Version{}, invalid
	}

	return Version{v: v, n: strings.Count(s, ".") + 1}, nil
}

// IsSimpleVersion reports whether s parses as a dotted numeric version.
func IsSimpleVersion(s string) bool {
	_, err := ParseVersion(s)
	return err == nil
}

// Part returns the i-th component, or zero if the version is shorter.
func (v Version) Part(i int) int64 {
	if i < 0 || i >= v.n {
		return 0
	}
	return v.v.Segments64()[i]
}

// Len returns the number of components as written.
func (v Version) Len() int {
	return v.n
}

// Compare returns -1, 0 or +1. Missing components compare as zero, so "1.20" equals "1.20.0".
func (v Version) Compare(o Version) int {
	return v.v.Compare(o.v)
}

// Equal reports whether both versions compare equal.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// String renders the version in its dotted form without padding.
func (v Version) String() string {
	fields := make([]string, v.n)
	for i := range v.n {
		fields[i] = strconv.FormatInt(v.Part(i), 10)
	}
	return strings.Join(fields, ".")
}

// MaxVersion returns the highest parseable version in candidates.
// Unparseable candidates are ignored. ok is false when none parse.
func MaxVersion(candidates []string) (best Version, ok bool) {
	parsed := make([]Version, 0, len(candidates))
	for _, c := range candidates {
		if v, err := ParseVersion(c); err == nil {
			parsed = append(parsed, v)
		}
	}
	if len(parsed) == 0 {
		return Version{}, false
	}
	return slices.MaxFunc(parsed, Version.Compare), true
}
