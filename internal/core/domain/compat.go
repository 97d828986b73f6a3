package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// CheckCompatibility validates that a candidate version can be installed on the configured server.
// It performs no I/O.
func CheckCompatibility(cfg LoaderConfig, m *VersionMetadata) error {
	if !m.ServerSide {
		return zerr.With(zerr.Wrap(ErrUnsupportedServerSide, "client side only"), "project", m.Slug)
	}

	loader := cfg.Name.String()
	if !slices.ContainsFunc(m.Loaders, func(l string) bool { return strings.EqualFold(l, loader) }) {
		err := zerr.With(zerr.Wrap(ErrLoaderMismatch, "incompatible version"), "project", m.Slug)
		err = zerr.With(err, "version", m.VersionID)
		return zerr.With(err, "loader", loader)
	}

	if cfg.MinecraftVersion != Latest && !supportsGameVersion(m.GameVersions, cfg.MinecraftVersion) {
		err := zerr.With(zerr.Wrap(ErrGameVersionMismatch, "incompatible version"), "project", m.Slug)
		err = zerr.With(err, "version", m.VersionID)
		return zerr.With(err, "minecraft_version", cfg.MinecraftVersion)
	}

	return nil
}

// supportsGameVersion matches exactly, then falls back to numeric equality so "1.20" matches "1.20.0".
func supportsGameVersion(supported []string, want string) bool {
	if slices.Contains(supported, want) {
		return true
	}
	wanted, err := ParseVersion(want)
	if err != nil {
		return false
	}
	return slices.ContainsFunc(supported, func(s string) bool {
		v, err := ParseVersion(s)
		return err == nil && v.Equal(wanted)
	})
}
