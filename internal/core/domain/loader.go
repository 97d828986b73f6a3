package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Loader is the server runtime family. The set of loaders is closed.
type Loader uint8

const (
	// LoaderUnknown is the zero value used by an uninitialized lockfile.
	LoaderUnknown Loader = iota
	// LoaderPaper is the Paper plugin server.
	LoaderPaper
	// LoaderFabric is the Fabric mod loader.
	LoaderFabric
	// LoaderForge is the Forge mod loader.
	LoaderForge
	// LoaderNeoForge is the NeoForge mod loader.
	LoaderNeoForge
)

// Category is the kind of add-on a loader installs.
type Category uint8

const (
	// CategoryExtension is a mod, installed into the mods directory.
	CategoryExtension Category = iota
	// CategoryPlugin is a plugin, installed into the plugins directory.
	CategoryPlugin
)

// Loaders lists every supported loader in display order.
var Loaders = []Loader{LoaderFabric, LoaderForge, LoaderPaper, LoaderNeoForge}

// ParseLoader parses a loader name. Matching is case insensitive.
func ParseLoader(name string) (Loader, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "paper":
		return LoaderPaper, nil
	case "fabric":
		return LoaderFabric, nil
	case "forge":
		return LoaderForge, nil
	case "neoforge":
		return LoaderNeoForge, nil
	default:
		err := zerr.With(zerr.Wrap(ErrInvalidConfiguration, "unknown loader"), "loader", name)
		return LoaderUnknown, zerr.With(err, "valid", LoaderNames())
	}
}

// LoaderNames returns the names of every supported loader.
func LoaderNames() []string {
	names := make([]string, len(Loaders))
	for i, l := range Loaders {
		names[i] = l.String()
	}
	return names
}

// String returns the lowercase loader name as used by providers.
func (l Loader) String() string {
	switch l {
	case LoaderPaper:
		return "paper"
	case LoaderFabric:
		return "fabric"
	case LoaderForge:
		return "forge"
	case LoaderNeoForge:
		return "neoforge"
	case LoaderUnknown:
		return ""
	}
	return ""
}

// Valid reports whether l is a recognized loader.
func (l Loader) Valid() bool {
	switch l {
	case LoaderPaper, LoaderFabric, LoaderForge, LoaderNeoForge:
		return true
	case LoaderUnknown:
		return false
	}
	return false
}

// Category returns the add-on category installed by the loader.
func (l Loader) Category() Category {
	switch l {
	case LoaderPaper:
		return CategoryPlugin
	case LoaderFabric, LoaderForge, LoaderNeoForge, LoaderUnknown:
		return CategoryExtension
	}
	return CategoryExtension
}

// InstallDir returns the directory, relative to the server root, that add-ons are installed into.
func (l Loader) InstallDir() string {
	switch l.Category() {
	case CategoryPlugin:
		return PluginsDirName
	case CategoryExtension:
		return ModsDirName
	}
	return ModsDirName
}

// MarshalText implements encoding.TextMarshaler.
func (l Loader) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// An empty name decodes to LoaderUnknown so that a placeholder lockfile round-trips.
func (l *Loader) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*l = LoaderUnknown
		return nil
	}
	parsed, err := ParseLoader(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
