package domain

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// InstallableExtensions lists the file extensions that can be installed, in preference order.
var InstallableExtensions = []string{".jar"}

// DeclaredDependency is a dependency as declared by a provider for one version.
type DeclaredDependency struct {
	// ProjectID identifies the dependency in the same provider.
	ProjectID string

	// Required is false for optional dependencies.
	Required bool
}

// CandidateFile is one downloadable file of a version.
type CandidateFile struct {
	URL      string
	Filename string
	Checksum Checksum
}

// VersionMetadata is the provider's answer for a project and a version selector.
// It is untrusted input and must pass CheckCompatibility before being installed.
type VersionMetadata struct {
	// Provider is the registry name used to tag remote sources (e.g., "modrinth").
	Provider string

	// Slug is the human-readable project identifier.
	Slug string

	// ProjectID is the provider-assigned stable identifier.
	ProjectID string

	// VersionID is the provider-assigned, opaque version identifier.
	VersionID string

	// ServerSide is false when the project declares it is client-side only.
	ServerSide bool

	// Loaders lists the loader names the version supports.
	Loaders []string

	// GameVersions lists the Minecraft versions the version supports.
	GameVersions []string

	// Files lists the candidate files in provider order.
	Files []CandidateFile

	// Dependencies lists the declared dependencies in provider order.
	Dependencies []DeclaredDependency
}

// SelectFile picks the first candidate whose name has an installable extension
// and that carries a checksum. Provider metadata is untrusted, so an installable
// file without a digest is never selected.
func (m *VersionMetadata) SelectFile() (CandidateFile, error) {
	unverified := false
	for _, ext := range InstallableExtensions {
		for _, f := range m.Files {
			if !strings.HasSuffix(strings.ToLower(f.Filename), ext) {
				continue
			}
			if f.Checksum.IsZero() {
				unverified = true
				continue
			}
			return f, nil
		}
	}
	if unverified {
		err := zerr.With(zerr.Wrap(ErrUnsupportedChecksum, "no .jar file with a checksum"), "project", m.Slug)
		return CandidateFile{}, zerr.With(err, "version", m.VersionID)
	}
	err := zerr.With(zerr.Wrap(ErrNoInstallableArtifact, "no .jar file"), "project", m.Slug)
	return CandidateFile{}, zerr.With(err, "version", m.VersionID)
}

// RemoteSource tags a file URL with the provider name, e.g. "modrinth#https://...".
func (m *VersionMetadata) RemoteSource(f CandidateFile) string {
	if m.Provider == "" {
		return f.URL
	}
	return m.Provider + checksumSeparator + f.URL
}

// DependencyIDs returns the identifiers of every declared dependency, required or not.
func (m *VersionMetadata) DependencyIDs() []string {
	ids := make([]string, 0, len(m.Dependencies))
	for _, d := range m.Dependencies {
		if d.ProjectID == "" || slices.Contains(ids, d.ProjectID) {
			continue
		}
		ids = append(ids, d.ProjectID)
	}
	return ids
}

// NewEntry builds the lockfile entry for an installed file of this version.
func (m *VersionMetadata) NewEntry(f CandidateFile, loader Loader) Entry {
	return Entry{
		Slug:      m.Slug,
		ProjectID: m.ProjectID,
		VersionID: m.VersionID,
		Path:      filepath.ToSlash(filepath.Join(loader.InstallDir(), filepath.Base(f.Filename))),
		Remote:    m.RemoteSource(f),
		Checksum:  f.Checksum,
		Requires:  m.DependencyIDs(),
	}
}
