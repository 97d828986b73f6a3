package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// LoaderConfig identifies the server runtime the lockfile was initialized for.
type LoaderConfig struct {
	// Name is the loader family.
	Name Loader `json:"name"`

	// MinecraftVersion is the game version, or "latest".
	MinecraftVersion string `json:"minecraft_version"`

	// Version is the loader runtime version, or "latest".
	Version string `json:"version"`
}

// DefaultLoaderConfig returns the placeholder configuration of a fresh lockfile.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		Name:             LoaderUnknown,
		MinecraftVersion: Latest,
		Version:          Latest,
	}
}

// NewLoaderConfig validates a game version and a loader name.
// The game version must be dotted numeric; "latest" is rejected here.
func NewLoaderConfig(minecraftVersion, loader string) (LoaderConfig, error) {
	if !IsSimpleVersion(minecraftVersion) {
		err := zerr.Wrap(ErrInvalidConfiguration, "minecraft version is invalid")
		return LoaderConfig{}, zerr.With(err, "minecraft_version", minecraftVersion)
	}

	l, err := ParseLoader(loader)
	if err != nil {
		return LoaderConfig{}, err
	}

	return LoaderConfig{
		Name:             l,
		MinecraftVersion: minecraftVersion,
		Version:          Latest,
	}, nil
}

// Initialized reports whether the configuration names a known loader and a dotted numeric game version.
func (c LoaderConfig) Initialized() bool {
	return IsSimpleVersion(c.MinecraftVersion) && c.Name.Valid()
}

// Entry is one installed project.
type Entry struct {
	// Slug is the human-readable identifier and the lockfile key.
	Slug string `json:"slug"`

	// ProjectID is the provider-assigned identifier.
	ProjectID string `json:"project_id"`

	// VersionID is the opaque provider version identifier.
	VersionID string `json:"version_id"`

	// Path is the installed file, relative to the server root.
	Path string `json:"path"`

	// Remote is the provider-tagged download locator.
	Remote string `json:"remote"`

	// Checksum is the digest the file was verified against.
	Checksum Checksum `json:"checksum"`

	// Requires is the dependency snapshot taken at install time.
	Requires []string `json:"requires"`
}

// Matches reports whether id is this entry's slug or project id.
func (e *Entry) Matches(id string) bool {
	return id != "" && (e.Slug == id || e.ProjectID == id)
}

// DependsOn reports whether the entry's requires set references other by slug or project id.
func (e *Entry) DependsOn(other *Entry) bool {
	return slices.ContainsFunc(e.Requires, other.Matches)
}

// Lockfile is the durable record of the server configuration and its installed projects.
type Lockfile struct {
	Loader   LoaderConfig `json:"loader"`
	Projects []Entry      `json:"projects"`
}

// NewLockfile returns an empty lockfile with the placeholder loader configuration.
func NewLockfile() *Lockfile {
	return &Lockfile{
		Loader:   DefaultLoaderConfig(),
		Projects: []Entry{},
	}
}

// NewConfiguredLockfile returns an empty lockfile for the given configuration.
func NewConfiguredLockfile(cfg LoaderConfig) *Lockfile {
	lf := NewLockfile()
	lf.Loader = cfg
	return lf
}

// IsInitialized reports whether projects may be added or removed.
func (lf *Lockfile) IsInitialized() bool {
	return lf.Loader.Initialized()
}

// Get looks an entry up by slug first, then by project id.
func (lf *Lockfile) Get(id string) (*Entry, bool) {
	if i := slices.IndexFunc(lf.Projects, func(e Entry) bool { return e.Slug == id }); i >= 0 {
		return &lf.Projects[i], true
	}
	if i := slices.IndexFunc(lf.Projects, func(e Entry) bool { return e.ProjectID != "" && e.ProjectID == id }); i >= 0 {
		return &lf.Projects[i], true
	}
	return nil, false
}

// OwnerOf returns the entry whose file is installed at path.
func (lf *Lockfile) OwnerOf(path string) (*Entry, bool) {
	if i := slices.IndexFunc(lf.Projects, func(e Entry) bool { return e.Path == path }); i >= 0 {
		return &lf.Projects[i], true
	}
	return nil, false
}

// Has reports whether an entry matches id by slug or project id.
func (lf *Lockfile) Has(id string) bool {
	_, ok := lf.Get(id)
	return ok
}

// Add appends an entry. It fails with ErrDuplicateEntry if the slug is taken.
func (lf *Lockfile) Add(e Entry) error {
	if slices.ContainsFunc(lf.Projects, func(p Entry) bool { return p.Slug == e.Slug }) {
		return zerr.With(zerr.Wrap(ErrDuplicateEntry, "cannot add project"), "slug", e.Slug)
	}
	if e.Requires == nil {
		e.Requires = []string{}
	}
	lf.Projects = append(lf.Projects, e)
	return nil
}

// PlanRemoval returns the entries removed by deleting id, target first.
// With removeOrphans, every dependency of a removed entry that no remaining entry
// still requires is removed too, transitively. Dependencies absent from the
// lockfile are ignored. The lockfile itself is not modified.
func (lf *Lockfile) PlanRemoval(id string, removeOrphans bool) ([]Entry, error) {
	target, ok := lf.Get(id)
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrNotFound, "project does not exist in the lockfile"), "project", id)
	}

	removed := map[string]bool{target.Slug: true}
	plan := []Entry{*target}
	if !removeOrphans {
		return plan, nil
	}

	queue := slices.Clone(target.Requires)
	for len(queue) > 0 {
		dep := queue[0]
		queue = queue[1:]

		entry, ok := lf.Get(dep)
		if !ok || removed[entry.Slug] || lf.requiredByRemaining(entry, removed) {
			continue
		}

		removed[entry.Slug] = true
		plan = append(plan, *entry)
		queue = append(queue, entry.Requires...)
	}

	return plan, nil
}

func (lf *Lockfile) requiredByRemaining(dep *Entry, removed map[string]bool) bool {
	for i := range lf.Projects {
		p := &lf.Projects[i]
		if removed[p.Slug] {
			continue
		}
		if p.DependsOn(dep) {
			return true
		}
	}
	return false
}

// Delete drops the entries with the given slugs.
func (lf *Lockfile) Delete(slugs ...string) {
	lf.Projects = slices.DeleteFunc(lf.Projects, func(e Entry) bool {
		return slices.Contains(slugs, e.Slug)
	})
}

// Normalize replaces nil collections with empty ones so the lockfile serializes stably.
func (lf *Lockfile) Normalize() {
	if lf.Projects == nil {
		lf.Projects = []Entry{}
	}
	for i := range lf.Projects {
		if lf.Projects[i].Requires == nil {
			lf.Projects[i].Requires = []string{}
		}
	}
}
