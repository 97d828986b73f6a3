// Package app implements the application layer for mup.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"github.com/dxbednarczyk/mup/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultProvider is used when no provider is named.
const DefaultProvider = "modrinth"

const eulaContents = "# Signed by mup\neula=true"

// LoaderRegistry looks up server fetchers by loader name.
type LoaderRegistry interface {
	Get(name string) (ports.ServerFetcher, error)
}

// verboser is implemented by loggers whose level can be lowered at runtime.
type verboser interface {
	SetVerbose(enable bool)
}

// App represents the main application logic.
type App struct {
	root              string
	store             ports.LockfileStore
	resolver          *resolver.Resolver
	providers         map[string]ports.MetadataProvider
	loaders           LoaderRegistry
	history           ports.HistoryStore
	verifier          ports.Verifier
	logger            ports.Logger
	verifyConcurrency int
	now               func() time.Time
}

// New creates a new App instance operating on the server directory root.
func New(
	root string,
	store ports.LockfileStore,
	res *resolver.Resolver,
	providers []ports.MetadataProvider,
	loaders LoaderRegistry,
	history ports.HistoryStore,
	verifier ports.Verifier,
	log ports.Logger,
	verifyConcurrency int,
) *App {
	byName := make(map[string]ports.MetadataProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}

	return &App{
		root:              root,
		store:             store,
		resolver:          res,
		providers:         byName,
		loaders:           loaders,
		history:           history,
		verifier:          verifier,
		logger:            log,
		verifyConcurrency: max(verifyConcurrency, 1),
		now:               time.Now,
	}
}

// WithClock replaces the clock used to timestamp history records.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// SetVerbose enables debug output when the logger supports it.
func (a *App) SetVerbose(enable bool) {
	if v, ok := a.logger.(verboser); ok {
		v.SetVerbose(enable)
	}
}

// Close releases the history database.
func (a *App) Close() error {
	return a.history.Close()
}

// InitServer overwrites the lockfile with an empty one configured for the loader and game version.
func (a *App) InitServer(minecraftVersion, loader string) (*domain.Lockfile, error) {
	lf, err := a.store.Configure(minecraftVersion, loader)
	a.record(domain.OperationInit, fmt.Sprintf("%s %s", loader, minecraftVersion), nil, err)
	if err != nil {
		return nil, err
	}

	a.logger.Info(fmt.Sprintf("initialized %s server for Minecraft %s", lf.Loader.Name, lf.Loader.MinecraftVersion))
	return lf, nil
}

// SignEULA writes an accepted eula.txt into the server directory.
func (a *App) SignEULA() error {
	path := filepath.Join(a.root, domain.EULAFileName)
	if err := os.WriteFile(path, []byte(eulaContents), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrEULAWriteFailed, err.Error()), "path", path)
	}

	a.logger.Info("signed the Minecraft EULA")
	return nil
}

// AddOptions configures AddProject.
type AddOptions struct {
	// Version is an opaque provider version id or "latest".
	Version string

	// Provider names the metadata provider. Empty means DefaultProvider.
	Provider string

	// IncludeOptional also installs the root's optional dependencies.
	IncludeOptional bool

	// SkipDependencies installs the root project only.
	SkipDependencies bool
}

// AddProject installs a project and its dependencies, returning the entries that were committed.
func (a *App) AddProject(ctx context.Context, id string, opts AddOptions) ([]domain.Entry, error) {
	entries, err := a.addProject(ctx, id, opts)
	a.record(domain.OperationAdd, id, entries, err)
	return entries, err
}

func (a *App) addProject(ctx context.Context, id string, opts AddOptions) ([]domain.Entry, error) {
	lf, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	if !lf.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}

	provider, err := a.provider(opts.Provider)
	if err != nil {
		return nil, err
	}

	entries, err := a.resolver.Add(ctx, lf, provider, resolver.Request{
		ProjectID:        id,
		Version:          opts.Version,
		IncludeOptional:  opts.IncludeOptional,
		SkipDependencies: opts.SkipDependencies,
	})
	if err != nil {
		return entries, zerr.With(err, "provider", provider.Name())
	}

	if len(entries) == 0 {
		a.logger.Info(fmt.Sprintf("%s is already installed", id))
	}
	return entries, nil
}

func (a *App) provider(name string) (ports.MetadataProvider, error) {
	if name == "" {
		name = DefaultProvider
	}
	p, ok := a.providers[strings.ToLower(name)]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownProvider, "provider is not registered"), "provider", name)
	}
	return p, nil
}

// RemoveOptions configures RemoveProject.
type RemoveOptions struct {
	// KeepFile leaves the installed files on disk.
	KeepFile bool

	// RemoveOrphans also removes dependencies that nothing else requires.
	RemoveOrphans bool
}

// RemoveProject deletes a project from the lockfile, returning the removed entries.
func (a *App) RemoveProject(id string, opts RemoveOptions) ([]domain.Entry, error) {
	removed, err := a.removeProject(id, opts)
	a.record(domain.OperationRemove, id, removed, err)
	return removed, err
}

func (a *App) removeProject(id string, opts RemoveOptions) ([]domain.Entry, error) {
	lf, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	if !lf.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}

	removed, err := a.store.Remove(lf, id, opts.KeepFile, opts.RemoveOrphans)
	for _, e := range removed {
		a.logger.Info(fmt.Sprintf("removed %s", e.Slug))
	}
	return removed, err
}

// ListProjects returns the current lockfile.
func (a *App) ListProjects() (*domain.Lockfile, error) {
	return a.store.Load()
}

// VerifyProjects re-hashes every installed file. Results are in lockfile order.
// It fails with ErrVerificationFailed when any entry does not verify.
func (a *App) VerifyProjects(ctx context.Context) ([]domain.VerifyResult, error) {
	lf, err := a.store.Load()
	if err != nil {
		return nil, err
	}

	results := make([]domain.VerifyResult, len(lf.Projects))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.verifyConcurrency)

	for i, entry := range lf.Projects {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.verifier.Verify(a.root, entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var failed []string
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r.Slug)
		}
	}
	if len(failed) > 0 {
		err := zerr.With(zerr.Wrap(domain.ErrVerificationFailed, "some files did not verify"), "projects", failed)
		return results, err
	}

	return results, nil
}

// History returns up to limit records, newest first.
func (a *App) History(limit int) ([]domain.HistoryRecord, error) {
	return a.history.List(limit)
}

// FetchLoader downloads the server runtime for the named loader into the server directory.
// Empty versions mean "latest".
func (a *App) FetchLoader(ctx context.Context, name, minecraftVersion, version string) (string, error) {
	fetcher, err := a.loaders.Get(name)
	if err != nil {
		return "", err
	}

	if minecraftVersion == "" {
		minecraftVersion = domain.Latest
	}
	if version == "" {
		version = domain.Latest
	}

	path, err := fetcher.Fetch(ctx, a.root, minecraftVersion, version)
	if err != nil {
		return "", zerr.With(err, "loader", name)
	}

	a.logger.Info(fmt.Sprintf("downloaded %s", filepath.Base(path)))
	return path, nil
}

// record stores a history entry. Failures are logged and never returned.
func (a *App) record(op domain.Operation, target string, entries []domain.Entry, opErr error) {
	rec := domain.HistoryRecord{
		Timestamp: a.now(),
		Operation: op,
		Target:    target,
		Slugs:     make([]string, 0, len(entries)),
		Success:   opErr == nil,
	}
	for _, e := range entries {
		rec.Slugs = append(rec.Slugs, e.Slug)
	}
	if opErr != nil {
		rec.Error = opErr.Error()
	}

	if err := a.history.Record(rec); err != nil {
		a.logger.Warn(fmt.Sprintf("could not record history: %v", err))
	}
}
