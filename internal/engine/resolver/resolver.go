// Package resolver installs projects together with their transitive dependencies.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

// Request describes a root project to install.
type Request struct {
	// ProjectID is the slug or provider id of the root project.
	ProjectID string

	// Version is an opaque provider version id or "latest".
	Version string

	// IncludeOptional also installs the root's optional dependencies.
	IncludeOptional bool

	// SkipDependencies installs the root project only.
	SkipDependencies bool
}

// Resolver discovers, downloads and commits projects depth first.
type Resolver struct {
	root       string
	downloader ports.Downloader
	store      ports.LockfileStore
	telemetry  ports.Telemetry
	logger     ports.Logger
	policy     domain.ResolvePolicy
}

// New creates a Resolver that installs files below root.
func New(
	root string,
	downloader ports.Downloader,
	store ports.LockfileStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
	policy domain.ResolvePolicy,
) *Resolver {
	return &Resolver{
		root:       root,
		downloader: downloader,
		store:      store,
		telemetry:  telemetry,
		logger:     logger,
		policy:     policy,
	}
}

// pending is one project waiting on the work stack.
type pending struct {
	id              string
	selector        string
	includeOptional bool
	skipDeps        bool
	isRoot          bool
}

// Add installs the requested project and, unless skipped, its dependencies.
// Projects already in the lockfile are skipped, so re-running Add is a no-op.
// The first failure aborts the whole operation; entries committed before it are kept.
// It returns the entries committed by this call in install order.
func (r *Resolver) Add(
	ctx context.Context,
	lf *domain.Lockfile,
	provider ports.MetadataProvider,
	req Request,
) ([]domain.Entry, error) {
	if !lf.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}

	selector := req.Version
	if selector == "" {
		selector = domain.Latest
	}

	stack := []pending{{
		id:              req.ProjectID,
		selector:        selector,
		includeOptional: req.IncludeOptional,
		skipDeps:        req.SkipDependencies,
		isRoot:          true,
	}}
	seen := make(map[string]bool)
	var installed []domain.Entry

	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[next.id] || lf.Has(next.id) {
			r.logger.Debug(fmt.Sprintf("%s is already installed", next.id))
			continue
		}
		seen[next.id] = true

		meta, err := provider.Resolve(ctx, next.id, next.selector, lf.Loader)
		if err != nil {
			return installed, err
		}

		if meta.Slug == "" || meta.ProjectID == "" {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidMetadata, "missing slug or project id"), "project", next.id)
			return installed, zerr.With(err, "version", meta.VersionID)
		}

		if err := domain.CheckCompatibility(lf.Loader, meta); err != nil {
			if !next.isRoot && r.policy.SkipClientOnlyDependencies && errors.Is(err, domain.ErrUnsupportedServerSide) {
				r.logger.Warn(fmt.Sprintf("skipping %s: dependency is client side only", meta.Slug))
				continue
			}
			return installed, err
		}

		if lf.Has(meta.Slug) || lf.Has(meta.ProjectID) {
			r.logger.Debug(fmt.Sprintf("%s is already installed", meta.Slug))
			continue
		}
		seen[meta.Slug] = true
		seen[meta.ProjectID] = true

		entry, err := r.install(ctx, lf, meta)
		if err != nil {
			return installed, err
		}
		installed = append(installed, entry)

		if next.skipDeps {
			continue
		}

		// Pushed in reverse so the first declared dependency is installed first.
		for i := len(meta.Dependencies) - 1; i >= 0; i-- {
			dep := meta.Dependencies[i]
			if dep.ProjectID == "" || (!dep.Required && !next.includeOptional) {
				continue
			}
			stack = append(stack, pending{
				id:              dep.ProjectID,
				selector:        domain.Latest,
				includeOptional: r.policy.CascadeOptional && next.includeOptional,
			})
		}
	}

	return installed, nil
}

// install downloads the selected file and commits the entry.
func (r *Resolver) install(ctx context.Context, lf *domain.Lockfile, meta *domain.VersionMetadata) (domain.Entry, error) {
	file, err := meta.SelectFile()
	if err != nil {
		return domain.Entry{}, err
	}
	entry := meta.NewEntry(file, lf.Loader.Name)
	if owner, ok := lf.OwnerOf(entry.Path); ok {
		err := zerr.With(zerr.Wrap(domain.ErrPathConflict, "refusing to overwrite installed file"), "project", meta.Slug)
		err = zerr.With(err, "path", entry.Path)
		return domain.Entry{}, zerr.With(err, "owner", owner.Slug)
	}

	ctx, vertex := r.telemetry.Record(ctx, meta.Slug)
	dest := filepath.Join(r.root, filepath.FromSlash(entry.Path))

	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("downloading %s version %s", meta.Slug, meta.VersionID))
	if err := r.downloader.Download(ctx, file.URL, dest, file.Checksum); err != nil {
		vertex.Complete(err)
		return domain.Entry{}, err
	}

	if err := r.store.Add(lf, entry); err != nil {
		vertex.Complete(err)
		return domain.Entry{}, err
	}
	vertex.Complete(nil)

	r.logger.Info(fmt.Sprintf("installed %s (%s) to %s", meta.Slug, meta.VersionID, entry.Path))
	return entry, nil
}
