package resolver_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dxbednarczyk/mup/internal/adapters/telemetry"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports/mocks"
	"github.com/dxbednarczyk/mup/internal/engine/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	provider   *mocks.MockMetadataProvider
	downloader *mocks.MockDownloader
	store      *mocks.MockLockfileStore
	logger     *mocks.MockLogger
	lf         *domain.Lockfile
	root       string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		provider:   mocks.NewMockMetadataProvider(ctrl),
		downloader: mocks.NewMockDownloader(ctrl),
		store:      mocks.NewMockLockfileStore(ctrl),
		logger:     mocks.NewMockLogger(ctrl),
		lf: domain.NewConfiguredLockfile(domain.LoaderConfig{
			Name:             domain.LoaderPaper,
			MinecraftVersion: "1.20.1",
			Version:          domain.Latest,
		}),
		root: t.TempDir(),
	}

	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.store.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(func(lf *domain.Lockfile, e domain.Entry) error {
		return lf.Add(e)
	}).AnyTimes()
	return f
}

func (f *fixture) resolver(policy domain.ResolvePolicy) *resolver.Resolver {
	return resolver.New(f.root, f.downloader, f.store, telemetry.NewNoOp(), f.logger, policy)
}

func meta(slug string, deps ...domain.DeclaredDependency) *domain.VersionMetadata {
	return &domain.VersionMetadata{
		Provider:     "modrinth",
		Slug:         slug,
		ProjectID:    "id-" + slug,
		VersionID:    "v-" + slug,
		ServerSide:   true,
		Loaders:      []string{"paper"},
		GameVersions: []string{"1.20.1"},
		Files: []domain.CandidateFile{{
			URL:      "https://cdn.example.com/" + slug + ".jar",
			Filename: slug + ".jar",
			Checksum: domain.NewChecksum(domain.AlgorithmSHA512, "ab"),
		}},
		Dependencies: deps,
	}
}

func required(id string) domain.DeclaredDependency {
	return domain.DeclaredDependency{ProjectID: id, Required: true}
}

func optional(id string) domain.DeclaredDependency {
	return domain.DeclaredDependency{ProjectID: id}
}

// expectInstall registers the provider answer and expects one download for it.
func (f *fixture) expectInstall(id string, m *domain.VersionMetadata) {
	f.provider.EXPECT().Resolve(gomock.Any(), id, gomock.Any(), f.lf.Loader).Return(m, nil)
	f.downloader.EXPECT().Download(
		gomock.Any(),
		m.Files[0].URL,
		filepath.Join(f.root, "plugins", m.Files[0].Filename),
		m.Files[0].Checksum,
	).Return(nil)
}

func slugs(entries []domain.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Slug
	}
	return out
}

func TestResolver_Add_IdempotentReAdd(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(domain.ResolvePolicy{})

	f.expectInstall("luckperms", meta("luckperms"))

	installed, err := r.Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "luckperms", Version: domain.Latest})
	require.NoError(t, err)
	assert.Equal(t, []string{"luckperms"}, slugs(installed))

	installed, err = r.Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "luckperms", Version: domain.Latest})
	require.NoError(t, err)
	assert.Empty(t, installed)

	_, err = r.Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "id-luckperms"})
	require.NoError(t, err)
	assert.Len(t, f.lf.Projects, 1)
}

func TestResolver_Add_DepthFirstOrder(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(domain.ResolvePolicy{})

	gomock.InOrder(
		f.provider.EXPECT().Resolve(gomock.Any(), "a", "latest", gomock.Any()).Return(meta("a", required("b"), required("c")), nil),
		f.provider.EXPECT().Resolve(gomock.Any(), "b", "latest", gomock.Any()).Return(meta("b", required("d")), nil),
		f.provider.EXPECT().Resolve(gomock.Any(), "d", "latest", gomock.Any()).Return(meta("d"), nil),
		f.provider.EXPECT().Resolve(gomock.Any(), "c", "latest", gomock.Any()).Return(meta("c"), nil),
	)
	f.downloader.EXPECT().Download(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)

	installed, err := r.Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d", "c"}, slugs(installed))
	assert.Equal(t, []string{"b", "c"}, f.lf.Projects[0].Requires)
}

func TestResolver_Add_Cycle(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(domain.ResolvePolicy{})

	f.expectInstall("a", meta("a", required("b")))
	f.expectInstall("b", meta("b", required("a"), required("id-a")))

	installed, err := r.Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, slugs(installed))
}

func TestResolver_Add_SharedDependencyInstalledOnce(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(domain.ResolvePolicy{})

	f.expectInstall("a", meta("a", required("b"), required("c")))
	f.expectInstall("b", meta("b", required("id-c")))
	f.expectInstall("id-c", meta("c"))

	installed, err := r.Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, slugs(installed))
}

func TestResolver_Add_OptionalDependencies(t *testing.T) {
	t.Run("skipped by default", func(t *testing.T) {
		f := newFixture(t)
		f.expectInstall("a", meta("a", optional("b")))

		installed, err := f.resolver(domain.ResolvePolicy{}).Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "a"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, slugs(installed))
		assert.Equal(t, []string{"b"}, f.lf.Projects[0].Requires, "requires records optional dependencies")
	})

	t.Run("root flag does not cascade", func(t *testing.T) {
		f := newFixture(t)
		f.expectInstall("a", meta("a", optional("b")))
		f.expectInstall("b", meta("b", optional("c")))

		installed, err := f.resolver(domain.ResolvePolicy{}).Add(t.Context(), f.lf, f.provider,
			resolver.Request{ProjectID: "a", IncludeOptional: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, slugs(installed))
	})

	t.Run("cascade when configured", func(t *testing.T) {
		f := newFixture(t)
		f.expectInstall("a", meta("a", optional("b")))
		f.expectInstall("b", meta("b", optional("c")))
		f.expectInstall("c", meta("c"))

		installed, err := f.resolver(domain.ResolvePolicy{CascadeOptional: true}).Add(t.Context(), f.lf, f.provider,
			resolver.Request{ProjectID: "a", IncludeOptional: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, slugs(installed))
	})
}

func TestResolver_Add_SkipDependencies(t *testing.T) {
	f := newFixture(t)
	f.expectInstall("a", meta("a", required("b")))

	installed, err := f.resolver(domain.ResolvePolicy{}).Add(t.Context(), f.lf, f.provider,
		resolver.Request{ProjectID: "a", SkipDependencies: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, slugs(installed))
}

func TestResolver_Add_GameVersionMismatchDoesNotDownload(t *testing.T) {
	f := newFixture(t)
	m := meta("a")
	m.GameVersions = []string{"1.19.4"}
	f.provider.EXPECT().Resolve(gomock.Any(), "a", "latest", gomock.Any()).Return(m, nil)
	f.downloader.EXPECT().Download(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.resolver(domain.ResolvePolicy{}).Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGameVersionMismatch))
	assert.Empty(t, f.lf.Projects)
}

func TestResolver_Add_ClientOnly(t *testing.T) {
	clientOnly := meta("b")
	clientOnly.ServerSide = false

	t.Run("dependency skipped by policy", func(t *testing.T) {
		f := newFixture(t)
		f.expectInstall("a", meta("a", required("b"), required("c")))
		f.provider.EXPECT().Resolve(gomock.Any(), "b", "latest", gomock.Any()).Return(clientOnly, nil)
		f.expectInstall("c", meta("c"))
		f.logger.EXPECT().Warn(gomock.Any()).Times(1)

		installed, err := f.resolver(domain.ResolvePolicy{SkipClientOnlyDependencies: true}).Add(t.Context(), f.lf, f.provider,
			resolver.Request{ProjectID: "a"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, slugs(installed))
	})

	t.Run("dependency aborts without policy", func(t *testing.T) {
		f := newFixture(t)
		f.expectInstall("a", meta("a", required("b")))
		f.provider.EXPECT().Resolve(gomock.Any(), "b", "latest", gomock.Any()).Return(clientOnly, nil)

		installed, err := f.resolver(domain.ResolvePolicy{}).Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "a"})
		assert.True(t, errors.Is(err, domain.ErrUnsupportedServerSide))
		assert.Equal(t, []string{"a"}, slugs(installed), "committed entries are not rolled back")
		assert.True(t, f.lf.Has("a"))
	})

	t.Run("root always aborts", func(t *testing.T) {
		f := newFixture(t)
		f.provider.EXPECT().Resolve(gomock.Any(), "b", "latest", gomock.Any()).Return(clientOnly, nil)

		_, err := f.resolver(domain.ResolvePolicy{SkipClientOnlyDependencies: true}).Add(t.Context(), f.lf, f.provider,
			resolver.Request{ProjectID: "b"})
		assert.True(t, errors.Is(err, domain.ErrUnsupportedServerSide))
	})
}

func TestResolver_Add_LoaderMismatchOnDependencyAborts(t *testing.T) {
	f := newFixture(t)
	bad := meta("b")
	bad.Loaders = []string{"fabric"}
	f.expectInstall("a", meta("a", required("b"), required("c")))
	f.provider.EXPECT().Resolve(gomock.Any(), "b", "latest", gomock.Any()).Return(bad, nil)

	_, err := f.resolver(domain.ResolvePolicy{SkipClientOnlyDependencies: true}).Add(t.Context(), f.lf, f.provider,
		resolver.Request{ProjectID: "a"})
	assert.True(t, errors.Is(err, domain.ErrLoaderMismatch))
	assert.False(t, f.lf.Has("c"))
}

func TestResolver_Add_NoInstallableArtifact(t *testing.T) {
	f := newFixture(t)
	m := meta("a")
	m.Files[0].Filename = "a.zip"
	f.provider.EXPECT().Resolve(gomock.Any(), "a", "latest", gomock.Any()).Return(m, nil)

	_, err := f.resolver(domain.ResolvePolicy{}).Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "a"})
	assert.True(t, errors.Is(err, domain.ErrNoInstallableArtifact))
}

func TestResolver_Add_DownloadFailureNotCommitted(t *testing.T) {
	f := newFixture(t)
	m := meta("a")
	f.provider.EXPECT().Resolve(gomock.Any(), "a", "v1", gomock.Any()).Return(m, nil)
	f.downloader.EXPECT().Download(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.ErrChecksumMismatch)

	_, err := f.resolver(domain.ResolvePolicy{}).Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "a", Version: "v1"})
	assert.True(t, errors.Is(err, domain.ErrChecksumMismatch))
	assert.Empty(t, f.lf.Projects)
}

func TestResolver_Add_NotInitialized(t *testing.T) {
	f := newFixture(t)

	_, err := f.resolver(domain.ResolvePolicy{}).Add(t.Context(), domain.NewLockfile(), f.provider, resolver.Request{ProjectID: "a"})
	assert.True(t, errors.Is(err, domain.ErrNotInitialized))
}

func TestResolver_Add_RecordsVertexPerInstall(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	tel := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)
	r := resolver.New(f.root, f.downloader, f.store, tel, f.logger, domain.ResolvePolicy{})

	m := meta("luckperms")
	downloadErr := errors.New("connection reset")
	f.provider.EXPECT().Resolve(gomock.Any(), "luckperms", gomock.Any(), f.lf.Loader).Return(m, nil)
	tel.EXPECT().Record(gomock.Any(), "luckperms").Return(t.Context(), vertex)
	vertex.EXPECT().Log(domain.LogLevelInfo, "downloading luckperms version v-luckperms")
	f.downloader.EXPECT().Download(gomock.Any(), m.Files[0].URL, gomock.Any(), m.Files[0].Checksum).Return(downloadErr)
	vertex.EXPECT().Complete(downloadErr)

	_, err := r.Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "luckperms", Version: domain.Latest})
	require.ErrorIs(t, err, downloadErr)
	assert.Empty(t, f.lf.Projects)
}

func TestResolver_Add_RejectsFileWithoutChecksum(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(domain.ResolvePolicy{})

	m := meta("luckperms")
	m.Files[0].Checksum = domain.Checksum{}
	f.provider.EXPECT().Resolve(gomock.Any(), "luckperms", gomock.Any(), f.lf.Loader).Return(m, nil)

	installed, err := r.Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "luckperms", Version: domain.Latest})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedChecksum), "got %v", err)
	assert.Empty(t, installed)
	assert.Empty(t, f.lf.Projects)
}

func TestResolver_Add_RejectsPathOwnedByAnotherEntry(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(domain.ResolvePolicy{})

	require.NoError(t, f.lf.Add(domain.Entry{
		Slug:      "a",
		ProjectID: "id-a",
		Path:      "plugins/core.jar",
		Checksum:  domain.NewChecksum(domain.AlgorithmSHA256, "aa"),
	}))

	b := meta("b")
	b.Files[0].Filename = "core.jar"
	f.provider.EXPECT().Resolve(gomock.Any(), "b", gomock.Any(), f.lf.Loader).Return(b, nil)

	_, err := r.Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "b", Version: domain.Latest})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPathConflict), "got %v", err)
	assert.Equal(t, []string{"a"}, slugs(f.lf.Projects))
}

func TestResolver_Add_RejectsMetadataWithoutIdentity(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.VersionMetadata)
	}{
		{name: "empty slug", mutate: func(m *domain.VersionMetadata) { m.Slug = "" }},
		{name: "empty project id", mutate: func(m *domain.VersionMetadata) { m.ProjectID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			r := f.resolver(domain.ResolvePolicy{})

			m := meta("luckperms")
			tt.mutate(m)
			f.provider.EXPECT().Resolve(gomock.Any(), "luckperms", gomock.Any(), f.lf.Loader).Return(m, nil)

			_, err := r.Add(t.Context(), f.lf, f.provider, resolver.Request{ProjectID: "luckperms", Version: domain.Latest})
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidMetadata), "got %v", err)
			assert.Empty(t, f.lf.Projects)
		})
	}
}
