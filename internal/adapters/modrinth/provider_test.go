package modrinth_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dxbednarczyk/mup/internal/adapters/httpclient"
	"github.com/dxbednarczyk/mup/internal/adapters/modrinth"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const luckpermsProject = `{
  "id": "Vebnzrzj",
  "slug": "luckperms",
  "server_side": "required",
  "versions": ["OLD1", "NEW2"]
}`

const luckpermsVersions = `[
  {
    "id": "SNAP",
    "project_id": "Vebnzrzj",
    "game_versions": ["1.20.2"],
    "loaders": ["paper"],
    "files": [],
    "dependencies": []
  },
  {
    "id": "NEW2",
    "project_id": "Vebnzrzj",
    "game_versions": ["1.20", "1.20.1"],
    "loaders": ["paper", "spigot"],
    "files": [
      {"url": "https://cdn.modrinth.com/LuckPerms-sources.zip", "filename": "LuckPerms-sources.zip", "hashes": {"sha512": "00"}},
      {"url": "https://cdn.modrinth.com/LuckPerms-Bukkit-5.4.102.jar", "filename": "LuckPerms-Bukkit-5.4.102.jar", "hashes": {"sha512": "ABCDEF", "sha1": "123"}}
    ],
    "dependencies": [
      {"project_id": "vault", "dependency_type": "required"},
      {"project_id": "placeholder", "dependency_type": "optional"},
      {"project_id": "essentials", "dependency_type": "incompatible"},
      {"project_id": "shaded", "dependency_type": "embedded"},
      {"project_id": null, "version_id": "abc", "dependency_type": "required"}
    ]
  }
]`

func newServer(t *testing.T, handler http.HandlerFunc) *modrinth.Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return modrinth.New(httpclient.NewWithHTTPClient("mup-test", srv.Client()), srv.URL)
}

func paper(mc string) domain.LoaderConfig {
	return domain.LoaderConfig{Name: domain.LoaderPaper, MinecraftVersion: mc, Version: domain.Latest}
}

func TestProvider_Resolve_Latest(t *testing.T) {
	var gotQuery string
	p := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/project/luckperms":
			_, _ = fmt.Fprint(w, luckpermsProject)
		case "/project/luckperms/version":
			gotQuery = r.URL.RawQuery
			assert.Equal(t, `["1.20.1"]`, r.URL.Query().Get("game_versions"))
			assert.Equal(t, `["paper"]`, r.URL.Query().Get("loaders"))
			_, _ = fmt.Fprint(w, luckpermsVersions)
		default:
			http.NotFound(w, r)
		}
	})

	m, err := p.Resolve(t.Context(), "luckperms", domain.Latest, paper("1.20.1"))
	require.NoError(t, err)
	require.NotEmpty(t, gotQuery)

	assert.Equal(t, "modrinth", m.Provider)
	assert.Equal(t, "luckperms", m.Slug)
	assert.Equal(t, "Vebnzrzj", m.ProjectID)
	assert.Equal(t, "NEW2", m.VersionID, "first version listing the game version wins")
	assert.True(t, m.ServerSide)
	assert.Equal(t, []string{"paper", "spigot"}, m.Loaders)

	file, err := m.SelectFile()
	require.NoError(t, err)
	assert.Equal(t, "LuckPerms-Bukkit-5.4.102.jar", file.Filename)
	assert.Equal(t, "sha512#abcdef", file.Checksum.String())

	assert.Equal(t, []domain.DeclaredDependency{
		{ProjectID: "vault", Required: true},
		{ProjectID: "placeholder"},
	}, m.Dependencies)
	assert.Equal(t, "modrinth#https://cdn.modrinth.com/LuckPerms-Bukkit-5.4.102.jar", m.RemoteSource(file))
}

func TestProvider_Resolve_NoMatchingVersion(t *testing.T) {
	p := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/project/luckperms":
			_, _ = fmt.Fprint(w, luckpermsProject)
		case "/project/luckperms/version":
			_, _ = fmt.Fprint(w, luckpermsVersions)
		}
	})

	_, err := p.Resolve(t.Context(), "luckperms", domain.Latest, paper("1.8.8"))
	assert.True(t, errors.Is(err, domain.ErrNoMatchingVersion), "got %v", err)
}

func TestProvider_Resolve_Specific(t *testing.T) {
	p := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/project/luckperms":
			_, _ = fmt.Fprint(w, luckpermsProject)
		case "/version/OLD1":
			_, _ = fmt.Fprint(w, `{"id":"OLD1","project_id":"Vebnzrzj","game_versions":["1.19.4"],"loaders":["paper"],
				"files":[{"url":"https://cdn.modrinth.com/old.jar","filename":"old.jar","hashes":{"sha512":"ff"}}]}`)
		case "/version/NEW2":
			_, _ = fmt.Fprint(w, `{"id":"NEW2","project_id":"someone-else"}`)
		default:
			http.NotFound(w, r)
		}
	})

	m, err := p.Resolve(t.Context(), "luckperms", "OLD1", paper("1.20.1"))
	require.NoError(t, err)
	assert.Equal(t, "OLD1", m.VersionID)
	assert.Equal(t, []string{"1.19.4"}, m.GameVersions)
	assert.Empty(t, m.Dependencies)

	_, err = p.Resolve(t.Context(), "luckperms", "NEW2", paper("1.20.1"))
	assert.True(t, errors.Is(err, domain.ErrNoMatchingVersion), "version of another project: %v", err)

	_, err = p.Resolve(t.Context(), "luckperms", "GONE", paper("1.20.1"))
	assert.True(t, errors.Is(err, domain.ErrNoMatchingVersion), "unknown version: %v", err)
}

func TestProvider_Resolve_ClientSideOnly(t *testing.T) {
	p := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/project/sodium":
			_, _ = fmt.Fprint(w, `{"id":"AANobbMI","slug":"sodium","server_side":"unsupported","versions":["S1"]}`)
		case "/project/sodium/version":
			_, _ = fmt.Fprint(w, `[{"id":"S1","project_id":"AANobbMI","game_versions":["1.20.1"],"loaders":["fabric"]}]`)
		}
	})

	m, err := p.Resolve(t.Context(), "sodium", domain.Latest, domain.LoaderConfig{
		Name: domain.LoaderFabric, MinecraftVersion: "1.20.1", Version: domain.Latest,
	})
	require.NoError(t, err)
	assert.False(t, m.ServerSide)
}

func TestProvider_Resolve_UnknownProject(t *testing.T) {
	p := newServer(t, http.NotFound)

	_, err := p.Resolve(t.Context(), "does-not-exist", domain.Latest, paper("1.20.1"))
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
}

func TestProvider_Name(t *testing.T) {
	assert.Equal(t, "modrinth", modrinth.New(nil, "").Name())
}
