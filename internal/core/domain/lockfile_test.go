package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(slug string, requires ...string) domain.Entry {
	return domain.Entry{
		Slug:      slug,
		ProjectID: "id-" + slug,
		VersionID: "v-" + slug,
		Path:      "plugins/" + slug + ".jar",
		Remote:    "modrinth#https://cdn.example.com/" + slug + ".jar",
		Checksum:  domain.NewChecksum(domain.AlgorithmSHA512, "00"),
		Requires:  requires,
	}
}

func slugs(entries []domain.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Slug
	}
	return out
}

func TestNewLoaderConfig(t *testing.T) {
	cfg, err := domain.NewLoaderConfig("1.20.1", "paper")
	require.NoError(t, err)
	assert.Equal(t, domain.LoaderPaper, cfg.Name)
	assert.Equal(t, "1.20.1", cfg.MinecraftVersion)
	assert.Equal(t, domain.Latest, cfg.Version)
	assert.True(t, cfg.Initialized())

	_, err = domain.NewLoaderConfig("latest", "paper")
	assert.True(t, errors.Is(err, domain.ErrInvalidConfiguration))

	_, err = domain.NewLoaderConfig("1.20.1", "bukkit")
	assert.True(t, errors.Is(err, domain.ErrInvalidConfiguration))
}

func TestLockfile_IsInitialized(t *testing.T) {
	lf := domain.NewLockfile()
	assert.False(t, lf.IsInitialized())

	lf.Loader.Name = domain.LoaderFabric
	assert.False(t, lf.IsInitialized(), "latest is not a concrete game version")

	lf.Loader.MinecraftVersion = "1.21"
	assert.True(t, lf.IsInitialized())
}

func TestLockfile_Get(t *testing.T) {
	lf := domain.NewLockfile()
	require.NoError(t, lf.Add(entry("luckperms")))

	e, ok := lf.Get("luckperms")
	require.True(t, ok)
	assert.Equal(t, "id-luckperms", e.ProjectID)

	e, ok = lf.Get("id-luckperms")
	require.True(t, ok)
	assert.Equal(t, "luckperms", e.Slug)

	_, ok = lf.Get("vault")
	assert.False(t, ok)
	assert.False(t, lf.Has(""))
}

func TestLockfile_OwnerOf(t *testing.T) {
	lf := domain.NewLockfile()
	require.NoError(t, lf.Add(entry("luckperms")))

	owner, ok := lf.OwnerOf("plugins/luckperms.jar")
	require.True(t, ok)
	assert.Equal(t, "luckperms", owner.Slug)

	_, ok = lf.OwnerOf("plugins/vault.jar")
	assert.False(t, ok)
}

func TestLockfile_Add_Duplicate(t *testing.T) {
	lf := domain.NewLockfile()
	require.NoError(t, lf.Add(entry("a")))

	err := lf.Add(entry("a"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateEntry))
	assert.Len(t, lf.Projects, 1)
}

func TestLockfile_Add_NeverDuplicatesSlugs(t *testing.T) {
	lf := domain.NewLockfile()
	sequence := []string{"a", "b", "a", "c", "b", "b", "d", "a"}
	for _, s := range sequence {
		_ = lf.Add(entry(s))
	}

	seen := map[string]int{}
	for _, e := range lf.Projects {
		seen[e.Slug]++
	}
	for slug, n := range seen {
		assert.Equal(t, 1, n, "slug %s", slug)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, slugs(lf.Projects))
}

func TestLockfile_PlanRemoval(t *testing.T) {
	tests := []struct {
		name          string
		entries       []domain.Entry
		target        string
		removeOrphans bool
		want          []string
	}{
		{
			name:    "target only",
			entries: []domain.Entry{entry("a", "b"), entry("b")},
			target:  "a",
			want:    []string{"a"},
		},
		{
			name:          "orphan removed",
			entries:       []domain.Entry{entry("a", "b"), entry("b")},
			target:        "a",
			removeOrphans: true,
			want:          []string{"a", "b"},
		},
		{
			name:          "shared dependency kept",
			entries:       []domain.Entry{entry("a", "b"), entry("b"), entry("c", "b")},
			target:        "a",
			removeOrphans: true,
			want:          []string{"a"},
		},
		{
			name:          "dependency referenced by project id",
			entries:       []domain.Entry{entry("a", "id-b"), entry("b"), entry("c", "id-b")},
			target:        "a",
			removeOrphans: true,
			want:          []string{"a"},
		},
		{
			name:          "transitive orphans",
			entries:       []domain.Entry{entry("a", "b"), entry("b", "c"), entry("c")},
			target:        "a",
			removeOrphans: true,
			want:          []string{"a", "b", "c"},
		},
		{
			name:          "absent dependency ignored",
			entries:       []domain.Entry{entry("a", "declined", "b"), entry("b")},
			target:        "a",
			removeOrphans: true,
			want:          []string{"a", "b"},
		},
		{
			name:          "cycle",
			entries:       []domain.Entry{entry("a", "b"), entry("b", "a")},
			target:        "a",
			removeOrphans: true,
			want:          []string{"a", "b"},
		},
		{
			name:          "target by project id",
			entries:       []domain.Entry{entry("a", "b"), entry("b")},
			target:        "id-a",
			removeOrphans: true,
			want:          []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf := domain.NewLockfile()
			for _, e := range tt.entries {
				require.NoError(t, lf.Add(e))
			}

			plan, err := lf.PlanRemoval(tt.target, tt.removeOrphans)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slugs(plan))
			assert.Len(t, lf.Projects, len(tt.entries), "planning must not mutate")
		})
	}
}

// Removing A with orphans removes B exactly when no remaining entry requires B.
func TestLockfile_PlanRemoval_OrphanProperty(t *testing.T) {
	for others := range 4 {
		for referencing := range others + 1 {
			t.Run(fmt.Sprintf("%d_of_%d", referencing, others), func(t *testing.T) {
				lf := domain.NewLockfile()
				require.NoError(t, lf.Add(entry("a", "b")))
				require.NoError(t, lf.Add(entry("b")))
				for i := range others {
					var req []string
					if i < referencing {
						req = []string{"b"}
					}
					require.NoError(t, lf.Add(entry(fmt.Sprintf("c%d", i), req...)))
				}

				plan, err := lf.PlanRemoval("a", true)
				require.NoError(t, err)
				assert.Equal(t, referencing == 0, contains(slugs(plan), "b"))
			})
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestLockfile_PlanRemoval_NotFound(t *testing.T) {
	lf := domain.NewLockfile()
	require.NoError(t, lf.Add(entry("a")))

	_, err := lf.PlanRemoval("missing", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLockfile_Delete(t *testing.T) {
	lf := domain.NewLockfile()
	for _, s := range []string{"a", "b", "c"} {
		require.NoError(t, lf.Add(entry(s)))
	}

	lf.Delete("a", "c")
	assert.Equal(t, []string{"b"}, slugs(lf.Projects))
}

func TestLockfile_JSONRoundTrip(t *testing.T) {
	cfg, err := domain.NewLoaderConfig("1.20.1", "paper")
	require.NoError(t, err)

	lf := domain.NewConfiguredLockfile(cfg)
	require.NoError(t, lf.Add(entry("luckperms")))
	require.NoError(t, lf.Add(entry("essentials", "vault")))

	data, err := json.Marshal(lf)
	require.NoError(t, err)

	var out domain.Lockfile
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, lf, &out)
	assert.Contains(t, string(data), `"name":"paper"`)
	assert.Contains(t, string(data), `"requires":[]`)
}

func TestLockfile_Normalize(t *testing.T) {
	lf := &domain.Lockfile{Projects: []domain.Entry{{Slug: "a"}}}
	lf.Normalize()
	assert.NotNil(t, lf.Projects[0].Requires)

	empty := &domain.Lockfile{}
	empty.Normalize()
	assert.NotNil(t, empty.Projects)
}
