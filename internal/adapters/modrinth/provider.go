// Package modrinth implements the Modrinth metadata provider.
package modrinth

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"github.com/dxbednarczyk/mup/internal/adapters/httpclient"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

// Name is the registry name used in remote sources and on the command line.
const Name = "modrinth"

const serverSideUnsupported = "unsupported"

var _ ports.MetadataProvider = (*Provider)(nil)

type projectInfo struct {
	ID         string   `json:"id"`
	Slug       string   `json:"slug"`
	ServerSide string   `json:"server_side"`
	Versions   []string `json:"versions"`
}

type versionInfo struct {
	ID           string       `json:"id"`
	ProjectID    string       `json:"project_id"`
	GameVersions []string     `json:"game_versions"`
	Loaders      []string     `json:"loaders"`
	Files        []fileInfo   `json:"files"`
	Dependencies []dependency `json:"dependencies"`
}

type fileInfo struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Hashes   struct {
		SHA512 string `json:"sha512"`
		SHA1   string `json:"sha1"`
	} `json:"hashes"`
}

type dependency struct {
	ProjectID      string `json:"project_id"`
	DependencyType string `json:"dependency_type"`
}

// Provider resolves project versions against the Modrinth v2 API.
type Provider struct {
	client  *httpclient.Client
	baseURL string
}

// New creates a Provider for the API rooted at baseURL.
func New(client *httpclient.Client, baseURL string) *Provider {
	if baseURL == "" {
		baseURL = domain.DefaultModrinthURL
	}
	return &Provider{client: client, baseURL: baseURL}
}

// Name returns the registry name.
func (p *Provider) Name() string {
	return Name
}

// Resolve fetches the project and the selected version.
// A "latest" selector picks the first version, in Modrinth's order, that lists the game version.
func (p *Provider) Resolve(
	ctx context.Context,
	projectID, selector string,
	cfg domain.LoaderConfig,
) (*domain.VersionMetadata, error) {
	var project projectInfo
	if err := p.client.GetJSON(ctx, p.baseURL+"/project/"+url.PathEscape(projectID), &project); err != nil {
		return nil, zerr.With(err, "project", projectID)
	}

	var version *versionInfo
	var err error
	if selector == "" || selector == domain.Latest {
		version, err = p.latestVersion(ctx, &project, cfg)
	} else {
		version, err = p.specificVersion(ctx, &project, selector)
	}
	if err != nil {
		return nil, err
	}

	return toMetadata(&project, version), nil
}

func (p *Provider) specificVersion(ctx context.Context, project *projectInfo, versionID string) (*versionInfo, error) {
	if !slices.Contains(project.Versions, versionID) {
		err := zerr.With(zerr.Wrap(domain.ErrNoMatchingVersion, "project version does not exist"), "project", project.Slug)
		return nil, zerr.With(err, "version", versionID)
	}

	var version versionInfo
	if err := p.client.GetJSON(ctx, p.baseURL+"/version/"+url.PathEscape(versionID), &version); err != nil {
		return nil, zerr.With(err, "version", versionID)
	}

	if version.ProjectID != project.ID {
		err := zerr.With(zerr.Wrap(domain.ErrNoMatchingVersion, "version is not a part of project"), "project", project.Slug)
		return nil, zerr.With(err, "version", versionID)
	}

	return &version, nil
}

func (p *Provider) latestVersion(ctx context.Context, project *projectInfo, cfg domain.LoaderConfig) (*versionInfo, error) {
	query := url.Values{}
	if cfg.MinecraftVersion != domain.Latest {
		query.Set("game_versions", fmt.Sprintf("[%q]", cfg.MinecraftVersion))
	}
	if loader := cfg.Name.String(); loader != "" {
		query.Set("loaders", fmt.Sprintf("[%q]", loader))
	}

	endpoint := p.baseURL + "/project/" + url.PathEscape(project.Slug) + "/version"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var versions []versionInfo
	if err := p.client.GetJSON(ctx, endpoint, &versions); err != nil {
		return nil, zerr.With(err, "project", project.Slug)
	}

	i := slices.IndexFunc(versions, func(v versionInfo) bool {
		return cfg.MinecraftVersion == domain.Latest || slices.Contains(v.GameVersions, cfg.MinecraftVersion)
	})
	if i < 0 {
		err := zerr.With(zerr.Wrap(domain.ErrNoMatchingVersion, "no version matches the server"), "project", project.Slug)
		return nil, zerr.With(err, "minecraft_version", cfg.MinecraftVersion)
	}

	return &versions[i], nil
}

func toMetadata(project *projectInfo, version *versionInfo) *domain.VersionMetadata {
	m := &domain.VersionMetadata{
		Provider:     Name,
		Slug:         project.Slug,
		ProjectID:    project.ID,
		VersionID:    version.ID,
		ServerSide:   project.ServerSide != serverSideUnsupported,
		Loaders:      version.Loaders,
		GameVersions: version.GameVersions,
	}

	for _, f := range version.Files {
		sum := domain.NewChecksum(domain.AlgorithmSHA512, f.Hashes.SHA512)
		if f.Hashes.SHA512 == "" && f.Hashes.SHA1 != "" {
			sum = domain.NewChecksum(domain.AlgorithmSHA1, f.Hashes.SHA1)
		}
		m.Files = append(m.Files, domain.CandidateFile{
			URL:      f.URL,
			Filename: f.Filename,
			Checksum: sum,
		})
	}

	for _, d := range version.Dependencies {
		if d.ProjectID == "" {
			continue
		}
		switch d.DependencyType {
		case "required":
			m.Dependencies = append(m.Dependencies, domain.DeclaredDependency{ProjectID: d.ProjectID, Required: true})
		case "optional":
			m.Dependencies = append(m.Dependencies, domain.DeclaredDependency{ProjectID: d.ProjectID})
		}
	}

	return m
}
