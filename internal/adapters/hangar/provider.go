// Package hangar implements the Hangar (PaperMC) metadata provider.
package hangar

import (
	"context"
	"errors"
	"net/url"
	"slices"
	"strings"

	"github.com/dxbednarczyk/mup/internal/adapters/httpclient"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

// Name is the registry name used in remote sources and on the command line.
const Name = "hangar"

const releaseChannel = "Release"

var _ ports.MetadataProvider = (*Provider)(nil)

type projectInfo struct {
	Name string `json:"name"`
}

type versionInfo struct {
	Name                 string                  `json:"name"`
	Downloads            map[string]download     `json:"downloads"`
	PluginDependencies   map[string][]dependency `json:"pluginDependencies"`
	PlatformDependencies map[string][]string     `json:"platformDependencies"`
}

type download struct {
	FileInfo struct {
		Name       string `json:"name"`
		SHA256Hash string `json:"sha256Hash"`
	} `json:"fileInfo"`
	DownloadURL string `json:"downloadUrl"`
	ExternalURL string `json:"externalUrl"`
}

type dependency struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// Provider resolves project versions against the Hangar v1 API.
type Provider struct {
	client  *httpclient.Client
	baseURL string
}

// New creates a Provider for the API rooted at baseURL.
func New(client *httpclient.Client, baseURL string) *Provider {
	if baseURL == "" {
		baseURL = domain.DefaultHangarURL
	}
	return &Provider{client: client, baseURL: baseURL}
}

// Name returns the registry name.
func (p *Provider) Name() string {
	return Name
}

// Resolve fetches the project and the selected version.
// A "latest" selector resolves to the newest version on the release channel.
// Hangar identifies projects by name, so the slug and project id are both the name.
func (p *Provider) Resolve(
	ctx context.Context,
	projectID, selector string,
	cfg domain.LoaderConfig,
) (*domain.VersionMetadata, error) {
	var project projectInfo
	if err := p.client.GetJSON(ctx, p.baseURL+"/projects/"+url.PathEscape(projectID), &project); err != nil {
		return nil, zerr.With(err, "project", projectID)
	}
	name := project.Name

	version := selector
	if version == "" || version == domain.Latest {
		endpoint := p.baseURL + "/projects/" + url.PathEscape(name) + "/latest?channel=" + releaseChannel
		latest, err := p.client.GetString(ctx, endpoint)
		if err != nil {
			return nil, zerr.With(err, "project", name)
		}
		if latest == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrNoMatchingVersion, "no release version"), "project", name)
		}
		version = latest
	}

	var info versionInfo
	endpoint := p.baseURL + "/projects/" + url.PathEscape(name) + "/versions/" + url.PathEscape(version)
	if err := p.client.GetJSON(ctx, endpoint, &info); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = zerr.With(zerr.Wrap(domain.ErrNoMatchingVersion, "project version does not exist"), "project", name)
		}
		return nil, zerr.With(err, "version", version)
	}

	return toMetadata(name, version, &info, platform(cfg.Name)), nil
}

// platform is the Hangar platform key for a loader, e.g. "PAPER".
func platform(l domain.Loader) string {
	return strings.ToUpper(l.String())
}

func toMetadata(name, version string, info *versionInfo, platform string) *domain.VersionMetadata {
	m := &domain.VersionMetadata{
		Provider:     Name,
		Slug:         name,
		ProjectID:    name,
		VersionID:    version,
		ServerSide:   true,
		GameVersions: info.PlatformDependencies[platform],
	}

	for key := range info.PlatformDependencies {
		m.Loaders = append(m.Loaders, strings.ToLower(key))
	}
	slices.Sort(m.Loaders)

	if dl, ok := info.Downloads[platform]; ok {
		f := domain.CandidateFile{
			URL:      dl.DownloadURL,
			Filename: dl.FileInfo.Name,
		}
		if f.URL == "" {
			f.URL = dl.ExternalURL
		}
		if dl.FileInfo.SHA256Hash != "" {
			f.Checksum = domain.NewChecksum(domain.AlgorithmSHA256, dl.FileInfo.SHA256Hash)
		}
		m.Files = append(m.Files, f)
	}

	for _, d := range info.PluginDependencies[platform] {
		if d.Name == "" {
			continue
		}
		m.Dependencies = append(m.Dependencies, domain.DeclaredDependency{ProjectID: d.Name, Required: d.Required})
	}

	return m
}
