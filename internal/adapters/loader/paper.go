package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dxbednarczyk/mup/internal/adapters/httpclient"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultPaperURL is the PaperMC v2 project root.
const DefaultPaperURL = "https://api.papermc.io/v2/projects/paper"

var _ ports.ServerFetcher = (*Paper)(nil)

type paperVersions struct {
	Versions []string `json:"versions"`
}

type paperBuilds struct {
	Builds []paperBuild `json:"builds"`
}

type paperBuild struct {
	Build     int `json:"build"`
	Downloads struct {
		Application struct {
			SHA256 string `json:"sha256"`
		} `json:"application"`
	} `json:"downloads"`
}

// Paper fetches Paper server jars, verified against the published SHA-256.
type Paper struct {
	client     *httpclient.Client
	downloader ports.Downloader
	baseURL    string
}

// NewPaper creates a Paper fetcher for the API rooted at baseURL.
func NewPaper(client *httpclient.Client, downloader ports.Downloader, baseURL string) *Paper {
	return &Paper{client: client, downloader: downloader, baseURL: baseURL}
}

// Loader returns domain.LoaderPaper.
func (p *Paper) Loader() domain.Loader {
	return domain.LoaderPaper
}

// Fetch downloads paper-{mc}-{build}.jar into dir. A "latest" Minecraft version is
// the last one listed; a "latest" build is the first one returned for that version.
func (p *Paper) Fetch(ctx context.Context, dir, minecraftVersion, build string) (string, error) {
	mc := minecraftVersion
	if mc == domain.Latest {
		var versions paperVersions
		if err := p.client.GetJSON(ctx, p.baseURL, &versions); err != nil {
			return "", err
		}
		if len(versions.Versions) == 0 {
			return "", zerr.Wrap(domain.ErrNoMatchingVersion, "could not get latest Minecraft version")
		}
		mc = versions.Versions[len(versions.Versions)-1]
	}

	b, err := p.build(ctx, mc, build)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("paper-%s-%d.jar", mc, b.Build)
	url := fmt.Sprintf("%s/versions/%s/builds/%d/downloads/%s", p.baseURL, mc, b.Build, filename)
	dest := filepath.Join(dir, filename)

	sum := domain.NewChecksum(domain.AlgorithmSHA256, b.Downloads.Application.SHA256)
	if err := p.downloader.Download(ctx, url, dest, sum); err != nil {
		return "", err
	}
	return dest, nil
}

func (p *Paper) build(ctx context.Context, mc, build string) (paperBuild, error) {
	var builds paperBuilds
	if err := p.client.GetJSON(ctx, fmt.Sprintf("%s/versions/%s/builds", p.baseURL, mc), &builds); err != nil {
		return paperBuild{}, zerr.With(err, "minecraft_version", mc)
	}

	if build == domain.Latest {
		if len(builds.Builds) == 0 {
			return paperBuild{}, zerr.With(zerr.Wrap(domain.ErrNoMatchingVersion, "no builds available"), "minecraft_version", mc)
		}
		return builds.Builds[0], nil
	}

	id, err := strconv.Atoi(build)
	if err != nil {
		return paperBuild{}, zerr.With(zerr.Wrap(domain.ErrInvalidConfiguration, "build must be a number"), "build", build)
	}
	for _, b := range builds.Builds {
		if b.Build == id {
			return b, nil
		}
	}

	err = zerr.With(zerr.Wrap(domain.ErrNoMatchingVersion, "could not get specific loader version"), "build", build)
	return paperBuild{}, zerr.With(err, "minecraft_version", mc)
}
