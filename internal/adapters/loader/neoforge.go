package loader

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/dxbednarczyk/mup/internal/adapters/httpclient"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultNeoForgeAPIURL resolves the latest release of a maven artifact.
	DefaultNeoForgeAPIURL = "https://maven.neoforged.net/api/maven/latest/version/releases"

	// DefaultNeoForgeMavenURL is the NeoForge releases maven root.
	DefaultNeoForgeMavenURL = "https://maven.neoforged.net/releases"
)

// NeoForge supports no Minecraft version before 1.20.1, and publishes 1.20.1
// under the legacy forge artifact.
var neoForgeMinecraftCutoff = mustVersion("1.20.1")

var _ ports.ServerFetcher = (*NeoForge)(nil)

type neoForgeRelease struct {
	Version string `json:"version"`
}

// NeoForge fetches NeoForge installer jars.
type NeoForge struct {
	client     *httpclient.Client
	downloader ports.Downloader
	logger     ports.Logger
	apiURL     string
	mavenURL   string
}

// NewNeoForge creates a NeoForge fetcher.
func NewNeoForge(
	client *httpclient.Client,
	downloader ports.Downloader,
	logger ports.Logger,
	apiURL, mavenURL string,
) *NeoForge {
	return &NeoForge{
		client:     client,
		downloader: downloader,
		logger:     logger,
		apiURL:     apiURL,
		mavenURL:   mavenURL,
	}
}

// Loader returns domain.LoaderNeoForge.
func (n *NeoForge) Loader() domain.Loader {
	return domain.LoaderNeoForge
}

// Fetch downloads neoforge-{mc}-{version}.jar into dir. The Minecraft version must be explicit.
// A "latest" version resolves to the newest release for that Minecraft version.
func (n *NeoForge) Fetch(ctx context.Context, dir, minecraftVersion, version string) (string, error) {
	if minecraftVersion == domain.Latest {
		return "", zerr.Wrap(domain.ErrInvalidConfiguration, "for neoforge, you must specify a Minecraft version to target")
	}

	mc, err := domain.ParseVersion(minecraftVersion)
	if err != nil {
		return "", err
	}
	if mc.Compare(neoForgeMinecraftCutoff) < 0 {
		err := zerr.Wrap(domain.ErrUnsupportedLoaderVersion, "neoforge does not support Minecraft versions before 1.20.1")
		return "", zerr.With(err, "minecraft_version", minecraftVersion)
	}

	gav := "/net/neoforged/neoforge"
	query := ""
	if mc.Equal(neoForgeMinecraftCutoff) {
		gav = "/net/neoforged/forge"
		query = "?filter=1.20.1"
	}

	if version == domain.Latest {
		var release neoForgeRelease
		if err := n.client.GetJSON(ctx, n.apiURL+gav+query, &release); err != nil {
			return "", zerr.With(err, "minecraft_version", minecraftVersion)
		}
		if release.Version == "" {
			return "", zerr.With(zerr.Wrap(domain.ErrNoMatchingVersion, "no release found"), "minecraft_version", minecraftVersion)
		}
		version = release.Version
	}

	artifact := path.Base(gav)
	url := fmt.Sprintf("%s%s/%s/%s-%s-installer.jar", n.mavenURL, gav, version, artifact, version)
	dest := filepath.Join(dir, fmt.Sprintf("neoforge-%s-%s.jar", minecraftVersion, version))
	if err := n.downloader.Download(ctx, url, dest, domain.Checksum{}); err != nil {
		return "", err
	}

	n.logger.Warn(fmt.Sprintf("%s is an installer, not a server loader! run it and install the server before proceeding", filepath.Base(dest)))
	return dest, nil
}
