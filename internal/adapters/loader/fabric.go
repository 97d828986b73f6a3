package loader

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dxbednarczyk/mup/internal/adapters/httpclient"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultFabricURL is the Fabric meta versions root.
const DefaultFabricURL = "https://meta.fabricmc.net/v2/versions"

const fabricJar = "fabric.jar"

var _ ports.ServerFetcher = (*Fabric)(nil)

type fabricVersion struct {
	Version string `json:"version"`
}

// Fabric fetches the Fabric server launcher jar.
type Fabric struct {
	client     *httpclient.Client
	downloader ports.Downloader
	baseURL    string
}

// NewFabric creates a Fabric fetcher for the meta API rooted at baseURL.
func NewFabric(client *httpclient.Client, downloader ports.Downloader, baseURL string) *Fabric {
	return &Fabric{client: client, downloader: downloader, baseURL: baseURL}
}

// Loader returns domain.LoaderFabric.
func (f *Fabric) Loader() domain.Loader {
	return domain.LoaderFabric
}

// Fetch downloads fabric.jar into dir for the game and loader versions, using the newest installer.
// Fabric publishes no checksum for the launcher, so the download is not verified.
func (f *Fabric) Fetch(ctx context.Context, dir, minecraftVersion, loaderVersion string) (string, error) {
	game, err := f.version(ctx, "game", minecraftVersion)
	if err != nil {
		return "", err
	}
	loader, err := f.version(ctx, "loader", loaderVersion)
	if err != nil {
		return "", err
	}
	installer, err := f.version(ctx, "installer", domain.Latest)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/loader/%s/%s/%s/server/jar", f.baseURL, game, loader, installer)
	dest := filepath.Join(dir, fabricJar)
	if err := f.downloader.Download(ctx, url, dest, domain.Checksum{}); err != nil {
		return "", err
	}
	return dest, nil
}

// version looks want up in one of the meta lists. "latest" is the first entry.
func (f *Fabric) version(ctx context.Context, kind, want string) (string, error) {
	var versions []fabricVersion
	if err := f.client.GetJSON(ctx, f.baseURL+"/"+kind, &versions); err != nil {
		return "", err
	}

	for i, v := range versions {
		if (want == domain.Latest && i == 0) || v.Version == want {
			return v.Version, nil
		}
	}

	err := zerr.With(zerr.Wrap(domain.ErrNoMatchingVersion, "version does not exist"), "kind", kind)
	return "", zerr.With(err, "version", want)
}
