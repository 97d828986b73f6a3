package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dxbednarczyk/mup/internal/adapters/httpclient"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultForgePromosURL lists the latest and recommended installer per Minecraft version.
	DefaultForgePromosURL = "https://files.minecraftforge.net/maven/net/minecraftforge/forge/promotions_slim.json"

	// DefaultForgeMavenURL is the Forge maven artifact root.
	DefaultForgeMavenURL = "https://maven.minecraftforge.net/net/minecraftforge/forge"
)

var (
	// Forge publishes no installer jars before Minecraft 1.5.2.
	forgeMinecraftCutoff = mustVersion("1.5.2")

	// From this 1.9 installer on, tags read 1.X-{installer}-1.X.0.
	forgeInstallerCutoffTriple = mustVersion("12.16.1.1938")

	// Up to this 1.9 installer, tags read 1.9-{installer}-1.9.
	forgeInstallerCutoffDouble = mustVersion("12.16.0.1885")
)

var _ ports.ServerFetcher = (*Forge)(nil)

type forgePromos struct {
	Promos map[string]string `json:"promos"`
}

// Forge fetches Forge installer jars. The installer has to be run to set up the server.
type Forge struct {
	client     *httpclient.Client
	downloader ports.Downloader
	logger     ports.Logger
	promosURL  string
	mavenURL   string
}

// NewForge creates a Forge fetcher.
func NewForge(
	client *httpclient.Client,
	downloader ports.Downloader,
	logger ports.Logger,
	promosURL, mavenURL string,
) *Forge {
	return &Forge{
		client:     client,
		downloader: downloader,
		logger:     logger,
		promosURL:  promosURL,
		mavenURL:   mavenURL,
	}
}

// Loader returns domain.LoaderForge.
func (f *Forge) Loader() domain.Loader {
	return domain.LoaderForge
}

// Fetch downloads forge-{mc}-{installer}.jar into dir. A "latest" Minecraft version
// is the highest one with a promotion; a "latest" installer is its "-latest" promotion.
func (f *Forge) Fetch(ctx context.Context, dir, minecraftVersion, installerVersion string) (string, error) {
	var promos forgePromos
	if err := f.client.GetJSON(ctx, f.promosURL, &promos); err != nil {
		return "", err
	}

	mc, err := forgeMinecraftVersion(promos.Promos, minecraftVersion)
	if err != nil {
		return "", err
	}

	installer := installerVersion
	if installer == domain.Latest {
		promo, ok := promos.Promos[mc.String()+"-latest"]
		if !ok {
			err := zerr.Wrap(domain.ErrUnsupportedLoaderVersion, "invalid or unsupported Minecraft version")
			return "", zerr.With(err, "minecraft_version", mc.String())
		}
		installer = promo
	}

	tag, err := forgeVersionTag(mc, installer)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/forge-%s-installer.jar", f.mavenURL, tag, tag)
	dest := filepath.Join(dir, fmt.Sprintf("forge-%s-%s.jar", mc, installer))
	if err := f.downloader.Download(ctx, url, dest, domain.Checksum{}); err != nil {
		return "", err
	}

	f.logger.Warn(fmt.Sprintf("%s is an installer, not a server loader! run it and install the server before proceeding", filepath.Base(dest)))
	return dest, nil
}

func forgeMinecraftVersion(promos map[string]string, want string) (domain.Version, error) {
	if want != domain.Latest {
		return domain.ParseVersion(want)
	}

	prefixes := make([]string, 0, len(promos))
	for key := range promos {
		prefix, _, _ := strings.Cut(key, "-")
		prefixes = append(prefixes, prefix)
	}

	mc, ok := domain.MaxVersion(prefixes)
	if !ok {
		return domain.Version{}, zerr.Wrap(domain.ErrNoMatchingVersion, "no Forge promotions are available")
	}
	return mc, nil
}

// forgeVersionTag renders the maven version of an installer, which changed format
// several times across Minecraft releases.
func forgeVersionTag(mc domain.Version, installer string) (string, error) {
	if mc.Compare(forgeMinecraftCutoff) < 0 {
		err := zerr.Wrap(domain.ErrUnsupportedLoaderVersion, "forge does not provide installer jarfiles before Minecraft 1.5.2")
		return "", zerr.With(err, "minecraft_version", mc.String())
	}

	minor := mc.Part(1)

	if mc.Len() == 3 {
		switch {
		case minor < 7 || minor > 9:
			return fmt.Sprintf("%s-%s", mc, installer), nil
		case minor == 7 && mc.Part(2) == 2:
			return fmt.Sprintf("1.7.2-%s-mc172", installer), nil
		default:
			return fmt.Sprintf("%s-%s-%s", mc, installer, mc), nil
		}
	}

	inst, err := domain.ParseVersion(installer)
	if err != nil {
		return "", err
	}

	switch {
	case (minor == 9 || minor == 10) && inst.Compare(forgeInstallerCutoffTriple) >= 0:
		return fmt.Sprintf("%s-%s-%s.0", mc, installer, mc), nil
	case minor == 9 && inst.Compare(forgeInstallerCutoffDouble) <= 0:
		return fmt.Sprintf("%s-%s-%s", mc, installer, mc), nil
	default:
		return fmt.Sprintf("%s-%s", mc, installer), nil
	}
}

func mustVersion(s string) domain.Version {
	v, err := domain.ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}
