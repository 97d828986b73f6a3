// Package config provides the configuration loader for mup.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// PathEnv names the environment variable that overrides the config file location.
const PathEnv = "MUP_CONFIG"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using an optional YAML file and the environment.
type Loader struct {
	// Environment overrides the process environment when non-nil.
	Environment map[string]string
}

// NewLoader creates a new Loader reading the process environment.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads mup.yaml from cwd, applies environment overrides and returns the
// resulting configuration. A missing default config file is not an error.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	mupfile := defaults()

	path, explicit := l.configPath(cwd)
	if _, err := os.Stat(path); err == nil || explicit {
		if err := readAndUnmarshalYAML(path, &mupfile); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(&mupfile, env.Options{Environment: l.Environment}); err != nil {
		return nil, zerr.Wrap(domain.ErrConfigParseFailed, err.Error())
	}

	return mupfile.toDomain(cwd)
}

func (l *Loader) configPath(cwd string) (path string, explicit bool) {
	p := l.lookupEnv(PathEnv)
	if p == "" {
		return filepath.Join(cwd, domain.ConfigFileName), false
	}
	return resolvePath(cwd, p), true
}

func (l *Loader) lookupEnv(key string) string {
	if l.Environment != nil {
		return l.Environment[key]
	}
	return os.Getenv(key)
}

func defaults() Mupfile {
	cfg := domain.DefaultConfig()
	return Mupfile{
		Lockfile:    cfg.Lockfile,
		UserAgent:   cfg.UserAgent,
		HTTPTimeout: cfg.HTTPTimeout,
		Providers: ProvidersDTO{
			Modrinth: ProviderDTO{BaseURL: cfg.Modrinth.BaseURL},
			Hangar:   ProviderDTO{BaseURL: cfg.Hangar.BaseURL},
		},
		Resolve: ResolveDTO{
			SkipClientOnlyDependencies: cfg.Resolve.SkipClientOnlyDependencies,
			CascadeOptional:            cfg.Resolve.CascadeOptional,
		},
		History: HistoryDTO{Path: cfg.HistoryPath},
		Verify:  VerifyDTO{Concurrency: cfg.VerifyConcurrency},
		Log:     LogDTO{JSON: cfg.LogJSON},
	}
}

func (m *Mupfile) toDomain(cwd string) (*domain.Config, error) {
	if m.HTTPTimeout < 0 {
		err := zerr.Wrap(domain.ErrConfigParseFailed, "http_timeout must not be negative")
		return nil, zerr.With(err, "http_timeout", m.HTTPTimeout.String())
	}
	if m.Verify.Concurrency < 1 {
		err := zerr.Wrap(domain.ErrConfigParseFailed, "verify.concurrency must be at least 1")
		return nil, zerr.With(err, "concurrency", m.Verify.Concurrency)
	}
	if strings.TrimSpace(m.Lockfile) == "" {
		return nil, zerr.Wrap(domain.ErrConfigParseFailed, "lockfile path must not be empty")
	}

	return &domain.Config{
		Lockfile:    resolvePath(cwd, m.Lockfile),
		UserAgent:   m.UserAgent,
		HTTPTimeout: m.HTTPTimeout,
		Modrinth:    domain.ProviderConfig{BaseURL: strings.TrimRight(m.Providers.Modrinth.BaseURL, "/")},
		Hangar:      domain.ProviderConfig{BaseURL: strings.TrimRight(m.Providers.Hangar.BaseURL, "/")},
		Resolve: domain.ResolvePolicy{
			SkipClientOnlyDependencies: m.Resolve.SkipClientOnlyDependencies,
			CascadeOptional:            m.Resolve.CascadeOptional,
		},
		HistoryPath:       resolvePath(cwd, m.History.Path),
		VerifyConcurrency: m.Verify.Concurrency,
		LogJSON:           m.Log.JSON,
	}, nil
}

// resolvePath makes p relative to cwd unless it is already absolute.
func resolvePath(cwd, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(cwd, p)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath comes from the working directory or MUP_CONFIG
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, parseErr.Error()), "path", configPath)
	}

	return nil
}
