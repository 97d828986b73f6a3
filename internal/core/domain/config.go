package domain

import "time"

const (
	// DefaultHTTPTimeout bounds every registry and download request.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultVerifyConcurrency bounds parallel re-hashing in verify.
	DefaultVerifyConcurrency = 4

	// DefaultUserAgent identifies the tool to registries.
	DefaultUserAgent = "dxbednarczyk/mup"

	// DefaultModrinthURL is the Modrinth v2 API root.
	DefaultModrinthURL = "https://api.modrinth.com/v2"

	// DefaultHangarURL is the Hangar v1 API root.
	DefaultHangarURL = "https://hangar.papermc.io/api/v1"
)

// ResolvePolicy controls how the resolver treats dependencies.
type ResolvePolicy struct {
	// SkipClientOnlyDependencies skips dependencies that are client side only
	// instead of aborting the install. The root project is never skipped.
	SkipClientOnlyDependencies bool

	// CascadeOptional passes the include-optional flag down to the dependency subtree.
	CascadeOptional bool
}

// ProviderConfig configures one metadata provider.
type ProviderConfig struct {
	BaseURL string
}

// Config is the resolved tool configuration.
type Config struct {
	// Lockfile is the lockfile path, relative to the server root.
	Lockfile string

	// UserAgent is sent with every HTTP request.
	UserAgent string

	// HTTPTimeout bounds each HTTP request.
	HTTPTimeout time.Duration

	Modrinth ProviderConfig
	Hangar   ProviderConfig
	Resolve  ResolvePolicy

	// HistoryPath is the history database path.
	HistoryPath string

	// VerifyConcurrency bounds parallel re-hashing.
	VerifyConcurrency int

	// LogJSON switches the logger to JSON output.
	LogJSON bool
}

// DefaultConfig returns the configuration used when no file or environment overrides exist.
func DefaultConfig() *Config {
	return &Config{
		Lockfile:    DefaultLockfilePath(),
		UserAgent:   DefaultUserAgent,
		HTTPTimeout: DefaultHTTPTimeout,
		Modrinth:    ProviderConfig{BaseURL: DefaultModrinthURL},
		Hangar:      ProviderConfig{BaseURL: DefaultHangarURL},
		Resolve: ResolvePolicy{
			SkipClientOnlyDependencies: true,
		},
		HistoryPath:       DefaultHistoryPath(),
		VerifyConcurrency: DefaultVerifyConcurrency,
	}
}
