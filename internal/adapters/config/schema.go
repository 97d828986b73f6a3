package config

import "time"

// Mupfile represents the structure of the mup.yaml configuration file.
// Every field can also be set from the environment; the environment wins.
type Mupfile struct {
	Lockfile    string        `yaml:"lockfile"     env:"MUP_LOCKFILE"`
	UserAgent   string        `yaml:"user_agent"   env:"MUP_USER_AGENT"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"MUP_HTTP_TIMEOUT"`
	Providers   ProvidersDTO  `yaml:"providers"`
	Resolve     ResolveDTO    `yaml:"resolve"`
	History     HistoryDTO    `yaml:"history"`
	Verify      VerifyDTO     `yaml:"verify"`
	Log         LogDTO        `yaml:"log"`
}

// ProvidersDTO configures the metadata registries.
type ProvidersDTO struct {
	Modrinth ProviderDTO `yaml:"modrinth" envPrefix:"MUP_MODRINTH_"`
	Hangar   ProviderDTO `yaml:"hangar"   envPrefix:"MUP_HANGAR_"`
}

// ProviderDTO configures one metadata registry.
type ProviderDTO struct {
	BaseURL string `yaml:"base_url" env:"URL"`
}

// ResolveDTO configures dependency resolution.
type ResolveDTO struct {
	SkipClientOnlyDependencies bool `yaml:"skip_client_only_dependencies" env:"MUP_SKIP_CLIENT_ONLY_DEPENDENCIES"`
	CascadeOptional            bool `yaml:"cascade_optional"              env:"MUP_CASCADE_OPTIONAL"`
}

// HistoryDTO configures the operation history database.
type HistoryDTO struct {
	Path string `yaml:"path" env:"MUP_HISTORY_PATH"`
}

// VerifyDTO configures installed file verification.
type VerifyDTO struct {
	Concurrency int `yaml:"concurrency" env:"MUP_VERIFY_CONCURRENCY"`
}

// LogDTO configures log output.
type LogDTO struct {
	JSON bool `yaml:"json" env:"MUP_LOG_JSON"`
}
