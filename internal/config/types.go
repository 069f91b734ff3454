package config

// ProviderType identifies a completion provider.
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderOpenAI ProviderType = "openai"
)

// Config is the top-level saanbot configuration, corresponding to .saanbot.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	Port              int          `yaml:"port" koanf:"port"`
	DataDir           string       `yaml:"data_dir" koanf:"data_dir"`
	AllowAllOrigins   bool         `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	SessionTTLMinutes int          `yaml:"session_ttl_minutes" koanf:"session_ttl_minutes"`
}
