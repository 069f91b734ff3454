package config

// DefaultConfig returns a Config with sensible defaults. The model and
// port match the original SAANBOT deployment.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderGroq,
		Model:             "mixtral-8x7b-32768",
		Port:              10000,
		DataDir:           "data",
		AllowAllOrigins:   true,
		SessionTTLMinutes: 30,
	}
}
