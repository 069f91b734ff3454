package llm

import (
	"fmt"
	"os"
)

// NewProvider creates a new completion provider based on the given
// provider type and model. Supported provider types: "groq", "openai".
func NewProvider(providerType string, model string) (Provider, error) {
	switch providerType {
	case "groq":
		apiKey := os.Getenv("GROQ_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY environment variable is not set")
		}
		return NewGroqProvider(apiKey, model), nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
