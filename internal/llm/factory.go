package llm

import (
	"fmt"

	"github.com/abojja9/sleep-better-ai/internal/config"
	"github.com/abojja9/sleep-better-ai/internal/llm/generate"
	"github.com/abojja9/sleep-better-ai/internal/types"
)

// NewGenerator creates a generator based on configuration
func NewGenerator(cfg *config.LLMConfig) (types.Generator, error) {
	switch cfg.Generator.Provider {
	case "openai":
		return generate.NewOpenAIGenerator(cfg.Generator.Model, cfg.Generator.APIKeyEnv, cfg.Generator.APIKey)
	case "anthropic":
		return generate.NewAnthropicGenerator(cfg.Generator.Model, cfg.Generator.APIKeyEnv, cfg.Generator.APIKey)
	case "mock":
		return generate.NewMockGenerator(cfg.Generator.Model), nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", cfg.Generator.Provider)
	}
}
