package ai

import (
	"fmt"

	"github.com/ocuscreen/ocuscreen/internal/ai/anthropic"
	"github.com/ocuscreen/ocuscreen/internal/ai/ollama"
	"github.com/ocuscreen/ocuscreen/internal/ai/openai"
	"github.com/ocuscreen/ocuscreen/internal/ai/vllm"
	"github.com/ocuscreen/ocuscreen/internal/config"
	"github.com/ocuscreen/ocuscreen/pkg/models"
)

// NewProvider constructs the appropriate text-generation provider based
// on config. Called once at server startup.
func NewProvider(cfg config.AIConfig) (models.TextGenerator, error) {
	switch cfg.Provider {
	case "ollama":
		return ollama.NewProvider(cfg.Ollama), nil
	case "vllm":
		return vllm.NewProvider(cfg.VLLM), nil
	case "openai":
		return openai.NewProvider(cfg.OpenAI), nil
	case "anthropic":
		return anthropic.NewProvider(cfg.Anthropic), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of ollama, vllm, openai, anthropic", cfg.Provider)
	}
}
