// Package vllm implements models.TextGenerator against a vLLM server,
// which exposes an OpenAI-compatible chat completions endpoint.
package vllm

import (
	"context"
	"net/http"

	"github.com/ocuscreen/ocuscreen/internal/ai/openaichat"
	"github.com/ocuscreen/ocuscreen/internal/config"
	"github.com/ocuscreen/ocuscreen/pkg/models"
)

// Provider implements models.TextGenerator using vLLM.
type Provider struct {
	chat *openaichat.Client
	cfg  config.VLLMConfig
}

func NewProvider(cfg config.VLLMConfig) *Provider {
	// vLLM does not require an API key by default.
	return &Provider{
		chat: openaichat.NewClient(cfg.BaseURL, "", cfg.Model, &http.Client{}),
		cfg:  cfg,
	}
}

func (p *Provider) Name() string  { return "vllm" }
func (p *Provider) Model() string { return p.cfg.Model }

func (p *Provider) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	return p.chat.Complete(ctx, req)
}

var _ models.TextGenerator = (*Provider)(nil)
