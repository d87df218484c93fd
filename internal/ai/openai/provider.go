// Package openai implements models.TextGenerator using the OpenAI chat
// completions API.
package openai

import (
	"context"
	"net/http"

	"github.com/ocuscreen/ocuscreen/internal/ai/openaichat"
	"github.com/ocuscreen/ocuscreen/internal/config"
	"github.com/ocuscreen/ocuscreen/pkg/models"
)

const baseURL = "https://api.openai.com"

// Provider implements models.TextGenerator using OpenAI.
type Provider struct {
	chat *openaichat.Client
	cfg  config.OpenAIConfig
}

func NewProvider(cfg config.OpenAIConfig) *Provider {
	return &Provider{
		chat: openaichat.NewClient(baseURL, cfg.APIKey, cfg.Model, &http.Client{}),
		cfg:  cfg,
	}
}

func (p *Provider) Name() string  { return "openai" }
func (p *Provider) Model() string { return p.cfg.Model }

func (p *Provider) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	return p.chat.Complete(ctx, req)
}

var _ models.TextGenerator = (*Provider)(nil)
