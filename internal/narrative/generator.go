package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ocuscreen/ocuscreen/internal/ai"
	"github.com/ocuscreen/ocuscreen/internal/screening"
	"github.com/ocuscreen/ocuscreen/pkg/models"
)

const maxNarrativeTokens = 1024

// Result is a generated narrative plus the derivation context it was
// generated under.
type Result struct {
	Category  models.RiskCategory
	Percent   int
	Narrative models.RiskNarrative
	Provider  string
	Model     string
}

// Generator derives a risk category from an effective result and obtains
// a category-specific narrative from the text-generation provider.
type Generator struct {
	provider models.TextGenerator
	timeout  time.Duration
}

// NewGenerator creates a Generator backed by the given provider.
func NewGenerator(provider models.TextGenerator, timeout time.Duration) *Generator {
	return &Generator{provider: provider, timeout: timeout}
}

// Generate issues exactly one provider call for the given effective
// result. A malformed or partially empty provider response is reported
// as ai.ErrInvalidResponse; nothing is retried or cached.
func (g *Generator) Generate(ctx context.Context, effective models.EffectiveResult) (*Result, error) {
	category := screening.Categorize(effective.Label)
	percent := screening.Percent(effective.Score)
	tmpl := TemplateFor(category)

	genCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.provider.Complete(genCtx, models.CompletionRequest{
		System:    systemPrompt,
		Prompt:    buildPrompt(tmpl, effective, percent),
		MaxTokens: maxNarrativeTokens,
	})
	if err != nil {
		return nil, wrapProviderError(err)
	}

	narrative, err := parseNarrative(raw)
	if err != nil {
		return nil, err
	}

	return &Result{
		Category:  category,
		Percent:   percent,
		Narrative: narrative,
		Provider:  g.provider.Name(),
		Model:     g.provider.Model(),
	}, nil
}

// buildPrompt serializes the fixed context fields: original-cased label,
// raw score, integer percent, and derived category.
func buildPrompt(tmpl Template, effective models.EffectiveResult, percent int) string {
	var sb strings.Builder
	sb.WriteString(tmpl.Instruction)
	sb.WriteString("\n\nScreening context:\n")
	fmt.Fprintf(&sb, "label: %s\n", effective.Label)
	fmt.Fprintf(&sb, "score: %g\n", effective.Score)
	fmt.Fprintf(&sb, "percent: %d\n", percent)
	fmt.Fprintf(&sb, "category: %s\n", tmpl.Category)
	return sb.String()
}

type narrativeJSON struct {
	Interpretation string `json:"interpretation"`
	Visualization  string `json:"visualization"`
	NextSteps      string `json:"next_steps"`
}

// parseNarrative decodes the provider's reply and enforces the
// three-populated-fields contract.
func parseNarrative(raw string) (models.RiskNarrative, error) {
	raw = stripFences(raw)

	var parsed narrativeJSON
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return models.RiskNarrative{}, fmt.Errorf("%w: parsing narrative JSON: %v", ai.ErrInvalidResponse, err)
	}

	if strings.TrimSpace(parsed.Interpretation) == "" ||
		strings.TrimSpace(parsed.Visualization) == "" ||
		strings.TrimSpace(parsed.NextSteps) == "" {
		return models.RiskNarrative{}, fmt.Errorf("%w: narrative has empty fields", ai.ErrInvalidResponse)
	}

	return models.RiskNarrative{
		Interpretation: parsed.Interpretation,
		Visualization:  parsed.Visualization,
		NextSteps:      parsed.NextSteps,
	}, nil
}

// stripFences removes accidental markdown fences around the JSON body.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

// wrapProviderError maps transport failures onto the ai sentinel errors
// so handlers can dispatch with errors.Is.
func wrapProviderError(err error) error {
	switch {
	case errors.Is(err, ai.ErrInferenceTimeout),
		errors.Is(err, ai.ErrProviderUnavailable),
		errors.Is(err, ai.ErrInvalidResponse):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ai.ErrInferenceTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %v", ai.ErrProviderUnavailable, err)
	}
}
