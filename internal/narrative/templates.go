// Package narrative turns an effective classification result into a
// structured risk narrative by prompting a text-generation provider with
// one of three category-bound templates.
package narrative

import "github.com/ocuscreen/ocuscreen/pkg/models"

// systemPrompt is shared by all three templates: the structural contract
// (three output fields) is identical regardless of category.
const systemPrompt = `You are a clinical screening assistant that explains eye-image classifier results to patients in plain language.
You never diagnose; you describe what an automated screening found and what a sensible next step is.

Respond ONLY with valid JSON matching this exact schema, no markdown fences, no preamble:
{
  "interpretation": "2-4 sentences interpreting the screening result for the patient",
  "visualization": "1-2 sentences captioning a bar chart of the classifier's per-label probabilities",
  "next_steps": "2-3 sentences of concrete recommended next steps"
}`

// Template is one category-bound narrative prompt. The instruction text
// differs per category; the output contract does not.
type Template struct {
	Category    models.RiskCategory
	Instruction string
}

var templates = map[models.RiskCategory]Template{
	models.RiskPositive: {
		Category: models.RiskPositive,
		Instruction: "The screening flagged signs consistent with glaucoma. " +
			"Explain calmly that this is a screening signal, not a diagnosis, " +
			"and that the confidence percentage reflects the classifier's certainty. " +
			"Next steps must include a prompt ophthalmologist visit.",
	},
	models.RiskNegative: {
		Category: models.RiskNegative,
		Instruction: "The screening found the image consistent with a healthy eye. " +
			"Explain what the confidence percentage means and note that screening " +
			"is not a substitute for routine eye exams. Next steps should cover " +
			"regular check-up cadence.",
	},
	models.RiskInconclusive: {
		Category: models.RiskInconclusive,
		Instruction: "The classifier's top result was neither of the labels this tool " +
			"screens for, so the outcome is inconclusive for glaucoma. Name the top " +
			"label and its confidence, explain why no risk call can be made, and " +
			"recommend a professional examination to follow up.",
	},
}

// TemplateFor returns the single template bound to category. Total: every
// category maps to exactly one template.
func TemplateFor(category models.RiskCategory) Template {
	if t, ok := templates[category]; ok {
		return t
	}
	return templates[models.RiskInconclusive]
}
