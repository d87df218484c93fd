// Package screening holds the decision logic that turns raw classifier
// output into an effective result and a risk category. Everything here is
// pure: no I/O, no state, deterministic for a given input.
package screening

import (
	"math"
	"strings"

	"github.com/ocuscreen/ocuscreen/pkg/models"
)

// The two labels the reducer knows about. Matching is case-insensitive;
// the original casing from the classifier is preserved in the result.
const (
	labelGlaucoma = "glaucoma"
	labelNormal   = "normal"
)

// Reduce selects one effective result from a non-empty set of
// classification pairs. Precedence, in order:
//
//  1. "glaucoma" wins if present and strictly more probable than
//     "normal" (a missing "normal" counts as probability 0).
//  2. Otherwise "normal" wins if present — including the exact-tie
//     case, which deliberately favors "normal".
//  3. If neither named label is present, the globally most probable
//     pair wins; exact ties go to the first pair in input order.
//
// Callers must not pass an empty slice; that is a precondition
// violation, not a case Reduce guards against.
func Reduce(pairs []models.ClassificationPair) models.EffectiveResult {
	glaucoma, hasGlaucoma := findLabel(pairs, labelGlaucoma)
	normal, hasNormal := findLabel(pairs, labelNormal)

	glaucomaProb := 0.0
	if hasGlaucoma {
		glaucomaProb = glaucoma.Probability
	}
	normalProb := 0.0
	if hasNormal {
		normalProb = normal.Probability
	}

	switch {
	case hasGlaucoma && glaucomaProb > normalProb:
		return models.EffectiveResult{Label: glaucoma.Label, Score: glaucoma.Probability}
	case hasNormal:
		return models.EffectiveResult{Label: normal.Label, Score: normal.Probability}
	default:
		top := maxPair(pairs)
		return models.EffectiveResult{Label: top.Label, Score: top.Probability}
	}
}

// Categorize maps an effective label to its risk category. Total: every
// label maps to exactly one category, unknown labels to inconclusive.
func Categorize(label string) models.RiskCategory {
	switch {
	case strings.EqualFold(label, labelGlaucoma):
		return models.RiskPositive
	case strings.EqualFold(label, labelNormal):
		return models.RiskNegative
	default:
		return models.RiskInconclusive
	}
}

// Percent converts a score in [0, 1] to an integer percentage using
// round-half-up: 0.754 → 75, 0.755 → 76.
func Percent(score float64) int {
	return int(math.Round(score * 100))
}

// findLabel returns the first pair whose label matches name
// case-insensitively.
func findLabel(pairs []models.ClassificationPair, name string) (models.ClassificationPair, bool) {
	for _, p := range pairs {
		if strings.EqualFold(p.Label, name) {
			return p, true
		}
	}
	return models.ClassificationPair{}, false
}

// maxPair returns the highest-probability pair, first-wins on ties.
func maxPair(pairs []models.ClassificationPair) models.ClassificationPair {
	top := pairs[0]
	for _, p := range pairs[1:] {
		if p.Probability > top.Probability {
			top = p
		}
	}
	return top
}
