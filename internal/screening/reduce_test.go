package screening_test

import (
	"testing"

	"github.com/ocuscreen/ocuscreen/internal/screening"
	"github.com/ocuscreen/ocuscreen/pkg/models"
	"github.com/stretchr/testify/assert"
)

func pair(label string, prob float64) models.ClassificationPair {
	return models.ClassificationPair{Label: label, Probability: prob}
}

func TestReduce_GlaucomaWinsWhenStrictlyHigher(t *testing.T) {
	result := screening.Reduce([]models.ClassificationPair{
		pair("Glaucoma", 0.82),
		pair("Normal", 0.18),
	})
	assert.Equal(t, "Glaucoma", result.Label)
	assert.Equal(t, 0.82, result.Score)
}

func TestReduce_NormalWinsWhenHigherOrEqual(t *testing.T) {
	result := screening.Reduce([]models.ClassificationPair{
		pair("Normal", 0.95),
		pair("Glaucoma", 0.05),
	})
	assert.Equal(t, "Normal", result.Label)
	assert.Equal(t, 0.95, result.Score)
}

func TestReduce_ExactTieFavorsNormal(t *testing.T) {
	result := screening.Reduce([]models.ClassificationPair{
		pair("Glaucoma", 0.5),
		pair("Normal", 0.5),
	})
	assert.Equal(t, "Normal", result.Label)
	assert.Equal(t, 0.5, result.Score)
}

func TestReduce_GlaucomaOnlyInput(t *testing.T) {
	result := screening.Reduce([]models.ClassificationPair{
		pair("glaucoma", 0.33),
	})
	assert.Equal(t, "glaucoma", result.Label)
	assert.Equal(t, 0.33, result.Score)
}

func TestReduce_NormalOnlyInput(t *testing.T) {
	result := screening.Reduce([]models.ClassificationPair{
		pair("NORMAL", 0.12),
		pair("Cataract", 0.88),
	})
	// "normal" beats unnamed labels regardless of their probability.
	assert.Equal(t, "NORMAL", result.Label)
	assert.Equal(t, 0.12, result.Score)
}

func TestReduce_CaseInsensitiveLookupPreservesCasing(t *testing.T) {
	result := screening.Reduce([]models.ClassificationPair{
		pair("GLAUCOMA", 0.7),
		pair("normal", 0.3),
	})
	assert.Equal(t, "GLAUCOMA", result.Label)
}

func TestReduce_NeitherNamedLabel_PicksGlobalMax(t *testing.T) {
	result := screening.Reduce([]models.ClassificationPair{
		pair("Cataract", 0.60),
		pair("Diabetic Retinopathy", 0.40),
	})
	assert.Equal(t, "Cataract", result.Label)
	assert.Equal(t, 0.60, result.Score)
}

func TestReduce_NeitherNamedLabel_TieGoesToFirstInOrder(t *testing.T) {
	result := screening.Reduce([]models.ClassificationPair{
		pair("Cataract", 0.45),
		pair("Myopia", 0.45),
		pair("Drusen", 0.10),
	})
	assert.Equal(t, "Cataract", result.Label)
}

func TestReduce_SingleUnknownLabel(t *testing.T) {
	result := screening.Reduce([]models.ClassificationPair{
		pair("Cataract", 0.60),
	})
	assert.Equal(t, "Cataract", result.Label)
	assert.Equal(t, 0.60, result.Score)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		label string
		want  models.RiskCategory
	}{
		{"glaucoma", models.RiskPositive},
		{"Glaucoma", models.RiskPositive},
		{"GLAUCOMA", models.RiskPositive},
		{"normal", models.RiskNegative},
		{"Normal", models.RiskNegative},
		{"NORMAL", models.RiskNegative},
		{"Cataract", models.RiskInconclusive},
		{"", models.RiskInconclusive},
		{"glaucoma ", models.RiskInconclusive}, // exact match only, no trimming
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, screening.Categorize(tt.label))
		})
	}
}

func TestPercent_RoundHalfUp(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{0.754, 75},
		{0.755, 76},
		{0.0, 0},
		{1.0, 100},
		{0.005, 1},
		{0.82, 82},
		{0.95, 95},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, screening.Percent(tt.score), "score %v", tt.score)
	}
}
