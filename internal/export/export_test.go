package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ocuscreen/ocuscreen/internal/export"
	"github.com/ocuscreen/ocuscreen/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScreening() *models.Screening {
	return &models.Screening{
		ID:             uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"),
		TenantID:       uuid.New(),
		EffectiveLabel: "Glaucoma",
		EffectiveScore: 0.82,
		Percent:        82,
		Category:       models.RiskPositive,
		Interpretation: "The screening flagged possible signs of glaucoma.",
		Visualization:  "Bar chart of per-label probabilities.",
		NextSteps:      "Book an appointment with an ophthalmologist.",
		Provider:       "mock",
		Model:          "mock-v1",
		Breakdown: []models.ClassificationPair{
			{Label: "Glaucoma", Probability: 0.82},
			{Label: "Normal", Probability: 0.18},
		},
		CreatedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestRender_ContainsNarrativeAndBreakdown(t *testing.T) {
	e, err := export.NewHTMLExporter()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, sampleScreening()))

	out := buf.String()
	assert.Contains(t, out, "The screening flagged possible signs of glaucoma.")
	assert.Contains(t, out, "Bar chart of per-label probabilities.")
	assert.Contains(t, out, "Book an appointment with an ophthalmologist.")
	assert.Contains(t, out, "Glaucoma")
	assert.Contains(t, out, "82.0%")
	assert.Contains(t, out, "18.0%")
	assert.Contains(t, out, "not a medical diagnosis")
}

func TestRender_EscapesHTMLInNarrative(t *testing.T) {
	e, err := export.NewHTMLExporter()
	require.NoError(t, err)

	s := sampleScreening()
	s.Interpretation = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, s))
	assert.NotContains(t, buf.String(), "<script>")
}

func TestFilename(t *testing.T) {
	e, err := export.NewHTMLExporter()
	require.NoError(t, err)

	s := sampleScreening()
	assert.Equal(t, "screening-aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee.html", e.Filename(s))
	assert.Contains(t, e.ContentType(), "text/html")
}
