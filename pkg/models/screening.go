package models

import (
	"time"

	"github.com/google/uuid"
)

// RiskCategory is the coarse bucket that drives which narrative template
// is used. Derived purely from the effective label; never persisted raw.
type RiskCategory string

const (
	RiskPositive     RiskCategory = "positive"
	RiskNegative     RiskCategory = "negative"
	RiskInconclusive RiskCategory = "inconclusive"
)

// ClassificationPair is one (label, probability) entry from the external
// image classifier. Probability is in [0, 1]. Order within a prediction
// is whatever the classifier emitted; callers must not assume sorting.
type ClassificationPair struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// EffectiveResult is the single classification chosen to drive
// interpretation downstream. Score always equals the probability of the
// pair whose label was selected, and Label keeps its original casing.
type EffectiveResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// RiskNarrative is the structured output of the text-generation provider.
// Immutable once returned; displayed and exported, never re-derived.
type RiskNarrative struct {
	Interpretation string `json:"interpretation"`
	Visualization  string `json:"visualization"`
	NextSteps      string `json:"next_steps"`
}

// Screening is one completed screening run: the reduced classifier output
// plus the generated narrative, as stored and returned by the API.
type Screening struct {
	ID             uuid.UUID            `db:"id"              json:"id"`
	TenantID       uuid.UUID            `db:"tenant_id"       json:"tenant_id"`
	SessionID      string               `db:"session_id"      json:"session_id,omitempty"`
	EffectiveLabel string               `db:"effective_label" json:"effective_label"`
	EffectiveScore float64              `db:"effective_score" json:"effective_score"`
	Percent        int                  `db:"percent"         json:"percent"`
	Category       RiskCategory         `db:"category"        json:"category"`
	Interpretation string               `db:"interpretation"  json:"interpretation"`
	Visualization  string               `db:"visualization"   json:"visualization"`
	NextSteps      string               `db:"next_steps"      json:"next_steps"`
	Provider       string               `db:"provider"        json:"provider"`
	Model          string               `db:"model"           json:"model"`
	Breakdown      []ClassificationPair `db:"breakdown"       json:"breakdown"`
	CreatedAt      time.Time            `db:"created_at"      json:"created_at"`
}
