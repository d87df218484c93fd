// Package pipeline runs the screening chain end to end: classify the
// image, reduce the prediction set, generate the narrative, store the
// result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ocuscreen/ocuscreen/internal/cache"
	"github.com/ocuscreen/ocuscreen/internal/classifier"
	"github.com/ocuscreen/ocuscreen/internal/narrative"
	"github.com/ocuscreen/ocuscreen/internal/screening"
	"github.com/ocuscreen/ocuscreen/internal/store"
	"github.com/ocuscreen/ocuscreen/internal/submission"
	"github.com/ocuscreen/ocuscreen/pkg/models"
)

// ErrSuperseded is returned when a newer submission for the same session
// canceled this one; the stale result is discarded, never stored.
var ErrSuperseded = errors.New("submission superseded by a newer one")

const screeningCacheTTL = 10 * time.Minute

// SubmitParams holds validated parameters for one screening submission.
type SubmitParams struct {
	TenantID    uuid.UUID
	SessionID   string
	Image       []byte
	ContentType string
}

// Service runs the screening chain: classify, reduce, narrate, store.
// The chain is strictly sequential per submission; the narrative request
// is only issued once classification output has been reduced.
type Service struct {
	classifier        classifier.Classifier
	generator         *narrative.Generator
	store             store.Store
	cache             cache.Cache
	tracker           *submission.Tracker
	classifierTimeout time.Duration
}

// NewService creates a screening Service.
func NewService(cl classifier.Classifier, gen *narrative.Generator, st store.Store, ca cache.Cache, tr *submission.Tracker, classifierTimeout time.Duration) *Service {
	return &Service{
		classifier:        cl,
		generator:         gen,
		store:             st,
		cache:             ca,
		tracker:           tr,
		classifierTimeout: classifierTimeout,
	}
}

// Submit runs one full screening chain. A newer submission for the same
// session cancels this one mid-flight, and a canceled chain reports
// ErrSuperseded instead of a partial result.
func (s *Service) Submit(ctx context.Context, p SubmitParams) (*models.Screening, error) {
	session := sessionKey(p.TenantID, p.SessionID)
	ctx, token := s.tracker.Begin(ctx, session)
	defer s.tracker.Finish(token)

	classCtx, cancel := context.WithTimeout(ctx, s.classifierTimeout)
	pairs, err := s.classifier.Classify(classCtx, p.Image, p.ContentType)
	cancel()
	if err != nil {
		return nil, s.chainErr(token, err)
	}
	// Reduce's precondition: a non-empty pair set. The classifier backend
	// enforces this on the wire; guard here for injected implementations.
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: empty prediction set", classifier.ErrInvalidPrediction)
	}

	effective := screening.Reduce(pairs)

	result, err := s.generator.Generate(ctx, effective)
	if err != nil {
		return nil, s.chainErr(token, err)
	}

	sc := &models.Screening{
		ID:             uuid.New(),
		TenantID:       p.TenantID,
		SessionID:      p.SessionID,
		EffectiveLabel: effective.Label,
		EffectiveScore: effective.Score,
		Percent:        result.Percent,
		Category:       result.Category,
		Interpretation: result.Narrative.Interpretation,
		Visualization:  result.Narrative.Visualization,
		NextSteps:      result.Narrative.NextSteps,
		Provider:       result.Provider,
		Model:          result.Model,
		Breakdown:      pairs,
		CreatedAt:      time.Now().UTC(),
	}

	// Never persist a result that lost the race to a newer submission.
	if !s.tracker.Current(token) {
		return nil, ErrSuperseded
	}
	if err := s.store.CreateScreening(ctx, sc); err != nil {
		return nil, fmt.Errorf("storing screening: %w", err)
	}

	// Best-effort read cache; a cache failure never fails the submission.
	_ = s.cache.SetScreening(context.WithoutCancel(ctx), sc, screeningCacheTTL)

	return sc, nil
}

// Get fetches one screening, trying the read cache before Postgres.
func (s *Service) Get(ctx context.Context, id, tenantID uuid.UUID) (*models.Screening, error) {
	if cached, found, err := s.cache.GetScreening(ctx, id); err == nil && found {
		if cached.TenantID == tenantID {
			return cached, nil
		}
		return nil, store.ErrNotFound
	}

	sc, err := s.store.GetScreening(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetScreening(ctx, sc, screeningCacheTTL)
	return sc, nil
}

// List returns a page of screenings for a tenant, newest first.
func (s *Service) List(ctx context.Context, filter store.ScreeningFilter) ([]*models.Screening, int, error) {
	return s.store.ListScreenings(ctx, filter)
}

// chainErr converts a mid-chain failure into ErrSuperseded when a newer
// submission canceled this one; otherwise the original error stands.
func (s *Service) chainErr(token submission.Token, err error) error {
	if !s.tracker.Current(token) {
		return ErrSuperseded
	}
	return err
}

// sessionKey scopes session identifiers per tenant. Submissions without
// a session id never supersede each other.
func sessionKey(tenantID uuid.UUID, sessionID string) string {
	if sessionID == "" {
		return tenantID.String() + ":" + uuid.NewString()
	}
	return tenantID.String() + ":" + sessionID
}
