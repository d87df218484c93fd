// Package classifier wraps the external image classification collaborator.
// The core never owns the model: it is served elsewhere, fully loaded, and
// this package only transports images in and (label, probability) pairs out.
package classifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/ocuscreen/ocuscreen/internal/config"
	"github.com/ocuscreen/ocuscreen/pkg/models"
)

// Sentinel errors for classifier failures.
var (
	ErrModelNotReady     = errors.New("classifier model not ready")
	ErrUnreachable       = errors.New("classifier unreachable")
	ErrTimeout           = errors.New("classifier timeout")
	ErrInvalidPrediction = errors.New("classifier returned invalid prediction")
)

// Classifier is the interface for obtaining classification pairs from an
// image. Implementations must preserve the prediction order the backend
// emitted; the reducer's tie-break rule is order-sensitive.
type Classifier interface {
	// Classify runs prediction on one in-memory image.
	Classify(ctx context.Context, image []byte, contentType string) ([]models.ClassificationPair, error)
	// Ready reports whether the model is loaded and able to predict.
	Ready(ctx context.Context) error
	// Name returns the backend identifier (e.g., "http", "mock").
	Name() string
}

// New constructs the classifier backend selected by config.
// Called once at server startup.
func New(cfg config.ClassifierConfig) (Classifier, error) {
	switch cfg.Backend {
	case "http":
		return NewHTTPClassifier(cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case "mock":
		return NewMockClassifier(), nil
	default:
		return nil, fmt.Errorf("unknown classifier backend %q: must be one of http, mock", cfg.Backend)
	}
}
