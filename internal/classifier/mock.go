package classifier

import (
	"context"

	"github.com/ocuscreen/ocuscreen/pkg/models"
)

// MockClassifier satisfies Classifier for development and tests.
type MockClassifier struct {
	Name_        string
	ClassifyFunc func(ctx context.Context, image []byte, contentType string) ([]models.ClassificationPair, error)
	ReadyFunc    func(ctx context.Context) error
}

func (m *MockClassifier) Name() string {
	if m.Name_ == "" {
		return "mock"
	}
	return m.Name_
}

func (m *MockClassifier) Classify(ctx context.Context, image []byte, contentType string) ([]models.ClassificationPair, error) {
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, image, contentType)
	}
	return []models.ClassificationPair{
		{Label: "Normal", Probability: 0.91},
		{Label: "Glaucoma", Probability: 0.09},
	}, nil
}

func (m *MockClassifier) Ready(ctx context.Context) error {
	if m.ReadyFunc != nil {
		return m.ReadyFunc(ctx)
	}
	return nil
}

// NewMockClassifier returns a MockClassifier with default canned output.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

var _ Classifier = (*MockClassifier)(nil)
