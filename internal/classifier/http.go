package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/ocuscreen/ocuscreen/pkg/models"
)

// HTTPClassifier calls a remote model-serving endpoint over HTTP.
type HTTPClassifier struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewHTTPClassifier creates a classifier backed by a model server.
func NewHTTPClassifier(baseURL, model string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClassifier) Name() string { return "http" }

type predictResponse struct {
	Model       string `json:"model"`
	Predictions []struct {
		Label       string  `json:"label"`
		Probability float64 `json:"probability"`
	} `json:"predictions"`
}

// Classify posts the raw image to the model server and returns its
// predictions in the order they were emitted.
func (c *HTTPClassifier) Classify(ctx context.Context, image []byte, contentType string) ([]models.ClassificationPair, error) {
	u := fmt.Sprintf("%s/v1/predict?%s", c.baseURL, url.Values{"model": {c.model}}.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, fmt.Errorf("%w: status %d", ErrModelNotReady, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrInvalidPrediction, resp.StatusCode)
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrInvalidPrediction, err)
	}

	if len(parsed.Predictions) == 0 {
		return nil, fmt.Errorf("%w: empty prediction set", ErrInvalidPrediction)
	}

	pairs := make([]models.ClassificationPair, 0, len(parsed.Predictions))
	for _, p := range parsed.Predictions {
		if p.Probability < 0 || p.Probability > 1 {
			return nil, fmt.Errorf("%w: probability %v out of range for label %q",
				ErrInvalidPrediction, p.Probability, p.Label)
		}
		pairs = append(pairs, models.ClassificationPair{Label: p.Label, Probability: p.Probability})
	}
	return pairs, nil
}

// Ready checks whether the configured model is loaded on the server.
func (c *HTTPClassifier) Ready(ctx context.Context) error {
	u := fmt.Sprintf("%s/v1/models/%s", c.baseURL, url.PathEscape(c.model))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrModelNotReady, resp.StatusCode)
	}
	return nil
}

// classifyError maps transport errors to sentinel errors.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

var _ Classifier = (*HTTPClassifier)(nil)
