package classifier_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ocuscreen/ocuscreen/internal/classifier"
	"github.com/ocuscreen/ocuscreen/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClassifier_Classify_Success(t *testing.T) {
	var gotContentType, gotModel string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/predict", r.URL.Path)
		gotContentType = r.Header.Get("Content-Type")
		gotModel = r.URL.Query().Get("model")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "fundus-v2",
			"predictions": [
				{"label": "Glaucoma", "probability": 0.82},
				{"label": "Normal", "probability": 0.18}
			]
		}`))
	}))
	defer srv.Close()

	c := classifier.NewHTTPClassifier(srv.URL, "fundus-v2", 5*time.Second)
	pairs, err := c.Classify(context.Background(), []byte("fake-image"), "image/jpeg")
	require.NoError(t, err)

	require.Len(t, pairs, 2)
	// Order must match the wire order.
	assert.Equal(t, "Glaucoma", pairs[0].Label)
	assert.Equal(t, 0.82, pairs[0].Probability)
	assert.Equal(t, "Normal", pairs[1].Label)
	assert.Equal(t, "image/jpeg", gotContentType)
	assert.Equal(t, "fundus-v2", gotModel)
}

func TestHTTPClassifier_Classify_EmptyPredictions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"model": "fundus-v2", "predictions": []}`))
	}))
	defer srv.Close()

	c := classifier.NewHTTPClassifier(srv.URL, "fundus-v2", 5*time.Second)
	_, err := c.Classify(context.Background(), []byte("img"), "image/png")
	require.Error(t, err)
	assert.ErrorIs(t, err, classifier.ErrInvalidPrediction)
}

func TestHTTPClassifier_Classify_ProbabilityOutOfRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"predictions": [{"label": "Glaucoma", "probability": 1.7}]}`))
	}))
	defer srv.Close()

	c := classifier.NewHTTPClassifier(srv.URL, "fundus-v2", 5*time.Second)
	_, err := c.Classify(context.Background(), []byte("img"), "image/png")
	assert.ErrorIs(t, err, classifier.ErrInvalidPrediction)
}

func TestHTTPClassifier_Classify_ModelNotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := classifier.NewHTTPClassifier(srv.URL, "fundus-v2", 5*time.Second)
	_, err := c.Classify(context.Background(), []byte("img"), "image/png")
	assert.ErrorIs(t, err, classifier.ErrModelNotReady)
}

func TestHTTPClassifier_Classify_Unreachable(t *testing.T) {
	c := classifier.NewHTTPClassifier("http://127.0.0.1:1", "fundus-v2", time.Second)
	_, err := c.Classify(context.Background(), []byte("img"), "image/png")
	assert.ErrorIs(t, err, classifier.ErrUnreachable)
}

func TestHTTPClassifier_Ready(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models/fundus-v2" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := classifier.NewHTTPClassifier(srv.URL, "fundus-v2", 5*time.Second)
	assert.NoError(t, c.Ready(context.Background()))

	missing := classifier.NewHTTPClassifier(srv.URL, "other-model", 5*time.Second)
	assert.ErrorIs(t, missing.Ready(context.Background()), classifier.ErrModelNotReady)
}

func TestNew_Backends(t *testing.T) {
	c, err := classifier.New(config.ClassifierConfig{Backend: "mock"})
	require.NoError(t, err)
	assert.Equal(t, "mock", c.Name())

	c, err = classifier.New(config.ClassifierConfig{
		Backend: "http", BaseURL: "http://localhost:8501", Model: "fundus-v2", Timeout: time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "http", c.Name())

	_, err = classifier.New(config.ClassifierConfig{Backend: "grpc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown classifier backend")
}
