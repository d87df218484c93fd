// Package handler holds the HTTP handlers for the screening API. Each
// handler depends on a narrow interface so tests can inject fakes.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/ocuscreen/ocuscreen/internal/ai"
	mw "github.com/ocuscreen/ocuscreen/internal/api/middleware"
	"github.com/ocuscreen/ocuscreen/internal/api/response"
	"github.com/ocuscreen/ocuscreen/internal/classifier"
	"github.com/ocuscreen/ocuscreen/internal/pipeline"
	"github.com/ocuscreen/ocuscreen/pkg/models"
)

const maxSessionIDLen = 128

// Submitter runs one screening submission end to end.
type Submitter interface {
	Submit(ctx context.Context, p pipeline.SubmitParams) (*models.Screening, error)
}

// NewCreateScreeningHandler returns an http.HandlerFunc for
// POST /api/v1/screenings. The request is multipart/form-data with an
// "image" file part and an optional "session_id" field.
func NewCreateScreeningHandler(svc Submitter, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				response.Error(w, http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE",
					"Uploaded image exceeds the size limit", nil)
				return
			}
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Request body must be multipart/form-data", nil)
			return
		}

		file, _, err := r.FormFile("image")
		if err != nil {
			response.Error(w, http.StatusBadRequest, "NO_IMAGE",
				"Missing image file part", nil)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Failed to read uploaded image", nil)
			return
		}
		if len(data) == 0 {
			response.Error(w, http.StatusBadRequest, "NO_IMAGE",
				"Uploaded image is empty", nil)
			return
		}

		contentType, err := classifier.SniffImage(data)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "UNSUPPORTED_IMAGE",
				"Image must be a valid JPEG or PNG", nil)
			return
		}

		sessionID := r.FormValue("session_id")
		if len(sessionID) > maxSessionIDLen {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"session_id is too long", nil)
			return
		}

		result, err := svc.Submit(r.Context(), pipeline.SubmitParams{
			TenantID:    tenantID,
			SessionID:   sessionID,
			Image:       data,
			ContentType: contentType,
		})
		if err != nil {
			writeSubmitError(w, err)
			return
		}

		response.Created(w, result)
	}
}

// writeSubmitError maps screening-chain failures to API error codes.
func writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrSuperseded):
		response.Error(w, http.StatusConflict, "SUPERSEDED",
			"A newer submission for this session replaced this one", nil)
	case errors.Is(err, classifier.ErrModelNotReady):
		response.Error(w, http.StatusServiceUnavailable, "MODEL_NOT_READY",
			"The classification model is not ready", nil)
	case errors.Is(err, classifier.ErrTimeout):
		response.Error(w, http.StatusGatewayTimeout, "CLASSIFIER_TIMEOUT",
			"Classification took too long and was cancelled", nil)
	case errors.Is(err, classifier.ErrUnreachable):
		response.Error(w, http.StatusBadGateway, "CLASSIFIER_UNAVAILABLE",
			"The classification service is not available", nil)
	case errors.Is(err, classifier.ErrInvalidPrediction):
		response.Error(w, http.StatusBadGateway, "CLASSIFIER_INVALID_RESPONSE",
			"The classification service returned an unusable result", nil)
	case errors.Is(err, ai.ErrInferenceTimeout):
		response.Error(w, http.StatusGatewayTimeout, "AI_INFERENCE_TIMEOUT",
			"Narrative generation took too long and was cancelled", nil)
	case errors.Is(err, ai.ErrProviderUnavailable):
		response.Error(w, http.StatusBadGateway, "AI_PROVIDER_UNAVAILABLE",
			"The AI provider is not available", nil)
	case errors.Is(err, ai.ErrInvalidResponse):
		response.Error(w, http.StatusBadGateway, "AI_INVALID_RESPONSE",
			"The AI provider returned an unusable narrative", nil)
	default:
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}
