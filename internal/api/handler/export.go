package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	mw "github.com/ocuscreen/ocuscreen/internal/api/middleware"
	"github.com/ocuscreen/ocuscreen/internal/api/response"
	"github.com/ocuscreen/ocuscreen/internal/export"
	"github.com/ocuscreen/ocuscreen/internal/store"
)

// NewExportScreeningHandler returns an http.HandlerFunc for
// GET /api/v1/screenings/{screeningID}/export. The report is rendered
// into a buffer first so a template failure yields a clean error
// response instead of a truncated document.
func NewExportScreeningHandler(svc Getter, exporter export.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "screeningID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"screeningID must be a valid UUID", nil)
			return
		}

		sc, err := svc.Get(r.Context(), id, tenantID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "SCREENING_NOT_FOUND",
					"Screening not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		var buf bytes.Buffer
		if err := exporter.Render(&buf, sc); err != nil {
			response.Error(w, http.StatusInternalServerError, "EXPORT_FAILED",
				"Failed to render the screening report", nil)
			return
		}

		w.Header().Set("Content-Type", exporter.ContentType())
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", exporter.Filename(sc)))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
