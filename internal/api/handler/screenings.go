package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	mw "github.com/ocuscreen/ocuscreen/internal/api/middleware"
	"github.com/ocuscreen/ocuscreen/internal/api/response"
	"github.com/ocuscreen/ocuscreen/internal/store"
	"github.com/ocuscreen/ocuscreen/pkg/models"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Getter fetches a single screening scoped to a tenant.
type Getter interface {
	Get(ctx context.Context, id, tenantID uuid.UUID) (*models.Screening, error)
}

// Lister returns a page of screenings plus the total count.
type Lister interface {
	List(ctx context.Context, filter store.ScreeningFilter) ([]*models.Screening, int, error)
}

// NewGetScreeningHandler returns an http.HandlerFunc for
// GET /api/v1/screenings/{screeningID}.
func NewGetScreeningHandler(svc Getter) http.HandlerFunc {
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

		response.JSON(w, sc)
	}
}

// NewListScreeningsHandler returns an http.HandlerFunc for
// GET /api/v1/screenings. Supports page, limit, and session_id query params.
func NewListScreeningsHandler(svc Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		page := queryInt(r, "page", 1)
		if page < 1 {
			page = 1
		}
		limit := queryInt(r, "limit", defaultPageLimit)
		if limit < 1 {
			limit = defaultPageLimit
		}
		if limit > maxPageLimit {
			limit = maxPageLimit
		}

		screenings, total, err := svc.List(r.Context(), store.ScreeningFilter{
			TenantID:  tenantID,
			SessionID: r.URL.Query().Get("session_id"),
			Page:      page,
			Limit:     limit,
		})
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		if screenings == nil {
			screenings = []*models.Screening{}
		}

		response.Collection(w, screenings, response.PaginationMeta{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasNext: page*limit < total,
		})
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
