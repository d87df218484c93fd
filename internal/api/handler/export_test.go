package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	mw "github.com/ocuscreen/ocuscreen/internal/api/middleware"
	"github.com/ocuscreen/ocuscreen/internal/export"
	"github.com/ocuscreen/ocuscreen/internal/store"
	"github.com/ocuscreen/ocuscreen/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingExporter struct{}

func (failingExporter) Render(_ io.Writer, _ *models.Screening) error {
	return errors.New("template exploded")
}
func (failingExporter) ContentType() string                 { return "text/html; charset=utf-8" }
func (failingExporter) Filename(_ *models.Screening) string { return "report.html" }

func exportReq(t *testing.T, id uuid.UUID, tenantID uuid.UUID) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/screenings/"+id.String()+"/export", nil)
	r = r.WithContext(mw.SetTenantID(r.Context(), tenantID))
	return withURLParam(r, "screeningID", id.String())
}

func TestExportScreening_Success(t *testing.T) {
	id := uuid.New()
	tenantID := uuid.New()
	svc := &mockGetter{fn: func(_ context.Context, _, _ uuid.UUID) (*models.Screening, error) {
		return storedScreening(id, tenantID), nil
	}}
	exporter, err := export.NewHTMLExporter()
	require.NoError(t, err)
	h := NewExportScreeningHandler(svc, exporter)

	rec := httptest.NewRecorder()
	h(rec, exportReq(t, id, tenantID))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), id.String())
	assert.Contains(t, rec.Body.String(), "Eye Screening Report")
	assert.Contains(t, rec.Body.String(), "interpretation")
}

func TestExportScreening_NotFound(t *testing.T) {
	svc := &mockGetter{fn: func(_ context.Context, _, _ uuid.UUID) (*models.Screening, error) {
		return nil, store.ErrNotFound
	}}
	exporter, err := export.NewHTMLExporter()
	require.NoError(t, err)
	h := NewExportScreeningHandler(svc, exporter)

	rec := httptest.NewRecorder()
	h(rec, exportReq(t, uuid.New(), uuid.New()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SCREENING_NOT_FOUND", errCode(t, rec))
}

func TestExportScreening_RenderFailure(t *testing.T) {
	id := uuid.New()
	tenantID := uuid.New()
	svc := &mockGetter{fn: func(_ context.Context, _, _ uuid.UUID) (*models.Screening, error) {
		return storedScreening(id, tenantID), nil
	}}
	h := NewExportScreeningHandler(svc, failingExporter{})

	rec := httptest.NewRecorder()
	h(rec, exportReq(t, id, tenantID))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "EXPORT_FAILED", errCode(t, rec))
	// The error envelope is JSON, not a half-rendered document.
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}
