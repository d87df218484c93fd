// Package store provides Postgres-backed persistence for tenants, API
// keys, and completed screenings.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ocuscreen/ocuscreen/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error
	GetDefaultTenant(ctx context.Context) (*models.Tenant, error)

	GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	ListAPIKeys(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error)
	RevokeAPIKey(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error

	CreateScreening(ctx context.Context, s *models.Screening) error
	GetScreening(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*models.Screening, error)
	ListScreenings(ctx context.Context, filter ScreeningFilter) ([]*models.Screening, int, error)
}

// ScreeningFilter narrows and paginates screening listings.
type ScreeningFilter struct {
	TenantID  uuid.UUID
	SessionID string
	Page      int
	Limit     int
}
