package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ocuscreen/ocuscreen/pkg/models"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// --- Tenants ---

func (s *PostgresStore) GetDefaultTenant(ctx context.Context) (*models.Tenant, error) {
	var t models.Tenant
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM tenants WHERE name = 'default' LIMIT 1`,
	).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get default tenant: %w", err)
	}
	return &t, nil
}

// --- API Keys ---

func (s *PostgresStore) GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, tenant_id, name, key_hash, key_prefix, scopes, last_used_at, deleted_at, created_at, updated_at
		 FROM api_keys WHERE key_prefix = $1 AND deleted_at IS NULL`, prefix)
	if err != nil {
		return nil, fmt.Errorf("get api key by prefix: %w", err)
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		var k models.APIKey
		if err := rows.Scan(&k.ID, &k.TenantID, &k.Name, &k.KeyHash, &k.KeyPrefix, &k.Scopes,
			&k.LastUsedAt, &k.DeletedAt, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, &k)
	}
	return keys, rows.Err()
}

func (s *PostgresStore) UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE api_keys SET last_used_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update api key last used: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO api_keys (id, tenant_id, name, key_hash, key_prefix, scopes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		key.ID, key.TenantID, key.Name, key.KeyHash, key.KeyPrefix, key.Scopes, key.CreatedAt, key.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create api key: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAPIKeys(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, tenant_id, name, key_hash, key_prefix, scopes, last_used_at, deleted_at, created_at, updated_at
		 FROM api_keys WHERE tenant_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		var k models.APIKey
		if err := rows.Scan(&k.ID, &k.TenantID, &k.Name, &k.KeyHash, &k.KeyPrefix, &k.Scopes,
			&k.LastUsedAt, &k.DeletedAt, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, &k)
	}
	return keys, rows.Err()
}

func (s *PostgresStore) RevokeAPIKey(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE api_keys SET deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`, id, tenantID)
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Screenings ---

func (s *PostgresStore) CreateScreening(ctx context.Context, sc *models.Screening) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO screenings (id, tenant_id, session_id, effective_label, effective_score, percent,
		   category, interpretation, visualization, next_steps, provider, model, breakdown, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		sc.ID, sc.TenantID, sc.SessionID, sc.EffectiveLabel, sc.EffectiveScore, sc.Percent,
		sc.Category, sc.Interpretation, sc.Visualization, sc.NextSteps, sc.Provider, sc.Model,
		sc.Breakdown, sc.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create screening: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetScreening(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*models.Screening, error) {
	var sc models.Screening
	err := s.pool.QueryRow(ctx,
		`SELECT id, tenant_id, session_id, effective_label, effective_score, percent,
		   category, interpretation, visualization, next_steps, provider, model, breakdown, created_at
		 FROM screenings WHERE id = $1 AND tenant_id = $2`, id, tenantID,
	).Scan(&sc.ID, &sc.TenantID, &sc.SessionID, &sc.EffectiveLabel, &sc.EffectiveScore, &sc.Percent,
		&sc.Category, &sc.Interpretation, &sc.Visualization, &sc.NextSteps, &sc.Provider, &sc.Model,
		&sc.Breakdown, &sc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get screening: %w", err)
	}
	return &sc, nil
}

func (s *PostgresStore) ListScreenings(ctx context.Context, filter ScreeningFilter) ([]*models.Screening, int, error) {
	conditions := "tenant_id = $1"
	args := []any{filter.TenantID}
	if filter.SessionID != "" {
		conditions += " AND session_id = $2"
		args = append(args, filter.SessionID)
	}

	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM screenings WHERE `+conditions, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count screenings: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(
		`SELECT id, tenant_id, session_id, effective_label, effective_score, percent,
		   category, interpretation, visualization, next_steps, provider, model, breakdown, created_at
		 FROM screenings WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		conditions, limit, offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list screenings: %w", err)
	}
	defer rows.Close()

	var screenings []*models.Screening
	for rows.Next() {
		var sc models.Screening
		if err := rows.Scan(&sc.ID, &sc.TenantID, &sc.SessionID, &sc.EffectiveLabel, &sc.EffectiveScore,
			&sc.Percent, &sc.Category, &sc.Interpretation, &sc.Visualization, &sc.NextSteps,
			&sc.Provider, &sc.Model, &sc.Breakdown, &sc.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan screening: %w", err)
		}
		screenings = append(screenings, &sc)
	}
	return screenings, total, rows.Err()
}

// isDuplicateKeyError reports whether err is a Postgres unique violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
