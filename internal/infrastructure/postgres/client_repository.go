package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementa ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	pool *pgxpool.Pool
}

// NewClientRepository construye el repositorio.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	const q = `
		INSERT INTO clients (id, organization_id, name, tax_id, email, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.pool.Exec(ctx, q,
		client.ID, client.OrganizationID, client.Name,
		nullIfEmpty(client.TaxID), nullIfEmpty(client.Email), client.IsActive,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id, organizationID string) (*entity.Client, error) {
	const q = `
		SELECT id, organization_id, name, COALESCE(tax_id, ''), COALESCE(email, ''), is_active, created_at, updated_at
		FROM clients WHERE id = $1 AND organization_id = $2`
	var c entity.Client
	err := r.pool.QueryRow(ctx, q, id, organizationID).Scan(
		&c.ID, &c.OrganizationID, &c.Name, &c.TaxID, &c.Email, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// Exists consulta ligera para la validación de órdenes.
func (r *ClientRepo) Exists(ctx context.Context, id, organizationID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1 AND organization_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, id, organizationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("client exists: %w", err)
	}
	return exists, nil
}
