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

var _ repository.SalePointRepository = (*SalePointRepo)(nil)

// SalePointRepo implementa SalePointRepository sobre PostgreSQL.
type SalePointRepo struct {
	pool *pgxpool.Pool
}

// NewSalePointRepository construye el repositorio.
func NewSalePointRepository(pool *pgxpool.Pool) *SalePointRepo {
	return &SalePointRepo{pool: pool}
}

func (r *SalePointRepo) Create(ctx context.Context, sp *entity.SalePoint) error {
	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	const q = `
		INSERT INTO sale_points (id, organization_id, name, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.pool.Exec(ctx, q, sp.ID, sp.OrganizationID, sp.Name, nullIfEmpty(sp.Address), sp.IsActive)
	if err != nil {
		return fmt.Errorf("insert sale_point: %w", err)
	}
	return nil
}

func (r *SalePointRepo) GetByID(ctx context.Context, id, organizationID string) (*entity.SalePoint, error) {
	const q = `
		SELECT id, organization_id, name, COALESCE(address, ''), is_active, created_at, updated_at
		FROM sale_points WHERE id = $1 AND organization_id = $2`
	var sp entity.SalePoint
	err := r.pool.QueryRow(ctx, q, id, organizationID).Scan(
		&sp.ID, &sp.OrganizationID, &sp.Name, &sp.Address, &sp.IsActive, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale_point: %w", err)
	}
	return &sp, nil
}
