package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementa OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository construye el repositorio.
func NewOrganizationRepository(pool *pgxpool.Pool) *OrganizationRepo {
	return &OrganizationRepo{pool: pool}
}

func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	if org.ID == "" {
		org.ID = uuid.New().String()
	}
	const q = `
		INSERT INTO organizations (id, name, tax_id, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())`
	_, err := r.pool.Exec(ctx, q, org.ID, org.Name, nullIfEmpty(org.TaxID))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	const q = `
		SELECT id, name, COALESCE(tax_id, ''), created_at, updated_at
		FROM organizations WHERE id = $1`
	var org entity.Organization
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&org.ID, &org.Name, &org.TaxID, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &org, nil
}
