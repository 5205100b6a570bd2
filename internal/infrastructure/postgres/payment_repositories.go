package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.PaymentTermRepository = (*PaymentTermRepo)(nil)
var _ repository.PaymentFormRepository = (*PaymentFormRepo)(nil)

// PaymentTermRepo implementa PaymentTermRepository sobre PostgreSQL.
type PaymentTermRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentTermRepository construye el repositorio.
func NewPaymentTermRepository(pool *pgxpool.Pool) *PaymentTermRepo {
	return &PaymentTermRepo{pool: pool}
}

func (r *PaymentTermRepo) Create(ctx context.Context, pt *entity.PaymentTerm) error {
	if pt.ID == "" {
		pt.ID = uuid.New().String()
	}
	const q = `
		INSERT INTO payment_terms (id, organization_id, name, days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.pool.Exec(ctx, q, pt.ID, pt.OrganizationID, pt.Name, pt.Days)
	if err != nil {
		return fmt.Errorf("insert payment_term: %w", err)
	}
	return nil
}

func (r *PaymentTermRepo) Exists(ctx context.Context, id, organizationID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM payment_terms WHERE id = $1 AND organization_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, id, organizationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("payment_term exists: %w", err)
	}
	return exists, nil
}

// PaymentFormRepo implementa PaymentFormRepository sobre PostgreSQL.
type PaymentFormRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentFormRepository construye el repositorio.
func NewPaymentFormRepository(pool *pgxpool.Pool) *PaymentFormRepo {
	return &PaymentFormRepo{pool: pool}
}

func (r *PaymentFormRepo) Create(ctx context.Context, pf *entity.PaymentForm) error {
	if pf.ID == "" {
		pf.ID = uuid.New().String()
	}
	const q = `
		INSERT INTO payment_forms (id, organization_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())`
	_, err := r.pool.Exec(ctx, q, pf.ID, pf.OrganizationID, pf.Name)
	if err != nil {
		return fmt.Errorf("insert payment_form: %w", err)
	}
	return nil
}

func (r *PaymentFormRepo) Exists(ctx context.Context, id, organizationID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM payment_forms WHERE id = $1 AND organization_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, id, organizationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("payment_form exists: %w", err)
	}
	return exists, nil
}
