package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.DocumentTypeRepository = (*DocumentTypeRepo)(nil)

// DocumentTypeRepo implementa DocumentTypeRepository sobre PostgreSQL.
type DocumentTypeRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentTypeRepository construye el repositorio.
func NewDocumentTypeRepository(pool *pgxpool.Pool) *DocumentTypeRepo {
	return &DocumentTypeRepo{pool: pool}
}

func (r *DocumentTypeRepo) Create(ctx context.Context, dt *entity.DocumentType) error {
	if dt.ID == "" {
		dt.ID = uuid.New().String()
	}
	const q = `
		INSERT INTO document_types (id, organization_id, code, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.pool.Exec(ctx, q, dt.ID, dt.OrganizationID, dt.Code, dt.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document_type: %w", err)
	}
	return nil
}

func (r *DocumentTypeRepo) Exists(ctx context.Context, id, organizationID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM document_types WHERE id = $1 AND organization_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, id, organizationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("document_type exists: %w", err)
	}
	return exists, nil
}
