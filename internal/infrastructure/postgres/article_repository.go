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

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementa ArticleRepository sobre PostgreSQL.
type ArticleRepo struct {
	pool *pgxpool.Pool
}

// NewArticleRepository construye el repositorio.
func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepo {
	return &ArticleRepo{pool: pool}
}

func (r *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	const q = `
		INSERT INTO articles (id, organization_id, code, name, description, retail_price, cost,
		                      is_vat_exempt, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.pool.Exec(ctx, q,
		article.ID, article.OrganizationID, article.Code, article.Name, nullIfEmpty(article.Description),
		article.RetailPrice, article.Cost, article.IsVatExempt, article.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate // code único por organización
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si el artículo no existe.
func (r *ArticleRepo) GetByID(ctx context.Context, id, organizationID string) (*entity.Article, error) {
	const q = `
		SELECT id, organization_id, code, name, COALESCE(description, ''), retail_price, cost,
		       is_vat_exempt, is_active, created_at, updated_at
		FROM articles WHERE id = $1 AND organization_id = $2`
	var a entity.Article
	err := r.pool.QueryRow(ctx, q, id, organizationID).Scan(
		&a.ID, &a.OrganizationID, &a.Code, &a.Name, &a.Description, &a.RetailPrice, &a.Cost,
		&a.IsVatExempt, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &a, nil
}
