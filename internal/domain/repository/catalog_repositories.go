package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// Puertos de catálogo. El CRUD completo de estas entidades vive fuera de este
// núcleo; la emisión de órdenes solo necesita lecturas (y Create para el seed).

type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id, organizationID string) (*entity.Client, error)
	Exists(ctx context.Context, id, organizationID string) (bool, error)
}

type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	// GetByID devuelve nil, nil si el artículo no existe.
	GetByID(ctx context.Context, id, organizationID string) (*entity.Article, error)
}

type SalePointRepository interface {
	Create(ctx context.Context, sp *entity.SalePoint) error
	GetByID(ctx context.Context, id, organizationID string) (*entity.SalePoint, error)
}

type DocumentTypeRepository interface {
	Create(ctx context.Context, dt *entity.DocumentType) error
	Exists(ctx context.Context, id, organizationID string) (bool, error)
}

type PaymentTermRepository interface {
	Create(ctx context.Context, pt *entity.PaymentTerm) error
	Exists(ctx context.Context, id, organizationID string) (bool, error)
}

type PaymentFormRepository interface {
	Create(ctx context.Context, pf *entity.PaymentForm) error
	Exists(ctx context.Context, id, organizationID string) (bool, error)
}
