package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// SalePointDocumentTypeRepository es el puerto de persistencia del contador de
// correlativos. Es la consulta crítica del flujo de emisión: sin fila de
// configuración no se puede numerar, y por tanto no se puede emitir, ningún
// documento para ese punto de venta y tipo.
type SalePointDocumentTypeRepository interface {
	Create(ctx context.Context, c *entity.SalePointDocumentType) error
	GetByID(ctx context.Context, id, organizationID string) (*entity.SalePointDocumentType, error)
	GetBySalePointAndDocumentType(ctx context.Context, salePointID, documentTypeID, organizationID string) (*entity.SalePointDocumentType, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.SalePointDocumentType, error)
	ListBySalePoint(ctx context.Context, salePointID, organizationID string) ([]*entity.SalePointDocumentType, error)
	Update(ctx context.Context, c *entity.SalePointDocumentType) error

	// GetForAllocation lee la fila del contador adquiriendo su bloqueo de fila
	// (SELECT ... FOR UPDATE). Debe llamarse dentro de la transacción de emisión:
	// el bloqueo serializa a los contendientes del mismo par (punto, tipo) y se
	// libera con el commit o rollback. Devuelve nil, nil si no hay configuración.
	GetForAllocation(ctx context.Context, salePointID, documentTypeID, organizationID string) (*entity.SalePointDocumentType, error)

	// CommitAdvance persiste el avance del contador con una actualización
	// condicionada (compare-and-swap sobre latest_number_issued = expected).
	// Devuelve ErrConcurrentModification si otra asignación ganó la carrera.
	CommitAdvance(ctx context.Context, id string, expected, candidate int64) error
}
