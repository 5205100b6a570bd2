package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// SaleOrderRepository define el puerto de persistencia de órdenes de venta.
// Create y CreateDetails se invocan dentro de la transacción de emisión
// (misma tx que el avance del correlativo); las consultas usan el pool.
type SaleOrderRepository interface {
	Create(ctx context.Context, order *entity.SaleOrder) error
	CreateDetails(ctx context.Context, details []*entity.SaleOrderDetail) error

	GetByID(ctx context.Context, id, organizationID string) (*entity.SaleOrder, error)
	GetDetailsByOrderID(ctx context.Context, orderID string) ([]*entity.SaleOrderDetail, error)

	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.SaleOrder, error)
	ListByClient(ctx context.Context, clientID, organizationID string) ([]*entity.SaleOrder, error)
	ListBySalePoint(ctx context.Context, salePointID, organizationID string) ([]*entity.SaleOrder, error)
	ListByCreator(ctx context.Context, createdBy, organizationID string) ([]*entity.SaleOrder, error)

	// MarkVoided persiste la anulación: estado A y fecha de anulación.
	MarkVoided(ctx context.Context, id, organizationID string, reversalDate time.Time) error
}
