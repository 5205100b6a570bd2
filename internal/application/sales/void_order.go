package sales

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// VoidSaleOrderUseCase anula una orden emitida: estado A y fecha de anulación.
// Los montos quedan intactos y el correlativo consumido nunca se reusa.
type VoidSaleOrderUseCase struct {
	orders repository.SaleOrderRepository
	log    *logger.Logger
}

// NewVoidSaleOrderUseCase construye el caso de uso.
func NewVoidSaleOrderUseCase(orders repository.SaleOrderRepository, log *logger.Logger) *VoidSaleOrderUseCase {
	return &VoidSaleOrderUseCase{orders: orders, log: log}
}

// Void anula la orden. Solo órdenes emitidas pueden anularse (ErrConflict si no).
func (uc *VoidSaleOrderUseCase) Void(ctx context.Context, id, organizationID string) (*dto.SaleOrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id, organizationID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	if err := order.Void(now); err != nil {
		return nil, err
	}
	if err := uc.orders.MarkVoided(ctx, id, organizationID, now); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Int64("document_number", order.DocumentNumber).
		Msg("orden de venta anulada")

	return toOrderResponse(order, nil), nil
}
