package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// SaleOrderQueries expone las consultas de órdenes emitidas: por id con detalle,
// por organización, por cliente, por punto de venta y por vendedor.
type SaleOrderQueries struct {
	orders repository.SaleOrderRepository
}

// NewSaleOrderQueries construye el caso de uso de consultas.
func NewSaleOrderQueries(orders repository.SaleOrderRepository) *SaleOrderQueries {
	return &SaleOrderQueries{orders: orders}
}

// GetByID devuelve la orden con su detalle completo.
func (q *SaleOrderQueries) GetByID(ctx context.Context, id, organizationID string) (*dto.SaleOrderResponse, error) {
	order, err := q.orders.GetByID(ctx, id, organizationID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	details, err := q.orders.GetDetailsByOrderID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cargar detalles: %w", err)
	}
	return toOrderResponse(order, details), nil
}

// ListByOrganization lista todas las órdenes de la organización.
func (q *SaleOrderQueries) ListByOrganization(ctx context.Context, organizationID string) ([]dto.SaleOrderResponse, error) {
	orders, err := q.orders.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return toOrderList(orders), nil
}

// ListByClient lista las ventas de un cliente.
func (q *SaleOrderQueries) ListByClient(ctx context.Context, clientID, organizationID string) ([]dto.SaleOrderResponse, error) {
	orders, err := q.orders.ListByClient(ctx, clientID, organizationID)
	if err != nil {
		return nil, err
	}
	return toOrderList(orders), nil
}

// ListBySalePoint lista las ventas de un punto de venta.
func (q *SaleOrderQueries) ListBySalePoint(ctx context.Context, salePointID, organizationID string) ([]dto.SaleOrderResponse, error) {
	orders, err := q.orders.ListBySalePoint(ctx, salePointID, organizationID)
	if err != nil {
		return nil, err
	}
	return toOrderList(orders), nil
}

// ListByCreator lista las ventas creadas por un usuario (para "mis ventas" el
// handler pasa el usuario autenticado).
func (q *SaleOrderQueries) ListByCreator(ctx context.Context, createdBy, organizationID string) ([]dto.SaleOrderResponse, error) {
	orders, err := q.orders.ListByCreator(ctx, createdBy, organizationID)
	if err != nil {
		return nil, err
	}
	return toOrderList(orders), nil
}

func toOrderList(orders []*entity.SaleOrder) []dto.SaleOrderResponse {
	out := make([]dto.SaleOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toOrderResponse(o, nil))
	}
	return out
}
