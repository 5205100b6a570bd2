package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
)

// SaleOrderHandler maneja las peticiones HTTP de órdenes de venta (protegido).
type SaleOrderHandler struct {
	create  *sales.CreateSaleOrderUseCase
	queries *sales.SaleOrderQueries
	void    *sales.VoidSaleOrderUseCase
	receipt *sales.ReceiptPDFUseCase
}

// NewSaleOrderHandler construye el handler.
func NewSaleOrderHandler(
	create *sales.CreateSaleOrderUseCase,
	queries *sales.SaleOrderQueries,
	void *sales.VoidSaleOrderUseCase,
	receipt *sales.ReceiptPDFUseCase,
) *SaleOrderHandler {
	return &SaleOrderHandler{create: create, queries: queries, void: void, receipt: receipt}
}

// Create emite una orden de venta con correlativo asignado.
// POST /api/sale-orders
func (h *SaleOrderHandler) Create(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	userID := GetUserID(c)
	if organizationID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSaleOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.create.Create(c.Context(), organizationID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetByID obtiene una orden con su detalle completo.
// GET /api/sale-orders/:id
func (h *SaleOrderHandler) GetByID(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	order, err := h.queries.GetByID(c.Context(), id, organizationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// List lista todas las órdenes de la organización del token.
// GET /api/sale-orders
func (h *SaleOrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.queries.ListByOrganization(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// ListByClient lista las ventas de un cliente.
// GET /api/sale-orders/client/:clientId
func (h *SaleOrderHandler) ListByClient(c *fiber.Ctx) error {
	orders, err := h.queries.ListByClient(c.Context(), c.Params("clientId"), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// ListBySalePoint lista las ventas de un punto de venta.
// GET /api/sale-orders/sale-point/:salePointId
func (h *SaleOrderHandler) ListBySalePoint(c *fiber.Ctx) error {
	orders, err := h.queries.ListBySalePoint(c.Context(), c.Params("salePointId"), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// ListMine lista las ventas creadas por el usuario autenticado.
// GET /api/sale-orders/mine
func (h *SaleOrderHandler) ListMine(c *fiber.Ctx) error {
	orders, err := h.queries.ListByCreator(c.Context(), GetUserID(c), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// Void anula una orden emitida. El correlativo consumido no se reusa.
// POST /api/sale-orders/:id/void
func (h *SaleOrderHandler) Void(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	order, err := h.void.Void(c.Context(), id, GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// ReceiptPDF descarga el comprobante PDF de la orden.
// GET /api/sale-orders/:id/pdf
func (h *SaleOrderHandler) ReceiptPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	pdfBytes, err := h.receipt.Generate(c.Context(), id, GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}
