package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
)

// CounterHandler administra las configuraciones de correlativo. Crear y
// actualizar se restringen a admin vía RequireRole en el router.
type CounterHandler struct {
	uc *sales.CounterUseCase
}

// NewCounterHandler construye el handler.
func NewCounterHandler(uc *sales.CounterUseCase) *CounterHandler {
	return &CounterHandler{uc: uc}
}

// Create registra una configuración de numeración.
// POST /api/counters
func (h *CounterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCounterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	counter, err := h.uc.Create(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(counter)
}

// GetByID devuelve una configuración.
// GET /api/counters/:id
func (h *CounterHandler) GetByID(c *fiber.Ctx) error {
	counter, err := h.uc.GetByID(c.Context(), c.Params("id"), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(counter)
}

// List lista las configuraciones de la organización.
// GET /api/counters
func (h *CounterHandler) List(c *fiber.Ctx) error {
	counters, err := h.uc.ListByOrganization(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(counters)
}

// ListBySalePoint lista los tipos de documento configurados para un punto de venta.
// GET /api/counters/sale-point/:salePointId
func (h *CounterHandler) ListBySalePoint(c *fiber.Ctx) error {
	counters, err := h.uc.ListBySalePoint(c.Context(), c.Params("salePointId"), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(counters)
}

// Update modifica el rango autorizado o la serie.
// PUT /api/counters/:id
func (h *CounterHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCounterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	counter, err := h.uc.Update(c.Context(), c.Params("id"), GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(counter)
}
