package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article representa un artículo del catálogo de ventas.
type Article struct {
	ID             string
	OrganizationID string
	Code           string // código único por organización
	Name           string
	Description    string
	RetailPrice    decimal.Decimal // precio de venta al público (IVA incluido)
	Cost           decimal.Decimal
	// TODO: la política fiscal por defecto ignora IsVatExempt y envía el 100% de cada
	// línea a monto afecto; falta definir con contabilidad si las líneas de artículos
	// exentos deben ir a ExemptAmount.
	IsVatExempt bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
