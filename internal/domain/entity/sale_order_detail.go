package entity

import "github.com/shopspring/decimal"

// SaleOrderDetail representa una línea de artículo de una orden de venta.
// Los montos fiscales se calculan con fiscal.ComputeLine al crear la línea;
// nunca se leen montos cacheados tras un cambio de cantidad o precio.
type SaleOrderDetail struct {
	ID        string
	OrderID   string
	ArticleID string

	Quantity    decimal.Decimal // > 0
	RetailPrice decimal.Decimal // precio de venta (con IVA) del catálogo al momento de la venta
	Price       decimal.Decimal // precio unitario sin IVA
	PriceWithVat decimal.Decimal // precio unitario con IVA
	Cost        decimal.Decimal // costo del artículo al momento de la venta

	SubjectAmount        decimal.Decimal // monto afecto de la línea (sin IVA)
	SubjectAmountWithVat decimal.Decimal // monto afecto con IVA
	ExemptAmount         decimal.Decimal
	NotSubjectAmount     decimal.Decimal

	AlternativeName        string // nombre alternativo mostrado en el documento
	OrderRelatedDocumentID string // referencia a otra orden (notas de crédito / devoluciones)
	OrganizationID         string
}
