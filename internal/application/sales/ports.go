package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de la transacción de emisión, con los
// repositorios de órdenes y contadores atados a la misma tx. El commit del
// callback es la unidad atómica: orden + detalles + avance del correlativo.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		orders repository.SaleOrderRepository,
		counters repository.SalePointDocumentTypeRepository,
	) error) error
}

// ReceiptData es el contenido del comprobante imprimible de una orden emitida.
type ReceiptData struct {
	OrganizationName string
	SalePointName    string
	Serial           string
	DocumentNumber   int64
	EmissionDate     time.Time
	ClientName       string
	Lines            []ReceiptLine
	SubjectAmount    decimal.Decimal
	VatAmount        decimal.Decimal
	SalesTotal       decimal.Decimal
	Remark           string
}

// ReceiptLine una línea del comprobante.
type ReceiptLine struct {
	Name         string
	Quantity     decimal.Decimal
	PriceWithVat decimal.Decimal
	LineTotal    decimal.Decimal
}

// ReceiptPDFGenerator genera la representación PDF del comprobante.
type ReceiptPDFGenerator interface {
	Generate(data ReceiptData) ([]byte, error)
}
