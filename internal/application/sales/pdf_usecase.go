package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ReceiptPDFUseCase genera el comprobante PDF de una orden emitida
// (representación gráfica para impresión, no el DTE).
type ReceiptPDFUseCase struct {
	orders        repository.SaleOrderRepository
	counters      repository.SalePointDocumentTypeRepository
	organizations repository.OrganizationRepository
	clients       repository.ClientRepository
	salePoints    repository.SalePointRepository
	articles      repository.ArticleRepository
	generator     ReceiptPDFGenerator
}

// NewReceiptPDFUseCase construye el caso de uso.
func NewReceiptPDFUseCase(
	orders repository.SaleOrderRepository,
	counters repository.SalePointDocumentTypeRepository,
	organizations repository.OrganizationRepository,
	clients repository.ClientRepository,
	salePoints repository.SalePointRepository,
	articles repository.ArticleRepository,
	generator ReceiptPDFGenerator,
) *ReceiptPDFUseCase {
	return &ReceiptPDFUseCase{
		orders:        orders,
		counters:      counters,
		organizations: organizations,
		clients:       clients,
		salePoints:    salePoints,
		articles:      articles,
		generator:     generator,
	}
}

// Generate arma los datos del comprobante y devuelve los bytes del PDF.
func (uc *ReceiptPDFUseCase) Generate(ctx context.Context, orderID, organizationID string) ([]byte, error) {
	order, err := uc.orders.GetByID(ctx, orderID, organizationID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	details, err := uc.orders.GetDetailsByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("cargar detalles: %w", err)
	}

	data := ReceiptData{
		DocumentNumber: order.DocumentNumber,
		EmissionDate:   order.EmissionDate,
		SubjectAmount:  order.SubjectAmountSum,
		VatAmount:      order.CollectedTaxAmountSum,
		SalesTotal:     order.SalesTotal,
		Remark:         order.Remark,
	}

	if org, err := uc.organizations.GetByID(ctx, organizationID); err == nil && org != nil {
		data.OrganizationName = org.Name
	}
	if client, err := uc.clients.GetByID(ctx, order.ClientID, organizationID); err == nil && client != nil {
		data.ClientName = client.Name
	}
	if sp, err := uc.salePoints.GetByID(ctx, order.SalePointID, organizationID); err == nil && sp != nil {
		data.SalePointName = sp.Name
	}
	if order.SalePointDocumentTypeID != "" {
		if counter, err := uc.counters.GetByID(ctx, order.SalePointDocumentTypeID, organizationID); err == nil && counter != nil {
			data.Serial = counter.Serial
		}
	}

	data.Lines = make([]ReceiptLine, 0, len(details))
	for _, d := range details {
		name := d.AlternativeName
		if name == "" {
			if article, err := uc.articles.GetByID(ctx, d.ArticleID, organizationID); err == nil && article != nil {
				name = article.Name
			}
		}
		data.Lines = append(data.Lines, ReceiptLine{
			Name:         name,
			Quantity:     d.Quantity,
			PriceWithVat: d.PriceWithVat,
			LineTotal:    d.SubjectAmountWithVat,
		})
	}

	return uc.generator.Generate(data)
}
