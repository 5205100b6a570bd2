package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ResolvedLine es una línea del request con el artículo cargado y el precio
// unitario (con IVA) ya resuelto: el del request si viene, si no el de catálogo.
type ResolvedLine struct {
	Article                *entity.Article
	Quantity               decimal.Decimal
	PriceWithVat           decimal.Decimal
	AlternativeName        string
	OrderRelatedDocumentID string
}

// Validator verifica, en orden, todas las referencias de un request de emisión
// y las restricciones numéricas de sus líneas. Todo-o-nada: el primer fallo
// corta con un ValidationError que nombra la referencia ofensora y el
// asignador de correlativos nunca llega a ejecutarse.
type Validator struct {
	clients       repository.ClientRepository
	salePoints    repository.SalePointRepository
	documentTypes repository.DocumentTypeRepository
	paymentTerms  repository.PaymentTermRepository
	paymentForms  repository.PaymentFormRepository
	articles      repository.ArticleRepository
	users         repository.UserRepository
}

// NewValidator construye el validador con los puertos de catálogo.
func NewValidator(
	clients repository.ClientRepository,
	salePoints repository.SalePointRepository,
	documentTypes repository.DocumentTypeRepository,
	paymentTerms repository.PaymentTermRepository,
	paymentForms repository.PaymentFormRepository,
	articles repository.ArticleRepository,
	users repository.UserRepository,
) *Validator {
	return &Validator{
		clients:       clients,
		salePoints:    salePoints,
		documentTypes: documentTypes,
		paymentTerms:  paymentTerms,
		paymentForms:  paymentForms,
		articles:      articles,
		users:         users,
	}
}

// ValidateRequest confirma que todas las entidades referenciadas existen y que
// las líneas cumplen cantidad > 0 y precio resoluble >= 0. Las lecturas son
// snapshots de solo-lectura; nada se bloquea aquí.
func (v *Validator) ValidateRequest(ctx context.Context, organizationID string, in dto.CreateSaleOrderRequest) ([]ResolvedLine, error) {
	if in.ClientID == "" {
		return nil, domain.NewValidationError("clientId", "", "requerido")
	}
	if in.SalePointID == "" {
		return nil, domain.NewValidationError("salePointId", "", "requerido")
	}
	if in.DocumentTypeID == "" {
		return nil, domain.NewValidationError("documentTypeId", "", "requerido")
	}
	if in.PaymentTermID == "" {
		return nil, domain.NewValidationError("paymentTermId", "", "requerido")
	}
	if len(in.Details) == 0 {
		return nil, domain.NewValidationError("details", "", "la orden debe tener al menos una línea")
	}

	ok, err := v.clients.Exists(ctx, in.ClientID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("validar cliente: %w", err)
	}
	if !ok {
		return nil, domain.NewValidationError("clientId", in.ClientID, "cliente no encontrado")
	}

	sp, err := v.salePoints.GetByID(ctx, in.SalePointID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("validar punto de venta: %w", err)
	}
	if sp == nil {
		return nil, domain.NewValidationError("salePointId", in.SalePointID, "punto de venta no encontrado")
	}

	ok, err = v.documentTypes.Exists(ctx, in.DocumentTypeID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("validar tipo de documento: %w", err)
	}
	if !ok {
		return nil, domain.NewValidationError("documentTypeId", in.DocumentTypeID, "tipo de documento no encontrado")
	}

	ok, err = v.paymentTerms.Exists(ctx, in.PaymentTermID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("validar condición de pago: %w", err)
	}
	if !ok {
		return nil, domain.NewValidationError("paymentTermId", in.PaymentTermID, "condición de pago no encontrada")
	}

	if in.PaymentFormID != "" {
		ok, err = v.paymentForms.Exists(ctx, in.PaymentFormID, organizationID)
		if err != nil {
			return nil, fmt.Errorf("validar forma de pago: %w", err)
		}
		if !ok {
			return nil, domain.NewValidationError("paymentFormId", in.PaymentFormID, "forma de pago no encontrada")
		}
	}

	lines := make([]ResolvedLine, 0, len(in.Details))
	for i, d := range in.Details {
		field := fmt.Sprintf("details[%d]", i)
		if d.ArticleID == "" {
			return nil, domain.NewValidationError(field+".articleId", "", "requerido")
		}
		article, err := v.articles.GetByID(ctx, d.ArticleID, organizationID)
		if err != nil {
			return nil, fmt.Errorf("validar artículo: %w", err)
		}
		if article == nil {
			return nil, domain.NewValidationError(field+".articleId", d.ArticleID, "artículo no encontrado")
		}
		if !d.Quantity.IsPositive() {
			return nil, domain.NewValidationError(field+".quantity", d.ArticleID, "la cantidad debe ser mayor que cero")
		}

		// El precio del request gana; si no viene, se usa el de catálogo.
		price := article.RetailPrice
		if d.Price != nil {
			price = *d.Price
		}
		if price.IsNegative() {
			return nil, domain.NewValidationError(field+".price", d.ArticleID, "el precio no puede ser negativo")
		}

		lines = append(lines, ResolvedLine{
			Article:                article,
			Quantity:               d.Quantity,
			PriceWithVat:           price,
			AlternativeName:        d.AlternativeName,
			OrderRelatedDocumentID: d.OrderRelatedDocumentID,
		})
	}
	return lines, nil
}

// Authorize verifica que el usuario tenga acceso al punto de venta. La falta de
// acceso es ErrForbidden, un fallo distinto de "punto de venta no encontrado".
func (v *Validator) Authorize(ctx context.Context, userID, salePointID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	ok, err := v.users.HasSalePointAccess(ctx, userID, salePointID)
	if err != nil {
		return fmt.Errorf("verificar acceso al punto de venta: %w", err)
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}
