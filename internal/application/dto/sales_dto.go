package dto

import "github.com/shopspring/decimal"

// CreateSaleOrderRequest body para POST /api/sale-orders.
// La organización y el usuario creador se resuelven del token, no del body.
type CreateSaleOrderRequest struct {
	ClientID       string `json:"client_id"`
	SalePointID    string `json:"sale_point_id"`
	DocumentTypeID string `json:"document_type_id"`
	PaymentTermID  string `json:"payment_term_id"`
	PaymentFormID  string `json:"payment_form_id,omitempty"`

	// Opcionales; si van vacíos se usa la fecha/hora actual y estado Emitida.
	EmissionDate string `json:"emission_date,omitempty"` // YYYY-MM-DD
	EmissionTime string `json:"emission_time,omitempty"` // HH:MM:SS
	Status       string `json:"status,omitempty"`
	Remark       string `json:"remark,omitempty"`

	OperationType string `json:"operation_type,omitempty"`
	IncomeType    string `json:"income_type,omitempty"`

	Details []SaleOrderLineRequest `json:"details"`
}

// SaleOrderLineRequest línea de la orden. Price es el precio unitario con IVA;
// si es nil se usa el precio de venta del catálogo del artículo.
type SaleOrderLineRequest struct {
	ArticleID              string           `json:"article_id"`
	Quantity               decimal.Decimal  `json:"quantity"`
	Price                  *decimal.Decimal `json:"price,omitempty"`
	AlternativeName        string           `json:"alternative_name,omitempty"`
	OrderRelatedDocumentID string           `json:"order_related_document_id,omitempty"`
}

// SaleOrderResponse orden emitida con sus totales y detalle.
type SaleOrderResponse struct {
	ID             string `json:"id"`
	DocumentNumber int64  `json:"document_number"`
	Serial         string `json:"serial,omitempty"`
	Status         string `json:"status"`
	EmissionDate   string `json:"emission_date"`
	EmissionTime   string `json:"emission_time"`
	ReversalDate   string `json:"reversal_date,omitempty"`

	ClientID       string `json:"client_id"`
	SalePointID    string `json:"sale_point_id"`
	DocumentTypeID string `json:"document_type_id"`
	PaymentTermID  string `json:"payment_term_id"`
	PaymentFormID  string `json:"payment_form_id,omitempty"`
	CreatedBy      string `json:"created_by"`
	OrganizationID string `json:"organization_id"`
	Remark         string `json:"remark,omitempty"`

	SubjectAmountSum      decimal.Decimal `json:"subject_amount_sum"`
	ExemptAmountSum       decimal.Decimal `json:"exempt_amount_sum"`
	NotSubjectAmountSum   decimal.Decimal `json:"not_subject_amount_sum"`
	CollectedTaxAmountSum decimal.Decimal `json:"collected_tax_amount_sum"`
	WithheldTaxAmountSum  decimal.Decimal `json:"withheld_tax_amount_sum"`
	SalesTotal            decimal.Decimal `json:"sales_total"`

	Details []SaleOrderDetailResponse `json:"details,omitempty"`
}

// SaleOrderDetailResponse línea en la respuesta.
type SaleOrderDetailResponse struct {
	ID                   string          `json:"id"`
	ArticleID            string          `json:"article_id"`
	Quantity             decimal.Decimal `json:"quantity"`
	RetailPrice          decimal.Decimal `json:"retail_price"`
	Price                decimal.Decimal `json:"price"`
	PriceWithVat         decimal.Decimal `json:"price_with_vat"`
	SubjectAmount        decimal.Decimal `json:"subject_amount"`
	SubjectAmountWithVat decimal.Decimal `json:"subject_amount_with_vat"`
	ExemptAmount         decimal.Decimal `json:"exempt_amount"`
	NotSubjectAmount     decimal.Decimal `json:"not_subject_amount"`
	AlternativeName      string          `json:"alternative_name,omitempty"`
}
